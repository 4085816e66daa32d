package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/logging"
	"github.com/colonyai/colony/memory"
	"github.com/colonyai/colony/prompt"
	"github.com/colonyai/colony/router"
)

// Status is the agent lifecycle state. Transitions are monotonic:
// uninitialized -> initializing -> {active | error}; active -> terminated.
// error is terminal until an external restart constructs a fresh instance.
type Status string

const (
	// StatusUninitialized is the state at construction.
	StatusUninitialized Status = "uninitialized"
	// StatusInitializing is held while the setup hook runs.
	StatusInitializing Status = "initializing"
	// StatusActive means the agent accepts tasks.
	StatusActive Status = "active"
	// StatusError is the terminal failure state.
	StatusError Status = "error"
	// StatusTerminated is reached on explicit shutdown.
	StatusTerminated Status = "terminated"
)

// Bounded log capacities: once a log exceeds its max the maintenance pass
// trims it down to the keep size.
const (
	maxErrorLog       = 10
	keepErrorLog      = 5
	maxConversations  = 20
	keepConversations = 10
)

// TaskStatus classifies the outcome of ExecuteTask.
type TaskStatus string

const (
	// TaskSuccess means the task was routed and recorded.
	TaskSuccess TaskStatus = "success"
	// TaskError means execution failed; the detail is in TaskResult.Err.
	TaskError TaskStatus = "error"
	// TaskRejected means the agent was not active when the task arrived.
	// Rejections are not recorded in the error log and do not change any
	// counter.
	TaskRejected TaskStatus = "rejected"
)

// TaskResult is the structured outcome of one task execution. Failures are
// always converted into a result; ExecuteTask never panics or returns a Go
// error to its caller.
type TaskResult struct {
	Status  TaskStatus `json:"status"`
	Result  string     `json:"result,omitempty"`
	Backend string     `json:"backend_used,omitempty"`
	Err     string     `json:"error,omitempty"`
}

// Exchange records one complete task interaction: the task, the composed
// prompt, the raw routed result and the kind-processed result.
type Exchange struct {
	ID        string        `json:"id"`
	Task      core.Task     `json:"task"`
	Prompt    string        `json:"prompt"`
	Result    router.Result `json:"result"`
	Processed string        `json:"processed"`
	Timestamp time.Time     `json:"timestamp"`
}

// Options configure agent construction. Setup and Process override the
// kind-dispatched hooks; tests use them to inject failing setups.
type Options struct {
	Logger  logging.Logger
	Prompts *prompt.Registry
	Setup   func(ctx context.Context, a *Agent) error
	Process func(a *Agent, task core.Task, content string) string
}

// Agent is a stateful unit bound to its configuration, the shared memory bus
// and the service router. Runtime state (status, counters, bounded logs) is
// owned exclusively by the agent; other components read it through accessor
// copies.
type Agent struct {
	cfg     core.AgentConfig
	kind    Kind
	bus     *memory.Bus
	router  *router.Router
	prompts *prompt.Registry
	logger  logging.Logger
	hooks   hooks

	mu             sync.Mutex
	status         Status
	tasksCompleted int
	lastActivity   time.Time
	errs           []string
	conversations  []Exchange
	meta           map[string]any
}

// New constructs an uninitialized agent. The kind is resolved from the
// config's type tag; unknown tags fall back to the generic kind.
func New(cfg core.AgentConfig, bus *memory.Bus, r *router.Router, optFns ...func(o *Options)) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := Options{
		Logger:  logging.NoOpLogger{},
		Prompts: prompt.NewRegistry(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	kind := KindFor(cfg.Kind)
	h := kindHooks[kind]
	if opts.Setup != nil {
		h.setup = opts.Setup
	}
	if opts.Process != nil {
		h.process = opts.Process
	}

	return &Agent{
		cfg:          cfg,
		kind:         kind,
		bus:          bus,
		router:       r,
		prompts:      opts.Prompts,
		logger:       opts.Logger,
		hooks:        h,
		status:       StatusUninitialized,
		lastActivity: time.Now(),
		meta:         make(map[string]any),
	}, nil
}

// Name returns the agent's unique identifier.
func (a *Agent) Name() string { return a.cfg.Name }

// Kind returns the resolved agent variant.
func (a *Agent) Kind() Kind { return a.kind }

// Config returns the immutable configuration record.
func (a *Agent) Config() core.AgentConfig { return a.cfg }

// Status returns the current lifecycle state.
func (a *Agent) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// TasksCompleted returns the completed-task counter.
func (a *Agent) TasksCompleted() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tasksCompleted
}

// LastActivity returns the timestamp of the most recent task activity.
func (a *Agent) LastActivity() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastActivity
}

// Errors returns a copy of the bounded error log.
func (a *Agent) Errors() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.errs))
	copy(out, a.errs)
	return out
}

// Conversations returns a copy of the bounded conversation history.
func (a *Agent) Conversations() []Exchange {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Exchange, len(a.conversations))
	copy(out, a.conversations)
	return out
}

// Meta returns the kind-specific metadata value stored under key.
func (a *Agent) Meta(key string) (any, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.meta[key]
	return v, ok
}

func (a *Agent) setMeta(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.meta[key] = value
}

// Initialize runs the kind-specific setup hook and transitions the agent to
// active. On any setup failure the agent enters the terminal error status,
// the failure is recorded in the error log and returned.
//
// Calling Initialize again on an active agent re-runs setup; that is allowed
// but not guaranteed safe — caller responsibility. An errored or terminated
// agent cannot be re-initialized.
func (a *Agent) Initialize(ctx context.Context) error {
	a.mu.Lock()
	if a.status == StatusError || a.status == StatusTerminated {
		st := a.status
		a.mu.Unlock()
		return fmt.Errorf("agent %s is %s and cannot be re-initialized", a.cfg.Name, st)
	}
	a.status = StatusInitializing
	a.mu.Unlock()

	if err := a.runSetup(ctx); err != nil {
		a.mu.Lock()
		a.status = StatusError
		a.errs = append(a.errs, err.Error())
		a.mu.Unlock()
		a.logger.Error("agent initialization failed", "agent", a.cfg.Name, "error", err.Error())
		return fmt.Errorf("initialize agent %s: %w", a.cfg.Name, err)
	}

	a.mu.Lock()
	a.status = StatusActive
	a.mu.Unlock()
	a.logger.Info("agent initialized", "agent", a.cfg.Name, "kind", string(a.kind))
	return nil
}

// runSetup shields the lifecycle from panicking setup hooks.
func (a *Agent) runSetup(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setup panicked: %v", r)
		}
	}()
	return a.hooks.setup(ctx, a)
}

// ExecuteTask routes one task through the service router and records the
// full exchange in the conversation history. Tasks arriving while the agent
// is not active are rejected with a distinct result status; the agent's
// state is left untouched. All other failures are appended to the error log
// and surfaced as an error result — never raised to the caller.
func (a *Agent) ExecuteTask(ctx context.Context, task core.Task) (res TaskResult) {
	a.mu.Lock()
	if a.status != StatusActive {
		st := a.status
		a.mu.Unlock()
		return TaskResult{
			Status: TaskRejected,
			Err:    fmt.Sprintf("agent %s is not active (status: %s)", a.cfg.Name, st),
		}
	}
	a.lastActivity = time.Now()
	a.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("task execution panicked: %v", r)
			a.recordError(msg)
			res = TaskResult{Status: TaskError, Err: msg}
		}
	}()

	taskPrompt, err := a.buildTaskPrompt(task)
	if err != nil {
		a.recordError(err.Error())
		return TaskResult{Status: TaskError, Err: err.Error()}
	}

	result, err := a.router.Generate(ctx, taskPrompt, a.cfg)
	if err != nil {
		a.recordError(err.Error())
		a.logger.Error("task execution failed", "agent", a.cfg.Name, "error", err.Error())
		return TaskResult{Status: TaskError, Err: err.Error()}
	}

	processed := a.hooks.process(a, task, result.Content)

	a.mu.Lock()
	a.conversations = append(a.conversations, Exchange{
		ID:        uuid.NewString(),
		Task:      task,
		Prompt:    taskPrompt,
		Result:    result,
		Processed: processed,
		Timestamp: time.Now(),
	})
	a.tasksCompleted++
	a.lastActivity = time.Now()
	a.mu.Unlock()

	return TaskResult{Status: TaskSuccess, Result: processed, Backend: result.Backend}
}

// buildTaskPrompt renders the task execution template from the task's fields
// plus the agent's identity and capabilities.
func (a *Agent) buildTaskPrompt(task core.Task) (string, error) {
	taskType := task.Type
	if taskType == "" {
		taskType = "general"
	}
	description := task.Description
	if description == "" {
		description = "No description provided"
	}
	return a.prompts.Render(prompt.TaskExecution, map[string]any{
		"Type":         taskType,
		"Description":  description,
		"Context":      fmt.Sprintf("%v", task.Context),
		"Agent":        a.cfg.Name,
		"Capabilities": a.cfg.Capabilities,
	})
}

// Maintain trims the bounded logs: the error log to its last entries once it
// exceeds its cap, likewise the conversation history. Invoked by the system
// loop's maintenance pass; safe to call at any time.
func (a *Agent) Maintain() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.errs) > maxErrorLog {
		a.errs = append([]string(nil), a.errs[len(a.errs)-keepErrorLog:]...)
	}
	if len(a.conversations) > maxConversations {
		a.conversations = append([]Exchange(nil), a.conversations[len(a.conversations)-keepConversations:]...)
	}
}

// Terminate moves an active agent to the terminated state. Terminating an
// agent in any other state is a no-op: error stays terminal and an
// uninitialized agent never ran.
func (a *Agent) Terminate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == StatusActive {
		a.status = StatusTerminated
	}
}

func (a *Agent) recordError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errs = append(a.errs, msg)
}
