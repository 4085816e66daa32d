// Package colony wires the full multi-agent system together: the shared
// memory bus, the tiered generation router, the agent fleet, the scenario
// coordinator and the autonomous loop. The System type is the single façade
// an embedding program needs.
package colony

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/colonyai/colony/agent"
	"github.com/colonyai/colony/config"
	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/logging"
	"github.com/colonyai/colony/memory"
	"github.com/colonyai/colony/model/anthropic"
	"github.com/colonyai/colony/model/openai"
	"github.com/colonyai/colony/prompt"
	"github.com/colonyai/colony/router"
	"github.com/colonyai/colony/runner"
	"github.com/colonyai/colony/scenario"
)

// KeySystemStartTime is the bus key holding the system start timestamp.
// Status derives uptime from it, so uptime survives any component holding a
// bus reference.
const KeySystemStartTime = "system_start_time"

// Options configure a System.
type Options struct {
	Config  config.Config
	Logger  logging.Logger
	Bus     *memory.Bus
	Router  *router.Router
	Prompts *prompt.Registry

	// LoopInterval overrides Config.LoopInterval for the autonomous loop.
	LoopInterval time.Duration
	// SnapshotSchedule is the cron spec for status snapshot publication.
	SnapshotSchedule string
}

// SystemStatus is a point-in-time snapshot of the whole system.
type SystemStatus struct {
	Timestamp           time.Time         `json:"timestamp"`
	UptimeSeconds       float64           `json:"uptime_seconds"`
	TotalAgents         int               `json:"total_agents"`
	ActiveAgents        int               `json:"active_agents"`
	TotalTasksCompleted int               `json:"total_tasks_completed"`
	Sessions            int               `json:"sessions"`
	Router              router.Stats      `json:"router"`
	AgentStatuses       map[string]string `json:"agent_statuses"`
}

// System owns the agent fleet and the shared infrastructure. All methods are
// safe for concurrent use.
type System struct {
	cfg         config.Config
	logger      logging.Logger
	bus         *memory.Bus
	router      *router.Router
	prompts     *prompt.Registry
	coordinator *scenario.Coordinator

	loopInterval     time.Duration
	snapshotSchedule string

	mu       sync.Mutex
	agents   map[string]*agent.Agent
	order    []string
	sessions []*scenario.Session
}

// New assembles a System. With no options it runs fully local: placeholder
// credentials keep both remote tiers disabled and every generation is served
// in-process.
func New(optFns ...func(o *Options)) *System {
	opts := Options{
		Config:           config.Default(),
		SnapshotSchedule: "@every 15s",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDefaultSlogLogger()
	}
	if opts.Bus == nil {
		opts.Bus = memory.NewBus(func(o *memory.BusOptions) {
			o.Logger = opts.Logger
		})
	}
	if opts.Prompts == nil {
		opts.Prompts = prompt.NewRegistry()
	}
	if opts.Router == nil {
		opts.Router = newRouter(opts.Config, opts.Logger)
	}
	if opts.LoopInterval <= 0 {
		opts.LoopInterval = opts.Config.LoopInterval
	}

	coord := scenario.NewCoordinator(opts.Router, func(o *scenario.Options) {
		o.Logger = opts.Logger
		o.Prompts = opts.Prompts
	})

	return &System{
		cfg:              opts.Config,
		logger:           opts.Logger,
		bus:              opts.Bus,
		router:           opts.Router,
		prompts:          opts.Prompts,
		coordinator:      coord,
		loopInterval:     opts.LoopInterval,
		snapshotSchedule: opts.SnapshotSchedule,
		agents:           make(map[string]*agent.Agent),
	}
}

// newRouter builds the default tier chain from the config: an OpenAI-backed
// primary, an Anthropic-backed secondary. Placeholder credentials still build
// a backend; the startup probe disables those tiers without a network call.
func newRouter(cfg config.Config, logger logging.Logger) *router.Router {
	primary := openai.NewGenerator(func(o *openai.Options) {
		o.APIKey = cfg.PrimaryAPIKey
		o.BaseURL = cfg.PrimaryBaseURL
	})
	secondary := anthropic.NewGenerator(func(o *anthropic.Options) {
		o.APIKey = cfg.SecondaryAPIKey
	})
	return router.New(func(o *router.Options) {
		o.Primary = router.Backend{Generator: primary, Credential: cfg.PrimaryAPIKey}
		o.Secondary = router.Backend{Generator: secondary, Credential: cfg.SecondaryAPIKey}
		o.Logger = logger
		o.CallTimeout = cfg.CallTimeout
	})
}

// Start records the start timestamp on the bus and probes both remote tiers.
// It is non-fatal with respect to unreachable tiers; the returned error is
// reserved for context cancellation.
func (s *System) Start(ctx context.Context) error {
	s.bus.Store(KeySystemStartTime, time.Now())
	s.logger.Info("colony starting",
		"primary_configured", s.cfg.PrimaryConfigured(),
		"secondary_configured", s.cfg.SecondaryConfigured())
	return s.router.Probe(ctx)
}

// AddAgent creates, initializes and registers one agent. Names must be unique;
// an agent whose initialization fails is not registered.
func (s *System) AddAgent(ctx context.Context, cfg core.AgentConfig, optFns ...func(o *agent.Options)) (*agent.Agent, error) {
	s.mu.Lock()
	_, exists := s.agents[cfg.Name]
	s.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("agent %q already registered", cfg.Name)
	}

	fns := append([]func(o *agent.Options){func(o *agent.Options) {
		o.Logger = s.logger
		o.Prompts = s.prompts
	}}, optFns...)
	a, err := agent.New(cfg, s.bus, s.router, fns...)
	if err != nil {
		return nil, err
	}
	if err := a.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize agent %q: %w", cfg.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.agents[cfg.Name]; exists {
		return nil, fmt.Errorf("agent %q already registered", cfg.Name)
	}
	s.agents[cfg.Name] = a
	s.order = append(s.order, cfg.Name)
	s.logger.Info("agent registered", "agent", cfg.Name, "kind", string(a.Kind()))
	return a, nil
}

// AddFleet registers a slice of agent configs, skipping disabled ones.
// Individual initialization failures are logged and do not abort the rest of
// the fleet; the returned count is how many agents registered.
func (s *System) AddFleet(ctx context.Context, fleet []core.AgentConfig) int {
	added := 0
	for _, cfg := range fleet {
		if !cfg.Enabled {
			continue
		}
		if _, err := s.AddAgent(ctx, cfg); err != nil {
			s.logger.Error("fleet agent failed", "agent", cfg.Name, "error", err.Error())
			continue
		}
		added++
	}
	return added
}

// Agent looks up a registered agent by name.
func (s *System) Agent(name string) (*agent.Agent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[name]
	return a, ok
}

// Agents returns the fleet in registration order.
func (s *System) Agents() []*agent.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*agent.Agent, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.agents[name])
	}
	return out
}

// Router exposes the tier router, mainly for stats and probing.
func (s *System) Router() *router.Router { return s.router }

// Bus exposes the shared memory bus.
func (s *System) Bus() *memory.Bus { return s.bus }

// RunScenario plays one multi-round scenario and records the session. The
// session is recorded even when the run aborts, preserving the partial
// transcript.
func (s *System) RunScenario(ctx context.Context, sc scenario.Scenario, participants []scenario.Participant) (*scenario.Session, error) {
	sess, err := s.coordinator.Run(ctx, sc, participants)
	s.mu.Lock()
	s.sessions = append(s.sessions, sess)
	s.mu.Unlock()
	return sess, err
}

// Sessions returns the recorded scenario sessions, oldest first.
func (s *System) Sessions() []*scenario.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*scenario.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Run drives the autonomous loop until ctx is cancelled.
func (s *System) Run(ctx context.Context) error {
	r := runner.NewRunner(s, func(o *runner.Options) {
		o.Bus = s.bus
		o.Logger = s.logger
		o.Interval = s.loopInterval
		o.SnapshotSchedule = s.snapshotSchedule
		o.Snapshot = func() any { return s.Status() }
		o.RemoteAvailable = s.router.RemoteAvailable
	})
	return r.Run(ctx)
}

// Status assembles a point-in-time snapshot of the system. Uptime is derived
// from the start timestamp stored on the bus; before Start it reads zero.
func (s *System) Status() SystemStatus {
	now := time.Now()
	st := SystemStatus{
		Timestamp:     now,
		Router:        s.router.Stats(),
		AgentStatuses: make(map[string]string),
	}
	if v, ok := s.bus.Retrieve(KeySystemStartTime); ok {
		if started, ok := v.(time.Time); ok {
			st.UptimeSeconds = now.Sub(started).Seconds()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st.TotalAgents = len(s.agents)
	st.Sessions = len(s.sessions)
	for _, name := range s.order {
		a := s.agents[name]
		status := a.Status()
		st.AgentStatuses[name] = string(status)
		if status == agent.StatusActive {
			st.ActiveAgents++
		}
		st.TotalTasksCompleted += a.TasksCompleted()
	}
	return st
}

// Shutdown terminates every agent. It is idempotent; already terminated or
// errored agents are left as they are.
func (s *System) Shutdown() {
	s.mu.Lock()
	agents := make([]*agent.Agent, 0, len(s.order))
	for _, name := range s.order {
		agents = append(agents, s.agents[name])
	}
	s.mu.Unlock()

	for _, a := range agents {
		a.Terminate()
	}
	s.logger.Info("colony shut down", "agents", len(agents))
}
