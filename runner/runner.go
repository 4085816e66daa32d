// Package runner drives the autonomous operation loop: a periodic cycle that
// publishes fleet telemetry to the memory bus, dispatches a task to every
// active agent, and runs agent maintenance. A cron schedule publishes status
// snapshots independently of the cycle cadence.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/colonyai/colony/agent"
	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/logging"
	"github.com/colonyai/colony/memory"
)

// Bus keys and topics written by the loop.
const (
	KeyActiveAgents   = "active_agents"
	KeyTotalCompleted = "total_tasks_completed"
	TopicSnapshot     = "system_snapshot"
)

// AgentSource hands the runner the current fleet. Implemented by the system
// façade; defined here so the runner does not depend on it.
type AgentSource interface {
	Agents() []*agent.Agent
}

// Options configure a Runner.
type Options struct {
	Bus    *memory.Bus
	Logger logging.Logger

	// Interval is the pause between successful cycles.
	Interval time.Duration
	// Backoff is the pause after a failed cycle.
	Backoff time.Duration

	// SnapshotSchedule is a cron spec for status snapshot publication.
	SnapshotSchedule string
	// Snapshot produces the payload published on TopicSnapshot. Nil disables
	// snapshot publication.
	Snapshot func() any

	// RemoteAvailable reports whether a remote generation tier is reachable;
	// its value is stamped into every dispatched task context.
	RemoteAvailable func() bool
}

// Runner executes the autonomous loop until its context is cancelled.
type Runner struct {
	src    AgentSource
	bus    *memory.Bus
	logger logging.Logger

	interval time.Duration
	backoff  time.Duration

	schedule        string
	snapshot        func() any
	remoteAvailable func() bool
}

// NewRunner creates a Runner over the given fleet source.
func NewRunner(src AgentSource, optFns ...func(o *Options)) *Runner {
	opts := Options{
		Logger:           logging.NoOpLogger{},
		Interval:         5 * time.Second,
		Backoff:          10 * time.Second,
		SnapshotSchedule: "@every 15s",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		src:             src,
		bus:             opts.Bus,
		logger:          opts.Logger,
		interval:        opts.Interval,
		backoff:         opts.Backoff,
		schedule:        opts.SnapshotSchedule,
		snapshot:        opts.Snapshot,
		remoteAvailable: opts.RemoteAvailable,
	}
}

// Run executes loop cycles until ctx is cancelled. Cancellation is honored at
// cycle boundaries: a cycle in flight finishes before Run returns. A panicking
// cycle is recovered, logged and followed by the backoff pause, so one bad
// cycle never kills the loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.snapshot != nil && r.bus != nil {
		c := cron.New()
		if _, err := c.AddFunc(r.schedule, func() {
			r.bus.Publish(TopicSnapshot, r.snapshot())
		}); err != nil {
			return fmt.Errorf("snapshot schedule %q: %w", r.schedule, err)
		}
		c.Start()
		defer c.Stop()
	}

	r.logger.Info("autonomous loop started", "interval", r.interval.String())

	for cycle := 1; ; cycle++ {
		if err := ctx.Err(); err != nil {
			r.logger.Info("autonomous loop stopped", "cycles", cycle-1)
			return err
		}

		start := time.Now()
		dispatched, err := r.safeCycle(ctx)
		r.logCycle(cycle, dispatched, time.Since(start), err)

		pause := r.interval
		if err != nil {
			pause = r.backoff
		}
		select {
		case <-ctx.Done():
		case <-time.After(pause):
		}
	}
}

// safeCycle runs one cycle with panic recovery.
func (r *Runner) safeCycle(ctx context.Context) (dispatched int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("loop cycle panic: %v", rec)
		}
	}()
	return r.cycle(ctx)
}

// cycle publishes fleet telemetry, dispatches one autonomous task per active
// agent and runs maintenance across the whole fleet.
func (r *Runner) cycle(ctx context.Context) (int, error) {
	agents := r.src.Agents()

	active := 0
	completed := 0
	for _, a := range agents {
		if a.Status() == agent.StatusActive {
			active++
		}
		completed += a.TasksCompleted()
	}
	if r.bus != nil {
		r.bus.Store(KeyActiveAgents, active)
		r.bus.Store(KeyTotalCompleted, completed)
	}

	apiEnabled := false
	if r.remoteAvailable != nil {
		apiEnabled = r.remoteAvailable()
	}

	dispatched := 0
	for _, a := range agents {
		if a.Status() != agent.StatusActive {
			continue
		}
		task := core.NewTask("autonomous_operation", fmt.Sprintf("Autonomous task for %s", a.Name()))
		task.Context = map[string]any{"api_enabled": apiEnabled}

		res := a.ExecuteTask(ctx, task)
		if res.Status == agent.TaskError {
			r.logger.Warn("autonomous task failed", "agent", a.Name(), "error", res.Err)
		}
		dispatched++
	}

	for _, a := range agents {
		a.Maintain()
	}
	return dispatched, ctx.Err()
}

func (r *Runner) logCycle(cycle, dispatched int, dur time.Duration, err error) {
	if cl, ok := r.logger.(*logging.ColonyLogger); ok {
		cl.LogLoopCycle(cycle, dispatched, dur, err)
		return
	}
	if err != nil {
		r.logger.Error("loop cycle failed", "cycle", cycle, "error", err.Error())
	}
}
