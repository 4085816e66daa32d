package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyai/colony/agent"
	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/memory"
	"github.com/colonyai/colony/router"
)

type staticSource struct {
	agents []*agent.Agent
}

func (s *staticSource) Agents() []*agent.Agent { return s.agents }

func newFleet(t *testing.T, bus *memory.Bus, names ...string) *staticSource {
	t.Helper()
	r := router.New()
	src := &staticSource{}
	for _, name := range names {
		a, err := agent.New(core.NewAgentConfig(name, "developer", []string{"coding"}), bus, r)
		require.NoError(t, err)
		require.NoError(t, a.Initialize(context.Background()))
		src.agents = append(src.agents, a)
	}
	return src
}

func TestCycle_DispatchesToActiveAgentsOnly(t *testing.T) {
	bus := memory.NewBus()
	src := newFleet(t, bus, "dev_engine", "fullstack_dev")
	src.agents[1].Terminate()

	r := NewRunner(src, func(o *Options) { o.Bus = bus })

	dispatched, err := r.cycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	assert.Equal(t, 1, src.agents[0].TasksCompleted())
	assert.Equal(t, 0, src.agents[1].TasksCompleted())
}

func TestCycle_PublishesFleetTelemetry(t *testing.T) {
	bus := memory.NewBus()
	src := newFleet(t, bus, "dev_engine", "quality_control")

	r := NewRunner(src, func(o *Options) { o.Bus = bus })
	_, err := r.cycle(context.Background())
	require.NoError(t, err)

	active, ok := bus.Retrieve(KeyActiveAgents)
	require.True(t, ok)
	assert.Equal(t, 2, active.(int))

	completed, ok := bus.Retrieve(KeyTotalCompleted)
	require.True(t, ok)
	// Telemetry is written before dispatch, so the first cycle reports zero.
	assert.Equal(t, 0, completed.(int))

	_, err = r.cycle(context.Background())
	require.NoError(t, err)
	completed, _ = bus.Retrieve(KeyTotalCompleted)
	assert.Equal(t, 2, completed.(int))
}

func TestCycle_TaskContextCarriesRemoteAvailability(t *testing.T) {
	bus := memory.NewBus()
	src := newFleet(t, bus, "dev_engine")

	r := NewRunner(src, func(o *Options) {
		o.Bus = bus
		o.RemoteAvailable = func() bool { return true }
	})
	_, err := r.cycle(context.Background())
	require.NoError(t, err)

	convs := src.agents[0].Conversations()
	require.Len(t, convs, 1)
	assert.Equal(t, "autonomous_operation", convs[0].Task.Type)
	assert.Equal(t, true, convs[0].Task.Context["api_enabled"])
}

func TestSafeCycle_RecoversPanic(t *testing.T) {
	r := NewRunner(panickySource{})

	dispatched, err := r.safeCycle(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.Equal(t, 0, dispatched)
}

type panickySource struct{}

func (panickySource) Agents() []*agent.Agent { panic("source bug") }

func TestRun_StopsOnCancellation(t *testing.T) {
	bus := memory.NewBus()
	src := newFleet(t, bus, "dev_engine")

	r := NewRunner(src, func(o *Options) {
		o.Bus = bus
		o.Interval = time.Millisecond
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	// At least one full cycle ran before the stop.
	assert.GreaterOrEqual(t, src.agents[0].TasksCompleted(), 1)
}

func TestRun_RejectsBadSnapshotSchedule(t *testing.T) {
	bus := memory.NewBus()
	r := NewRunner(&staticSource{}, func(o *Options) {
		o.Bus = bus
		o.Snapshot = func() any { return nil }
		o.SnapshotSchedule = "not a cron spec"
	})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot schedule")
}
