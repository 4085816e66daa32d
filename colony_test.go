package colony

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyai/colony/agent"
	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/model"
	"github.com/colonyai/colony/router"
	"github.com/colonyai/colony/scenario"
)

func newLocalSystem(t *testing.T) *System {
	t.Helper()
	s := New()
	require.NoError(t, s.Start(context.Background()))
	return s
}

func TestSystem_DefaultsRunFullyLocal(t *testing.T) {
	s := newLocalSystem(t)
	assert.False(t, s.Router().RemoteAvailable())

	a, err := s.AddAgent(context.Background(), core.NewAgentConfig("dev_engine", "developer", []string{"coding"}))
	require.NoError(t, err)

	res := a.ExecuteTask(context.Background(), core.NewTask("general", "hello"))
	assert.Equal(t, agent.TaskSuccess, res.Status)
	assert.Equal(t, router.TierLocal, res.Backend)
}

func TestSystem_AddAgentRejectsDuplicateNames(t *testing.T) {
	s := newLocalSystem(t)
	cfg := core.NewAgentConfig("dev_engine", "developer", []string{"coding"})

	_, err := s.AddAgent(context.Background(), cfg)
	require.NoError(t, err)

	_, err = s.AddAgent(context.Background(), cfg)
	assert.Error(t, err)
	assert.Len(t, s.Agents(), 1)
}

func TestSystem_FailedInitializationIsNotRegistered(t *testing.T) {
	s := newLocalSystem(t)

	_, err := s.AddAgent(context.Background(),
		core.NewAgentConfig("broken", "developer", nil),
		func(o *agent.Options) {
			o.Setup = func(ctx context.Context, a *agent.Agent) error {
				panic("setup bug")
			}
		})
	require.Error(t, err)

	_, ok := s.Agent("broken")
	assert.False(t, ok)
	assert.Empty(t, s.Agents())
}

func TestSystem_AddFleetSkipsDisabled(t *testing.T) {
	s := newLocalSystem(t)

	fleet := []core.AgentConfig{
		core.NewAgentConfig("cybershell", "dev_engine", []string{"shell"}),
		core.NewAgentConfig("dormant", "developer", nil, func(c *core.AgentConfig) { c.Enabled = false }),
	}
	added := s.AddFleet(context.Background(), fleet)
	assert.Equal(t, 1, added)
	assert.Len(t, s.Agents(), 1)
}

func TestDefaultFleet(t *testing.T) {
	fleet := DefaultFleet()
	require.Len(t, fleet, 14)

	names := make(map[string]bool, len(fleet))
	for _, cfg := range fleet {
		require.NoError(t, cfg.Validate())
		assert.False(t, names[cfg.Name], "duplicate name %s", cfg.Name)
		names[cfg.Name] = true
	}
	assert.True(t, names["cybershell"])
	assert.True(t, names["commander_agi"])

	s := newLocalSystem(t)
	added := s.AddFleet(context.Background(), fleet)
	assert.Equal(t, 14, added)
	assert.Equal(t, 14, s.Status().ActiveAgents)
}

func TestSystem_Status(t *testing.T) {
	s := newLocalSystem(t)

	a, err := s.AddAgent(context.Background(), core.NewAgentConfig("dev_engine", "developer", []string{"coding"}))
	require.NoError(t, err)
	res := a.ExecuteTask(context.Background(), core.NewTask("general", "work"))
	require.Equal(t, agent.TaskSuccess, res.Status)
	a.Terminate()

	_, err = s.AddAgent(context.Background(), core.NewAgentConfig("ui_designer", "designer", []string{"ux"}))
	require.NoError(t, err)

	st := s.Status()
	assert.Equal(t, 2, st.TotalAgents)
	assert.Equal(t, 1, st.ActiveAgents)
	assert.Equal(t, 1, st.TotalTasksCompleted)
	assert.Equal(t, string(agent.StatusTerminated), st.AgentStatuses["dev_engine"])
	assert.Equal(t, string(agent.StatusActive), st.AgentStatuses["ui_designer"])
	assert.Greater(t, st.UptimeSeconds, 0.0)
	assert.Equal(t, st.Router.TotalRequests, st.Router.TotalSuccess+st.Router.TotalErrors)
}

func TestSystem_StatusBeforeStartHasZeroUptime(t *testing.T) {
	s := New()
	st := s.Status()
	assert.Equal(t, 0.0, st.UptimeSeconds)
}

func TestSystem_RunScenarioRecordsSession(t *testing.T) {
	s := newLocalSystem(t)

	sess, err := s.RunScenario(context.Background(),
		scenario.Scenario{Title: "Offline", Description: "local only", Rounds: 2},
		[]scenario.Participant{
			{Name: "commander_agi", Role: "coordinator"},
			{Name: "dev_engine", Role: "engineer"},
		})
	require.NoError(t, err)
	assert.Equal(t, scenario.SessionCompleted, sess.Status)
	assert.Len(t, sess.Messages, 4)

	assert.Len(t, s.Sessions(), 1)
	assert.Equal(t, 1, s.Status().Sessions)
}

func TestSystem_RunScenarioRecordsAbortedSession(t *testing.T) {
	primary := model.NewMockGenerator("gpt-test", "openai")
	r := router.New(func(o *router.Options) {
		o.Primary = router.Backend{Generator: primary, Credential: "test-key"}
	})
	require.NoError(t, r.Probe(context.Background()))

	s := New(func(o *Options) { o.Router = r })
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sess, err := s.RunScenario(ctx,
		scenario.Scenario{Title: "Cut", Description: "cancelled", Rounds: 3},
		[]scenario.Participant{{Name: "dev_engine", Role: "engineer"}})
	require.Error(t, err)
	assert.Equal(t, scenario.SessionError, sess.Status)
	assert.Len(t, s.Sessions(), 1)
}

func TestSystem_StartStoresStartTime(t *testing.T) {
	s := New()
	require.NoError(t, s.Start(context.Background()))

	v, ok := s.Bus().Retrieve(KeySystemStartTime)
	require.True(t, ok)
	started, ok := v.(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), started, time.Minute)
}

func TestSystem_Shutdown(t *testing.T) {
	s := newLocalSystem(t)
	_, err := s.AddAgent(context.Background(), core.NewAgentConfig("dev_engine", "developer", []string{"coding"}))
	require.NoError(t, err)

	s.Shutdown()
	a, _ := s.Agent("dev_engine")
	assert.Equal(t, agent.StatusTerminated, a.Status())

	// Idempotent.
	s.Shutdown()
	assert.Equal(t, agent.StatusTerminated, a.Status())
}

func TestSystem_RunLoopUntilCancelled(t *testing.T) {
	s := New(func(o *Options) { o.LoopInterval = time.Millisecond })
	require.NoError(t, s.Start(context.Background()))
	_, err := s.AddAgent(context.Background(), core.NewAgentConfig("dev_engine", "developer", []string{"coding"}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	assert.GreaterOrEqual(t, s.Status().TotalTasksCompleted, 1)
}
