package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/logging"
	"github.com/colonyai/colony/prompt"
	"github.com/colonyai/colony/router"
)

// historyWindow is how many trailing transcript messages each turn prompt
// carries as context.
const historyWindow = 3

// simulationBackend marks transcript entries produced without any generation
// call, when no remote tier is reachable.
const simulationBackend = "local_simulation"

// simulatedOpeners are cycled by round when the scenario runs as a local
// simulation.
var simulatedOpeners = []string{
	"I suggest we approach this systematically",
	"Based on my capabilities, I can contribute to this scenario",
	"Let me analyze the requirements and provide insights",
	"I'll coordinate with the team to achieve our goals",
	"My specialized functions are ready for this challenge",
}

// Options configure a Coordinator.
type Options struct {
	Logger  logging.Logger
	Prompts *prompt.Registry
}

// Coordinator runs multi-round scenarios against the router and assembles the
// ordered transcript.
type Coordinator struct {
	router  *router.Router
	prompts *prompt.Registry
	logger  logging.Logger
}

// NewCoordinator creates a Coordinator bound to the given router.
func NewCoordinator(r *router.Router, optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Prompts == nil {
		opts.Prompts = prompt.NewRegistry()
	}
	return &Coordinator{
		router:  r,
		prompts: opts.Prompts,
		logger:  opts.Logger,
	}
}

// Run plays the scenario round by round. Each round iterates the participants
// in the order given, so the transcript is round-major and deterministic in
// ordering. When no remote tier is reachable the whole scenario runs as a
// local simulation with zero generation calls. A cancellation or a fatal
// routing error mid-scenario seals the session as errored with the partial
// transcript intact.
func (c *Coordinator) Run(ctx context.Context, sc Scenario, participants []Participant) (*Session, error) {
	if sc.Rounds <= 0 {
		sc.Rounds = DefaultRounds
	}
	sess := newSession(sc, participants)

	c.logger.Info("scenario started",
		"session_id", sess.ID,
		"title", sc.Title,
		"rounds", sc.Rounds,
		"participants", len(participants))

	simulated := !c.router.RemoteAvailable()
	if simulated {
		c.logger.Warn("no remote tier reachable, running scenario as local simulation", "session_id", sess.ID)
	}

	for round := 1; round <= sc.Rounds; round++ {
		for _, p := range participants {
			if err := ctx.Err(); err != nil {
				sess.fail(err)
				return sess, err
			}

			var msg Message
			if simulated {
				msg = c.simulateTurn(sess, round, p)
			} else {
				var err error
				msg, err = c.playTurn(ctx, sess, round, p)
				if err != nil {
					sess.fail(err)
					return sess, err
				}
			}
			sess.Messages = append(sess.Messages, msg)
		}
	}

	sess.complete()
	c.logger.Info("scenario completed",
		"session_id", sess.ID,
		"messages", len(sess.Messages))
	return sess, nil
}

// playTurn routes one participant turn through the generation tiers.
func (c *Coordinator) playTurn(ctx context.Context, sess *Session, round int, p Participant) (Message, error) {
	turnPrompt, err := c.prompts.Render(prompt.ScenarioTurn, map[string]any{
		"Description": sess.Scenario.Description,
		"Role":        p.Role,
		"Round":       round,
		"History":     historyJSON(sess.Messages),
		"Name":        p.Name,
	})
	if err != nil {
		return Message{}, fmt.Errorf("scenario turn prompt: %w", err)
	}

	cfg := core.AgentConfig{
		Name:         p.Name,
		Kind:         "collaborator",
		Capabilities: p.Capabilities,
		Preference:   core.PreferenceAuto,
	}
	res, err := c.router.Generate(ctx, turnPrompt, cfg)
	if err != nil {
		return Message{}, err
	}

	return Message{
		ID:        uuid.NewString(),
		Round:     round,
		Agent:     p.Name,
		Role:      p.Role,
		Content:   res.Content,
		Backend:   res.Backend,
		Timestamp: time.Now(),
	}, nil
}

// simulateTurn fabricates a turn without touching the router.
func (c *Coordinator) simulateTurn(sess *Session, round int, p Participant) Message {
	opener := simulatedOpeners[(round-1)%len(simulatedOpeners)]
	return Message{
		ID:        uuid.NewString(),
		Round:     round,
		Agent:     p.Name,
		Role:      p.Role,
		Content:   fmt.Sprintf("%s (Local simulation by %s)", opener, p.Name),
		Backend:   simulationBackend,
		Timestamp: time.Now(),
	}
}

// historyJSON renders the trailing transcript window as compact JSON for
// embedding in the turn prompt.
func historyJSON(messages []Message) string {
	if len(messages) > historyWindow {
		messages = messages[len(messages)-historyWindow:]
	}
	type entry struct {
		Agent   string `json:"agent"`
		Round   int    `json:"round"`
		Content string `json:"content"`
	}
	entries := make([]entry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, entry{Agent: m.Agent, Round: m.Round, Content: m.Content})
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(b)
}
