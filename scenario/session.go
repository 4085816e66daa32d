package scenario

import (
	"fmt"
	"time"
)

// Scenario describes a multi-round collaboration to run.
type Scenario struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rounds      int    `json:"rounds"`
}

// DefaultRounds is used when a scenario does not specify a round count.
const DefaultRounds = 3

// Participant is one collaborating agent identity inside a scenario. The
// capability set shapes local fallback content; the role is embedded in every
// turn prompt.
type Participant struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// SessionStatus tracks the lifecycle of a scenario session.
type SessionStatus string

const (
	// SessionActive means rounds are still being played.
	SessionActive SessionStatus = "active"
	// SessionCompleted means all rounds finished normally.
	SessionCompleted SessionStatus = "completed"
	// SessionError means the scenario aborted; the partial transcript up to
	// the failure is preserved.
	SessionError SessionStatus = "error"
)

// Message is one transcript entry. Transcript order is round-major then
// participant-order within the round, with no reordering or deduplication.
type Message struct {
	ID        string    `json:"id"`
	Round     int       `json:"round"`
	Agent     string    `json:"agent"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Backend   string    `json:"backend_used"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the record of one scenario run. It is mutated only by the
// Coordinator and becomes immutable once Status is completed or error.
type Session struct {
	ID           string        `json:"id"`
	Scenario     Scenario      `json:"scenario"`
	Participants []Participant `json:"participants"`
	Messages     []Message     `json:"messages"`
	Status       SessionStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
	Started      time.Time     `json:"start_time"`
	Ended        time.Time     `json:"end_time,omitzero"`
}

// newSession opens an active session with a time-derived identifier.
func newSession(sc Scenario, participants []Participant) *Session {
	now := time.Now()
	return &Session{
		ID:           fmt.Sprintf("%.6f", float64(now.UnixNano())/1e9),
		Scenario:     sc,
		Participants: participants,
		Status:       SessionActive,
		Started:      now,
	}
}

// complete seals the session successfully.
func (s *Session) complete() {
	s.Status = SessionCompleted
	s.Ended = time.Now()
}

// fail seals the session with an error, preserving the partial transcript.
func (s *Session) fail(err error) {
	s.Status = SessionError
	s.Error = err.Error()
	s.Ended = time.Now()
}
