package core

import "time"

// Task describes one unit of work dispatched to an agent. Context carries
// opaque key/value hints that are rendered into the task prompt verbatim.
type Task struct {
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Context     map[string]any `json:"context,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// NewTask builds a task stamped with the current time.
func NewTask(taskType, description string) Task {
	return Task{Type: taskType, Description: description, Timestamp: time.Now()}
}
