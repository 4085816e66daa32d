// Package core provides the foundational domain types shared across Colony.
// It defines the agent configuration record (identity, capability set, backend
// preference) and the task unit dispatched to agents.
//
// The package intentionally keeps implementation concerns (routing, lifecycle,
// orchestration) out of scope so that higher level packages can depend on these
// contracts without introducing cycles.
package core
