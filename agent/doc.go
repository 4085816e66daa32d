// Package agent implements the stateful unit of work in Colony. An Agent is
// bound at construction to its configuration, the shared memory bus and the
// service router, and exposes two operations: Initialize (runs the
// kind-specific setup hook) and ExecuteTask (routes one task through the
// generation tiers and records the exchange).
//
// Lifecycle: uninitialized -> initializing -> {active | error}; active may
// transition to terminated on explicit shutdown. The error status is terminal
// for the instance: there is no automatic retry, a fresh agent must be
// constructed to recover.
//
// Agent kinds are a closed tagged variant: each Kind carries its setup and
// result-processing behavior via an explicit dispatch table. Adding a kind is
// adding a variant case, not a new inheritance branch.
package agent
