// Package scenario runs multi-round, multi-agent collaboration sessions.
//
// A Coordinator plays a Scenario as a fixed number of rounds; within each
// round it iterates the participants in declaration order, so the transcript
// is strictly round-major. Each turn prompt carries the trailing transcript
// window as context. When no remote generation tier is reachable the scenario
// degrades to a local simulation that produces canned turns without any
// generation calls.
package scenario
