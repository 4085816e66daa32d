// Package memory contains the shared in-process memory bus: a thread-safe
// key/value map with timestamped, type-tagged entries plus a topic based
// publish/subscribe mechanism. All state is volatile and process-lifetime
// only.
//
// Rationale: keeping the blackboard in a leaf package lets every component
// (router, agents, the system loop) exchange metrics and signals without
// introducing dependency cycles.
package memory
