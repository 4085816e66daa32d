// Package router implements the tiered generation service router. Requests
// are dispatched to one of three tiers: primary (OpenAI-compatible remote
// API), secondary (Anthropic remote API) or local (pure in-process
// composition). Tier selection honors the agent's backend preference, remote
// failures of any kind (transport error, non-success status, timeout, open
// circuit breaker) are counted against the failing tier and retried once
// against the local tier, and the local tier never fails: Generate always
// produces a successful result in correct operation.
//
// Error taxonomy, in handling order:
//   - placeholder credential: the tier is downgraded to unreachable at startup
//     without a network call (never fatal)
//   - transport / backend errors: counted, logged, recovered by falling back
//     one tier
//   - local processing failure: must not happen; if it does the error is
//     propagated as a fatal bug instead of being swallowed
//
// Per-tier usage counters only ever increase and requests == success + errors
// holds after any sequence of calls.
package router
