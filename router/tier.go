package router

import (
	"github.com/sony/gobreaker/v2"

	"github.com/colonyai/colony/model"
)

// Tier names, ordered by priority. The local tier is the terminal fallback
// and is always reachable.
const (
	TierPrimary   = "primary"
	TierSecondary = "secondary"
	TierLocal     = "local"
)

// Backend binds a remote generator to the credential it was configured with.
// The credential is only inspected for the placeholder check at probe time;
// authentication itself is handled inside the generator.
type Backend struct {
	Generator  model.Generator
	Credential string
}

// tierState is the mutable descriptor of one remote tier: reachability flag
// (set once by the startup probe), usage counters and the circuit breaker
// guarding the remote call. Counter access is guarded by the router mutex.
type tierState struct {
	name    string
	backend Backend
	enabled bool
	breaker *gobreaker.CircuitBreaker[*model.Response]

	requests uint64
	success  uint64
	errors   uint64
}

// TierStats are the monotonically increasing usage counters of one tier.
type TierStats struct {
	Requests uint64 `json:"requests"`
	Success  uint64 `json:"success"`
	Errors   uint64 `json:"errors"`
}

// TierSnapshot pairs a tier's reachability flag with its counters.
type TierSnapshot struct {
	Enabled bool      `json:"enabled"`
	Stats   TierStats `json:"stats"`
}

// Stats is a point-in-time view of all tiers plus system-wide totals. The
// totals always equal the sum across tiers.
type Stats struct {
	Tiers         map[string]TierSnapshot `json:"tiers"`
	TotalRequests uint64                  `json:"total_requests"`
	TotalSuccess  uint64                  `json:"total_success"`
	TotalErrors   uint64                  `json:"total_errors"`
}
