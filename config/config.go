// Package config loads the environment-provided settings for Colony: the two
// remote tier credentials, the per-call timeout and the system loop cadence.
// A reserved placeholder credential marks a tier as "not configured" and the
// startup probe skips it without making a network call.
package config

import (
	"os"
	"time"
)

// PlaceholderCredential is the reserved value indicating a tier credential was
// never configured. Tiers carrying it are downgraded to unreachable at startup.
const PlaceholderCredential = "demo_key"

// Environment variable names.
const (
	EnvPrimaryAPIKey   = "COLONY_PRIMARY_API_KEY"
	EnvPrimaryBaseURL  = "COLONY_PRIMARY_BASE_URL"
	EnvSecondaryAPIKey = "COLONY_SECONDARY_API_KEY"
	EnvCallTimeout     = "COLONY_CALL_TIMEOUT"
	EnvLoopInterval    = "COLONY_LOOP_INTERVAL"
)

// Config carries the externally supplied settings. Zero-configuration systems
// run fully local: both remote tiers stay disabled and every generation is
// served in-process.
type Config struct {
	// PrimaryAPIKey authenticates against the primary remote tier
	// (OpenAI-compatible chat completions API).
	PrimaryAPIKey string
	// PrimaryBaseURL optionally overrides the primary tier endpoint.
	PrimaryBaseURL string
	// SecondaryAPIKey authenticates against the secondary remote tier
	// (Anthropic messages API).
	SecondaryAPIKey string
	// CallTimeout bounds each remote generation call.
	CallTimeout time.Duration
	// LoopInterval is the sleep between system loop cycles.
	LoopInterval time.Duration
}

// Default returns the baseline configuration used when no environment is set.
func Default() Config {
	return Config{
		PrimaryAPIKey:   PlaceholderCredential,
		SecondaryAPIKey: PlaceholderCredential,
		CallTimeout:     30 * time.Second,
		LoopInterval:    5 * time.Second,
	}
}

// FromEnv builds a Config from the environment, falling back to Default for
// anything unset or unparseable. It never fails: a missing credential simply
// leaves the placeholder in place.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv(EnvPrimaryAPIKey); v != "" {
		cfg.PrimaryAPIKey = v
	}
	if v := os.Getenv(EnvPrimaryBaseURL); v != "" {
		cfg.PrimaryBaseURL = v
	}
	if v := os.Getenv(EnvSecondaryAPIKey); v != "" {
		cfg.SecondaryAPIKey = v
	}
	if v := os.Getenv(EnvCallTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CallTimeout = d
		}
	}
	if v := os.Getenv(EnvLoopInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.LoopInterval = d
		}
	}
	return cfg
}

// IsPlaceholder reports whether the credential is unset or carries the
// reserved placeholder value.
func IsPlaceholder(credential string) bool {
	return credential == "" || credential == PlaceholderCredential
}

// PrimaryConfigured reports whether the primary tier has a real credential.
func (c Config) PrimaryConfigured() bool { return !IsPlaceholder(c.PrimaryAPIKey) }

// SecondaryConfigured reports whether the secondary tier has a real credential.
func (c Config) SecondaryConfigured() bool { return !IsPlaceholder(c.SecondaryAPIKey) }
