package core

import (
	"fmt"
	"slices"
)

// Preference selects which generation tier an agent favors before the router
// falls back down the chain.
type Preference string

const (
	// PreferenceAuto picks the highest-priority reachable tier.
	PreferenceAuto Preference = "auto"
	// PreferencePrimary pins the agent to the primary remote tier when reachable.
	PreferencePrimary Preference = "primary"
	// PreferenceSecondary pins the agent to the secondary remote tier when reachable.
	PreferenceSecondary Preference = "secondary"
	// PreferenceLocal always uses in-process generation.
	PreferenceLocal Preference = "local"
)

// AgentConfig is the immutable-after-creation configuration record for an
// agent. Identity is the Name field; names must be unique within a running
// system.
type AgentConfig struct {
	Name         string     `json:"name"`
	Kind         string     `json:"kind"`
	Capabilities []string   `json:"capabilities"`
	Preference   Preference `json:"preference"`
	Enabled      bool       `json:"enabled"`
	AutoStart    bool       `json:"auto_start"`
	MaxRetries   int        `json:"max_retries"`
}

// NewAgentConfig builds an AgentConfig with the conventional defaults
// (enabled, auto-start, retry budget of 3, auto preference). Override via the
// functional options.
func NewAgentConfig(name, kind string, capabilities []string, optFns ...func(c *AgentConfig)) AgentConfig {
	cfg := AgentConfig{
		Name:         name,
		Kind:         kind,
		Capabilities: capabilities,
		Preference:   PreferenceAuto,
		Enabled:      true,
		AutoStart:    true,
		MaxRetries:   3,
	}
	for _, fn := range optFns {
		fn(&cfg)
	}
	return cfg
}

// Validate reports whether the config can identify a live agent.
func (c AgentConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("agent config requires a name")
	}
	switch c.Preference {
	case PreferenceAuto, PreferencePrimary, PreferenceSecondary, PreferenceLocal:
	default:
		return fmt.Errorf("unknown backend preference %q", c.Preference)
	}
	return nil
}

// HasCapability reports whether the capability tag is declared on this config.
func (c AgentConfig) HasCapability(tag string) bool {
	return slices.Contains(c.Capabilities, tag)
}

// HasAnyCapability reports whether at least one of the tags is declared.
func (c AgentConfig) HasAnyCapability(tags ...string) bool {
	for _, tag := range tags {
		if c.HasCapability(tag) {
			return true
		}
	}
	return false
}
