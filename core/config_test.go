package core

import "testing"

func TestNewAgentConfigDefaults(t *testing.T) {
	cfg := NewAgentConfig("cybershell", "dev_engine", []string{"shell"})
	if cfg.Preference != PreferenceAuto {
		t.Fatalf("expected auto preference, got %q", cfg.Preference)
	}
	if !cfg.Enabled || !cfg.AutoStart || cfg.MaxRetries != 3 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestNewAgentConfigOptions(t *testing.T) {
	cfg := NewAgentConfig("data_sync", "data_manager", nil, func(c *AgentConfig) {
		c.Preference = PreferenceLocal
		c.Enabled = false
	})
	if cfg.Preference != PreferenceLocal || cfg.Enabled {
		t.Fatalf("options not applied: %#v", cfg)
	}
}

func TestAgentConfigValidate(t *testing.T) {
	if err := (AgentConfig{}).Validate(); err == nil {
		t.Fatalf("empty name must fail validation")
	}
	bad := NewAgentConfig("x", "developer", nil)
	bad.Preference = "favorite"
	if err := bad.Validate(); err == nil {
		t.Fatalf("unknown preference must fail validation")
	}
	if err := NewAgentConfig("x", "developer", nil).Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestHasCapability(t *testing.T) {
	cfg := NewAgentConfig("dev", "developer", []string{"coding", "react"})
	if !cfg.HasCapability("coding") || cfg.HasCapability("ux") {
		t.Fatalf("capability lookup broken")
	}
	if !cfg.HasAnyCapability("ux", "react") {
		t.Fatalf("expected any-match on react")
	}
	if cfg.HasAnyCapability("ux", "design") {
		t.Fatalf("unexpected any-match")
	}
	if cfg.HasAnyCapability() {
		t.Fatalf("empty tag set must not match")
	}
}
