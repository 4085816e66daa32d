package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.PrimaryAPIKey != PlaceholderCredential || cfg.SecondaryAPIKey != PlaceholderCredential {
		t.Fatalf("defaults must carry the placeholder credential: %#v", cfg)
	}
	if cfg.PrimaryConfigured() || cfg.SecondaryConfigured() {
		t.Fatalf("placeholder credentials must not count as configured")
	}
	if cfg.CallTimeout != 30*time.Second || cfg.LoopInterval != 5*time.Second {
		t.Fatalf("unexpected default durations: %#v", cfg)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPrimaryAPIKey, "sk-real")
	t.Setenv(EnvPrimaryBaseURL, "https://llm.example.com/v1")
	t.Setenv(EnvCallTimeout, "10s")
	t.Setenv(EnvLoopInterval, "1s")

	cfg := FromEnv()
	if cfg.PrimaryAPIKey != "sk-real" || !cfg.PrimaryConfigured() {
		t.Fatalf("primary key not picked up: %#v", cfg)
	}
	if cfg.PrimaryBaseURL != "https://llm.example.com/v1" {
		t.Fatalf("base url not picked up: %q", cfg.PrimaryBaseURL)
	}
	if cfg.CallTimeout != 10*time.Second || cfg.LoopInterval != time.Second {
		t.Fatalf("durations not parsed: %#v", cfg)
	}
	if cfg.SecondaryConfigured() {
		t.Fatalf("secondary must stay unconfigured")
	}
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv(EnvCallTimeout, "not-a-duration")
	t.Setenv(EnvLoopInterval, "-3s")

	cfg := FromEnv()
	if cfg.CallTimeout != 30*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.CallTimeout)
	}
	if cfg.LoopInterval != 5*time.Second {
		t.Fatalf("negative interval must fall back, got %v", cfg.LoopInterval)
	}
}

func TestIsPlaceholder(t *testing.T) {
	for cred, want := range map[string]bool{
		"":            true,
		"demo_key":    true,
		"sk-real-key": false,
	} {
		if got := IsPlaceholder(cred); got != want {
			t.Fatalf("IsPlaceholder(%q) = %v, want %v", cred, got, want)
		}
	}
}
