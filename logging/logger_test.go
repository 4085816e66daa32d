package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// Interface compliance (compile-time assertions)
var (
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = (*ColonyLogger)(nil)
	_ Logger = NoOpLogger{}
)

func newBufferLogger(level LogLevel) (*ColonyLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&LoggerConfig{Level: level, Format: "json", Output: &buf}), &buf
}

func TestLogLevelString(t *testing.T) {
	for l, want := range map[LogLevel]string{
		LogLevelDebug:  "DEBUG",
		LogLevelInfo:   "INFO",
		LogLevelWarn:   "WARN",
		LogLevelError:  "ERROR",
		LogLevel(99):   "UNKNOWN",
	} {
		if got := l.String(); got != want {
			t.Fatalf("LogLevel(%d).String() = %q, want %q", l, got, want)
		}
	}
}

func TestColonyLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(LogLevelWarn)

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept warning")
	l.Error("kept error")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("below-level messages leaked:\n%s", out)
	}
	if !strings.Contains(out, "kept warning") || !strings.Contains(out, "kept error") {
		t.Fatalf("expected warn and error output, got:\n%s", out)
	}
}

func TestColonyLogger_WithHelpersClone(t *testing.T) {
	base, buf := newBufferLogger(LogLevelInfo)

	scoped := base.WithComponent("router").WithAgent("dev_engine").WithContext("tier", "primary")
	scoped.Info("routed")

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["component"] != "router" || entry["agent"] != "dev_engine" || entry["tier"] != "primary" {
		t.Fatalf("missing scoped attributes: %#v", entry)
	}

	// The base must stay untouched.
	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "router") {
		t.Fatalf("clone mutated the parent logger:\n%s", buf.String())
	}
}

func TestColonyLogger_LogGenerateCall(t *testing.T) {
	l, buf := newBufferLogger(LogLevelInfo)

	l.LogGenerateCall("primary", 120*time.Millisecond, true, nil)
	if !strings.Contains(buf.String(), "Generation completed") {
		t.Fatalf("missing success entry:\n%s", buf.String())
	}

	buf.Reset()
	l.LogGenerateCall("secondary", time.Second, false, errors.New("rate limited"))
	out := buf.String()
	if !strings.Contains(out, "Generation failed") || !strings.Contains(out, "rate limited") {
		t.Fatalf("missing failure entry:\n%s", out)
	}
}

func TestNoOpLoggerIsSilent(t *testing.T) {
	// Must not panic with or without args.
	l := NoOpLogger{}
	l.Debug("x")
	l.Info("x", "k", "v")
	l.Warn("x")
	l.Error("x", "k", "v")
}
