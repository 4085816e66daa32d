package model

import (
	"context"
	"fmt"
	"sync"
)

// Request captures the normalized generation input produced by the router.
// Payloads are opaque text: no provider-specific prompt formats leak upward.
type Request struct {
	System      string  `json:"system,omitempty"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int64   `json:"max_tokens"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed generation returned by a backend.
type Response struct {
	Content string     `json:"content"`
	Model   string     `json:"model"`
	Usage   TokenUsage `json:"usage"`
}

// Info contains metadata about a generator implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "local", etc.
}

// Generator is the minimal interface a remote generation backend must satisfy.
// Probe performs a lightweight reachability check (used once at startup) and
// Generate produces a single completed response.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Probe verifies the backend is reachable with the configured credentials.
	Probe(ctx context.Context) error

	// Info returns information about the generator implementation.
	Info() Info
}

// MockGenerator is a lightweight in-memory Generator useful for tests &
// examples. Canned responses are keyed by prompt; unknown prompts echo back a
// deterministic placeholder.
type MockGenerator struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	genErr    error
	probeErr  error
	probes    int
	calls     int
}

// NewMockGenerator constructs a MockGenerator for the given identity.
func NewMockGenerator(name, provider string) *MockGenerator {
	return &MockGenerator{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockGenerator) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent Generate call return err.
func (m *MockGenerator) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.genErr = err
}

// FailProbeWith makes Probe return err.
func (m *MockGenerator) FailProbeWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeErr = err
}

// Generate implements Generator.
func (m *MockGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.genErr != nil {
		return nil, m.genErr
	}
	content := m.responses[req.Prompt]
	if content == "" {
		content = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}
	return &Response{
		Content: content,
		Model:   m.info.Name,
		Usage:   TokenUsage{PromptTokens: len(req.Prompt), CompletionTokens: len(content), TotalTokens: len(req.Prompt) + len(content)},
	}, nil
}

// Probe implements Generator.
func (m *MockGenerator) Probe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes++
	return m.probeErr
}

// Info implements Generator.
func (m *MockGenerator) Info() Info { return m.info }

// Probes returns how many times Probe was invoked.
func (m *MockGenerator) Probes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.probes
}

// Calls returns how many times Generate was invoked.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
