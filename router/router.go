package router

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/colonyai/colony/config"
	"github.com/colonyai/colony/core"
	"github.com/colonyai/colony/logging"
	"github.com/colonyai/colony/model"
)

// Result is the outcome of a routed generation request. Success is true in
// every correct execution: remote failures are recovered by the local tier,
// which cannot fail.
type Result struct {
	Success bool             `json:"success"`
	Content string           `json:"content"`
	Backend string           `json:"backend_used"`
	Model   string           `json:"model"`
	Usage   model.TokenUsage `json:"usage"`
}

// Options configure a Router. Backends left zero-valued (nil generator)
// behave like unconfigured tiers: disabled, zero network calls.
type Options struct {
	Primary     Backend
	Secondary   Backend
	Logger      logging.Logger
	CallTimeout time.Duration
	Temperature float64
	MaxTokens   int64
}

// Router routes generation requests across the tier chain. All exported
// methods are safe for concurrent use; the counters share one mutex so the
// per-tier invariant requests == success + errors and the totals hold at all
// times.
type Router struct {
	mu    sync.Mutex
	tiers map[string]*tierState
	local localGenerator

	localRequests uint64
	localSuccess  uint64
	localErrors   uint64

	logger      logging.Logger
	callTimeout time.Duration
	temperature float64
	maxTokens   int64
}

// New creates a Router. Probe must be called once before serving traffic;
// until then every remote tier is treated as unreachable.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{
		Logger:      logging.NoOpLogger{},
		CallTimeout: 30 * time.Second,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &Router{
		tiers:       make(map[string]*tierState, 2),
		logger:      opts.Logger,
		callTimeout: opts.CallTimeout,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
	r.tiers[TierPrimary] = newTierState(TierPrimary, opts.Primary)
	r.tiers[TierSecondary] = newTierState(TierSecondary, opts.Secondary)
	return r
}

func newTierState(name string, b Backend) *tierState {
	return &tierState{
		name:    name,
		backend: b,
		breaker: gobreaker.NewCircuitBreaker[*model.Response](gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     30 * time.Second,
		}),
	}
}

// Probe runs the startup reachability check for both remote tiers
// concurrently. A placeholder credential short-circuits the check: the tier
// is marked unreachable without a network call. Probe failures are logged and
// never fatal; the returned error is reserved for context cancellation.
func (r *Router) Probe(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range []string{TierPrimary, TierSecondary} {
		t := r.tiers[name]
		g.Go(func() error {
			r.probeTier(gctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	r.logger.Info("tier probe complete",
		"primary_enabled", r.TierEnabled(TierPrimary),
		"secondary_enabled", r.TierEnabled(TierSecondary))
	return ctx.Err()
}

func (r *Router) probeTier(ctx context.Context, t *tierState) {
	if t.backend.Generator == nil || config.IsPlaceholder(t.backend.Credential) {
		r.logger.Warn("tier disabled", "tier", t.name, "reason", ErrPlaceholderCredential.Error())
		return
	}
	tctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	if err := t.backend.Generator.Probe(tctx); err != nil {
		r.logger.Error("tier probe failed", "tier", t.name, "error", err.Error())
		return
	}
	r.mu.Lock()
	t.enabled = true
	r.mu.Unlock()
	r.logger.Info("tier connected", "tier", t.name)
}

// TierEnabled reports the reachability flag of a remote tier. The local tier
// is always enabled.
func (r *Router) TierEnabled(name string) bool {
	if name == TierLocal {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tiers[name]
	return ok && t.enabled
}

// RemoteAvailable reports whether at least one remote tier is reachable.
func (r *Router) RemoteAvailable() bool {
	return r.TierEnabled(TierPrimary) || r.TierEnabled(TierSecondary)
}

// selectTier resolves the agent's preference against current reachability.
// Pinned preferences degrade straight to local when their tier is down; auto
// walks the priority order.
func (r *Router) selectTier(pref core.Preference) string {
	switch pref {
	case core.PreferencePrimary:
		if r.TierEnabled(TierPrimary) {
			return TierPrimary
		}
	case core.PreferenceSecondary:
		if r.TierEnabled(TierSecondary) {
			return TierSecondary
		}
	case core.PreferenceAuto:
		if r.TierEnabled(TierPrimary) {
			return TierPrimary
		}
		if r.TierEnabled(TierSecondary) {
			return TierSecondary
		}
	}
	return TierLocal
}

// Generate routes one generation request. Remote failures of any kind are
// counted against the failing tier and recovered by a single retry against
// the local tier, so the returned Result always reports success. The error
// return is reserved for the one condition that must not be swallowed: the
// local tier failing, which indicates a bug rather than an operational fault.
func (r *Router) Generate(ctx context.Context, prompt string, cfg core.AgentConfig) (Result, error) {
	tierName := r.selectTier(cfg.Preference)

	if tierName != TierLocal {
		t := r.tiers[tierName]
		r.countRequest(t)
		start := time.Now()
		resp, err := t.breaker.Execute(func() (*model.Response, error) {
			tctx, cancel := context.WithTimeout(ctx, r.callTimeout)
			defer cancel()
			return t.backend.Generator.Generate(tctx, model.Request{
				System:      systemPrompt(cfg),
				Prompt:      prompt,
				Temperature: r.temperature,
				MaxTokens:   r.maxTokens,
			})
		})
		if err == nil {
			r.countSuccess(t)
			r.logGenerate(tierName, time.Since(start), true, nil)
			return Result{
				Success: true,
				Content: resp.Content,
				Backend: tierName,
				Model:   resp.Model,
				Usage:   resp.Usage,
			}, nil
		}
		r.countError(t)
		r.logGenerate(tierName, time.Since(start), false, err)
		r.logger.Warn("remote tier failed, falling back to local", "tier", tierName, "error", err.Error())
	}

	// Terminal fallback. The local tier is pure in-process computation and
	// never fails; if it does, that is a fatal bug and must propagate.
	r.bumpLocalRequests()
	resp, err := r.local.generate(prompt, cfg)
	if err != nil {
		r.bumpLocalErrors()
		return Result{}, fmt.Errorf("local tier failed: %w", err)
	}
	r.bumpLocalSuccess()
	return Result{
		Success: true,
		Content: resp.Content,
		Backend: TierLocal,
		Model:   resp.Model,
		Usage:   resp.Usage,
	}, nil
}

// systemPrompt composes the identity preamble sent to remote tiers.
func systemPrompt(cfg core.AgentConfig) string {
	return fmt.Sprintf("You are %s, an agent with capabilities: %s. Provide helpful and intelligent responses.",
		cfg.Name, strings.Join(cfg.Capabilities, ", "))
}

// Stats returns a point-in-time snapshot of all tier counters plus totals.
// Totals equal the tier sum by construction: both are read under one lock.
func (r *Router) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Stats{Tiers: make(map[string]TierSnapshot, 3)}
	for name, t := range r.tiers {
		s.Tiers[name] = TierSnapshot{
			Enabled: t.enabled,
			Stats:   TierStats{Requests: t.requests, Success: t.success, Errors: t.errors},
		}
		s.TotalRequests += t.requests
		s.TotalSuccess += t.success
		s.TotalErrors += t.errors
	}
	s.Tiers[TierLocal] = TierSnapshot{
		Enabled: true,
		Stats:   TierStats{Requests: r.localRequests, Success: r.localSuccess, Errors: r.localErrors},
	}
	s.TotalRequests += r.localRequests
	s.TotalSuccess += r.localSuccess
	s.TotalErrors += r.localErrors
	return s
}

func (r *Router) countRequest(t *tierState) {
	r.mu.Lock()
	t.requests++
	r.mu.Unlock()
}

func (r *Router) countSuccess(t *tierState) {
	r.mu.Lock()
	t.success++
	r.mu.Unlock()
}

func (r *Router) countError(t *tierState) {
	r.mu.Lock()
	t.errors++
	r.mu.Unlock()
}

func (r *Router) bumpLocalRequests() {
	r.mu.Lock()
	r.localRequests++
	r.mu.Unlock()
}

func (r *Router) bumpLocalSuccess() {
	r.mu.Lock()
	r.localSuccess++
	r.mu.Unlock()
}

func (r *Router) bumpLocalErrors() {
	r.mu.Lock()
	r.localErrors++
	r.mu.Unlock()
}

func (r *Router) logGenerate(tier string, dur time.Duration, success bool, err error) {
	if cl, ok := r.logger.(*logging.ColonyLogger); ok {
		cl.LogGenerateCall(tier, dur, success, err)
	}
}
