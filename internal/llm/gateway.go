package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/avandyk/marketbrief/internal/models"
)

// FallbackName is the provenance backend name for static-fallback content.
const FallbackName = "static-fallback"

// Request is one logical generation call.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
	// FallbackKey selects the static-fallback entry (language code) used on
	// total backend exhaustion.
	FallbackKey string
}

// Result is generated text plus its provenance. Fallback results are tagged,
// never silent.
type Result struct {
	Text       string
	Provenance models.Provenance
}

// Options configure retry behavior shared by every backend.
type Options struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// MinLength is the degenerate-output floor: shorter generations count as
	// failed attempts.
	MinLength int
}

// Gateway tries an ordered backend list with per-backend retry budgets and
// exponential backoff. Quota failures skip the rest of a backend's budget.
// When every backend is exhausted it returns the static fallback, so a call
// never fails outright.
type Gateway struct {
	backends []Backend
	opts     Options
	fallback FallbackTable
	log      *slog.Logger
}

func NewGateway(backends []Backend, opts Options, fallback FallbackTable, log *slog.Logger) *Gateway {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = time.Second
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		opts.MaxBackoff = opts.InitialBackoff
	}
	return &Gateway{
		backends: backends,
		opts:     opts,
		fallback: fallback,
		log:      log,
	}
}

// Generate runs one logical call through the backend chain.
func (g *Gateway) Generate(ctx context.Context, req Request) Result {
	attempts := 0

	for _, backend := range g.backends {
		text, used, err := g.tryBackend(ctx, backend, req)
		attempts += used
		if err == nil {
			return Result{
				Text: text,
				Provenance: models.Provenance{
					Backend:  backend.Name(),
					Attempts: attempts,
				},
			}
		}
		g.log.Warn("backend exhausted", "backend", backend.Name(), "attempts", used, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	g.log.Warn("all backends exhausted, using static fallback", "key", req.FallbackKey)
	return Result{
		Text: g.fallback.Lookup(req.FallbackKey),
		Provenance: models.Provenance{
			Backend:  FallbackName,
			Attempts: attempts,
			Fallback: true,
		},
	}
}

// tryBackend spends up to MaxAttempts on one backend. A quota signal ends the
// budget immediately; transient and degenerate failures back off and retry.
func (g *Gateway) tryBackend(ctx context.Context, backend Backend, req Request) (string, int, error) {
	backoff := g.opts.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= g.opts.MaxAttempts; attempt++ {
		text, err := backend.Complete(ctx, req.System, req.Prompt, req.MaxTokens)
		if err == nil {
			if len(strings.TrimSpace(text)) >= g.opts.MinLength {
				return text, attempt, nil
			}
			err = ErrInvalidResponse
		}
		lastErr = err

		if isQuotaSignal(err) {
			return "", attempt, err
		}
		if attempt == g.opts.MaxAttempts {
			break
		}
		if !sleep(ctx, backoff) {
			return "", attempt, ctx.Err()
		}
		backoff *= 2
		if backoff > g.opts.MaxBackoff {
			backoff = g.opts.MaxBackoff
		}
	}

	return "", g.opts.MaxAttempts, lastErr
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
