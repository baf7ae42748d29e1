package llm

import (
	"context"
	"errors"
	"strings"
)

// Backend is one language-model provider behind the gateway. Implementations
// wrap quota/rate-limit failures with ErrQuota so the gateway can skip the
// remaining retry budget for that backend.
type Backend interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
	Name() string
}

// ErrQuota marks a rate-limit or exhausted-quota failure. Retrying the same
// backend is pointless; the gateway moves straight to the next one.
var ErrQuota = errors.New("quota exhausted")

// ErrInvalidResponse marks a well-formed call that produced no usable text.
var ErrInvalidResponse = errors.New("invalid response")

// isQuotaSignal sniffs provider error text for rate-limit markers. The SDKs
// expose these inconsistently, so string matching is the common denominator.
func isQuotaSignal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuota) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "quota")
}
