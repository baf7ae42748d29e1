package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avandyk/marketbrief/internal/config"
)

// BuildBackends instantiates the configured backend chain in order, skipping
// entries whose API key is absent. An empty chain is allowed: the gateway
// then serves static-fallback content, which keeps a keyless run usable.
func BuildBackends(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]Backend, error) {
	backends := make([]Backend, 0, len(cfg.Backends))

	for _, name := range cfg.Backends {
		switch name {
		case "openai":
			if cfg.OpenAIAPIKey == "" {
				log.Warn("backend skipped, no API key", "backend", name)
				continue
			}
			backends = append(backends, NewOpenAIBackend(cfg.OpenAIAPIKey, ""))
		case "gemini":
			if cfg.GeminiAPIKey == "" {
				log.Warn("backend skipped, no API key", "backend", name)
				continue
			}
			gemini, err := NewGeminiBackend(ctx, cfg.GeminiAPIKey, "")
			if err != nil {
				return nil, err
			}
			backends = append(backends, gemini)
		case "claude":
			if cfg.AnthropicAPIKey == "" {
				log.Warn("backend skipped, no API key", "backend", name)
				continue
			}
			backends = append(backends, NewClaudeBackend(cfg.AnthropicAPIKey, ""))
		default:
			return nil, fmt.Errorf("unknown backend %q", name)
		}
	}

	if len(backends) == 0 {
		log.Warn("no backends configured, every generation will use static fallback")
	}

	return backends, nil
}
