package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/promptcoach/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// A nil eventRepo disables request logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	if eventRepo != nil {
		base = WithLogging(base, eventRepo)
	}
	return WithRetry(base, cfg.Retry), nil
}

// NewProviderFromEnv resolves configuration from PROMPTCOACH_* variables,
// then fallback when it is configured, then the standard provider API key
// variables. It returns (nil, cfg, nil) when nothing is configured;
// callers then run without an AI collaborator.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, fallback Config) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	switch {
	case cfg.Configured():
	case fallback.Configured():
		cfg = fallback
	default:
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, nil
		}
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
