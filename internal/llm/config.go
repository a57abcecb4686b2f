package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures the model backend. Only the block for
// Provider is used.
type Config struct {
	Provider string // anthropic, openai, gemini, openrouter or mock

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one logical call, retries included.
	Timeout time.Duration
}

// Configured is true when NewProvider would succeed for c.
func (c Config) Configured() bool {
	return c.Provider != "" && c.Validate() == nil
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves self-hosted OpenAI-compatible servers through
// BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig models are "vendor/model" IDs.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig drives RetryProvider.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig prefers the cheapest capable model of each provider.
// Scoring a prompt makes one short structured call, so small models are
// enough.
func DefaultConfig() Config {
	return Config{
		Provider:   "openai",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// ConfigFromEnv applies PROMPTCOACH_* overrides on top of DefaultConfig.
// An unparseable PROMPTCOACH_LLM_TIMEOUT is ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	overrides := []struct {
		env string
		dst *string
	}{
		{"PROMPTCOACH_LLM_PROVIDER", &cfg.Provider},
		{"PROMPTCOACH_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"PROMPTCOACH_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"PROMPTCOACH_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"PROMPTCOACH_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"PROMPTCOACH_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"PROMPTCOACH_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"PROMPTCOACH_GEMINI_MODEL", &cfg.Gemini.Model},
		{"PROMPTCOACH_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"PROMPTCOACH_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}

	if d, err := time.ParseDuration(os.Getenv("PROMPTCOACH_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// DiscoverConfig picks the first provider whose conventional API key
// variable is set, in the order OpenAI, Gemini, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	candidates := []struct {
		provider string
		env      string
		key      *string
	}{
		{"openai", "OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"gemini", "GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"anthropic", "ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"openrouter", "OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		k := os.Getenv(c.env)
		if k == "" {
			continue
		}
		cfg.Provider = c.provider
		*c.key = k
		if m := os.Getenv("OPENAI_MODEL"); m != "" && c.provider == "openai" {
			cfg.OpenAI.Model = m
		}
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	keys := map[string]string{
		"anthropic":  c.Anthropic.APIKey,
		"openai":     c.OpenAI.APIKey,
		"gemini":     c.Gemini.APIKey,
		"openrouter": c.OpenRouter.APIKey,
	}
	if c.Provider == "mock" {
		return nil
	}
	key, known := keys[c.Provider]
	if !known {
		return fmt.Errorf("unknown LLM provider %q (want anthropic, openai, gemini, openrouter or mock)", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s provider needs PROMPTCOACH_%s_API_KEY", c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}
