package llm

import (
	"errors"
	"net/http"
)

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is OpenAIProvider aimed at OpenRouter. Model IDs are
// "vendor/model" and are never alias-resolved.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds a provider that identifies itself to
// OpenRouter as promptcoach.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: missing API key")
	}
	base := cfg.BaseURL
	if base == "" {
		base = openRouterURL
	}
	headers := http.Header{}
	headers.Set("X-Title", "promptcoach")
	headers.Set("HTTP-Referer", "https://github.com/abhisek/promptcoach")
	return &OpenRouterProvider{OpenAIProvider: newCompatProvider(cfg.APIKey, base, cfg.Model, headers)}, nil
}
