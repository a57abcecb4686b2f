// Package llm talks to hosted language models. Every backend implements
// Provider; retry and request logging wrap a backend as decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call.
type Provider interface {
	// Generate sends req and returns the completion. With req.Schema set
	// the returned Content is JSON that satisfied the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, after alias resolution.
	ModelID() string
}

// Request is a single completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output. Name must be
// kebab-case; it doubles as the OpenAI schema name and the validation
// cache key.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalized across backends.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	// Content is the validated JSON object for structured requests, or
	// the reply encoded as a JSON string for free text.
	Content json.RawMessage

	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns a free-text reply unquoted. Structured content comes back
// as the raw JSON.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var s string
	if json.Unmarshal(r.Content, &s) == nil {
		return s
	}
	return string(r.Content)
}

// TextContent encodes free text the way Response.Content carries it.
func TextContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}

// finish builds the Response shared by every backend. A structured answer
// cut off at the token limit is reported as ErrMaxTokensExceeded instead
// of a schema failure.
func finish(req Request, text, model, stop string, usage Usage) (*Response, error) {
	if stop == StopMaxTokens && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Limit: req.MaxTokens, Content: json.RawMessage(text)}
	}
	content, err := decodeOutput(text, req.Schema)
	if err != nil {
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// modelAliases maps short names accepted in configuration to provider
// model IDs, per provider.
var modelAliases = map[string]map[string]string{
	"anthropic": {
		"claude-haiku":  "claude-haiku-4-5-20251001",
		"claude-sonnet": "claude-sonnet-4-5-20250929",
	},
	"openai": {
		"gpt-mini": "gpt-4o-mini",
		"gpt":      "gpt-4o",
	},
	"gemini": {
		"gemini-flash": "gemini-2.0-flash",
		"gemini-pro":   "gemini-2.5-pro",
	},
}

// resolveModel expands an alias. Unknown names pass through so full model
// IDs work unchanged.
func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}
