// Package assistant is the AI collaborator: free-text chat and structured
// intent analysis on top of an llm.Provider. Callers treat every failure
// as "fall back to canned content".
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/abhisek/promptcoach/internal/llm"
	"github.com/abhisek/promptcoach/internal/scoring"
)

// ErrEmptyReply is returned when the provider answers with no text.
var ErrEmptyReply = errors.New("assistant: empty reply")

// Config holds generation settings.
type Config struct {
	ChatMaxTokens     int
	ChatTemperature   float64
	IntentMaxTokens   int
	IntentTemperature float64
	Timeout           time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChatMaxTokens:     500,
		ChatTemperature:   0.7,
		IntentMaxTokens:   128,
		IntentTemperature: 0.0,
		Timeout:           30 * time.Second,
	}
}

// ChatRequest is one chat call. Zero MaxTokens or a nil Temperature use
// the configured chat defaults.
type ChatRequest struct {
	Purpose     string
	System      string
	Messages    []llm.Message
	MaxTokens   int
	Temperature *float64
}

// Temperature is a ChatRequest.Temperature of t; Temperature(0) asks for
// deterministic output.
func Temperature(t float64) *float64 { return &t }

// Assistant talks to the LLM on behalf of the coach.
type Assistant struct {
	provider llm.Provider
	cfg      Config
}

// New creates an assistant.
func New(provider llm.Provider, cfg Config) *Assistant {
	return &Assistant{provider: provider, cfg: cfg}
}

// ModelID returns the underlying provider's model.
func (a *Assistant) ModelID() string {
	return a.provider.ModelID()
}

// Chat returns the model's free-text reply.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (string, error) {
	purpose := req.Purpose
	if purpose == "" {
		purpose = llm.PurposeChat
	}
	ctx = llm.WithPurpose(ctx, purpose)
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	llmReq := llm.Request{
		System:      req.System,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: a.cfg.ChatTemperature,
	}
	if llmReq.MaxTokens == 0 {
		llmReq.MaxTokens = a.cfg.ChatMaxTokens
	}
	if req.Temperature != nil {
		llmReq.Temperature = *req.Temperature
	}

	resp, err := a.provider.Generate(ctx, llmReq)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// Ask is Chat with a single user message.
func (a *Assistant) Ask(ctx context.Context, system, message string) (string, error) {
	return a.Chat(ctx, ChatRequest{
		System:   system,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: message}},
	})
}

// intentOutput is the raw LLM response.
type intentOutput struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// AnalyzeIntent classifies a prompt. An intent outside the known set is
// reported as unknown.
func (a *Assistant) AnalyzeIntent(ctx context.Context, prompt string) (scoring.IntentResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeIntent)
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	userMsg, err := buildIntentMessage(prompt)
	if err != nil {
		return scoring.IntentResult{}, fmt.Errorf("build intent prompt: %w", err)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: intentSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      IntentSchema,
		MaxTokens:   a.cfg.IntentMaxTokens,
		Temperature: a.cfg.IntentTemperature,
	})
	if err != nil {
		return scoring.IntentResult{}, fmt.Errorf("intent analysis: %w", err)
	}

	var raw intentOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return scoring.IntentResult{}, fmt.Errorf("parse intent response: %w", err)
	}

	intent, ok := scoring.ParseIntent(strings.ToLower(strings.TrimSpace(raw.Intent)))
	if !ok {
		intent = scoring.IntentUnknown
	}
	return scoring.IntentResult{
		Intent:     intent,
		Confidence: min(1, max(0, raw.Confidence)),
		Rationale:  raw.Rationale,
	}, nil
}

func (a *Assistant) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.cfg.Timeout)
}

// IntentSchema defines the JSON schema for intent analysis.
var IntentSchema = &llm.Schema{
	Name:        "prompt-intent",
	Description: "Classification of what a student wants from an AI",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intent": map[string]any{
				"type": "string",
				"enum": intentEnum(),
			},
			"confidence": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 1,
			},
			"rationale": map[string]any{
				"type":        "string",
				"description": "One sentence explaining the classification",
			},
		},
		"required":             []any{"intent", "confidence", "rationale"},
		"additionalProperties": false,
	},
}

func intentEnum() []any {
	out := make([]any, len(scoring.AllIntents))
	for i, in := range scoring.AllIntents {
		out[i] = string(in)
	}
	return out
}

const intentSystemPrompt = `You are an expert at analyzing student prompts. Classify the intent of the prompt into one of these categories:
- do_it_for_me: the student wants the AI to complete their work
- help_me_learn: the student wants learning guidance
- clarifying: the student asks for clarification
- reflection: the student asks a reflective question
- unknown: the intent cannot be determined

Give a confidence between 0.0 and 1.0 and keep the rationale to one sentence.`

var intentUserTemplate = template.Must(template.New("intent").Parse(`Student prompt:
"""
{{.}}
"""`))

func buildIntentMessage(prompt string) (string, error) {
	var buf bytes.Buffer
	if err := intentUserTemplate.Execute(&buf, prompt); err != nil {
		return "", err
	}
	return buf.String(), nil
}
