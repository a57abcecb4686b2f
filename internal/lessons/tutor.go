package lessons

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/abhisek/promptcoach/internal/llm"
)

// Config tunes tip generation. Tips are short, so the token budget is
// small.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig is used by the CLI and TUI.
func DefaultConfig() Config {
	return Config{MaxTokens: 384, Temperature: 0.5}
}

// Tip is LLM-written coaching for a failed exercise attempt.
type Tip struct {
	ExerciseID string `json:"exercise_id"`
	Diagnosis  string `json:"diagnosis"`
	Tip        string `json:"tip"`
	Rewrite    string `json:"rewrite"`
}

// TipInput holds the context needed to write a tip.
type TipInput struct {
	Lesson   Lesson
	Exercise Exercise
	Prompt   string
	Result   ExerciseResult
}

// Tutor writes coaching tips in the background so the UI never waits on
// the provider.
type Tutor struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	pending *Tip
	err     error
	ready   bool
	busy    bool
}

// NewTutor creates a tutor.
func NewTutor(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

// RequestTip starts async generation. A newer request cancels the one in
// flight, and only the latest request may publish its tip.
func (t *Tutor) RequestTip(ctx context.Context, in TipInput) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	gen := t.gen
	t.cancel = cancel
	t.busy = true
	t.pending, t.ready = nil, false
	t.mu.Unlock()

	go func() {
		tip, err := t.Tip(ctx, in)
		t.mu.Lock()
		defer t.mu.Unlock()
		if gen != t.gen {
			return
		}
		cancel()
		t.cancel = nil
		t.pending = tip
		t.err = err
		t.ready = true
		t.busy = false
	}()
}

// Busy reports whether a tip is still being generated.
func (t *Tutor) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// ConsumeTip returns the finished tip, if any, and clears the slot. A
// failed generation is consumed as (nil, false) and its error is returned
// by the next LastError call.
func (t *Tutor) ConsumeTip() (*Tip, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return nil, false
	}
	tip := t.pending
	t.pending = nil
	t.ready = false
	return tip, tip != nil
}

// LastError returns the error of the most recent generation.
func (t *Tutor) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

type tipOutput struct {
	Diagnosis string `json:"diagnosis"`
	Tip       string `json:"tip"`
	Rewrite   string `json:"rewrite"`
}

// Tip generates a tip synchronously.
func (t *Tutor) Tip(ctx context.Context, in TipInput) (*Tip, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCoachingTip)

	req := llm.Request{
		System: tipSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTipUserMessage(in)},
		},
		Schema:      TipSchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	}

	resp, err := t.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tip generation: %w", err)
	}

	var out tipOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse tip response: %w", err)
	}

	return &Tip{
		ExerciseID: in.Exercise.ID,
		Diagnosis:  out.Diagnosis,
		Tip:        out.Tip,
		Rewrite:    out.Rewrite,
	}, nil
}
