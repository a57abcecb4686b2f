package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func intentSchema() *Schema {
	return &Schema{
		Name:        "validate-intent",
		Description: "What the learner wants from the model",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"intent":     map[string]any{"type": "string", "enum": []any{"explain_concept", "write_code", "debug_code"}},
				"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"rationale":  map[string]any{"type": "string"},
			},
			"required": []any{"intent", "confidence"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"complete", `{"intent":"explain_concept","confidence":0.9,"rationale":"asks what X is"}`, false},
		{"optional field omitted", `{"intent":"debug_code","confidence":0.4}`, false},
		{"missing confidence", `{"intent":"write_code"}`, true},
		{"confidence out of range", `{"intent":"write_code","confidence":1.5}`, true},
		{"intent not in enum", `{"intent":"make_coffee","confidence":0.5}`, true},
		{"wrong type", `{"intent":"write_code","confidence":"high"}`, true},
		{"not json", `intent: write_code`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(intentSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
			}
			if invalid.Schema != "validate-intent" {
				t.Fatalf("schema = %q", invalid.Schema)
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "validate-lesson-tips",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tips": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":       "object",
						"properties": map[string]any{"text": map[string]any{"type": "string"}},
						"required":   []any{"text"},
					},
				},
			},
			"required": []any{"tips"},
		},
	}
	if err := validateResponse(schema, json.RawMessage(`{"tips":[{"text":"state the language"}]}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateResponse(schema, json.RawMessage(`{"tips":[{"words":"no text"}]}`)); err == nil {
		t.Fatal("expected error for tip without text")
	}
}

func TestStripFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                  `{"a":1}`,
		"  {\"a\":1}\n":            `{"a":1}`,
		"```json\n{\"a\":1}\n```":  `{"a":1}`,
		"```\n{\"a\":1}```":        `{"a":1}`,
		"```json\n{\"a\":1}\n``` ": `{"a":1}`,
	}
	for in, want := range tests {
		if got := stripFence(in); got != want {
			t.Errorf("stripFence(%q) = %q, want %q", in, got, want)
		}
	}
}
