package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/promptcoach/internal/store"
)

func openLoggingStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	st := openLoggingStore(t)
	mock := NewMockProvider(MockResponse{
		Content: TextContent("hi"),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, st.EventRepo())

	ctx := WithPurpose(context.Background(), "coach-chat")
	if _, err := p.Generate(ctx, Request{
		System:   "You are an AI learning coach.",
		Messages: []Message{{Role: RoleUser, Content: "Explain closures"}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Purpose != "coach-chat" || !e.Success || e.InputTokens != 12 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]") || !strings.Contains(e.RequestBody, "Explain closures") {
		t.Fatalf("request body not serialized: %q", e.RequestBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	st := openLoggingStore(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, st.EventRepo())

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 || events[0].Success || events[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Purpose != PurposeUnlabelled {
		t.Fatalf("purpose = %q, want %q", events[0].Purpose, PurposeUnlabelled)
	}
}
