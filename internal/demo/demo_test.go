package demo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/promptcoach/internal/assistant"
)

type fakeChat struct {
	replies []string
	errAt   int
	calls   []assistant.ChatRequest
}

func (f *fakeChat) Chat(_ context.Context, req assistant.ChatRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.errAt == len(f.calls) {
		return "", errors.New("api down")
	}
	return f.replies[len(f.calls)-1], nil
}

func TestDetectPattern(t *testing.T) {
	tests := []struct {
		prompt string
		want   Pattern
	}{
		{"Write code for a calculator", PatternDoItForMe},
		{"Give me the answer", PatternDoItForMe},
		{"Create a website for my bakery", PatternDoItForMe},
		{"Explain loops", PatternVague},
		{"Help with Python", PatternVague},
		{"", PatternVague},
		{"How do I write a sorting function step by step in detail please", PatternNoContext},
		{"How do I write a sorting function in Python step by step", PatternGeneric},
		{"Can you help me understand the difference between lists and tuples in python", PatternGeneric},
	}
	for _, tt := range tests {
		if got := DetectPattern(tt.prompt); got != tt.want {
			t.Errorf("DetectPattern(%q) = %s, want %s", tt.prompt, got, tt.want)
		}
	}
}

func TestImprovePrompt(t *testing.T) {
	original := "Write code for a calculator"
	improved := ImprovePrompt(original, PatternDoItForMe)
	lower := strings.ToLower(improved)
	if !strings.Contains(lower, "explain") || !strings.Contains(lower, "example") {
		t.Fatalf("improved prompt lacks learning cues: %q", improved)
	}
	if len(improved) <= 2*len(original) {
		t.Fatalf("improved prompt is not more detailed: %q", improved)
	}
	if !strings.HasSuffix(improved, "Original task: "+original) {
		t.Fatalf("original task not quoted: %q", improved)
	}

	for _, p := range []Pattern{PatternVague, PatternNoContext, PatternGeneric} {
		if got := ImprovePrompt("sorting", p); !strings.Contains(got, "sorting") || got == "sorting" {
			t.Errorf("%s template did not wrap the prompt: %q", p, got)
		}
	}
	if got := ImprovePrompt("x", Pattern("other")); got != "x" {
		t.Errorf("unknown pattern = %q, want original", got)
	}
}

func TestDemonstrate_Simulated(t *testing.T) {
	d := New(nil)
	res := d.Demonstrate(t.Context(), "Write code for a calculator", "")

	if !res.Simulated {
		t.Fatal("expected simulated result without a collaborator")
	}
	if res.Pattern != PatternDoItForMe {
		t.Fatalf("pattern = %s", res.Pattern)
	}
	if !strings.HasPrefix(res.BadResponse, "Here's the complete code:") {
		t.Fatalf("bad response = %q", res.BadResponse)
	}
	if res.GoodResponse != simulatedGood || res.Explanation != explanations[PatternDoItForMe] {
		t.Fatal("unexpected simulated good response or explanation")
	}
	if res.ImprovedPrompt == res.OriginalPrompt {
		t.Fatal("improved prompt was not generated")
	}
}

func TestDemonstrate_Empty(t *testing.T) {
	res := New(nil).Demonstrate(t.Context(), "", "")
	if !res.Simulated || res.Pattern != PatternVague || res.BadResponse == "" {
		t.Fatalf("unexpected result for empty prompt: %+v", res)
	}
}

func TestDemonstrate_CustomImproved(t *testing.T) {
	custom := "Explain how a calculator parses input, then let me try"
	res := New(nil).Demonstrate(t.Context(), "Write code for a calculator", custom)
	if res.ImprovedPrompt != custom {
		t.Fatalf("improved = %q, want custom", res.ImprovedPrompt)
	}
}

func TestDemonstrate_Live(t *testing.T) {
	chat := &fakeChat{replies: []string{
		"Minimal unhelpful response",
		"Detailed helpful educational response",
	}}
	res := New(chat).Demonstrate(t.Context(), "Explain Python decorators", "")

	if res.Simulated {
		t.Fatal("expected live result")
	}
	if res.BadResponse != "Minimal unhelpful response" || res.GoodResponse != "Detailed helpful educational response" {
		t.Fatalf("unexpected responses: %+v", res)
	}
	if len(chat.calls) != 2 {
		t.Fatalf("expected 2 chat calls, got %d", len(chat.calls))
	}

	bad, good := chat.calls[0], chat.calls[1]
	if !strings.Contains(strings.ToLower(bad.System), "unhelpful") || bad.MaxTokens != 200 || *bad.Temperature != 0.3 {
		t.Fatalf("bad request = %+v", bad)
	}
	if bad.Messages[0].Content != "Explain Python decorators" {
		t.Fatalf("bad request sent %q", bad.Messages[0].Content)
	}
	if !strings.Contains(strings.ToLower(good.System), "coach") || good.MaxTokens != 400 || *good.Temperature != 0.7 {
		t.Fatalf("good request = %+v", good)
	}
	if good.Messages[0].Content != res.ImprovedPrompt {
		t.Fatal("good request should send the improved prompt")
	}
}

func TestDemonstrate_FallsBackOnError(t *testing.T) {
	for _, errAt := range []int{1, 2} {
		chat := &fakeChat{replies: []string{"bad", "good"}, errAt: errAt}
		res := New(chat).Demonstrate(t.Context(), "Test prompt", "")
		if !res.Simulated {
			t.Fatalf("error at call %d: expected simulated fallback", errAt)
		}
		if res.BadResponse != simulatedBadResponses[PatternVague] || res.GoodResponse != simulatedGood {
			t.Fatalf("error at call %d: unexpected responses %+v", errAt, res)
		}
	}
}
