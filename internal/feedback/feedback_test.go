package feedback

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/promptcoach/internal/analysis"
	"github.com/abhisek/promptcoach/internal/scoring"
)

func analyze(prompt string) analysis.Analysis {
	return analysis.New(nil).Evaluate(context.Background(), prompt)
}

func TestParseStyle(t *testing.T) {
	tests := map[string]Style{
		"encouraging": StyleEncouraging,
		"Direct":      StyleDirect,
		" socratic ":  StyleSocratic,
		"sarcastic":   StyleEncouraging,
		"":            StyleEncouraging,
	}
	for in, want := range tests {
		if got := ParseStyle(in); got != want {
			t.Errorf("ParseStyle(%q) = %s, want %s", in, got, want)
		}
	}
	if NewGenerator("bogus").Style() != StyleEncouraging {
		t.Fatal("unknown style should fall back to encouraging")
	}
}

func TestEncouraging_Failing(t *testing.T) {
	out := NewGenerator(StyleEncouraging).Generate(analyze("Write my essay about climate change"))

	assert.True(t, strings.HasPrefix(out, "Thanks for trying! Your prompt scored 42/100. Let's improve it together!"))
	assert.Contains(t, out, "Patterns to avoid:")
	assert.Contains(t, out, "Ways to improve:")
	assert.Contains(t, out, "Try these instead:")
	assert.True(t, strings.HasSuffix(out, "You've got this! Small improvements will make a big difference!"))
}

func TestEncouraging_LimitsExamples(t *testing.T) {
	a := analysis.Analysis{
		Score:    scoring.Score{Total: 30},
		Examples: []string{"one", "two", "three"},
	}
	out := NewGenerator(StyleEncouraging).Generate(a)
	assert.Contains(t, out, "  - two")
	assert.NotContains(t, out, "three")
}

func TestEncouraging_Openings(t *testing.T) {
	g := NewGenerator(StyleEncouraging)

	out := g.Generate(analysis.Analysis{Score: scoring.Score{Total: 85}})
	assert.True(t, strings.HasPrefix(out, "Excellent work! Your prompt scored 85/100."))
	assert.True(t, strings.HasSuffix(out, "Keep up the great work! You're learning effectively!"))

	out = g.Generate(analysis.Analysis{Score: scoring.Score{Total: 60}})
	assert.True(t, strings.HasPrefix(out, "Good effort! Your prompt scored 60/100."))
}

func TestDirect(t *testing.T) {
	out := NewGenerator(StyleDirect).Generate(analyze("Write my essay about climate change"))

	assert.True(t, strings.HasPrefix(out, "Prompt Score: 42/100\n  - Learning Orientation: 30/100"))
	assert.Contains(t, out, "  - Intent: do_it_for_me")
	assert.Contains(t, out, "Status: NEEDS IMPROVEMENT - This prompt needs refinement.")
	assert.Contains(t, out, "Detected Issues:\n1. Do-it-for-me pattern detected")
	assert.Contains(t, out, "Required Improvements:\n1. ")
	assert.Contains(t, out, "Better Alternatives:\n  Instead of 'Write my essay")
}

func TestDirect_Passing(t *testing.T) {
	out := NewGenerator(StyleDirect).Generate(analyze("Explain Python decorators with examples, then quiz me to check my understanding"))
	assert.Contains(t, out, "Status: PASSING - This prompt demonstrates good learning practices.")
	assert.Contains(t, out, "Strengths:\n1. ")
}

func TestSocratic(t *testing.T) {
	out := NewGenerator(StyleSocratic).Generate(analyze("Write my essay about climate change"))

	assert.True(t, strings.HasPrefix(out, "Your prompt scored 42/100. Let's reflect on this together."))
	assert.Contains(t, out, "Are you asking the AI to do your work, or to help you learn?")
	assert.Contains(t, out, "Could you rephrase your request to focus on understanding")
	assert.Contains(t, out, "What specific aspect or detail could you add")
	assert.Contains(t, out, "How might you make this more interactive?")
	assert.Contains(t, out, "What changes could address these patterns?")
	assert.True(t, strings.HasSuffix(out, "What makes these examples more effective for learning?"))
}

func TestSocratic_StrongPromptSkipsQuestions(t *testing.T) {
	a := analysis.Analysis{
		Score:     scoring.Score{Total: 90, Learning: 90, Specificity: 90, Engagement: 90, Intent: scoring.IntentHelpMeLearn},
		Strengths: []string{"Multi-step learning approach"},
	}
	out := NewGenerator(StyleSocratic).Generate(a)
	assert.Contains(t, out, "  + Multi-step learning approach")
	assert.NotContains(t, out, "? ")
	assert.True(t, strings.HasSuffix(out, "How can you build on these strengths in your next prompt?"))
}
