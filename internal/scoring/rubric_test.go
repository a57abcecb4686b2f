package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubric_DoItForMePrompt(t *testing.T) {
	s := DefaultRubric().Calculate("Write my essay about climate change")

	assert.Equal(t, IntentDoItForMe, s.Intent)
	assert.Equal(t, 30.0, s.Learning)
	assert.Equal(t, 50.0, s.Specificity)
	assert.Equal(t, 50.0, s.Engagement)
	assert.Equal(t, 42.0, s.Total)
	assert.False(t, s.Passing())
}

func TestRubric_LearningPrompt(t *testing.T) {
	s := DefaultRubric().Calculate("Explain Python decorators with examples, then quiz me to check my understanding")

	assert.Equal(t, IntentHelpMeLearn, s.Intent)
	assert.Equal(t, 60.0, s.Learning)
	assert.Equal(t, 65.0, s.Specificity)
	assert.Equal(t, 70.0, s.Engagement)
	assert.Equal(t, 64.5, s.Total)
	assert.True(t, s.Passing())
}

func TestRubric_VaguePrompt(t *testing.T) {
	s := DefaultRubric().Calculate("Help me")
	if s.Specificity >= 50 {
		t.Fatalf("expected specificity below 50, got %v", s.Specificity)
	}
}

func TestRubric_InteractivePrompt(t *testing.T) {
	s := DefaultRubric().Calculate("Teach me about Python, quiz me on key concepts, then give me practice problems")
	if s.Engagement <= 60 {
		t.Fatalf("expected engagement above 60, got %v", s.Engagement)
	}
	if s.Intent != IntentHelpMeLearn {
		t.Fatalf("intent = %s, want help_me_learn", s.Intent)
	}
}

func TestRubric_EmptyPromptIsValid(t *testing.T) {
	s := DefaultRubric().Calculate("")
	require.NoError(t, s.Validate())
	assert.Equal(t, IntentUnknown, s.Intent)
	assert.Equal(t, 35.0, s.Specificity)
}

func TestRubric_ScoresStayInRange(t *testing.T) {
	prompts := []string{
		"",
		"?",
		strings.Repeat("write my do my give me the answer solve this for me just tell me complete this ", 3),
		strings.Repeat("explain teach why how does clarify guide me quiz me practice then next finally ", 5),
		"something anything stuff things",
		strings.Repeat("?", 40),
	}
	r := DefaultRubric()
	for _, p := range prompts {
		s := r.Calculate(p)
		if err := s.Validate(); err != nil {
			t.Fatalf("prompt %q: %v", p, err)
		}
	}
}

func TestRubric_Deterministic(t *testing.T) {
	r := DefaultRubric()
	p := "Can you walk me through binary search, specifically the loop invariant?"
	if a, b := r.Calculate(p), r.Calculate(p); a != b {
		t.Fatalf("scores differ: %+v vs %+v", a, b)
	}
}

func TestRubric_CustomWeights(t *testing.T) {
	w, err := NewWeights(0.5, 0.3, 0.2)
	require.NoError(t, err)
	r, err := NewRubric(w)
	require.NoError(t, err)

	s := r.Calculate("Write my essay about climate change")
	// 30*0.5 + 50*0.3 + 50*0.2
	assert.Equal(t, 40.0, s.Total)
	assert.Equal(t, w, r.Weights())
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		prompt string
		want   Intent
	}{
		{"Write my essay", IntentDoItForMe},
		{"Do my homework", IntentDoItForMe},
		{"Solve this for me", IntentDoItForMe},
		{"Complete this assignment", IntentDoItForMe},
		{"Explain photosynthesis", IntentHelpMeLearn},
		{"Teach me about Python", IntentHelpMeLearn},
		{"Help me understand quantum physics", IntentHelpMeLearn},
		{"Show me how to solve this", IntentHelpMeLearn},
		{"Walk me through the steps", IntentHelpMeLearn},
		{"What do you mean by polymorphism?", IntentClarifying},
		{"Can you clarify that concept?", IntentClarifying},
		{"What is the difference between X and Y?", IntentClarifying},
		{"How does this relate to what we learned before?", IntentReflection},
		{"Why is this important?", IntentReflection},
		{"What if we tried a different approach?", IntentReflection},
		{"Hello there", IntentUnknown},
		// do-it-for-me wins over help-me-learn
		{"Explain and then write my report", IntentDoItForMe},
	}
	for _, tt := range tests {
		if got := ClassifyIntent(tt.prompt); got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %s, want %s", tt.prompt, got, tt.want)
		}
	}
}

func TestNewScore_Validation(t *testing.T) {
	_, err := NewScore(60, 60, 60, 60, IntentUnknown)
	require.NoError(t, err)

	for _, bad := range [][4]float64{
		{-1, 50, 50, 50},
		{101, 50, 50, 50},
		{50, 100.1, 50, 50},
		{50, 50, -0.5, 50},
		{50, 50, 50, 200},
	} {
		if _, err := NewScore(bad[0], bad[1], bad[2], bad[3], IntentUnknown); err == nil {
			t.Errorf("expected error for %v", bad)
		}
	}
}

func TestScore_PassingBoundary(t *testing.T) {
	s, err := NewScore(60.0, 0, 0, 0, IntentUnknown)
	require.NoError(t, err)
	assert.True(t, s.Passing())

	s.Total = 59.9
	assert.False(t, s.Passing())
}

func TestNewWeights_Validation(t *testing.T) {
	tests := []struct {
		l, s, e float64
		ok      bool
	}{
		{0.4, 0.3, 0.3, true},
		{0.5, 0.3, 0.2, true},
		{0.335, 0.33, 0.33, true},
		{0.5, 0.5, 0.5, false},
		{0.2, 0.2, 0.2, false},
	}
	for _, tt := range tests {
		_, err := NewWeights(tt.l, tt.s, tt.e)
		if (err == nil) != tt.ok {
			t.Errorf("NewWeights(%v, %v, %v) err = %v, want ok=%v", tt.l, tt.s, tt.e, err, tt.ok)
		}
	}
	if _, err := NewRubric(Weights{}); err == nil {
		t.Fatal("expected NewRubric to reject zero weights")
	}
}

func TestScore_Weakest(t *testing.T) {
	s := Score{Learning: 40, Specificity: 40, Engagement: 55}
	dim, v := s.Weakest()
	assert.Equal(t, DimensionLearning, dim)
	assert.Equal(t, 40.0, v)

	s = Score{Learning: 70, Specificity: 45, Engagement: 45}
	dim, _ = s.Weakest()
	assert.Equal(t, DimensionSpecificity, dim)

	s = Score{Learning: 70, Specificity: 65, Engagement: 20}
	dim, _ = s.Weakest()
	assert.Equal(t, DimensionEngagement, dim)
}

func TestParseIntent(t *testing.T) {
	for in, want := range map[string]Intent{
		"do_it_for_me":  IntentDoItForMe,
		"Help Me Learn": IntentHelpMeLearn,
		" clarifying ":  IntentClarifying,
		"reflection":    IntentReflection,
		"help-me-learn": IntentHelpMeLearn,
	} {
		got, ok := ParseIntent(in)
		if !ok || got != want {
			t.Errorf("ParseIntent(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := ParseIntent("nonsense"); ok {
		t.Fatal("expected nonsense to be rejected")
	}
	assert.Equal(t, "Do It For Me", IntentDoItForMe.Label())
}

type fakeAnalyzer struct {
	result IntentResult
	err    error
	calls  int
}

func (f *fakeAnalyzer) AnalyzeIntent(_ context.Context, _ string) (IntentResult, error) {
	f.calls++
	return f.result, f.err
}

func TestAssistedScorer_UsesAnalyzerForUnknown(t *testing.T) {
	fa := &fakeAnalyzer{result: IntentResult{Intent: IntentReflection, Confidence: 0.8}}
	s := NewAssistedScorer(nil, fa).Score(context.Background(), "Hello there")

	assert.Equal(t, IntentReflection, s.Intent)
	assert.Equal(t, 1, fa.calls)
}

func TestAssistedScorer_SkipsAnalyzerWhenRubricKnows(t *testing.T) {
	fa := &fakeAnalyzer{result: IntentResult{Intent: IntentReflection}}
	s := NewAssistedScorer(nil, fa).Score(context.Background(), "Explain recursion")

	assert.Equal(t, IntentHelpMeLearn, s.Intent)
	assert.Equal(t, 0, fa.calls)
}

func TestAssistedScorer_FailureKeepsRubric(t *testing.T) {
	fa := &fakeAnalyzer{err: errors.New("offline")}
	scorer := NewAssistedScorer(DefaultRubric(), fa)
	got := scorer.Score(context.Background(), "Hello there")
	want := DefaultRubric().Calculate("Hello there")

	assert.Equal(t, want, got)
}

func TestAssistedScorer_IgnoresInvalidIntent(t *testing.T) {
	fa := &fakeAnalyzer{result: IntentResult{Intent: "gibberish"}}
	s := NewAssistedScorer(nil, fa).Score(context.Background(), "Hello there")
	assert.Equal(t, IntentUnknown, s.Intent)
}

func TestAssistedScorer_NormalizesIntent(t *testing.T) {
	fa := &fakeAnalyzer{result: IntentResult{Intent: "Help-Me-Learn"}}
	s := NewAssistedScorer(nil, fa).Score(context.Background(), "Hello there")
	assert.Equal(t, IntentHelpMeLearn, s.Intent)
}

func TestAssistedScorer_NilAnalyzer(t *testing.T) {
	var scorer Scorer = NewAssistedScorer(nil, nil)
	s := scorer.Score(context.Background(), "Hello there")
	assert.Equal(t, IntentUnknown, s.Intent)
}
