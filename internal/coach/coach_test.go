package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/abhisek/promptcoach/internal/feedback"
	"github.com/abhisek/promptcoach/internal/scoring"
	"github.com/abhisek/promptcoach/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEvaluateRecordsHistory(t *testing.T) {
	s := openStore(t)
	svc := NewService(nil, feedback.StyleDirect, s.EvaluationRepo())

	res, err := svc.Evaluate(t.Context(), Request{
		UserID:     "alice",
		Prompt:     "Write my essay about climate change",
		LessonID:   "basics_001",
		ExerciseID: "basics_001_ex1",
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Style != feedback.StyleDirect || res.Analysis.Score.Intent != scoring.IntentDoItForMe {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !strings.Contains(res.Feedback, "NEEDS IMPROVEMENT") {
		t.Fatalf("direct feedback expected, got:\n%s", res.Feedback)
	}

	evals, err := s.EvaluationRepo().QueryEvaluations(t.Context(), "alice", store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryEvaluations: %v", err)
	}
	if len(evals) != 1 {
		t.Fatalf("got %d evaluations, want 1", len(evals))
	}
	e := evals[0]
	if e.Total != 42 || e.Passing || e.Intent != "do_it_for_me" || e.ExerciseID != "basics_001_ex1" {
		t.Fatalf("unexpected stored evaluation: %+v", e)
	}
}

func TestEvaluateStyleOverride(t *testing.T) {
	svc := NewService(nil, feedback.StyleDirect, nil)
	res, err := svc.Evaluate(t.Context(), Request{Prompt: "Explain recursion", Style: feedback.StyleSocratic})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Style != feedback.StyleSocratic {
		t.Fatalf("style = %s", res.Style)
	}

	res, _ = svc.Evaluate(t.Context(), Request{Prompt: "x", Style: "shouty"})
	if res.Style != feedback.StyleEncouraging {
		t.Fatalf("unknown style = %s, want encouraging", res.Style)
	}
}

type failingRepo struct{ store.EvaluationRepo }

func (failingRepo) AppendEvaluation(context.Context, store.EvaluationData) error {
	return errors.New("disk full")
}

func TestEvaluateHistoryFailureKeepsResult(t *testing.T) {
	svc := NewService(nil, "", failingRepo{})
	res, err := svc.Evaluate(t.Context(), Request{Prompt: "Explain recursion"})
	if err == nil {
		t.Fatal("expected history error")
	}
	if res.Feedback == "" || res.Analysis.Prompt != "Explain recursion" {
		t.Fatalf("result should still be populated: %+v", res)
	}
}
