package scoring

import (
	"context"
	"time"
)

// IntentResult is an intent judgement from an external collaborator.
type IntentResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// IntentAnalyzer classifies prompt intent, typically via an LLM.
type IntentAnalyzer interface {
	AnalyzeIntent(ctx context.Context, prompt string) (IntentResult, error)
}

// DefaultAssistTimeout bounds a single intent lookup.
const DefaultAssistTimeout = 8 * time.Second

// AssistedScorer scores with the rubric and consults an IntentAnalyzer only
// when the rubric cannot classify the intent. Analyzer failures keep the
// rubric result.
type AssistedScorer struct {
	rubric   *Rubric
	analyzer IntentAnalyzer
	timeout  time.Duration
}

// NewAssistedScorer wraps rubric. A nil analyzer makes it equivalent to the
// rubric alone.
func NewAssistedScorer(rubric *Rubric, analyzer IntentAnalyzer) *AssistedScorer {
	if rubric == nil {
		rubric = DefaultRubric()
	}
	return &AssistedScorer{rubric: rubric, analyzer: analyzer, timeout: DefaultAssistTimeout}
}

// WithTimeout overrides the per-lookup timeout.
func (a *AssistedScorer) WithTimeout(d time.Duration) *AssistedScorer {
	a.timeout = d
	return a
}

// Score implements Scorer.
func (a *AssistedScorer) Score(ctx context.Context, prompt string) Score {
	s := a.rubric.Calculate(prompt)
	if s.Intent != IntentUnknown || a.analyzer == nil {
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := a.analyzer.AnalyzeIntent(ctx, prompt)
	if err != nil {
		return s
	}
	if in, ok := ParseIntent(string(res.Intent)); ok {
		s.Intent = in
	}
	return s
}
