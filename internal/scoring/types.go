package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Intent is the categorical purpose behind a prompt.
type Intent string

const (
	IntentDoItForMe   Intent = "do_it_for_me"
	IntentHelpMeLearn Intent = "help_me_learn"
	IntentClarifying  Intent = "clarifying"
	IntentReflection  Intent = "reflection"
	IntentUnknown     Intent = "unknown"
)

// AllIntents lists every intent in classification priority order.
var AllIntents = []Intent{
	IntentDoItForMe,
	IntentHelpMeLearn,
	IntentClarifying,
	IntentReflection,
	IntentUnknown,
}

// ParseIntent converts a label into an Intent. Matching ignores case and
// surrounding whitespace; hyphens and spaces are treated as underscores.
func ParseIntent(s string) (Intent, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, i := range AllIntents {
		if string(i) == norm {
			return i, true
		}
	}
	return IntentUnknown, false
}

// Label returns a human-readable name, e.g. "Help Me Learn".
func (i Intent) Label() string {
	words := strings.Split(string(i), "_")
	for n, w := range words {
		if w != "" {
			words[n] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// PassingThreshold is the minimum total for a prompt to pass.
const PassingThreshold = 60.0

// Score is the rubric evaluation of one prompt. All values are percentages.
type Score struct {
	Total       float64 `json:"total"`
	Learning    float64 `json:"learning_orientation"`
	Specificity float64 `json:"specificity"`
	Engagement  float64 `json:"engagement"`
	Intent      Intent  `json:"intent"`
}

// NewScore builds a Score, rejecting values outside [0, 100].
func NewScore(total, learning, specificity, engagement float64, intent Intent) (Score, error) {
	s := Score{
		Total:       total,
		Learning:    learning,
		Specificity: specificity,
		Engagement:  engagement,
		Intent:      intent,
	}
	if err := s.Validate(); err != nil {
		return Score{}, err
	}
	return s, nil
}

// Validate checks every dimension lies in [0, 100].
func (s Score) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"total", s.Total},
		{"learning_orientation", s.Learning},
		{"specificity", s.Specificity},
		{"engagement", s.Engagement},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %v", f.name, f.v)
		}
	}
	return nil
}

// Passing reports whether the total meets PassingThreshold.
func (s Score) Passing() bool {
	return s.Total >= PassingThreshold
}

// Weights sets how much each dimension contributes to the total.
type Weights struct {
	Learning    float64 `json:"learning_orientation" yaml:"learning_orientation"`
	Specificity float64 `json:"specificity" yaml:"specificity"`
	Engagement  float64 `json:"engagement" yaml:"engagement"`
}

// DefaultWeights returns the 0.4 / 0.3 / 0.3 split.
func DefaultWeights() Weights {
	return Weights{Learning: 0.4, Specificity: 0.3, Engagement: 0.3}
}

// NewWeights builds Weights, rejecting sums outside [0.99, 1.01].
func NewWeights(learning, specificity, engagement float64) (Weights, error) {
	w := Weights{Learning: learning, Specificity: specificity, Engagement: engagement}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// Validate checks the weights sum to 1 within a small tolerance.
func (w Weights) Validate() error {
	sum := w.Learning + w.Specificity + w.Engagement
	if sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Dimension names one of the three scored dimensions.
type Dimension string

const (
	DimensionLearning    Dimension = "learning_orientation"
	DimensionSpecificity Dimension = "specificity"
	DimensionEngagement  Dimension = "engagement"
)

// Weakest returns the lowest-scoring dimension and its value. Ties resolve
// in learning, specificity, engagement order.
func (s Score) Weakest() (Dimension, float64) {
	dim, v := DimensionLearning, s.Learning
	if s.Specificity < v {
		dim, v = DimensionSpecificity, s.Specificity
	}
	if s.Engagement < v {
		dim, v = DimensionEngagement, s.Engagement
	}
	return dim, v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
