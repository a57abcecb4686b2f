package scoring

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Keyword tables. Matching is case-insensitive substring search over the
// lowercased prompt; each entry counts once regardless of repetitions.
var (
	learningKeywords = []string{
		"explain", "teach", "help me understand",
		"why", "how does", "can you show me",
		"walk me through", "break down", "clarify",
		"guide me", "help me learn",
	}
	antiLearningKeywords = []string{
		"write my", "do my", "give me the answer",
		"solve this for me", "just tell me", "complete this",
	}
	contextKeywords = []string{
		"because", "specifically", "in the context of",
		"for example", "such as", "regarding",
	}
	vagueKeywords = []string{"something", "anything", "stuff", "things"}

	engagementKeywords = []string{
		"quiz me", "test my understanding", "ask me questions",
		"practice", "exercise", "check if", "verify",
		"challenge me", "give me problems", "let me try",
	}
	passiveKeywords = []string{"just tell me", "just give me", "simply explain"}
	stepKeywords    = []string{"then", "after that", "next", "finally"}
)

// intentRule maps a keyword list to an intent. Rules are checked in order.
type intentRule struct {
	intent   Intent
	keywords []string
}

var intentRules = []intentRule{
	{IntentDoItForMe, []string{
		"write my", "do my", "solve this for me",
		"complete this", "finish this", "create my",
	}},
	{IntentHelpMeLearn, []string{
		"explain", "teach me", "help me understand",
		"show me how", "walk me through", "quiz me",
	}},
	{IntentClarifying, []string{
		"what do you mean", "can you clarify", "i don't understand",
		"could you explain", "what does", "what is the difference",
	}},
	{IntentReflection, []string{
		"how does this relate", "why is this", "what if",
		"how would this apply", "connect this to",
	}},
}

// Scorer evaluates a prompt.
type Scorer interface {
	Score(ctx context.Context, prompt string) Score
}

// Rubric is the rule-based scorer. It makes no external calls and is safe
// for concurrent use.
type Rubric struct {
	weights Weights
}

// NewRubric creates a rubric scorer with the given weights.
func NewRubric(w Weights) (*Rubric, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Rubric{weights: w}, nil
}

// DefaultRubric returns a rubric with DefaultWeights.
func DefaultRubric() *Rubric {
	return &Rubric{weights: DefaultWeights()}
}

// Weights returns the weights in use.
func (r *Rubric) Weights() Weights {
	return r.weights
}

// Score implements Scorer. The context is unused.
func (r *Rubric) Score(_ context.Context, prompt string) Score {
	return r.Calculate(prompt)
}

// Calculate scores a prompt. Every reported value is rounded to one decimal.
func (r *Rubric) Calculate(prompt string) Score {
	lower := strings.ToLower(prompt)

	learning := scoreLearning(prompt, lower)
	specificity := scoreSpecificity(prompt, lower)
	engagement := scoreEngagement(lower)

	total := learning*r.weights.Learning +
		specificity*r.weights.Specificity +
		engagement*r.weights.Engagement

	return Score{
		Total:       clamp(round1(total), 0, 100),
		Learning:    round1(learning),
		Specificity: round1(specificity),
		Engagement:  round1(engagement),
		Intent:      ClassifyIntent(prompt),
	}
}

// ClassifyIntent returns the intent of the first rule with a matching
// keyword, or IntentUnknown.
func ClassifyIntent(prompt string) Intent {
	lower := strings.ToLower(prompt)
	for _, rule := range intentRules {
		if containsAny(lower, rule.keywords) {
			return rule.intent
		}
	}
	return IntentUnknown
}

func scoreLearning(prompt, lower string) float64 {
	score := 50.0
	score += 10 * float64(countMatches(lower, learningKeywords))
	score -= 20 * float64(countMatches(lower, antiLearningKeywords))
	if strings.Contains(prompt, "?") {
		score += 5
	}
	return clamp(score, 0, 100)
}

func scoreSpecificity(prompt, lower string) float64 {
	score := 50.0

	switch n := utf8.RuneCountInString(prompt); {
	case n > 50 && n < 200:
		score += 15
	case n >= 200 && n < 300:
		score += 10
	case n < 20:
		score -= 15
	}

	if q := strings.Count(prompt, "?"); q > 0 {
		score += min(10, 5*float64(q))
	}

	score += 8 * float64(countMatches(lower, contextKeywords))
	score -= 10 * float64(countMatches(lower, vagueKeywords))
	return clamp(score, 0, 100)
}

func scoreEngagement(lower string) float64 {
	score := 50.0
	score += 15 * float64(countMatches(lower, engagementKeywords))
	score -= 10 * float64(countMatches(lower, passiveKeywords))
	if steps := countMatches(lower, stepKeywords); steps > 0 {
		score += min(15, 5*float64(steps))
	}
	return clamp(score, 0, 100)
}

// countMatches returns how many keywords occur in s.
func countMatches(s string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(s, k) {
			n++
		}
	}
	return n
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// MatchedKeyword returns the first keyword contained in the lowercased
// prompt, or "".
func MatchedKeyword(prompt string, keywords []string) string {
	lower := strings.ToLower(prompt)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return k
		}
	}
	return ""
}
