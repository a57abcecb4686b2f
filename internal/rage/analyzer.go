package rage

import (
	"regexp"
	"strings"
	"unicode"
)

// profanityRe matches whole-word profanity over lowercased text.
var profanityRe = regexp.MustCompile(`\b(damn|hell|crap|fuck|shit|ass|bitch|bastard)\b`)

var (
	politeWords    = []string{"please", "thank", "could", "would", "kindly", "appreciate"}
	demandingWords = []string{"just", "simply", "need", "must", "have to", "immediately"}
	pleadingWords  = []string{"please", "beg", "help", "desperate", "really need"}
	defeatedWords  = []string{"never mind", "forget it", "give up", "whatever", "useless"}
)

// Reading is the frustration analysis of a single prompt.
type Reading struct {
	State          EmotionalState
	Indicators     []RageIndicator
	Politeness     float64
	ProfanityCount int
	CapsPercentage float64
}

// Signals are the measurements the state classifiers decide on.
type Signals struct {
	Indicators     []RageIndicator
	ProfanityCount int
	CapsPercentage float64
	Politeness     float64
	HistoryLen     int
}

// Has reports whether the indicator set contains ind.
func (s *Signals) Has(ind RageIndicator) bool {
	for _, i := range s.Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

// Analyze measures a prompt against the attempts made before it. Only the
// length of history matters; earlier states are not consulted.
func Analyze(prompt string, history []Attempt) Reading {
	return AnalyzeWith(DefaultClassifiers(), prompt, history)
}

// AnalyzeWith is Analyze with an explicit classifier cascade.
func AnalyzeWith(classifiers []Classifier, prompt string, history []Attempt) Reading {
	lower := strings.ToLower(prompt)
	profanity := CountProfanity(prompt)
	caps := CapsPercentage(prompt)

	sig := &Signals{
		Indicators:     detectIndicators(lower, profanity, caps),
		ProfanityCount: profanity,
		CapsPercentage: caps,
		HistoryLen:     len(history),
	}
	sig.Politeness = politeness(lower, profanity, caps, len(history))

	state, _ := RunClassifiers(classifiers, sig)
	return Reading{
		State:          state,
		Indicators:     sig.Indicators,
		Politeness:     sig.Politeness,
		ProfanityCount: profanity,
		CapsPercentage: caps,
	}
}

// CountProfanity counts every whole-word profanity occurrence.
func CountProfanity(text string) int {
	return len(profanityRe.FindAllString(strings.ToLower(text), -1))
}

// ProfaneWords returns the distinct profane words in text, in first-seen
// order.
func ProfaneWords(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, w := range profanityRe.FindAllString(strings.ToLower(text), -1) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// CapsPercentage is the share of uppercase letters among all letters, or 0
// when the text has none.
func CapsPercentage(text string) float64 {
	var letters, upper int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters) * 100
}

func detectIndicators(lower string, profanity int, caps float64) []RageIndicator {
	var out []RageIndicator
	if containsAny(lower, politeWords) {
		out = append(out, IndicatorPolite)
	}
	if containsAny(lower, demandingWords) {
		out = append(out, IndicatorDemanding)
	}
	if profanity > 0 {
		out = append(out, IndicatorProfane)
	}
	if caps > 50 {
		out = append(out, IndicatorCapsLock)
	}
	if containsAny(lower, pleadingWords) {
		out = append(out, IndicatorPleading)
	}
	if containsAny(lower, defeatedWords) {
		out = append(out, IndicatorDefeated)
	}
	if len(out) == 0 {
		out = append(out, IndicatorDirect)
	}
	return out
}

// politeness scores courtesy from 0 (rude) to 100; every earlier attempt
// costs five points.
func politeness(lower string, profanity int, caps float64, historyLen int) float64 {
	score := 100.0
	score -= 20 * float64(profanity)
	if caps > 50 {
		score -= 30
	}
	if containsAny(lower, demandingWords) {
		score -= 15
	}
	if containsAny(lower, politeWords) {
		score += 10
	}
	score -= 5 * float64(historyLen)
	return max(0, min(100, score))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
