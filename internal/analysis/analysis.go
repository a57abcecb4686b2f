// Package analysis turns a rubric score into actionable guidance: detected
// anti-patterns, strengths, improvement suggestions and example prompts.
package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/promptcoach/internal/scoring"
)

// Analysis is the full evaluation of a single prompt.
type Analysis struct {
	Prompt       string        `json:"prompt"`
	Score        scoring.Score `json:"score"`
	Strengths    []string      `json:"strengths"`
	Improvements []string      `json:"improvements"`
	Examples     []string      `json:"examples"`
	Patterns     []string      `json:"detected_patterns"`
}

// Analyzer evaluates prompts with a pluggable scorer.
type Analyzer struct {
	scorer scoring.Scorer
}

// New creates an Analyzer. A nil scorer uses the default rubric.
func New(scorer scoring.Scorer) *Analyzer {
	if scorer == nil {
		scorer = scoring.DefaultRubric()
	}
	return &Analyzer{scorer: scorer}
}

// Evaluate scores the prompt and derives guidance from the score.
func (a *Analyzer) Evaluate(ctx context.Context, prompt string) Analysis {
	score := a.scorer.Score(ctx, prompt)
	return Analysis{
		Prompt:       prompt,
		Score:        score,
		Strengths:    identifyStrengths(prompt, score),
		Improvements: suggestImprovements(prompt, score),
		Examples:     suggestExamples(score),
		Patterns:     detectPatterns(prompt, score),
	}
}

// guidanceCutoff is the total at or above which no improvements or
// examples are offered.
const guidanceCutoff = 70.0

var (
	completeSolutionKeywords = []string{
		"complete solution", "entire code", "full implementation",
		"all the code", "whole program",
	}
	vagueWords      = []string{"stuff", "things", "help", "something", "anything"}
	passiveKeywords = []string{"i don't understand", "i'm confused", "i can't"}

	learningStrengthKeywords = []string{
		"explain", "teach me", "help me understand", "show me how",
		"walk me through", "demonstrate",
	}
	specificStrengthKeywords = []string{
		"specifically", "in particular", "focusing on", "regarding",
		"about", "concerning",
	}
	interactiveStrengthKeywords = []string{
		"quiz me", "test my", "check my understanding", "give me practice",
		"challenge me", "then",
	}
	reflectiveStrengthKeywords = []string{
		"why", "how does", "what if", "difference between", "compare",
	}
)

func detectPatterns(prompt string, score scoring.Score) []string {
	var patterns []string
	lower := strings.ToLower(prompt)

	switch n := utf8.RuneCountInString(strings.TrimSpace(prompt)); {
	case n == 0:
		patterns = append(patterns, "Empty prompt - no question or request provided")
	case n < 10:
		patterns = append(patterns, "Very short prompt - lacks sufficient detail")
	}

	if score.Intent == scoring.IntentDoItForMe {
		patterns = append(patterns, "Do-it-for-me pattern detected - asking AI to complete work instead of learning")
	}

	if scoring.MatchedKeyword(lower, completeSolutionKeywords) != "" {
		patterns = append(patterns, "Requesting complete solution - hinders learning by skipping problem-solving")
	}

	words := strings.Fields(lower)
	hasVague := slices.ContainsFunc(vagueWords, func(w string) bool {
		return slices.Contains(words, w)
	})
	if hasVague && score.Specificity < 50 {
		patterns = append(patterns, "Vague language used - be more specific about what you want to learn")
	}

	if scoring.MatchedKeyword(lower, passiveKeywords) != "" {
		patterns = append(patterns, "Passive framing - try asking 'explain' or 'teach me' instead of 'I don't understand'")
	}

	return patterns
}

func identifyStrengths(prompt string, score scoring.Score) []string {
	var strengths []string

	if score.Learning >= 60 {
		if kw := scoring.MatchedKeyword(prompt, learningStrengthKeywords); kw != "" {
			strengths = append(strengths, fmt.Sprintf("Learning-oriented approach using '%s'", kw))
		}
	}

	if score.Specificity >= 60 {
		if scoring.MatchedKeyword(prompt, specificStrengthKeywords) != "" {
			strengths = append(strengths, "Specific and focused on particular topics")
		} else if utf8.RuneCountInString(prompt) >= 50 {
			strengths = append(strengths, "Good level of detail provided")
		}
	}

	if score.Engagement >= 60 {
		if kw := scoring.MatchedKeyword(prompt, interactiveStrengthKeywords); kw != "" {
			strengths = append(strengths, fmt.Sprintf("Interactive learning requested ('%s')", kw))
		}
	}

	if kw := scoring.MatchedKeyword(prompt, reflectiveStrengthKeywords); kw != "" {
		strengths = append(strengths, fmt.Sprintf("Demonstrates reflective thinking with '%s'", kw))
	}

	if strings.Contains(strings.ToLower(prompt), "then") || strings.Contains(prompt, ",") {
		strengths = append(strengths, "Multi-step learning approach")
	}

	return strengths
}

func suggestImprovements(prompt string, score scoring.Score) []string {
	if score.Total >= guidanceCutoff {
		return nil
	}

	var out []string
	weakest, v := score.Weakest()
	if v < 60 {
		switch weakest {
		case scoring.DimensionLearning:
			out = append(out, "Rephrase to focus on learning: Use 'explain', 'teach me', or 'help me understand' instead of 'write', 'do', or 'give me'")
		case scoring.DimensionSpecificity:
			out = append(out, "Add more specific details: Include what topic, what aspect, or what context you're interested in")
			if utf8.RuneCountInString(strings.TrimSpace(prompt)) < 20 {
				out = append(out, "Expand your prompt: Provide more context and detail about what you want to learn")
			}
		case scoring.DimensionEngagement:
			out = append(out,
				"Request interactive learning: Ask for quizzes, examples, or practice problems",
				"Use multi-step prompts: For example, 'Explain X, then quiz me, then give me practice problems'",
			)
		}
	}

	if score.Intent == scoring.IntentDoItForMe {
		out = append(out, "Shift from 'do it for me' to 'teach me how': Instead of asking AI to complete your work, ask it to guide you through the process")
	}

	if score.Learning < 50 && score.Specificity < 50 && score.Engagement < 50 {
		out = append(out, "Example of a strong prompt: 'Explain how Python decorators work, provide examples, then quiz me to check my understanding'")
	}

	return out
}

func suggestExamples(score scoring.Score) []string {
	if score.Total >= guidanceCutoff {
		return nil
	}

	var out []string
	if score.Intent == scoring.IntentDoItForMe {
		out = append(out,
			"Instead of 'Write my essay about climate change', try: 'Explain the key arguments about climate change, then help me organize my thoughts'",
			"Instead of 'Do my homework', try: 'Teach me the concepts I need, then quiz me to verify my understanding'",
		)
	}
	if score.Specificity < 50 {
		out = append(out,
			"Instead of 'Help me with Python', try: 'Explain how Python list comprehensions work with examples'",
			"Instead of 'Explain stuff', try: 'Explain the difference between stacks and queues, focusing on use cases'",
		)
	}
	if score.Engagement < 50 {
		out = append(out,
			"Try adding: '...then quiz me to test my understanding'",
			"Try adding: '...provide practice problems I can work through'",
		)
	}
	if len(out) == 0 {
		out = append(out, "'Explain how recursion works in Python, provide examples with base cases, then give me practice problems to solve'")
	}
	return out
}
