// Package feedback renders a prompt analysis as learner-facing text.
package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/promptcoach/internal/analysis"
	"github.com/abhisek/promptcoach/internal/scoring"
)

// Style selects the tone of generated feedback.
type Style string

const (
	StyleEncouraging Style = "encouraging"
	StyleDirect      Style = "direct"
	StyleSocratic    Style = "socratic"
)

// Styles lists every supported style.
var Styles = []Style{StyleEncouraging, StyleDirect, StyleSocratic}

// ParseStyle returns the named style, falling back to encouraging for
// unknown names.
func ParseStyle(name string) Style {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StyleEncouraging, StyleDirect, StyleSocratic:
		return s
	default:
		return StyleEncouraging
	}
}

// Generator produces feedback in a fixed style.
type Generator struct {
	style Style
}

// NewGenerator creates a Generator. Unknown styles fall back to encouraging.
func NewGenerator(style Style) *Generator {
	return &Generator{style: ParseStyle(string(style))}
}

// Style returns the generator's style.
func (g *Generator) Style() Style {
	return g.style
}

// Generate renders the analysis.
func (g *Generator) Generate(a analysis.Analysis) string {
	switch g.style {
	case StyleDirect:
		return direct(a)
	case StyleSocratic:
		return socratic(a)
	default:
		return encouraging(a)
	}
}

func encouraging(a analysis.Analysis) string {
	var b strings.Builder
	total := a.Score.Total

	switch {
	case total >= 80:
		fmt.Fprintf(&b, "Excellent work! Your prompt scored %.0f/100.\n", total)
	case total >= 60:
		fmt.Fprintf(&b, "Good effort! Your prompt scored %.0f/100.\n", total)
	default:
		fmt.Fprintf(&b, "Thanks for trying! Your prompt scored %.0f/100. Let's improve it together!\n", total)
	}

	bullets(&b, "What you did well:", a.Strengths, 0)
	bullets(&b, "Patterns to avoid:", a.Patterns, 0)
	bullets(&b, "Ways to improve:", a.Improvements, 0)
	bullets(&b, "Try these instead:", a.Examples, 2)

	if a.Score.Passing() {
		b.WriteString("\nKeep up the great work! You're learning effectively!")
	} else {
		b.WriteString("\nYou've got this! Small improvements will make a big difference!")
	}
	return b.String()
}

func direct(a analysis.Analysis) string {
	var b strings.Builder
	s := a.Score

	fmt.Fprintf(&b, "Prompt Score: %.0f/100\n", s.Total)
	fmt.Fprintf(&b, "  - Learning Orientation: %.0f/100\n", s.Learning)
	fmt.Fprintf(&b, "  - Specificity: %.0f/100\n", s.Specificity)
	fmt.Fprintf(&b, "  - Engagement: %.0f/100\n", s.Engagement)
	fmt.Fprintf(&b, "  - Intent: %s\n", s.Intent)

	if s.Passing() {
		b.WriteString("\nStatus: PASSING - This prompt demonstrates good learning practices.\n")
	} else {
		b.WriteString("\nStatus: NEEDS IMPROVEMENT - This prompt needs refinement.\n")
	}

	numbered(&b, "Detected Issues:", a.Patterns)
	numbered(&b, "Strengths:", a.Strengths)
	numbered(&b, "Required Improvements:", a.Improvements)

	if len(a.Examples) > 0 {
		b.WriteString("\nBetter Alternatives:\n")
		for _, ex := range limit(a.Examples, 3) {
			fmt.Fprintf(&b, "  %s\n", ex)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func socratic(a analysis.Analysis) string {
	var b strings.Builder
	s := a.Score

	fmt.Fprintf(&b, "Your prompt scored %.0f/100. Let's reflect on this together.\n\n", s.Total)

	if s.Intent == scoring.IntentDoItForMe {
		b.WriteString("Consider this: Are you asking the AI to do your work, or to help you learn?\n")
		b.WriteString("What would happen if you asked for guidance instead of a complete solution?\n\n")
	}

	if len(a.Strengths) > 0 {
		b.WriteString("What you did well:\n")
		for _, st := range a.Strengths {
			fmt.Fprintf(&b, "  + %s\n", st)
		}
		b.WriteString("\nHow can you build on these strengths in your next prompt?\n\n")
	}

	if s.Learning < 60 {
		b.WriteString("? Could you rephrase your request to focus on understanding rather than completion?\n")
	}
	if s.Specificity < 60 {
		b.WriteString("? What specific aspect or detail could you add to make your question clearer?\n")
	}
	if s.Engagement < 60 {
		b.WriteString("? How might you make this more interactive? Could you ask for examples, quizzes, or practice?\n")
	}

	if len(a.Patterns) > 0 {
		bullets(&b, "Patterns detected:", a.Patterns, 0)
		b.WriteString("\nWhat changes could address these patterns?\n")
	}

	if len(a.Examples) > 0 {
		bullets(&b, "Compare your prompt to these alternatives:", a.Examples, 2)
		b.WriteString("\nWhat makes these examples more effective for learning?\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// bullets writes a titled bullet list; n > 0 caps the item count.
func bullets(b *strings.Builder, title string, items []string, n int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, it := range limit(items, n) {
		fmt.Fprintf(b, "  - %s\n", it)
	}
}

func numbered(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, it)
	}
}

func limit(items []string, n int) []string {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
