// Package scorer is the TUI screen for scoring a single prompt and
// demonstrating how an improved version would be answered.
package scorer

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/coach"
	"github.com/abhisek/promptcoach/internal/demo"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/ui/components"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

type scoredMsg struct {
	res coach.Result
	err error
}

type demoMsg struct {
	res demo.Result
}

// ScorerScreen scores prompts as they are submitted.
type ScorerScreen struct {
	coach   *coach.Service
	demo    *demo.Demonstrator
	userID  string
	input   components.PromptInput
	last    string
	result  *coach.Result
	shown   *demo.Result
	busy    bool
	warning string
}

var _ screen.Screen = (*ScorerScreen)(nil)
var _ screen.KeyHintProvider = (*ScorerScreen)(nil)

// New creates the scorer screen.
func New(c *coach.Service, d *demo.Demonstrator, userID string) *ScorerScreen {
	if c == nil {
		c = coach.NewService(nil, "", nil)
	}
	if d == nil {
		d = demo.New(nil)
	}
	return &ScorerScreen{
		coach:  c,
		demo:   d,
		userID: userID,
		input:  components.NewPromptInput("Type a prompt you would send to an AI...", 60),
	}
}

func (s *ScorerScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ScorerScreen) Title() string {
	return "Score a Prompt"
}

func (s *ScorerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Score"}}
	if s.last != "" {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "Demo"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ScorerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoredMsg:
		s.busy = false
		s.result = &msg.res
		s.warning = ""
		if msg.err != nil {
			s.warning = "not saved to history: " + msg.err.Error()
		}
		return s, nil

	case demoMsg:
		s.busy = false
		s.shown = &msg.res
		return s, nil

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			prompt := s.input.Take()
			if prompt == "" {
				return s, nil
			}
			s.last, s.busy, s.shown = prompt, true, nil
			return s, s.evaluate(prompt)
		case "ctrl+d":
			if s.last == "" {
				return s, nil
			}
			s.busy = true
			return s, s.demonstrate(s.last)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ScorerScreen) evaluate(prompt string) tea.Cmd {
	svc, user := s.coach, s.userID
	return func() tea.Msg {
		res, err := svc.Evaluate(context.Background(), coach.Request{UserID: user, Prompt: prompt})
		return scoredMsg{res: res, err: err}
	}
}

func (s *ScorerScreen) demonstrate(prompt string) tea.Cmd {
	d := s.demo
	return func() tea.Msg {
		return demoMsg{res: d.Demonstrate(context.Background(), prompt, "")}
	}
}

func (s *ScorerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.input.SetWidth(cw - 4)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("Thinking..."))
	case s.shown != nil:
		b.WriteString(renderDemo(*s.shown, cw))
	case s.result != nil:
		b.WriteString(renderResult(*s.result, cw))
	default:
		b.WriteString(theme.Hint.Render("Prompts that ask to learn score higher than prompts that ask for answers."))
	}

	if s.warning != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.warning))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func renderResult(r coach.Result, cw int) string {
	sc := r.Analysis.Score
	verdict := theme.Incorrect.Render(fmt.Sprintf("%.1f / 100", sc.Total))
	if sc.Passing() {
		verdict = theme.Correct.Render(fmt.Sprintf("%.1f / 100", sc.Total))
	}

	var b strings.Builder
	b.WriteString(verdict + "   " + theme.Hint.Render(sc.Intent.Label()))
	b.WriteString("\n\n")
	for _, dim := range []struct {
		label string
		value float64
	}{
		{"Learning   ", sc.Learning},
		{"Specificity", sc.Specificity},
		{"Engagement ", sc.Engagement},
	} {
		b.WriteString(components.NewProgressBar(dim.label, int(dim.value), cw).View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Wrap(r.Feedback, cw))
	return b.String()
}

func renderDemo(d demo.Result, cw int) string {
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	var b strings.Builder
	if d.Simulated {
		b.WriteString(theme.Hint.Render("(simulated responses)") + "\n\n")
	}
	b.WriteString(head.Render("Your prompt") + "\n")
	b.WriteString(layout.Wrap(d.OriginalPrompt, cw) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(layout.Wrap(d.BadResponse, cw)) + "\n\n")
	b.WriteString(head.Render("Improved prompt") + "\n")
	b.WriteString(layout.Wrap(d.ImprovedPrompt, cw) + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render(layout.Wrap(d.GoodResponse, cw)) + "\n\n")
	b.WriteString(layout.Wrap(d.Explanation, cw))
	return b.String()
}
