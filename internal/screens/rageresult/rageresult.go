// Package rageresult shows the frustration score after a rage-quit.
package rageresult

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// ResultScreen displays a finished rage session.
type ResultScreen struct {
	result *rage.Result
	note   string
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. note is shown below the stats when non-empty.
func New(result *rage.Result, note string) *ResultScreen {
	return &ResultScreen{result: result, note: note}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Rage Quit"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}
	sc := res.Score
	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text))
	}

	var b strings.Builder
	stateStyle := theme.Meter[max(res.FinalState.Intensity(), 0)]
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "You rage quit!"))
	b.WriteString("\n\n")
	b.WriteString(center(stateStyle.Bold(true), res.SummaryTitle()))
	b.WriteString("\n")

	elapsed := time.Duration(sc.TimeElapsedSeconds * float64(time.Second))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%d attempts in %s", sc.TotalAttempts, rage.FormatDuration(elapsed))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	rows := [][2]string{
		{"Peak rage", sc.MaxRageLevel.Title()},
		{"Politeness decay", fmt.Sprintf("%.0f%%", sc.PolitenessDecay)},
		{"Profanity creativity", fmt.Sprintf("%d", sc.ProfanityCreativity)},
		{"Caps lock escalation", fmt.Sprintf("%d", sc.CapsEscalation)},
		{"Pleas for help", fmt.Sprintf("%d", sc.PleaCount)},
		{"Philosophical score", fmt.Sprintf("%.0f", sc.PhilosophicalScore)},
		{"Entertainment value", fmt.Sprintf("%.1f / 100", res.EntertainingMetric())},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-22s %12s", r[0], r[1])
		b.WriteString(center(theme.Body, line))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if sc.Legendary() {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "★ LEGENDARY SUFFERING ★"))
		b.WriteString("\n")
	}
	if res.Achievement != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "Achievement unlocked: "+res.Achievement))
		b.WriteString("\n")
	}
	if res.Commentary != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, layout.Wrap(res.Commentary, min(width-8, 60))))
		b.WriteString("\n")
	}
	if s.note != "" {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent), s.note))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
