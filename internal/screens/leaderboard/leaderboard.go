// Package leaderboard ranks saved rage-quit results.
package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/store"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// Limit is the number of entries shown.
const Limit = 20

type loadedMsg struct {
	entries []store.RageResult
	err     error
}

// BoardScreen shows the most entertaining rage sessions.
type BoardScreen struct {
	results  store.ResultRepo
	entries  []store.RageResult
	selected int
	expanded bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*BoardScreen)(nil)
var _ screen.KeyHintProvider = (*BoardScreen)(nil)

// New creates a BoardScreen backed by results.
func New(results store.ResultRepo) *BoardScreen {
	return &BoardScreen{results: results}
}

func (s *BoardScreen) Init() tea.Cmd {
	repo := s.results
	return func() tea.Msg {
		if repo == nil {
			return loadedMsg{}
		}
		entries, err := repo.Leaderboard(context.Background(), Limit)
		return loadedMsg{entries: entries, err: err}
	}
}

func (s *BoardScreen) Title() string {
	return "Hall of Rage"
}

func (s *BoardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Commentary"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BoardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.entries = msg.entries
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
				s.expanded = false
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
				s.expanded = false
			}
		case "enter":
			s.expanded = !s.expanded
		}
	}
	return s, nil
}

func (s *BoardScreen) View(width, height int) string {
	msg := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	switch {
	case s.errMsg != "":
		return msg(lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	case !s.loaded:
		return msg(theme.Hint, "\n\n  Loading leaderboard...")
	case len(s.entries) == 0:
		return msg(theme.Hint, "\n\n  Nobody has rage quit yet. Be the first!")
	}

	var b strings.Builder
	b.WriteString(msg(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "\nHALL OF RAGE"))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		star := " "
		if e.Legendary {
			star = "★"
		}
		elapsed := rage.FormatDuration(time.Duration(e.TimeElapsedSeconds) * time.Second)
		line := fmt.Sprintf("%s%2d. %s %-12s %5.1f  %-22s %3d tries  %s",
			prefix, i+1, star, truncate(e.UserID, 12), e.EntertainingMetric,
			e.PersistenceRating, e.TotalAttempts, elapsed)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case i < len(theme.Podium):
			style = style.Foreground(theme.Podium[i])
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded && i == s.selected {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, details(e, min(width-8, 64))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func details(e store.RageResult, width int) string {
	var parts []string
	state := rage.EmotionalState(e.FinalState)
	parts = append(parts, fmt.Sprintf("Final state: %s   Peak: %s", state.Title(), rage.EmotionalState(e.MaxRageLevel).Title()))
	if e.Achievement != "" {
		parts = append(parts, "Achievement: "+e.Achievement)
	}
	if e.Commentary != "" {
		parts = append(parts, layout.Wrap(e.Commentary, width))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).PaddingLeft(4).
		Render(strings.Join(parts, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
