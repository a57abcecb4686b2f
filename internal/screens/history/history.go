// Package history lists a user's past prompt evaluations.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/store"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Evals []store.Evaluation
	Stats *store.EvaluationStats
	Err   error
}

// HistoryScreen displays recent evaluations with aggregate stats.
type HistoryScreen struct {
	evals    store.EvaluationRepo
	userID   string
	items    []store.Evaluation
	stats    *store.EvaluationStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for userID. An empty userID shows everyone.
func New(evals store.EvaluationRepo, userID string) *HistoryScreen {
	return &HistoryScreen{
		evals:    evals,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, user := s.evals, s.userID
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()
		items, err := repo.QueryEvaluations(ctx, user, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.EvaluationStats(ctx, user)
		if err != nil {
			// The list is still useful without totals.
			return historyLoadedMsg{Evals: items}
		}
		return historyLoadedMsg{Evals: items, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Evals
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(theme.Hint, "\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return center(theme.Hint, "\n\n  No prompts scored yet. Try SCORE A PROMPT!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.stats != nil {
		b.WriteString(center(theme.Subtitle, s.statsLine()))
		b.WriteString("\n\n")
	}

	// Keep the selection in view on short terminals.
	rows := max(height-6, 3)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	for i := start; i < len(s.items) && i < start+rows; i++ {
		e := s.items[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mark := "✗"
		if e.Passing {
			mark = "✓"
		}
		line := fmt.Sprintf("%s%s  %s %5.1f  %-16s %s", prefix, e.Timestamp.Format("Jan 02 15:04"),
			mark, e.Total, e.Intent, truncate(e.Prompt, 36))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.details(e, min(width-8, 64))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *HistoryScreen) statsLine() string {
	st := s.stats
	line := fmt.Sprintf("%d prompts   %d passing   avg %.1f", st.Total, st.Passing, st.AvgScore)
	if top := topIntent(st.ByIntent); top != "" {
		line += "   mostly " + top
	}
	return line
}

func (s *HistoryScreen) details(e store.Evaluation, width int) string {
	var b strings.Builder
	b.WriteString(layout.Wrap(e.Prompt, width))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("learning %.0f  specificity %.0f  engagement %.0f",
		e.Learning, e.Specificity, e.Engagement))
	if e.LessonID != "" {
		b.WriteString(fmt.Sprintf("\nexercise %s/%s", e.LessonID, e.ExerciseID))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(4).Render(b.String())
}

func topIntent(by map[string]int) string {
	keys := make([]string, 0, len(by))
	for k := range by {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if by[keys[i]] != by[keys[j]] {
			return by[keys[i]] > by[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
