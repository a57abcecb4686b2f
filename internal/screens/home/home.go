// Package home is the TUI's main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/screens/curriculum"
	"github.com/abhisek/promptcoach/internal/screens/history"
	"github.com/abhisek/promptcoach/internal/screens/leaderboard"
	"github.com/abhisek/promptcoach/internal/screens/ragechat"
	"github.com/abhisek/promptcoach/internal/screens/scorer"
	"github.com/abhisek/promptcoach/internal/ui/components"
	"github.com/abhisek/promptcoach/internal/ui/layout"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const titleText = "P R O M P T  C O A C H"

type stats struct {
	Prompts   int
	Passing   int
	AvgScore  float64
	RageQuits int
	Legendary int
}

type statsMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main menu with the learner's running totals.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	stats  stats
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(d Deps) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: factory()} }
		}
	}
	noHistory := d.Evals == nil
	items := []components.MenuItem{
		{Label: "SCORE A PROMPT", Action: push(func() screen.Screen {
			return scorer.New(d.Coach, d.Demo, d.UserID)
		})},
		{Label: "LESSONS", Action: push(func() screen.Screen {
			return curriculum.New(curriculum.Deps{
				Catalog:     d.Catalog,
				Progress:    d.Progress,
				Coach:       d.Coach,
				Tutor:       d.Tutor,
				Snapshots:   d.Snapshots,
				AutoAdvance: d.AutoAdvance,
			})
		})},
		{Label: "RAGE CHAT", Action: push(func() screen.Screen {
			return ragechat.New(d.UserID, d.NewManager, d.Results)
		})},
		{Label: "LEADERBOARD", Disabled: d.Results == nil, Action: push(func() screen.Screen {
			return leaderboard.New(d.Results)
		})},
		{Label: "HISTORY", Disabled: noHistory, Action: push(func() screen.Screen {
			return history.New(d.Evals, d.UserID)
		})},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{deps: d, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the totals after returning from another screen.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	evals, results, user := h.deps.Evals, h.deps.Results, h.deps.UserID
	return func() tea.Msg {
		ctx := context.Background()
		var st stats
		if evals != nil {
			es, err := evals.EvaluationStats(ctx, user)
			if err != nil {
				return statsMsg{err: err}
			}
			st.Prompts, st.Passing, st.AvgScore = es.Total, es.Passing, es.AvgScore
		}
		if results != nil {
			rs, err := results.Stats(ctx)
			if err != nil {
				return statsMsg{err: err}
			}
			st.RageQuits, st.Legendary = rs.Sessions, rs.Legendary
		}
		return statsMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsMsg); ok {
		if m.err != nil {
			h.errMsg = m.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.stats = m.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(titleText)),
	}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(RenderMascot(pickMascot(h.stats))))
	}
	sections = append(sections, h.renderStats(cw, compact))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Error).Render("stats unavailable: "+h.errMsg))
	}

	labels, disabled := h.menu.Labels(), h.menu.DisabledSet()
	if compact {
		sections = append(sections, components.ListColumn(labels, h.menu.Selected, disabled, cw))
	} else {
		sections = append(sections, components.ButtonColumn(labels, h.menu.Selected, disabled, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) renderStats(cw int, compact bool) string {
	prompts := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	passing := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	rage := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)

	st := h.stats
	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			prompts.Render(fmt.Sprintf("✎%d", st.Prompts)),
			passing.Render(fmt.Sprintf("✓%d", st.Passing)),
			rage.Render(fmt.Sprintf("☠%d", st.RageQuits)))
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			prompts.Render(fmt.Sprintf("✎ %d PROMPTS", st.Prompts)),
			passing.Render(fmt.Sprintf("✓ %d PASSING", st.Passing)),
			rage.Render(fmt.Sprintf("☠ %d RAGE QUITS", st.RageQuits)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
