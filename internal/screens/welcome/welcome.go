// Package welcome is the splash screen shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/router"
	"github.com/abhisek/promptcoach/internal/screen"
	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const (
	frame       = 100 * time.Millisecond
	bannerAt    = 500 * time.Millisecond
	typingAt    = 1000 * time.Millisecond
	runesPerTic = 2
	maxElapsed  = 4 * time.Second
)

// Tagline is typed out under the banner.
const Tagline = "Ask to learn, not to outsource."

// The before/after pair shown once the tagline is complete.
const (
	vaguePrompt = `"explain python"`
	clearPrompt = `"Explain Python (the language) to a beginner, with one example."`
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ ? ! │  │
  │  └─────┘  │
  ╰───────────╯`

type tickMsg time.Time

// WelcomeScreen plays the intro and replaces itself with the home screen
// on the first key press. It never advances on its own.
type WelcomeScreen struct {
	homeFactory func() screen.Screen
	elapsed     time.Duration
	ticks       int
	done        bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.ticks++
		w.elapsed = min(w.elapsed+frame, maxElapsed)
		return w, nextFrame()

	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		home := w.homeFactory()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

// typed is how much of the tagline has appeared so far.
func (w *WelcomeScreen) typed() string {
	if w.elapsed < typingAt {
		return ""
	}
	n := int((w.elapsed-typingAt)/frame+1) * runesPerTic
	r := []rune(Tagline)
	return string(r[:min(n, len(r))])
}

func (w *WelcomeScreen) View(width, height int) string {
	eyes := "◉ ◉"
	if w.ticks%12 == 11 {
		eyes = "─ ─"
	}
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Render(strings.Replace(mascotArt, "◉ ◉", eyes, 1)),
	}

	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}

	if line := w.typed(); line != "" {
		cursor := ""
		if line != Tagline && w.ticks%2 == 0 {
			cursor = "▌"
		}
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(line+cursor))

		if line == Tagline {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim)
			sections = append(sections,
				"",
				lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+vaguePrompt),
				lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+clearPrompt),
				"",
				dim.Italic(true).Render("press any key to start"),
			)
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
