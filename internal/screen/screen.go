// Package screen is the contract between the router and the TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/promptcoach/internal/ui/layout"
)

// Screen is one page on the router stack. The app draws the header and
// footer; View renders only the body within width and height.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header while the screen is on top.
	Title() string
}

// KeyHintProvider screens replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer screens reload when they are back on top after a pop, e.g. the
// home screen refreshing stats after a scoring run.
type Resumer interface {
	Resume() tea.Cmd
}
