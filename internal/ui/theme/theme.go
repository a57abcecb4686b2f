// Package theme holds the TUI palette and shared styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Podium colors for the top three leaderboard places.
var Podium = []color.Color{ArcadeYellow, lipgloss.Color("#CBD5E1"), Accent}

// Frustration meter colors, calmest first.
var Meter = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(Success),
	lipgloss.NewStyle().Foreground(Secondary),
	lipgloss.NewStyle().Foreground(Warning),
	lipgloss.NewStyle().Foreground(Accent),
	lipgloss.NewStyle().Foreground(Error),
	lipgloss.NewStyle().Foreground(Error).Bold(true),
	lipgloss.NewStyle().Foreground(Primary).Bold(true),
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Chat bubbles
var (
	UserLine = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	BotLine = lipgloss.NewStyle().
		Foreground(Text)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
