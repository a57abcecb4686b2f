package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle   MascotVariant = iota
	MascotProud                // most prompts pass
	MascotFuming               // more rage quits than passing prompts
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ? ! │
└─────┘`

const mascotProud = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ? ! │
└─╥═╥─┘
  ╚═╝`

const mascotFuming = `┌─────┐ #
│ ò ó │
│  ∩  │
│ @#! │
└─────┘`

// pickMascot chooses the mascot from the learner's record.
func pickMascot(st stats) MascotVariant {
	switch {
	case st.RageQuits > 0 && st.RageQuits > st.Passing:
		return MascotFuming
	case st.Prompts >= 5 && float64(st.Passing)/float64(st.Prompts) >= 0.6:
		return MascotProud
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotProud:
		art, fg = mascotProud, theme.ArcadeYellow
	case MascotFuming:
		art, fg = mascotFuming, theme.Error
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
