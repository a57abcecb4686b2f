package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0-100 value.
type ProgressBar struct {
	Label   string
	Percent int
	Width   int
	Fill    lipgloss.Style
}

// NewProgressBar creates a bar filled with the secondary color.
func NewProgressBar(label string, percent, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
		Fill:    lipgloss.NewStyle().Background(theme.Secondary),
	}
}

// View renders the bar followed by the percentage.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result)-6, 4)
	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100

	result += p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", pct))
	return result
}
