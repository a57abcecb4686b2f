// Package layout draws the chrome around every screen: header, footer and
// the frame that sizes screen content between them.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one "Key Description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderInfo is the learner status on the right of the header.
type HeaderInfo struct {
	UserID     string
	SkillLevel int
	Completed  int
}

func IsCompact(width, height int) bool {
	return width < CompactWidthThreshold || height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage replaces the whole UI while the terminal is
// smaller than MinWidth x MinHeight.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("PromptCoach needs a %dx%d terminal.\n\nThis one is %dx%d.\nMake it a little bigger?",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// bar is the rounded card used for both header and footer.
func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// spread lays out left, center and right on one line of width cells,
// keeping center as close to the middle as the sides allow.
func spread(left, center, right string, width int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderHeader shows the app name, the active screen title and the
// learner status.
func RenderHeader(title string, info HeaderInfo, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  PromptCoach")
	name := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	var status string
	if info.UserID != "" {
		status = lipgloss.NewStyle().Foreground(theme.Secondary).Render(info.UserID) + "   "
	}
	status += lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("L%d  ✓ %d", info.SkillLevel, info.Completed))

	// Two border columns plus one column of padding on each side.
	return bar(width, spread(brand, name, status, max(width-4, 0)))
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return bar(width, b.String())
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(max(body, 0)).Render(content),
		footer,
	)
}

// Centered renders s with style, centered in width.
func Centered(width int, style lipgloss.Style, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(s))
}

// Wrap soft-wraps text to width columns, never narrower than 10.
func Wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 10)).Render(text)
}
