package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/promptcoach/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗  ██████╗ ███╗   ███╗██████╗ ████████╗
 ██╔══██╗██╔══██╗██╔═══██╗████╗ ████║██╔══██╗╚══██╔══╝
 ██████╔╝██████╔╝██║   ██║██╔████╔██║██████╔╝   ██║
 ██╔═══╝ ██╔══██╗██║   ██║██║╚██╔╝██║██╔═══╝    ██║
 ██║     ██║  ██║╚██████╔╝██║ ╚═╝ ██║██║        ██║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝        ╚═╝
                    C  O  A  C  H`

const bannerCompact = "P R O M P T  C O A C H"

// RenderBanner returns the banner styled in the primary color, falling back
// to a single line on terminals narrower than 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
