package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██████╗ ██████╗  ██████╗ ██████╗
 ██╔══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗
 ███████║██████╔╝██████╔╝██║   ██║██████╔╝
 ██╔══██║██╔══██╗██╔══██╗██║   ██║██╔══██╗
 ██║  ██║██║  ██║██████╔╝╚██████╔╝██║  ██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "A R B O R"

// BannerMinWidth is the narrowest terminal that fits the block banner.
const BannerMinWidth = 46

// RenderBanner returns the arbor banner styled in the primary color,
// falling back to spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < BannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
