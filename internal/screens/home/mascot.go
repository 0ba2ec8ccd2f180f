package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Sapling
	MascotCelebrating                      // In bloom, practiced today
	MascotThirsty                          // Drooping, no practice for days
)

const mascotIdle = `   ,@@,
  @@@@@@
   @@@@
    ||
 ~~~~~~~~`

const mascotCelebrating = ` * ,@@, *
  @@@@@@
 * @@@@ *
    ||
 ~~~~~~~~`

const mascotThirsty = `   ,@@,
  @@@@@@ ~
  '@@@@'
    ||
 ........`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotThirsty:
		art = mascotThirsty
		fg = theme.Soil
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
