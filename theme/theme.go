package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Value gauges
	BarFull  rune // █ filled gauge cell
	BarEmpty rune // ░ empty gauge cell

	// Deck status line
	Play  rune // ▶ deck playing
	Stop  rune // ■ deck stopped
	Pinch rune // ◉ pinch engaged
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			BarFull:  '█',
			BarEmpty: '░',

			Play:  '▶',
			Stop:  '■',
			Pinch: '◉',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.1 // dim labels, help line
	RoleFG      = 0.3 // body text
	RoleHeader  = 0.5 // title bar
	RoleActive  = 0.7 // knob being turned, pinch held
	RoleWarning = 0.9 // locked knob
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Header() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleHeader))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// Level returns the gradient color for a normalized control value, so a
// gauge warms up as the knob opens.
func (t *Theme) Level(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
