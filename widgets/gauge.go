package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/max-tan123/gestedj/theme"
)

// Gauge renders a fixed-width horizontal value bar, color-graded by level.
type Gauge struct {
	Width int
	Theme *theme.Theme
}

// Render draws the gauge for a value inside [min, max].
func (g Gauge) Render(value, min, max float64) string {
	width := g.Width
	if width <= 0 {
		width = 12
	}

	frac := (value - min) / (max - min)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)

	full := strings.Repeat(string(g.Theme.Symbols.BarFull), filled)
	empty := strings.Repeat(string(g.Theme.Symbols.BarEmpty), width-filled)

	style := lipgloss.NewStyle().Foreground(g.Theme.Level(frac))
	return style.Render(full) + empty
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
