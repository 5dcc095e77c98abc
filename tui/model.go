package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/max-tan123/gestedj/deck"
	"github.com/max-tan123/gestedj/engine"
	"github.com/max-tan123/gestedj/midi"
	"github.com/max-tan123/gestedj/theme"
	"github.com/max-tan123/gestedj/widgets"
)

// Model is the terminal status view: live knob/volume state per deck plus
// the mixer's feedback codes. It never mutates deck state; all writes go
// through the engine.
type Model struct {
	Engine   *engine.Engine
	Feedback *midi.FeedbackCache // may be nil when running without MIDI

	theme *theme.Theme
	gauge widgets.Gauge

	headerStyle lipgloss.Style
	deckStyle   lipgloss.Style
	activeStyle lipgloss.Style
	lockedStyle lipgloss.Style
	dimStyle    lipgloss.Style

	showHelp bool
	quitting bool
}

type UpdateMsg struct{}

func NewModel(eng *engine.Engine, feedback *midi.FeedbackCache, t *theme.Theme) Model {
	if t == nil {
		t = theme.New(theme.Default())
	}
	return Model{
		Engine:   eng,
		Feedback: feedback,
		theme:    t,
		gauge:    widgets.Gauge{Width: 12, Theme: t},

		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(t.Header()),
		deckStyle:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		activeStyle: lipgloss.NewStyle().Foreground(t.Active()),
		lockedStyle: lipgloss.NewStyle().Foreground(t.Warning()),
		dimStyle:    lipgloss.NewStyle().Foreground(t.Muted()),
	}
}

func ListenForUpdates(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-eng.UpdateChan
		return UpdateMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Engine)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "t":
			m.Engine.TriggerTest()

		case "r":
			m.Engine.TriggerReset()

		case "?":
			m.showHelp = !m.showHelp
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Engine)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Engine.Snapshot()

	header := m.headerStyle.Render("GesteDJ  gesture control engine")
	decks := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.deckView(snap.Deck1, "Deck 1 (left hand)"),
		"  ",
		m.deckView(snap.Deck2, "Deck 2 (right hand)"),
	)

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(decks)
	out.WriteString("\n")
	if m.showHelp {
		out.WriteString(m.dimStyle.Render(widgets.RenderKeyHelp(keyHelp)))
	} else {
		out.WriteString(m.dimStyle.Render("t:test sequence  r:reset controls  ?:help  q:quit"))
	}
	return out.String()
}

var keyHelp = []widgets.KeySection{
	{Title: "MIDI", Keys: []widgets.KeyBinding{
		{Key: "t", Desc: "send the mapping test sequence (both decks)"},
		{Key: "r", Desc: "force-send every control's default"},
	}},
	{Title: "General", Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "toggle this help"},
		{Key: "q", Desc: "quit"},
	}},
}

func (m Model) deckView(s deck.Snapshot, title string) string {
	var b strings.Builder
	b.WriteString(title)
	if s.KnobLocked {
		b.WriteString(m.lockedStyle.Render("  [locked]"))
	}
	b.WriteString("\n")

	var feedback map[deck.Control]uint8
	if m.Feedback != nil {
		feedback = m.Feedback.Snapshot(s.ID)
	}

	for _, c := range deck.KnobControls {
		spec := deck.Specs[c]
		v := s.Knobs[c]
		line := fmt.Sprintf("%-6s %5.2f %s", c, v, m.gauge.Render(v, spec.Min, spec.Max))
		if code, ok := feedback[c]; ok {
			line += m.dimStyle.Render(fmt.Sprintf(" fb:%3d", code))
		}
		if c == s.ActiveKnob && s.GestureActive {
			line += m.activeStyle.Render(" *")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	vol := fmt.Sprintf("%-6s %4.0f%% %s", "volume", s.Volume*100, m.gauge.Render(s.Volume, 0, 1))
	if s.VolumeTouching {
		vol += m.activeStyle.Render(fmt.Sprintf(" %c %.0fpx", m.theme.Symbols.Pinch, s.PinchDistancePx))
	}
	b.WriteString(vol)
	b.WriteString("\n")

	state := fmt.Sprintf("%c STOP", m.theme.Symbols.Stop)
	if s.Playing {
		state = fmt.Sprintf("%c PLAY", m.theme.Symbols.Play)
	}
	b.WriteString(fmt.Sprintf("%s  fingers:%d  angle:%6.1f", state, s.FingerCount, s.Angle))
	if s.ThumbsUp {
		b.WriteString("  thumbs-up")
	}
	if s.Effect {
		b.WriteString("  effect")
	}

	return m.deckStyle.Render(b.String())
}
