package midi

import (
	"time"

	"github.com/max-tan123/gestedj/debug"
	"github.com/max-tan123/gestedj/deck"
)

// SendFunc transmits one Control Change message. Device provides the real
// implementation; tests inject a recorder.
type SendFunc func(channel, cc, value uint8) error

// Output turns deck snapshots into rate-friendly CC traffic. Each
// (deck, control) pair carries its own exponential smoother and
// last-sent-code record, so a value is only re-sent once its quantized code
// moves by at least two steps. Only the sender loop touches an Output.
type Output struct {
	send     SendFunc
	channels map[deck.ID]uint8
	alpha    float64 // smoothing retention, 0 = none

	state map[outKey]*channelState
}

type outKey struct {
	deck    deck.ID
	control deck.Control
}

type channelState struct {
	smoothed float64
	seeded   bool
	lastCode uint8
	hasLast  bool
}

// minCodeDelta is the quantized-code change required before a control is
// re-sent.
const minCodeDelta = 2

// NewOutput creates an adapter routing each deck onto its MIDI channel.
func NewOutput(send SendFunc, channels map[deck.ID]uint8, alpha float64) *Output {
	chans := make(map[deck.ID]uint8, len(channels))
	for id, ch := range channels {
		chans[id] = ch
	}
	return &Output{
		send:     send,
		channels: chans,
		alpha:    alpha,
		state:    make(map[outKey]*channelState),
	}
}

func (o *Output) channelState(id deck.ID, c deck.Control) *channelState {
	k := outKey{id, c}
	st, ok := o.state[k]
	if !ok {
		st = &channelState{}
		o.state[k] = st
	}
	return st
}

// smooth advances the control's exponential smoother and returns the new
// value. The first sample seeds the smoother directly so startup does not
// sweep up from zero.
func (o *Output) smooth(st *channelState, raw float64) float64 {
	if !st.seeded {
		st.smoothed = raw
		st.seeded = true
		return raw
	}
	st.smoothed = o.alpha*st.smoothed + (1-o.alpha)*raw
	return st.smoothed
}

// UpdateControl smooths, quantizes and conditionally transmits one control
// value. Returns true if a message went out. force bypasses change
// suppression (used by reset and the test sequence).
func (o *Output) UpdateControl(id deck.ID, c deck.Control, value float64, force bool) (bool, error) {
	cc, ok := ControlCC(c)
	if !ok {
		return false, nil
	}
	ch, ok := o.channels[id]
	if !ok {
		return false, nil
	}

	st := o.channelState(id, c)
	code := ValueToCode(c, o.smooth(st, value))

	if !force && st.hasLast {
		diff := int(code) - int(st.lastCode)
		if diff < 0 {
			diff = -diff
		}
		if diff < minCodeDelta {
			return false, nil
		}
	}

	if err := o.send(ch, cc, code); err != nil {
		// State is kept; the next sender cycle retries from live values.
		return false, err
	}
	st.lastCode = code
	st.hasLast = true
	return true, nil
}

// UpdateDeck pushes a deck snapshot onto the wire: the active knob first,
// then the remaining knobs, then volume. Returns how many messages were
// sent.
func (o *Output) UpdateDeck(snap deck.Snapshot) int {
	sent := 0
	push := func(c deck.Control, v float64) {
		ok, err := o.UpdateControl(snap.ID, c, v, false)
		if err != nil {
			debug.Log("midi-out", "deck %d %s send failed: %v", snap.ID, c, err)
			return
		}
		if ok {
			sent++
		}
	}

	if snap.ActiveKnob != "" {
		if v, ok := snap.Knobs[snap.ActiveKnob]; ok {
			push(snap.ActiveKnob, v)
		}
	}
	for _, c := range deck.KnobControls {
		if c == snap.ActiveKnob {
			continue
		}
		push(c, snap.Knobs[c])
	}
	push(deck.Volume, snap.Volume)
	return sent
}

// SendToggle emits one single-shot toggle message on the deck's channel.
func (o *Output) SendToggle(id deck.ID, cc uint8) error {
	ch, ok := o.channels[id]
	if !ok {
		return nil
	}
	return o.send(ch, cc, ToggleValue)
}

// Reset force-sends every control's default code, announcing a known state
// to the mixer.
func (o *Output) Reset() {
	for id := range o.channels {
		for _, c := range deck.KnobControls {
			o.UpdateControl(id, c, deck.Specs[c].Default, true)
		}
		o.UpdateControl(id, deck.Volume, deck.Specs[deck.Volume].Default, true)
	}
}

// TestSequence sweeps each knob min → center → max → center with force
// sends, for verifying the mixer mapping end to end.
func (o *Output) TestSequence(id deck.ID, pause time.Duration) {
	for _, c := range deck.KnobControls {
		s := deck.Specs[c]
		for _, v := range []float64{s.Min, s.Default, s.Max, s.Default} {
			// Bypass the smoother too: the sweep should hit exact endpoints.
			st := o.channelState(id, c)
			st.smoothed = v
			st.seeded = true
			o.UpdateControl(id, c, v, true)
			if pause > 0 {
				time.Sleep(pause)
			}
		}
	}
}
