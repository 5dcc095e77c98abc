// Package midi is the control-surface output adapter: it owns the virtual
// MIDI ports, maps control values onto 0-127 CC codes with smoothing and
// change suppression, routes decks onto separate channels, and caches
// inbound feedback from the mixer.
package midi

import (
	"github.com/max-tan123/gestedj/deck"
)

// CC numbers per the Mixxx mapping XML.
const (
	CCFilter uint8 = 1
	CCLow    uint8 = 2
	CCMid    uint8 = 3
	CCHigh   uint8 = 4
	CCVolume uint8 = 7

	CCPlayToggle   uint8 = 0x12
	CCEffectToggle uint8 = 0x14

	// ToggleValue is the data byte sent with single-shot toggle messages.
	ToggleValue uint8 = 127
)

var controlCCs = map[deck.Control]uint8{
	deck.Filter: CCFilter,
	deck.Low:    CCLow,
	deck.Mid:    CCMid,
	deck.High:   CCHigh,
	deck.Volume: CCVolume,
}

// ControlCC returns the CC number addressing a control.
func ControlCC(c deck.Control) (uint8, bool) {
	cc, ok := controlCCs[c]
	return cc, ok
}

// CCControl is the inverse of ControlCC, used when ingesting feedback.
func CCControl(cc uint8) (deck.Control, bool) {
	for c, n := range controlCCs {
		if n == cc {
			return c, true
		}
	}
	return "", false
}

// ValueToCode quantizes a control value into a 0-127 protocol code.
//
// Controls whose default is off-center (the EQ bands) map piecewise so that
// the default lands exactly on 64: [min, default] onto [0, 63] and
// [default, max] onto [64, 127]. Controls that are centered, or whose
// default sits on a range endpoint (filter, volume), map linearly.
// Fractions truncate, matching the reference device.
func ValueToCode(c deck.Control, value float64) uint8 {
	s, ok := deck.Specs[c]
	if !ok {
		return 64
	}

	if s.Centered() || s.Default == s.Min || s.Default == s.Max {
		n := clamp01((value - s.Min) / s.Range())
		return uint8(n * 127)
	}

	switch {
	case value == s.Default:
		return 64
	case value < s.Default:
		n := clamp01((value - s.Min) / (s.Default - s.Min))
		return uint8(n * 63)
	default:
		n := clamp01((value - s.Default) / (s.Max - s.Default))
		return 64 + uint8(n*63)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
