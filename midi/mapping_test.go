package midi

import (
	"testing"

	"github.com/max-tan123/gestedj/deck"
)

func TestValueToCodeEQPiecewise(t *testing.T) {
	cases := []struct {
		control deck.Control
		value   float64
		want    uint8
	}{
		// EQ bands: [0, 1] maps onto [0, 63], [1, 4] onto [64, 127],
		// the default lands exactly on 64, fractions truncate.
		{deck.Low, 0.0, 0},
		{deck.Low, 0.5, 31},
		{deck.Low, 1.0, 64},
		{deck.Low, 2.5, 95},
		{deck.Low, 4.0, 127},
		{deck.Mid, 1.0, 64},
		{deck.High, 0.25, 15},

		// Out-of-range values clamp to the endpoints.
		{deck.Low, -1.0, 0},
		{deck.Low, 9.0, 127},
	}
	for _, c := range cases {
		if got := ValueToCode(c.control, c.value); got != c.want {
			t.Errorf("ValueToCode(%s, %g) = %d, want %d", c.control, c.value, got, c.want)
		}
	}
}

func TestValueToCodeLinear(t *testing.T) {
	cases := []struct {
		control deck.Control
		value   float64
		want    uint8
	}{
		// Filter is centered: plain linear mapping.
		{deck.Filter, 0.0, 0},
		{deck.Filter, 0.5, 63},
		{deck.Filter, 1.0, 127},

		// Volume's default sits on the range ceiling, so it maps linearly
		// too instead of collapsing the upper segment.
		{deck.Volume, 0.0, 0},
		{deck.Volume, 0.5, 63},
		{deck.Volume, 1.0, 127},
	}
	for _, c := range cases {
		if got := ValueToCode(c.control, c.value); got != c.want {
			t.Errorf("ValueToCode(%s, %g) = %d, want %d", c.control, c.value, got, c.want)
		}
	}
}

// Every knob's endpoints and default must hit the protocol anchor codes.
func TestValueToCodeAnchors(t *testing.T) {
	for _, c := range deck.KnobControls {
		s := deck.Specs[c]
		if got := ValueToCode(c, s.Min); got != 0 {
			t.Errorf("%s min → %d, want 0", c, got)
		}
		if got := ValueToCode(c, s.Max); got != 127 {
			t.Errorf("%s max → %d, want 127", c, got)
		}
		got := ValueToCode(c, s.Default)
		var want uint8 = 64
		if s.Centered() {
			want = 63
		}
		if got != want {
			t.Errorf("%s default → %d, want %d", c, got, want)
		}
	}
}

// Codes must never decrease as the value increases.
func TestValueToCodeMonotonic(t *testing.T) {
	for _, c := range append(append([]deck.Control{}, deck.KnobControls...), deck.Volume) {
		s := deck.Specs[c]
		prev := ValueToCode(c, s.Min)
		for i := 1; i <= 400; i++ {
			v := s.Min + s.Range()*float64(i)/400
			code := ValueToCode(c, v)
			if code < prev {
				t.Fatalf("%s: code dropped %d → %d at value %g", c, prev, code, v)
			}
			prev = code
		}
	}
}

func TestControlCCRoundTrip(t *testing.T) {
	for _, c := range []deck.Control{deck.Filter, deck.Low, deck.Mid, deck.High, deck.Volume} {
		cc, ok := ControlCC(c)
		if !ok {
			t.Fatalf("no CC for %s", c)
		}
		back, ok := CCControl(cc)
		if !ok || back != c {
			t.Errorf("CCControl(%d) = (%s, %v), want (%s, true)", cc, back, ok, c)
		}
	}
	if _, ok := CCControl(99); ok {
		t.Error("CCControl(99) resolved an unmapped CC")
	}
}
