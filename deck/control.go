// Package deck implements the per-deck gesture-to-control state machine:
// knob selection from finger patterns, angle-delta integration with
// lock/debounce semantics, pinch-drag volume, and edge-triggered toggles.
package deck

import "fmt"

// Control names one continuously adjustable mixing parameter.
type Control string

const (
	Filter Control = "filter"
	Low    Control = "low"
	Mid    Control = "mid"
	High   Control = "high"
	Volume Control = "volume"
)

// ControlSpec is the immutable value range of one control.
type ControlSpec struct {
	Min     float64
	Max     float64
	Default float64
}

// Range returns the control's full span.
func (s ControlSpec) Range() float64 { return s.Max - s.Min }

// Centered reports whether the control's default sits at the midpoint of its
// range. EQ controls are not centered (default 1.0 in 0..4) and get the
// piecewise MIDI mapping.
func (s ControlSpec) Centered() bool {
	return s.Default == s.Min+s.Range()/2
}

// Specs is the process-wide control table. Validated once at startup,
// never mutated.
var Specs = map[Control]ControlSpec{
	Filter: {Min: 0.0, Max: 1.0, Default: 0.5},
	Low:    {Min: 0.0, Max: 4.0, Default: 1.0},
	Mid:    {Min: 0.0, Max: 4.0, Default: 1.0},
	High:   {Min: 0.0, Max: 4.0, Default: 1.0},
	Volume: {Min: 0.0, Max: 1.0, Default: 1.0},
}

// KnobControls lists the rotary controls driven by the pointer-angle state
// machine, in wire order.
var KnobControls = []Control{Filter, Low, Mid, High}

// ValidateSpecs checks the control table for degenerate entries. Called once
// at startup; an error here is fatal.
func ValidateSpecs() error {
	for name, s := range Specs {
		if s.Range() <= 0 {
			return fmt.Errorf("control %q: empty range [%g, %g]", name, s.Min, s.Max)
		}
		if s.Default < s.Min || s.Default > s.Max {
			return fmt.Errorf("control %q: default %g outside [%g, %g]", name, s.Default, s.Min, s.Max)
		}
	}
	return nil
}
