package deck

import (
	"math"
	"testing"
	"time"

	"github.com/max-tan123/gestedj/gesture"
)

func testDeck() *Deck {
	return New(Deck1, gesture.Left, DefaultParams())
}

// knobInput builds a frame input selecting the given knob with the pointer
// raised at the given angle.
func knobInput(target Control, angle float64) Input {
	flags := gesture.FingerFlags{Index: true}
	switch target {
	case Low:
		flags.Middle = true
	case Mid:
		flags.Middle, flags.Ring = true, true
	case High:
		flags.Middle, flags.Ring, flags.Pinky = true, true, true
	}
	return Input{Flags: flags, Angle: angle, PointerUp: true}
}

func TestTargetKnob(t *testing.T) {
	cases := []struct {
		flags gesture.FingerFlags
		want  Control
		ok    bool
	}{
		{gesture.FingerFlags{Index: true}, Filter, true},
		{gesture.FingerFlags{Index: true, Middle: true}, Low, true},
		{gesture.FingerFlags{Index: true, Middle: true, Ring: true}, Mid, true},
		{gesture.FingerFlags{Index: true, Middle: true, Ring: true, Pinky: true}, High, true},
		{gesture.FingerFlags{}, "", false},
		{gesture.FingerFlags{Middle: true, Ring: true, Pinky: true}, "", false},
		// Gaps in the pattern select nothing.
		{gesture.FingerFlags{Index: true, Ring: true}, "", false},
		{gesture.FingerFlags{Index: true, Middle: true, Pinky: true}, "", false},
		// Thumb is ignored by selection.
		{gesture.FingerFlags{Thumb: true, Index: true}, Filter, true},
	}
	for _, c := range cases {
		got, ok := TargetKnob(c.flags)
		if got != c.want || ok != c.ok {
			t.Errorf("TargetKnob(%+v) = (%q, %v), want (%q, %v)", c.flags, got, ok, c.want, c.ok)
		}
	}
}

// Angle sequence 0→30→175→-175 on the low knob: deltas +30, +145, +10
// (wrap-corrected), scaled by range/span = 4/150, clamped into [0, 4].
func TestAngleIntegrationAcrossWrap(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(knobInput(Low, 0), now) // restart frame, no integration
	if got := d.Knob(Low); got != 1.0 {
		t.Fatalf("after restart frame: low = %g, want default 1.0", got)
	}

	d.Apply(knobInput(Low, 30), now)
	want := 1.0 + 30*4.0/150
	if got := d.Knob(Low); math.Abs(got-want) > 1e-9 {
		t.Fatalf("after +30°: low = %g, want %g", got, want)
	}

	d.Apply(knobInput(Low, 175), now)
	want += 145 * 4.0 / 150
	if want > 4 {
		want = 4
	}
	if got := d.Knob(Low); math.Abs(got-want) > 1e-9 {
		t.Fatalf("after +145°: low = %g, want %g", got, want)
	}

	// 175 → -175 crosses the wrap boundary: wrap(-350) = +10, still clamped.
	d.Apply(knobInput(Low, -175), now)
	if got := d.Knob(Low); got != 4.0 {
		t.Fatalf("after wrap crossing: low = %g, want clamped 4.0", got)
	}
}

// Switching knobs mid-gesture restarts the baseline so the new knob does
// not jump by the accumulated angle.
func TestKnobSwitchNoJump(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(knobInput(Low, 0), now)
	d.Apply(knobInput(Low, 60), now)
	if d.Knob(Low) == Specs[Low].Default {
		t.Fatal("low should have moved")
	}

	// Switch to mid at a far angle: restart, no integration this frame.
	d.Apply(knobInput(Mid, 140), now)
	if got := d.Knob(Mid); got != Specs[Mid].Default {
		t.Errorf("mid moved on switch frame: %g", got)
	}

	// Next frame integrates from the new baseline.
	d.Apply(knobInput(Mid, 150), now)
	want := Specs[Mid].Default + 10*4.0/150
	if got := d.Knob(Mid); math.Abs(got-want) > 1e-9 {
		t.Errorf("mid = %g, want %g", got, want)
	}
}

// Lowering the pointer freezes the knob; the lock holds until the finger
// pattern fully clears, even if the pointer comes back up.
func TestKnobLock(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(knobInput(Low, 0), now)
	d.Apply(knobInput(Low, 30), now)
	frozen := d.Knob(Low)

	// Pointer down: gesture ends, knob locks.
	in := knobInput(Low, 30)
	in.PointerUp = false
	d.Apply(in, now)

	snap := d.Snapshot()
	if !snap.KnobLocked || snap.GestureActive {
		t.Fatalf("after pointer down: locked=%v active=%v, want locked, inactive", snap.KnobLocked, snap.GestureActive)
	}

	// Pointer back up with the same pattern: lock must hold, value frozen.
	for _, angle := range []float64{40, 80, 120} {
		d.Apply(knobInput(Low, angle), now)
	}
	if got := d.Knob(Low); got != frozen {
		t.Fatalf("locked knob moved: %g, want %g", got, frozen)
	}

	// Clearing the pattern re-arms.
	d.Apply(Input{}, now)
	if d.Snapshot().KnobLocked {
		t.Fatal("no-pattern frame should clear the lock")
	}

	d.Apply(knobInput(Low, 0), now)
	d.Apply(knobInput(Low, 30), now)
	if got := d.Knob(Low); got == frozen {
		t.Fatal("re-armed knob should integrate again")
	}
}

func TestDetectionLoss(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(knobInput(High, 0), now)
	d.Apply(knobInput(High, -45), now)
	moved := d.Knob(High)

	d.DetectionLoss()

	snap := d.Snapshot()
	if snap.ActiveKnob != "" || snap.GestureActive || snap.KnobLocked {
		t.Errorf("loss left transient state: %+v", snap)
	}
	if snap.FingerCount != 0 {
		t.Errorf("loss left finger count %d", snap.FingerCount)
	}
	if got := d.Knob(High); got != moved {
		t.Errorf("loss changed knob value: %g, want %g", got, moved)
	}

	// After loss, a fresh gesture restarts cleanly from the held value.
	d.Apply(knobInput(High, 90), now)
	if got := d.Knob(High); got != moved {
		t.Errorf("restart after loss integrated immediately: %g, want %g", got, moved)
	}
}

// Knob values must stay inside their spec range through arbitrary angle
// streaks.
func TestKnobClampInvariant(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(knobInput(Filter, 0), now)
	angle := 0.0
	for i := 0; i < 200; i++ {
		angle = gesture.WrapDegrees(angle + 37)
		d.Apply(knobInput(Filter, angle), now)
		v := d.Knob(Filter)
		if v < Specs[Filter].Min || v > Specs[Filter].Max {
			t.Fatalf("filter escaped range: %g", v)
		}
	}
}

func TestPlayStateClearDuration(t *testing.T) {
	d := testDeck()
	start := time.Now()

	// First thumbs-up toggles play off.
	d.Apply(Input{ThumbsUp: true}, start)
	if d.Snapshot().Playing {
		t.Fatal("first thumbs-up should toggle play state off")
	}

	// Released only briefly: re-detection inside the clear window must not
	// toggle again.
	d.Apply(Input{}, start.Add(50*time.Millisecond))
	d.Apply(Input{ThumbsUp: true}, start.Add(100*time.Millisecond))
	if d.Snapshot().Playing {
		t.Fatal("re-detection inside the clear window toggled the play state")
	}

	// Released long enough: the next detection toggles.
	d.Apply(Input{}, start.Add(200*time.Millisecond))
	d.Apply(Input{ThumbsUp: true}, start.Add(600*time.Millisecond))
	if !d.Snapshot().Playing {
		t.Fatal("detection after the clear window should toggle play state on")
	}
}

func TestValidateSpecs(t *testing.T) {
	if err := ValidateSpecs(); err != nil {
		t.Fatalf("built-in specs invalid: %v", err)
	}
}
