package deck

import (
	"math"
	"testing"
	"time"
)

func pinchInput(midY int, distancePx float64) Input {
	return Input{
		PinchMRP:        true,
		PinchDistancePx: distancePx,
		PinchMidY:       midY,
	}
}

func TestVolumeDrag(t *testing.T) {
	d := testDeck()
	now := time.Now()

	if got := d.Snapshot().Volume; got != 1.0 {
		t.Fatalf("initial volume = %g, want 1.0", got)
	}

	// First pinch frame only seeds the baseline.
	d.Apply(pinchInput(400, 20), now)
	if got := d.Snapshot().Volume; got != 1.0 {
		t.Fatalf("baseline frame moved volume: %g", got)
	}

	// Drag down 100 px: -0.0035 * 100 = -0.35.
	d.Apply(pinchInput(500, 20), now)
	want := 1.0 - 0.35
	if got := d.Snapshot().Volume; math.Abs(got-want) > 1e-9 {
		t.Fatalf("after 100 px down: volume = %g, want %g", got, want)
	}

	// Drag back up 50 px raises it by 0.175.
	d.Apply(pinchInput(450, 20), now)
	want += 0.175
	if got := d.Snapshot().Volume; math.Abs(got-want) > 1e-9 {
		t.Fatalf("after 50 px up: volume = %g, want %g", got, want)
	}
}

// Releasing the pinch and grabbing again elsewhere must not jump: the new
// position seeds a fresh baseline.
func TestVolumeRegrabNoJump(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(pinchInput(400, 20), now)
	d.Apply(pinchInput(500, 20), now)
	held := d.Snapshot().Volume

	// Open the pinch (distance past the threshold).
	d.Apply(pinchInput(500, 200), now)
	if snap := d.Snapshot(); snap.VolumeTouching {
		t.Fatal("wide pinch still reported as touching")
	}
	if got := d.Snapshot().Volume; got != held {
		t.Fatalf("release changed volume: %g, want %g", got, held)
	}

	// Regrab 300 px higher: seed frame only.
	d.Apply(pinchInput(200, 20), now)
	if got := d.Snapshot().Volume; got != held {
		t.Fatalf("regrab jumped volume: %g, want %g", got, held)
	}
}

// Extending only some of middle/ring/pinky must not gate the volume gesture
// even with the fingers touching.
func TestVolumeRequiresMRPExtension(t *testing.T) {
	d := testDeck()
	now := time.Now()

	in := pinchInput(400, 10)
	in.PinchMRP = false
	d.Apply(in, now)
	d.Apply(Input{PinchMRP: false, PinchDistancePx: 10, PinchMidY: 600}, now)
	if got := d.Snapshot().Volume; got != 1.0 {
		t.Fatalf("volume moved without the MRP gate: %g", got)
	}
}

func TestVolumeSaturation(t *testing.T) {
	var v VolumeState
	v.Value = 0.9

	v.update(100, 20, -0.0035)
	// 400 px up from the baseline: +1.4 worth of travel, clamped at 1.
	v.update(-300, 20, -0.0035)
	if v.Value != 1.0 {
		t.Fatalf("volume above ceiling: %g", v.Value)
	}

	// 600 px down: -2.1 worth, clamped at 0.
	v.update(300, 20, -0.0035)
	if v.Value != 0.0 {
		t.Fatalf("volume below floor: %g", v.Value)
	}
}

func TestVolumeLossKeepsValue(t *testing.T) {
	d := testDeck()
	now := time.Now()

	d.Apply(pinchInput(400, 20), now)
	d.Apply(pinchInput(480, 20), now)
	held := d.Snapshot().Volume

	d.DetectionLoss()
	snap := d.Snapshot()
	if snap.VolumeTouching {
		t.Error("loss left the pinch touching")
	}
	if snap.Volume != held {
		t.Errorf("loss changed volume: %g, want %g", snap.Volume, held)
	}
}
