package deck

import (
	"time"

	"github.com/max-tan123/gestedj/gesture"
)

// ID distinguishes the two decks. Deck 1 follows the left hand, deck 2 the
// right.
type ID int

const (
	Deck1 ID = 1
	Deck2 ID = 2
)

// Params holds the runtime tunables of the state machine.
type Params struct {
	// MaxAngleSpan is the pointer rotation in degrees that covers a knob's
	// full range.
	MaxAngleSpan float64

	// PinchDistancePx activates the volume gesture when the thumb and index
	// tips are closer than this many pixels.
	PinchDistancePx float64

	// VolumeSensitivity is the volume change per pixel of vertical midpoint
	// motion. Negative so that moving up raises the volume.
	VolumeSensitivity float64
}

// DefaultParams matches the calibrated values of the tracker rig.
func DefaultParams() Params {
	return Params{
		MaxAngleSpan:      150,
		PinchDistancePx:   40,
		VolumeSensitivity: -0.0035,
	}
}

// playClearDuration is how long the thumbs-up must stay undetected before
// the UI play flag may toggle again. This only debounces the on-screen
// play/stop state; the MIDI toggle is edge-triggered separately.
const playClearDuration = 300 * time.Millisecond

// Event is a discrete gesture toggle produced during frame processing.
type Event int

const (
	EventPlayToggle Event = iota
	EventEffectToggle
)

// Input is one frame's worth of geometry, precomputed by the engine from the
// deck's landmark frame.
type Input struct {
	Flags     gesture.FingerFlags
	Angle     float64
	PointerUp bool
	ThumbsUp  bool

	// Pinch geometry; PinchMRP is the middle+ring+pinky extension gate.
	PinchMRP        bool
	PinchDistancePx float64
	PinchMidY       int
}

// Deck is one independent control context. All mutation happens on the frame
// processing goroutine; the engine copies state out under its own lock.
type Deck struct {
	id     ID
	side   gesture.Handedness
	params Params

	knobs      map[Control]float64
	activeKnob Control // "" when none
	prevAngle  float64
	hasPrev    bool

	gestureActive bool
	knobLocked    bool
	fingerCount   uint8
	lastAngle     float64

	volume VolumeState

	playToggle   ToggleDebounce
	effectToggle ToggleDebounce

	thumbsShown bool
	effectShown bool

	// UI play/stop flag with its own clear-duration debounce.
	playing    bool
	lastThumbs bool
	clearTime  time.Time
}

// New creates a deck with every knob at its default.
func New(id ID, side gesture.Handedness, params Params) *Deck {
	knobs := make(map[Control]float64, len(KnobControls))
	for _, c := range KnobControls {
		knobs[c] = Specs[c].Default
	}
	return &Deck{
		id:      id,
		side:    side,
		params:  params,
		knobs:   knobs,
		volume:  newVolumeState(),
		playing: true,
	}
}

// ID returns the deck's identifier.
func (d *Deck) ID() ID { return d.id }

// Side returns the handedness this deck follows.
func (d *Deck) Side() gesture.Handedness { return d.side }

// TargetKnob maps a finger configuration onto a knob. The index finger must
// be extended; middle, ring and pinky then form the selection pattern
// (000 filter, 100 low, 110 mid, 111 high). Any other combination selects
// nothing.
func TargetKnob(flags gesture.FingerFlags) (Control, bool) {
	if !flags.Index {
		return "", false
	}
	switch {
	case !flags.Middle && !flags.Ring && !flags.Pinky:
		return Filter, true
	case flags.Middle && !flags.Ring && !flags.Pinky:
		return Low, true
	case flags.Middle && flags.Ring && !flags.Pinky:
		return Mid, true
	case flags.Middle && flags.Ring && flags.Pinky:
		return High, true
	}
	return "", false
}

// Apply advances the deck state machine by one frame and returns any toggle
// events that fired. It never partially mutates knob values: a malformed
// frame must be rejected by the caller via DetectionLoss before geometry is
// computed.
func (d *Deck) Apply(in Input, now time.Time) []Event {
	d.fingerCount = in.Flags.Count()
	d.lastAngle = in.Angle

	target, hasTarget := TargetKnob(in.Flags)

	// Three-branch priority: lowering the pointer freezes the knob, and only
	// the no-pattern state re-arms it. Raising the pointer while the pattern
	// still holds keeps the lock, so jitter cannot re-engage a frozen knob.
	if hasTarget && in.PointerUp && !d.knobLocked {
		if d.activeKnob != target || !d.gestureActive {
			d.activeKnob = target
			d.gestureActive = true
			d.prevAngle = in.Angle
			d.hasPrev = true
		} else if d.hasPrev {
			delta := gesture.WrapDegrees(in.Angle - d.prevAngle)
			spec := Specs[target]
			scaled := delta * spec.Range() / d.params.MaxAngleSpan
			d.knobs[target] = clamp(d.knobs[target]+scaled, spec.Min, spec.Max)
			d.prevAngle = in.Angle
		}
	} else if !in.PointerUp && d.gestureActive {
		d.gestureActive = false
		d.knobLocked = true
		d.hasPrev = false
	} else if !hasTarget {
		d.knobLocked = false
		d.gestureActive = false
		d.hasPrev = false
		d.activeKnob = ""
	}

	// Pinch-drag volume.
	if in.PinchMRP && in.PinchDistancePx < d.params.PinchDistancePx {
		d.volume.update(in.PinchMidY, in.PinchDistancePx, d.params.VolumeSensitivity)
	} else {
		d.volume.release()
	}

	var events []Event
	if d.playToggle.Rising(in.ThumbsUp) {
		events = append(events, EventPlayToggle)
	}
	effect := gesture.EffectTrigger(in.Flags)
	if d.effectToggle.Rising(effect) {
		events = append(events, EventEffectToggle)
	}
	d.thumbsShown = in.ThumbsUp
	d.effectShown = effect

	d.updatePlayState(in.ThumbsUp, now)

	return events
}

// updatePlayState maintains the UI play/stop flag: a fresh thumbs-up toggles
// it only once the gesture has been clear for playClearDuration.
func (d *Deck) updatePlayState(thumbs bool, now time.Time) {
	if thumbs {
		if !d.lastThumbs && now.Sub(d.clearTime) >= playClearDuration {
			d.playing = !d.playing
		}
		d.lastThumbs = true
		return
	}
	if d.lastThumbs {
		d.clearTime = now
	}
	d.lastThumbs = false
}

// NoFrame registers a processed frame in which this deck's hand was not
// seen. The pinch baseline clears so a re-appearing hand starts a fresh
// volume delta; knob state and debounce history persist.
func (d *Deck) NoFrame() {
	d.thumbsShown = false
	d.effectShown = false
	d.volume.release()
}

// DetectionLoss reverts the deck to neutral after a lost or malformed frame.
// Knob and volume values persist; all transient gesture state clears so no
// stale lock survives.
func (d *Deck) DetectionLoss() {
	d.gestureActive = false
	d.knobLocked = false
	d.hasPrev = false
	d.activeKnob = ""
	d.fingerCount = 0
	d.lastAngle = 0
	d.thumbsShown = false
	d.effectShown = false
	d.volume.release()
}

// Snapshot is a copy of everything the sender loop and UI read.
type Snapshot struct {
	ID            ID
	Knobs         map[Control]float64
	ActiveKnob    Control
	GestureActive bool
	KnobLocked    bool
	FingerCount   uint8
	Angle         float64

	Volume          float64
	VolumeTouching  bool
	PinchDistancePx float64

	ThumbsUp bool
	Effect   bool
	Playing  bool
}

// Snapshot copies the deck's observable state. The caller must hold the
// engine lock.
func (d *Deck) Snapshot() Snapshot {
	knobs := make(map[Control]float64, len(d.knobs))
	for c, v := range d.knobs {
		knobs[c] = v
	}
	return Snapshot{
		ID:              d.id,
		Knobs:           knobs,
		ActiveKnob:      d.activeKnob,
		GestureActive:   d.gestureActive,
		KnobLocked:      d.knobLocked,
		FingerCount:     d.fingerCount,
		Angle:           d.lastAngle,
		Volume:          d.volume.Value,
		VolumeTouching:  d.volume.touching,
		PinchDistancePx: d.volume.distancePx,
		ThumbsUp:        d.thumbsShown,
		Effect:          d.effectShown,
		Playing:         d.playing,
	}
}

// Knob returns the current value of one knob.
func (d *Deck) Knob(c Control) float64 { return d.knobs[c] }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
