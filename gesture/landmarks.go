// Package gesture provides pure geometry over MediaPipe-style hand landmark
// frames: finger extension classification, pointer angle, and the predicates
// used by the discrete gesture detectors.
package gesture

import "math"

// Hand landmark indices following the MediaPipe convention.
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels a tracked hand. Each deck is bound to one side.
type Handedness string

const (
	Left  Handedness = "Left"
	Right Handedness = "Right"
)

// Point is a single landmark in normalized [0,1]x[0,1] image space,
// z in the tracker's relative depth units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is one hand's landmark set for one camera frame. Width and Height
// are the pixel dimensions of the source frame, used for the pixel-space
// pinch threshold.
type Frame struct {
	Points     [NumLandmarks]Point `json:"points"`
	Handedness Handedness          `json:"handedness"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
}

// InBounds reports whether the landmark at idx lies inside the normalized
// image rectangle. Out-of-bounds points mean the tracker extrapolated past
// the frame edge and the frame should not drive control changes.
func (f *Frame) InBounds(idx int) bool {
	p := f.Points[idx]
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

// Valid reports whether every landmark the knob state machine depends on
// (wrist, index PIP, index tip) is in bounds.
func (f *Frame) Valid() bool {
	return f.InBounds(Wrist) && f.InBounds(IndexPIP) && f.InBounds(IndexTip)
}

// Pixel returns the landmark at idx scaled into pixel coordinates.
func (f *Frame) Pixel(idx int) (x, y int) {
	p := f.Points[idx]
	return int(p.X * float64(f.Width)), int(p.Y * float64(f.Height))
}

func dist2D(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func dist3D(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
