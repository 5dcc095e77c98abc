package gesture

import "math"

// ThumbsUp reports whether the frame shows a thumbs-up for the given side.
// Two constraints must hold:
//
//   - side: for a Left hand the whole thumb chain (points 0-4) sits strictly
//     left of every other landmark; for a Right hand strictly right of them.
//   - the thumb chain's y coordinates strictly decrease from wrist to tip
//     (image y grows downward, so the thumb points up).
//
// The comparisons are order-based, so they hold in normalized and pixel
// space alike.
func ThumbsUp(f *Frame) bool {
	thumbMinX, thumbMaxX := f.Points[Wrist].X, f.Points[Wrist].X
	for i := Wrist; i <= ThumbTip; i++ {
		x := f.Points[i].X
		if x < thumbMinX {
			thumbMinX = x
		}
		if x > thumbMaxX {
			thumbMaxX = x
		}
	}

	otherMinX, otherMaxX := f.Points[IndexMCP].X, f.Points[IndexMCP].X
	for i := IndexMCP; i < NumLandmarks; i++ {
		x := f.Points[i].X
		if x < otherMinX {
			otherMinX = x
		}
		if x > otherMaxX {
			otherMaxX = x
		}
	}

	var sideOK bool
	switch f.Handedness {
	case Left:
		sideOK = thumbMaxX < otherMinX
	case Right:
		sideOK = thumbMinX > otherMaxX
	default:
		return false
	}
	if !sideOK {
		return false
	}

	for i := Wrist; i < ThumbTip; i++ {
		if f.Points[i].Y <= f.Points[i+1].Y {
			return false
		}
	}
	return true
}

// EffectTrigger reports the "rockstar" pose: index and pinky extended with
// middle and ring folded.
func EffectTrigger(flags FingerFlags) bool {
	return flags.Index && flags.Pinky && !flags.Middle && !flags.Ring
}

// PinchDistancePx returns the thumb-tip to index-tip distance in pixel space.
func PinchDistancePx(f *Frame) float64 {
	tx, ty := f.Pixel(ThumbTip)
	ix, iy := f.Pixel(IndexTip)
	dx := float64(tx - ix)
	dy := float64(ty - iy)
	return math.Sqrt(dx*dx + dy*dy)
}

// PinchMidY returns the vertical pixel position of the thumb/index tip
// midpoint, tracked frame-to-frame by the pinch-volume gesture.
func PinchMidY(f *Frame) int {
	_, ty := f.Pixel(ThumbTip)
	_, iy := f.Pixel(IndexTip)
	return (ty + iy) / 2
}
