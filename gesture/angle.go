package gesture

import "math"

// PointerUpRatio is how much farther than the index MCP the index tip must
// sit from the wrist for the pointer to count as raised.
const PointerUpRatio = 1.15

// minPointerLen rejects pointer vectors too short to carry a stable angle.
const minPointerLen = 0.01

// WrapDegrees normalizes an angle or angle delta into (-180, 180].
func WrapDegrees(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg <= -180 {
		deg += 360
	}
	return deg
}

// PointerAngle returns the orientation of the wrist→index-tip vector as
// atan2(-dx, dy) in degrees, wrapped into (-180, 180]. A hand pointing
// straight up in image space reads ±180; rotating the pointer sweeps the
// angle continuously. Returns 0 for degenerate or out-of-bounds landmarks.
func PointerAngle(f *Frame) float64 {
	if !f.InBounds(Wrist) || !f.InBounds(IndexTip) {
		return 0
	}

	dx := f.Points[IndexTip].X - f.Points[Wrist].X
	dy := f.Points[IndexTip].Y - f.Points[Wrist].Y
	if math.Sqrt(dx*dx+dy*dy) < minPointerLen {
		return 0
	}

	return WrapDegrees(math.Atan2(-dx, dy) * 180 / math.Pi)
}

// PointerUp reports whether the index finger is raised: index tip clearly
// farther from the wrist than the index MCP. Out-of-bounds landmarks report
// false so a marginal frame cannot keep a gesture alive.
func PointerUp(f *Frame) bool {
	if !f.InBounds(Wrist) || !f.InBounds(IndexTip) || !f.InBounds(IndexMCP) {
		return false
	}

	wrist := f.Points[Wrist]
	tipDist := dist2D(f.Points[IndexTip], wrist)
	mcpDist := dist2D(f.Points[IndexMCP], wrist)
	return tipDist > mcpDist*PointerUpRatio
}
