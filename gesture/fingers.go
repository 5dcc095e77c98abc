package gesture

import "math"

// Classification thresholds, matching the calibrated tracker behavior.
const (
	// CurvatureThreshold is the maximum summed bend angle (degrees) across a
	// finger's PIP and DIP joints for the finger to count as straight.
	CurvatureThreshold = 40.0

	// RadialMarginFrac is the fraction of palm scale used as slack in the
	// radial monotonicity test.
	RadialMarginFrac = 0.03

	// minPalmScale rejects degenerate hands that are too small in frame.
	minPalmScale = 0.01
)

// FingerFlags holds the per-finger extension classification for one frame.
type FingerFlags struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// Count returns the number of extended non-thumb fingers.
func (f FingerFlags) Count() uint8 {
	n := uint8(0)
	for _, up := range []bool{f.Index, f.Middle, f.Ring, f.Pinky} {
		if up {
			n++
		}
	}
	return n
}

// fingerChains lists each finger's four-point joint chain, base to tip.
var fingerChains = [5][4]int{
	{ThumbCMC, ThumbMCP, ThumbIP, ThumbTip},
	{IndexMCP, IndexPIP, IndexDIP, IndexTip},
	{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip},
	{RingMCP, RingPIP, RingDIP, RingTip},
	{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip},
}

// ExtendedFingers classifies each finger as extended or not. A finger is
// extended iff it is straight (summed joint curvature below
// CurvatureThreshold) and radial-monotonic (joints at strictly increasing
// distance from the wrist, with a margin proportional to palm scale).
// A degenerate palm scale yields all-false flags.
func ExtendedFingers(f *Frame) FingerFlags {
	var flags FingerFlags

	wrist := f.Points[Wrist]
	palmScale := dist3D(f.Points[IndexMCP], wrist)
	if palmScale < minPalmScale {
		return flags
	}
	margin := RadialMarginFrac * palmScale

	out := [5]*bool{&flags.Thumb, &flags.Index, &flags.Middle, &flags.Ring, &flags.Pinky}
	for i, chain := range fingerChains {
		mcp := f.Points[chain[0]]
		pip := f.Points[chain[1]]
		dip := f.Points[chain[2]]
		tip := f.Points[chain[3]]

		curvature := bendAngle(mcp, pip, dip) + bendAngle(pip, dip, tip)
		straight := curvature < CurvatureThreshold

		rMCP := dist3D(mcp, wrist)
		rPIP := dist3D(pip, wrist)
		rDIP := dist3D(dip, wrist)
		rTIP := dist3D(tip, wrist)
		monotonic := rMCP+margin < rPIP && rPIP < rDIP && rDIP < rTIP-margin/2

		*out[i] = straight && monotonic
	}
	return flags
}

// bendAngle returns the angle in degrees between segments a→b and b→c.
// Degenerate segments count as zero bend.
func bendAngle(a, b, c Point) float64 {
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-b.X, c.Y-b.Y, c.Z-b.Z

	nu := math.Sqrt(ux*ux + uy*uy + uz*uz)
	nv := math.Sqrt(vx*vx + vy*vy + vz*vz)
	if nu < 1e-8 || nv < 1e-8 {
		return 0
	}
	cos := (ux*vx + uy*vy + uz*vz) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
