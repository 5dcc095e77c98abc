package gesture

// Synthetic hand construction shared by the geometry tests. The hand hangs
// below the frame center with the wrist at (0.5, 0.9) and fingers pointing
// up; each finger occupies its own x column so side constraints are easy to
// reason about.

const (
	testWidth  = 1280
	testHeight = 720
)

var fingerColumns = map[int]float64{
	0: 0.35, // thumb
	1: 0.45, // index
	2: 0.50, // middle
	3: 0.55, // ring
	4: 0.60, // pinky
}

// testHand builds a frame with the named fingers extended straight up and
// the rest curled back toward the palm.
func testHand(side Handedness, extended ...int) *Frame {
	f := &Frame{Handedness: side, Width: testWidth, Height: testHeight}
	f.Points[Wrist] = Point{X: 0.5, Y: 0.9}

	ext := make(map[int]bool)
	for _, idx := range extended {
		ext[idx] = true
	}

	// Thumb chain runs diagonally toward the frame edge when extended.
	if ext[0] {
		f.Points[ThumbCMC] = Point{X: 0.42, Y: 0.80}
		f.Points[ThumbMCP] = Point{X: 0.36, Y: 0.74}
		f.Points[ThumbIP] = Point{X: 0.30, Y: 0.68}
		f.Points[ThumbTip] = Point{X: 0.24, Y: 0.62}
	} else {
		f.Points[ThumbCMC] = Point{X: 0.42, Y: 0.82}
		f.Points[ThumbMCP] = Point{X: 0.38, Y: 0.78}
		f.Points[ThumbIP] = Point{X: 0.40, Y: 0.80}
		f.Points[ThumbTip] = Point{X: 0.42, Y: 0.82}
	}

	for finger := 1; finger <= 4; finger++ {
		x := fingerColumns[finger]
		base := 4*finger + 1 // MCP index: 5, 9, 13, 17
		if ext[finger] {
			f.Points[base] = Point{X: x, Y: 0.70}
			f.Points[base+1] = Point{X: x, Y: 0.60}
			f.Points[base+2] = Point{X: x, Y: 0.50}
			f.Points[base+3] = Point{X: x, Y: 0.40}
		} else {
			f.Points[base] = Point{X: x, Y: 0.70}
			f.Points[base+1] = Point{X: x, Y: 0.62}
			f.Points[base+2] = Point{X: x, Y: 0.66}
			f.Points[base+3] = Point{X: x, Y: 0.72}
		}
	}
	return f
}
