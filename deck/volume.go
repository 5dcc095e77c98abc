package deck

// VolumeState integrates the pinch-drag volume gesture. While the pinch is
// held, vertical pixel motion of the thumb/index midpoint moves the value;
// releasing the pinch clears the baseline so the next grab starts a fresh
// delta instead of jumping.
type VolumeState struct {
	Value float64

	prevY, currY int
	hasCurr      bool
	touching     bool
	distancePx   float64
}

func newVolumeState() VolumeState {
	return VolumeState{Value: Specs[Volume].Default}
}

// update advances the integrator for one frame. sensitivity is per pixel and
// negative, so upward on-screen motion (decreasing y) raises the value.
func (v *VolumeState) update(midY int, distancePx, sensitivity float64) {
	v.touching = true
	v.distancePx = distancePx

	if !v.hasCurr {
		v.currY = midY
		v.hasCurr = true
		return
	}

	v.prevY = v.currY
	v.currY = midY
	v.Value += sensitivity * float64(v.currY-v.prevY)
	if v.Value < 0 {
		v.Value = 0
	} else if v.Value > 1 {
		v.Value = 1
	}
}

// release clears the touch state and the delta baseline. The value itself
// persists.
func (v *VolumeState) release() {
	v.touching = false
	v.distancePx = 0
	v.hasCurr = false
	v.prevY, v.currY = 0, 0
}
