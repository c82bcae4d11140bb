package motion

import "math"

// MaxValue is the top of the MIDI data byte range
const MaxValue = 127

// ScaleAccel maps an acceleration in g to 0-127.
// The input is clamped to ±1g, so anything at or past 1g saturates.
func ScaleAccel(x float32) uint8 {
	v := math.Abs(float64(x))
	if math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Ceil(v * MaxValue))
}

// ScaleGyroRatio maps how far the window max exceeds the window average to
// 0-127: ceil(|max/avg - 1| * 127), clamped at 127.
// An all-zero window has no defined ratio and scales to 0.
func ScaleGyroRatio(avg, max float32) uint8 {
	if !(avg > 0) {
		return 0
	}
	ratio := math.Abs(float64(max)/float64(avg) - 1)
	if math.IsNaN(ratio) {
		return 0
	}
	v := math.Ceil(ratio * MaxValue)
	if v > MaxValue {
		return MaxValue
	}
	return uint8(v)
}
