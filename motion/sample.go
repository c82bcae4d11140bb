package motion

import (
	"errors"
	"math"
	"strconv"
)

// ErrSensorUnavailable is returned by a Source that cannot produce a sample
// this cycle.
var ErrSensorUnavailable = errors.New("sensor unavailable")

// Vec3 is a three-axis reading
type Vec3 struct {
	X, Y, Z float32
}

// String formats the reading as "x, y, z" with 4 significant digits
func (v Vec3) String() string {
	return formatFloat(v.X) + ", " + formatFloat(v.Y) + ", " + formatFloat(v.Z)
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', 4, 32)
}

// Sample is one accelerometer (g) + gyroscope (deg/s) reading
type Sample struct {
	Accel Vec3
	Gyro  Vec3
}

// Source produces motion samples on demand
type Source interface {
	ReadMotion() (Sample, error)
}

// Buttons reports the two debounced mode-request signals
type Buttons interface {
	Requests() (front, side bool)
}

// NoButtons never requests a mode change
type NoButtons struct{}

func (NoButtons) Requests() (front, side bool) { return false, false }

// Magnitude is the absolute value of a signed reading
func Magnitude(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
