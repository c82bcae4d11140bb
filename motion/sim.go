package motion

import "math"

// SimSource fakes a hand swinging back and forth with a flick every few
// seconds. It is deterministic: every read advances one step.
type SimSource struct {
	Period     int     // steps per swing
	BurstEvery int     // steps between flicks (0 = never)
	Amplitude  float32 // peak accel in g
	BaseGyro   float32 // steady rotation in deg/s
	BurstGyro  float32 // rotation during a flick in deg/s

	step int
}

// NewSimSource returns a simulator with values in the range an MPU6886 reports
// for a handheld stick.
func NewSimSource() *SimSource {
	return &SimSource{
		Period:     40,
		BurstEvery: 30,
		Amplitude:  0.9,
		BaseGyro:   20,
		BurstGyro:  250,
	}
}

func (s *SimSource) ReadMotion() (Sample, error) {
	period := s.Period
	if period <= 0 {
		period = 1
	}
	phase := 2 * math.Pi * float64(s.step%period) / float64(period)

	gyro := s.BaseGyro * float32(1+math.Sin(phase*3)) / 2
	if s.BurstEvery > 0 && s.step%s.BurstEvery == 0 {
		gyro = s.BurstGyro
	}
	s.step++

	return Sample{
		Accel: Vec3{
			X: s.Amplitude * float32(math.Sin(phase)),
			Y: s.Amplitude * float32(math.Cos(phase)) / 2,
			Z: 1,
		},
		Gyro: Vec3{
			X: gyro,
			Y: -gyro / 3,
			Z: s.BaseGyro / 4,
		},
	}, nil
}
