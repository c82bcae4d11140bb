//go:build tinygo

package main

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/mpu6886"

	"motion-midi/motion"
)

// imuSource reads the MPU6886. The driver reports micro-g and
// micro-degrees per second.
type imuSource struct {
	dev *mpu6886.Device
}

func (s *imuSource) ReadMotion() (motion.Sample, error) {
	ax, ay, az, err := s.dev.ReadAcceleration()
	if err != nil {
		return motion.Sample{}, fmt.Errorf("%w: %v", motion.ErrSensorUnavailable, err)
	}
	gx, gy, gz, err := s.dev.ReadRotation()
	if err != nil {
		return motion.Sample{}, fmt.Errorf("%w: %v", motion.ErrSensorUnavailable, err)
	}
	return motion.Sample{
		Accel: motion.Vec3{X: micro(ax), Y: micro(ay), Z: micro(az)},
		Gyro:  motion.Vec3{X: micro(gx), Y: micro(gy), Z: micro(gz)},
	}, nil
}

func micro(v int32) float32 {
	return float32(v) / 1e6
}

// pinButtons reads two active-low buttons with pull-ups
type pinButtons struct {
	front machine.Pin
	side  machine.Pin
}

func newPinButtons(front, side machine.Pin) *pinButtons {
	front.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	side.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &pinButtons{front: front, side: side}
}

func (b *pinButtons) Requests() (front, side bool) {
	return !b.front.Get(), !b.side.Get()
}
