package sequencer

import (
	"testing"

	"motion-midi/motion"
)

func TestStatusLine(t *testing.T) {
	reading := motion.Sample{
		Accel: motion.Vec3{X: 0.5, Y: -0.25, Z: 1.00049},
		Gyro:  motion.Vec3{X: 12.345, Y: 0, Z: -250},
	}

	testCases := map[string]struct {
		status Status
		want   string
	}{
		"NoSensor": {
			status: Status{Mode: ModeGyroscope, SensorOK: false},
			want:   "no sensor",
		},
		"Accel": {
			status: Status{Mode: ModeAccelerometer, SensorOK: true, Accel: reading.Accel},
			want:   "Accel: 0.5, -0.25, 1",
		},
		"Gyro": {
			status: Status{Mode: ModeGyroscope, SensorOK: true, Gyro: reading.Gyro},
			want:   "Gyro: 12.35, 0, -250",
		},
		"NoneConnected": {
			status: Status{SensorOK: true, Connected: true, SampleCount: 42},
			want:   "BLE Connected! samples: 42",
		},
		"NoneWaiting": {
			status: Status{SensorOK: true},
			want:   "waiting for connection",
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := StatusLine(tt.status); got != tt.want {
				t.Errorf("StatusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
