package sequencer

import (
	"fmt"

	"motion-midi/motion"
)

// Pair is the note/velocity chosen for one cycle
type Pair struct {
	Note     uint8
	Velocity uint8
}

// Status is a snapshot of the engine after a cycle, for display.
// It carries values only; formatting is up to the caller.
type Status struct {
	Mode        Mode
	Connected   bool
	SensorOK    bool
	SampleCount uint64 // cycles sent since the last connect
	Cycles      uint64 // all cycles since start

	Accel motion.Vec3 // last raw reading
	Gyro  motion.Vec3

	Average   float32 // window statistics
	Max       float32
	WindowLen int

	Pair         Pair
	SendFailures uint64
	LastError    string
}

// StatusLine renders the one-line device status shown on the stick's
// screen, in the terminal UI and in headless output
func StatusLine(st Status) string {
	if !st.SensorOK {
		return "no sensor"
	}
	switch st.Mode {
	case ModeAccelerometer:
		return "Accel: " + st.Accel.String()
	case ModeGyroscope:
		return "Gyro: " + st.Gyro.String()
	}
	if st.Connected {
		return fmt.Sprintf("BLE Connected! samples: %d", st.SampleCount)
	}
	return "waiting for connection"
}
