package sequencer

import (
	"fmt"
	"strings"
)

// Mode picks which sensor channel drives the note and which the velocity
type Mode int

const (
	ModeNone          Mode = iota // fixed middle C
	ModeAccelerometer             // note from accel, velocity from gyro
	ModeGyroscope                 // note from gyro, velocity from accel
)

func (m Mode) String() string {
	switch m {
	case ModeAccelerometer:
		return "accel"
	case ModeGyroscope:
		return "gyro"
	default:
		return "none"
	}
}

// ParseMode parses the names produced by Mode.String
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "accel", "accelerometer", "front":
		return ModeAccelerometer, nil
	case "gyro", "gyroscope", "side":
		return ModeGyroscope, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q", s)
}

// ModeSelector holds the current mode. It has no terminal state and is not
// reset by connection changes.
type ModeSelector struct {
	mode Mode
}

// NewModeSelector starts in the given mode
func NewModeSelector(initial Mode) *ModeSelector {
	return &ModeSelector{mode: initial}
}

// Update applies one cycle's button requests. Front is checked first and
// side second, so side wins when both are pressed.
func (s *ModeSelector) Update(front, side bool) (mode Mode, changed bool) {
	prev := s.mode
	if front {
		s.mode = ModeAccelerometer
	}
	if side {
		s.mode = ModeGyroscope
	}
	return s.mode, s.mode != prev
}

// Mode returns the current mode
func (s *ModeSelector) Mode() Mode {
	return s.mode
}
