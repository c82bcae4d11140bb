//go:build !baremetal

package motion

import (
	"fmt"
	"strings"
	"sync"

	"github.com/holoplot/go-evdev"

	"motion-midi/debug"
)

// EvdevSource reads a kernel "Motion Sensors" input node, as created by the
// hid-sony, hid-nintendo and hid-playstation drivers. ABS_X/Y/Z carry accel
// and ABS_RX/RY/RZ carry gyro; each axis' resolution gives units per g or per
// deg/s.
type EvdevSource struct {
	dev  *evdev.InputDevice
	name string
	res  map[evdev.EvCode]float32

	mu      sync.Mutex
	pending Sample
	latest  Sample
	ready   bool
	err     error
}

// OpenEvdev opens the motion node at path, or the first node advertising
// INPUT_PROP_ACCELEROMETER when path is empty.
func OpenEvdev(path string) (*EvdevSource, error) {
	if path == "" {
		found, err := FindMotionNode()
		if err != nil {
			return nil, err
		}
		path = found
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	infos, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("absinfo %s: %w", path, err)
	}

	s := &EvdevSource{
		dev: dev,
		res: make(map[evdev.EvCode]float32),
	}
	s.name, _ = dev.Name()
	for _, code := range []evdev.EvCode{evdev.ABS_X, evdev.ABS_Y, evdev.ABS_Z, evdev.ABS_RX, evdev.ABS_RY, evdev.ABS_RZ} {
		info, ok := infos[code]
		if !ok {
			dev.Close()
			return nil, fmt.Errorf("%s: missing axis %d", path, code)
		}
		r := float32(info.Resolution)
		if r <= 0 {
			r = 1
		}
		s.res[code] = r
	}

	debug.Log("sensor", "evdev %s (%s) opened", path, s.name)
	go s.readLoop()
	return s, nil
}

// InputNode describes an input device node
type InputNode struct {
	Path   string
	Name   string
	Motion bool // accelerometer property or a "Motion Sensors" name
}

// ListInputs returns every input node the process can open
func ListInputs() ([]InputNode, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	var nodes []InputNode
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		motion := strings.Contains(strings.ToLower(p.Name), "motion sensors")
		for _, prop := range dev.Properties() {
			if prop == evdev.INPUT_PROP_ACCELEROMETER {
				motion = true
				break
			}
		}
		dev.Close()
		nodes = append(nodes, InputNode{Path: p.Path, Name: p.Name, Motion: motion})
	}
	return nodes, nil
}

// FindMotionNode returns the first input device flagged as an accelerometer
func FindMotionNode() (string, error) {
	nodes, err := ListInputs()
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		if n.Motion {
			return n.Path, nil
		}
	}
	return "", fmt.Errorf("no motion sensor input device found")
}

// readLoop accumulates axis updates and publishes them on SYN_REPORT
func (s *EvdevSource) readLoop() {
	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			debug.Log("sensor", "evdev %s read stopped: %v", s.name, err)
			return
		}

		s.mu.Lock()
		switch ev.Type {
		case evdev.EV_ABS:
			v := float32(ev.Value)
			if r, ok := s.res[ev.Code]; ok {
				v /= r
			}
			switch ev.Code {
			case evdev.ABS_X:
				s.pending.Accel.X = v
			case evdev.ABS_Y:
				s.pending.Accel.Y = v
			case evdev.ABS_Z:
				s.pending.Accel.Z = v
			case evdev.ABS_RX:
				s.pending.Gyro.X = v
			case evdev.ABS_RY:
				s.pending.Gyro.Y = v
			case evdev.ABS_RZ:
				s.pending.Gyro.Z = v
			}
		case evdev.EV_SYN:
			s.latest = s.pending
			s.ready = true
		}
		s.mu.Unlock()
	}
}

// ReadMotion returns the most recent complete frame
func (s *EvdevSource) ReadMotion() (Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrSensorUnavailable, s.err)
	}
	if !s.ready {
		return Sample{}, ErrSensorUnavailable
	}
	return s.latest, nil
}

// Name returns the kernel device name
func (s *EvdevSource) Name() string {
	return s.name
}

func (s *EvdevSource) Close() error {
	return s.dev.Close()
}

// EvdevButtons samples two keys of an input device (e.g. a gamepad) once per
// call. The kernel key state is already debounced.
type EvdevButtons struct {
	dev   *evdev.InputDevice
	front evdev.EvCode
	side  evdev.EvCode
}

// DefaultFrontKey and DefaultSideKey are the gamepad face buttons used when
// the config leaves key codes at zero.
const (
	DefaultFrontKey = int(evdev.BTN_SOUTH)
	DefaultSideKey  = int(evdev.BTN_EAST)
)

// OpenEvdevButtons opens the input device at path for key-state polling
func OpenEvdevButtons(path string, front, side int) (*EvdevButtons, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if front == 0 {
		front = DefaultFrontKey
	}
	if side == 0 {
		side = DefaultSideKey
	}
	return &EvdevButtons{
		dev:   dev,
		front: evdev.EvCode(front),
		side:  evdev.EvCode(side),
	}, nil
}

func (b *EvdevButtons) Requests() (front, side bool) {
	state, err := b.dev.State(evdev.EV_KEY)
	if err != nil {
		debug.LogEvery(50, "sensor", "evdev key state: %v", err)
		return false, false
	}
	return state[b.front], state[b.side]
}

func (b *EvdevButtons) Close() error {
	return b.dev.Close()
}
