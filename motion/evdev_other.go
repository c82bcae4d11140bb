//go:build !linux || baremetal

package motion

import "errors"

var errNoEvdev = errors.New("evdev input is only available on linux")

const (
	DefaultFrontKey = 0x130
	DefaultSideKey  = 0x131
)

type EvdevSource struct{}

func OpenEvdev(path string) (*EvdevSource, error) { return nil, errNoEvdev }

type InputNode struct {
	Path   string
	Name   string
	Motion bool
}

func ListInputs() ([]InputNode, error) { return nil, errNoEvdev }

func FindMotionNode() (string, error) { return "", errNoEvdev }

func (s *EvdevSource) ReadMotion() (Sample, error) { return Sample{}, ErrSensorUnavailable }

func (s *EvdevSource) Name() string { return "" }

func (s *EvdevSource) Close() error { return nil }

type EvdevButtons struct{}

func OpenEvdevButtons(path string, front, side int) (*EvdevButtons, error) {
	return nil, errNoEvdev
}

func (b *EvdevButtons) Requests() (front, side bool) { return false, false }

func (b *EvdevButtons) Close() error { return nil }
