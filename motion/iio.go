package motion

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// IIOBase is where the kernel exposes industrial I/O devices
const IIOBase = "/sys/bus/iio/devices"

const (
	standardGravity = 9.80665
	radToDeg        = 180 / 3.141592653589793
)

// IIOSource reads an accelerometer/gyroscope from Linux IIO sysfs.
// Accel is converted from m/s^2 to g and gyro from rad/s to deg/s.
type IIOSource struct {
	dir        string
	accelScale float64
	gyroScale  float64
}

// OpenIIO opens the device directory dir, or the first IIO device that has
// both accel and anglvel channels when dir is empty.
func OpenIIO(dir string) (*IIOSource, error) {
	if dir == "" {
		found, err := FindIIODevice(IIOBase)
		if err != nil {
			return nil, err
		}
		dir = found
	}

	s := &IIOSource{dir: dir, accelScale: 1, gyroScale: 1}
	if v, ok := readFloatIfExists(filepath.Join(dir, "in_accel_scale")); ok {
		s.accelScale = v
	}
	if v, ok := readFloatIfExists(filepath.Join(dir, "in_anglvel_scale")); ok {
		s.gyroScale = v
	}
	if !fileExists(filepath.Join(dir, "in_accel_x_raw")) || !fileExists(filepath.Join(dir, "in_anglvel_x_raw")) {
		return nil, fmt.Errorf("iio device %s has no accel/anglvel channels", dir)
	}
	return s, nil
}

// FindIIODevice returns the first iio:deviceN under base with accel and gyro
func FindIIODevice(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "iio:device") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, n := range names {
		dev := filepath.Join(base, n)
		if fileExists(filepath.Join(dev, "in_accel_x_raw")) && fileExists(filepath.Join(dev, "in_anglvel_x_raw")) {
			return dev, nil
		}
	}
	return "", fmt.Errorf("no IIO device with accel and anglvel under %s", base)
}

func (s *IIOSource) ReadMotion() (Sample, error) {
	var raw [6]float64
	chans := [6]string{
		"in_accel_x_raw", "in_accel_y_raw", "in_accel_z_raw",
		"in_anglvel_x_raw", "in_anglvel_y_raw", "in_anglvel_z_raw",
	}
	for i, c := range chans {
		v, err := readFloat(filepath.Join(s.dir, c))
		if err != nil {
			return Sample{}, fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
		}
		raw[i] = v
	}

	a := s.accelScale / standardGravity
	g := s.gyroScale * radToDeg
	return Sample{
		Accel: Vec3{float32(raw[0] * a), float32(raw[1] * a), float32(raw[2] * a)},
		Gyro:  Vec3{float32(raw[3] * g), float32(raw[4] * g), float32(raw[5] * g)},
	}, nil
}

// Dir returns the sysfs directory being read
func (s *IIOSource) Dir() string {
	return s.dir
}

func readFloat(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	str := strings.TrimSpace(string(b))
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", str, err)
	}
	return f, nil
}

func readFloatIfExists(path string) (float64, bool) {
	f, err := readFloat(path)
	if err != nil {
		return 0, false
	}
	return f, true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
