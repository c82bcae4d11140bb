package motion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReplaySource plays back a recording of samples.
//
// The recording is CSV with six columns per row: ax, ay, az, gx, gy, gz.
// A first row that does not parse as numbers is treated as a header.
// Blank lines and lines starting with '#' are skipped.
type ReplaySource struct {
	samples []Sample
	pos     int
	loop    bool
}

// LoadReplay reads a recording from disk
func LoadReplay(path string, loop bool) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := ReadReplay(f, loop)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// ReadReplay parses a recording from r
func ReadReplay(r io.Reader, loop bool) (*ReplaySource, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var samples []Sample
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		s, err := parseSample(rec)
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples in recording")
	}
	return &ReplaySource{samples: samples, loop: loop}, nil
}

func parseSample(rec []string) (Sample, error) {
	if len(rec) < 6 {
		return Sample{}, fmt.Errorf("want 6 columns, got %d", len(rec))
	}
	var v [6]float32
	for i := range v {
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 32)
		if err != nil {
			return Sample{}, err
		}
		v[i] = float32(f)
	}
	return Sample{
		Accel: Vec3{v[0], v[1], v[2]},
		Gyro:  Vec3{v[3], v[4], v[5]},
	}, nil
}

// ReadMotion returns the next sample. Once the recording is exhausted it
// reports ErrSensorUnavailable unless looping.
func (r *ReplaySource) ReadMotion() (Sample, error) {
	if r.pos >= len(r.samples) {
		if !r.loop {
			return Sample{}, ErrSensorUnavailable
		}
		r.pos = 0
	}
	s := r.samples[r.pos]
	r.pos++
	return s, nil
}

// Len returns the number of samples in the recording
func (r *ReplaySource) Len() int {
	return len(r.samples)
}

// Done reports whether a non-looping recording has been fully played
func (r *ReplaySource) Done() bool {
	return !r.loop && r.pos >= len(r.samples)
}
