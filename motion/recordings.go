package motion

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05"

// RecordingInfo describes a saved recording (for listing)
type RecordingInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// RecordingsDir returns the recordings directory path
func RecordingsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "motion-midi", "recordings"), nil
}

// RecordingPath builds dir/2006-01-02_15-04-05[_name].csv
func RecordingPath(dir, name string, now time.Time) string {
	base := now.Format(timestampLayout)
	if name != "" {
		base += "_" + sanitizeFilename(name)
	}
	return filepath.Join(dir, base+".csv")
}

// ListRecordings returns the timestamped recordings in dir, newest first
func ListRecordings(dir string) ([]RecordingInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordingInfo{}, nil
		}
		return nil, err
	}

	var recs []RecordingInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".csv") {
			continue
		}

		// Timestamp is first 19 chars, optional _name after it
		baseName := strings.TrimSuffix(name, ".csv")
		if len(baseName) < len(timestampLayout) {
			continue
		}
		ts, err := time.ParseInLocation(timestampLayout, baseName[:len(timestampLayout)], time.Local)
		if err != nil {
			continue
		}

		recName := ""
		if len(baseName) > 20 && baseName[19] == '_' {
			recName = baseName[20:]
		}

		recs = append(recs, RecordingInfo{
			Filename:  name,
			Name:      recName,
			Timestamp: ts,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})

	return recs, nil
}

// RenameRecording changes the name part of a recording, keeping its timestamp
func RenameRecording(dir, oldFilename, newName string) (string, error) {
	baseName := strings.TrimSuffix(oldFilename, ".csv")
	if len(baseName) < len(timestampLayout) {
		return "", fmt.Errorf("invalid recording filename %q", oldFilename)
	}
	ts := baseName[:len(timestampLayout)]

	newFilename := ts + ".csv"
	if newName != "" {
		newFilename = ts + "_" + sanitizeFilename(newName) + ".csv"
	}

	if err := os.Rename(filepath.Join(dir, oldFilename), filepath.Join(dir, newFilename)); err != nil {
		return "", err
	}
	return newFilename, nil
}

// DeleteRecording removes a recording
func DeleteRecording(dir, filename string) error {
	return os.Remove(filepath.Join(dir, filename))
}

// sanitizeFilename removes/replaces characters that are problematic in filenames
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, ":", "-")
	name = strings.ReplaceAll(name, "_", "-")
	for _, c := range []string{"*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "")
	}
	return name
}

// Recorder passes samples through from a Source and appends each good one
// to a CSV file that ReplaySource can read back.
type Recorder struct {
	src  Source
	path string

	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
	n  int
}

// NewRecorder creates path (and its directory) and starts recording src
func NewRecorder(src Source, path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"ax", "ay", "az", "gx", "gy", "gz"}); err != nil {
		f.Close()
		return nil, err
	}
	return &Recorder{src: src, path: path, f: f, w: w}, nil
}

func (r *Recorder) ReadMotion() (Sample, error) {
	s, err := r.src.ReadMotion()
	if err != nil {
		return s, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return s, nil
	}
	row := []string{
		fmtValue(s.Accel.X), fmtValue(s.Accel.Y), fmtValue(s.Accel.Z),
		fmtValue(s.Gyro.X), fmtValue(s.Gyro.Y), fmtValue(s.Gyro.Z),
	}
	if err := r.w.Write(row); err == nil {
		r.n++
		if r.n%WindowSize == 0 {
			r.w.Flush()
		}
	}
	return s, nil
}

func fmtValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Path returns the file being written
func (r *Recorder) Path() string {
	return r.path
}

// Len returns how many samples have been recorded
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Close flushes and closes the file. The source keeps passing through.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return nil
	}
	r.w.Flush()
	err := r.w.Error()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	r.w, r.f = nil, nil
	return err
}
