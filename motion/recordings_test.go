package motion

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := RecordingPath(dir, "first swing", time.Date(2026, 3, 1, 12, 30, 0, 0, time.Local))
	if filepath.Base(path) != "2026-03-01_12-30-00_first-swing.csv" {
		t.Fatalf("Unexpected path %s", path)
	}

	sim := NewSimSource()
	rec, err := NewRecorder(sim, path)
	if err != nil {
		t.Fatal(err)
	}
	var want []Sample
	for i := 0; i < 30; i++ {
		s, err := rec.ReadMotion()
		if err != nil {
			t.Fatal(err)
		}
		want = append(want, s)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 30 {
		t.Errorf("Expected 30 recorded samples, got %d", rec.Len())
	}

	// still passes through after close
	if _, err := rec.ReadMotion(); err != nil {
		t.Errorf("Expected pass-through after close, got %v", err)
	}

	replay, err := LoadReplay(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if replay.Len() != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), replay.Len())
	}
	for i, w := range want {
		got, _ := replay.ReadMotion()
		if got != w {
			t.Fatalf("sample %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestListRecordings(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"2026-01-02_10-00-00.csv",
		"2026-01-03_09-00-00_wave.csv",
		"2026-01-01_08-00-00_old.csv",
		"notes.txt",
		"garbage.csv",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("0,0,0,0,0,0\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := ListRecordings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 recordings, got %d", len(recs))
	}
	if recs[0].Name != "wave" || recs[2].Name != "old" || recs[1].Name != "" {
		t.Errorf("Unexpected order/names: %+v", recs)
	}

	renamed, err := RenameRecording(dir, recs[1].Filename, "calm/take")
	if err != nil {
		t.Fatal(err)
	}
	if renamed != "2026-01-02_10-00-00_calm-take.csv" {
		t.Errorf("Unexpected rename %s", renamed)
	}
	if err := DeleteRecording(dir, renamed); err != nil {
		t.Fatal(err)
	}
	recs, _ = ListRecordings(dir)
	if len(recs) != 2 {
		t.Errorf("Expected 2 recordings after delete, got %d", len(recs))
	}

	missing, err := ListRecordings(filepath.Join(dir, "nope"))
	if err != nil || len(missing) != 0 {
		t.Errorf("Expected empty list for missing dir, got %v %v", missing, err)
	}
}
