package motion

import (
	"math"
	"testing"
)

func TestWindowStats(t *testing.T) {
	testCases := map[string]struct {
		input       []float32
		expectedAvg float32
		expectedMax float32
		expectedLen int
	}{
		"Single": {
			input:       []float32{3},
			expectedAvg: 3,
			expectedMax: 3,
			expectedLen: 1,
		},
		"WarmUp": {
			input:       []float32{1, 2, 3, 6},
			expectedAvg: 3,
			expectedMax: 6,
			expectedLen: 4,
		},
		"MaxFirst": {
			input:       []float32{10, 0, 0, 0, 0},
			expectedAvg: 2,
			expectedMax: 10,
			expectedLen: 5,
		},
		"Zeros": {
			input:       []float32{0, 0, 0},
			expectedAvg: 0,
			expectedMax: 0,
			expectedLen: 3,
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			w := NewWindow(WindowSize)
			var avg, max float32
			for _, v := range tt.input {
				avg, max = w.Push(v)
			}
			if math.Abs(float64(avg-tt.expectedAvg)) > 1e-6 {
				t.Errorf("Expected average %f, got %f", tt.expectedAvg, avg)
			}
			if max != tt.expectedMax {
				t.Errorf("Expected max %f, got %f", tt.expectedMax, max)
			}
			if w.Len() != tt.expectedLen {
				t.Errorf("Expected len %d, got %d", tt.expectedLen, w.Len())
			}
		})
	}
}

func TestWindowMeanUpToCapacity(t *testing.T) {
	w := NewWindow(WindowSize)
	var sum float64
	var max float32
	for k := 1; k <= WindowSize; k++ {
		v := float32(k%7) * 0.25
		sum += float64(v)
		if v > max {
			max = v
		}
		gotAvg, gotMax := w.Push(v)
		want := sum / float64(k)
		if math.Abs(float64(gotAvg)-want) > 1e-6 {
			t.Fatalf("After %d pushes expected average %f, got %f", k, want, gotAvg)
		}
		if gotMax != max {
			t.Fatalf("After %d pushes expected max %f, got %f", k, max, gotMax)
		}
	}
}

func TestWindowEviction(t *testing.T) {
	w := NewWindow(WindowSize)
	for k := 1; k <= WindowSize+1; k++ {
		w.Push(float32(k))
	}

	if w.Len() != WindowSize {
		t.Fatalf("Expected len %d, got %d", WindowSize, w.Len())
	}
	values := w.Values()
	// newest first: 25, 24, ..., 2
	for i, v := range values {
		expected := float32(WindowSize + 1 - i)
		if v != expected {
			t.Errorf("Slot %d: expected %f, got %f", i, expected, v)
		}
	}

	avg, max := w.Stats()
	if max != WindowSize+1 {
		t.Errorf("Expected max %d, got %f", WindowSize+1, max)
	}
	// mean of 2..25
	if math.Abs(float64(avg)-13.5) > 1e-6 {
		t.Errorf("Expected average 13.5, got %f", avg)
	}
}

func TestWindowEvictsOldMax(t *testing.T) {
	w := NewWindow(WindowSize)
	w.Push(100)
	var max float32
	for i := 0; i < WindowSize; i++ {
		_, max = w.Push(1)
	}
	if max != 1 {
		t.Errorf("Spike should have been evicted, got max %f", max)
	}
}

func TestWindowConstantStreamIsExact(t *testing.T) {
	w := NewWindow(WindowSize)
	for i := 0; i < 3*WindowSize; i++ {
		avg, max := w.Push(0.1)
		if avg != max {
			t.Fatalf("Push %d: constant stream average %v != max %v", i, avg, max)
		}
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow(4)
	w.Push(1)
	w.Push(2)
	w.Reset()
	if w.Len() != 0 {
		t.Fatalf("Expected empty window, got %d", w.Len())
	}
	if avg, max := w.Stats(); avg != 0 || max != 0 {
		t.Errorf("Expected zero stats, got %f %f", avg, max)
	}
	if w.Cap() != 4 {
		t.Errorf("Expected cap 4, got %d", w.Cap())
	}
}
