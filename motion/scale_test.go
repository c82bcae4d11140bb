package motion

import (
	"math"
	"testing"
)

func TestScaleAccel(t *testing.T) {
	testCases := map[string]struct {
		input    float32
		expected uint8
	}{
		"Zero":          {input: 0, expected: 0},
		"Half":          {input: 0.5, expected: 64},
		"NegativeHalf":  {input: -0.5, expected: 64},
		"Small":         {input: 0.001, expected: 1},
		"One":           {input: 1, expected: 127},
		"MinusOne":      {input: -1, expected: 127},
		"Beyond":        {input: 3.7, expected: 127},
		"BeyondNegated": {input: -2, expected: 127},
		"NaN":           {input: float32(math.NaN()), expected: 0},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := ScaleAccel(tt.input); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestScaleAccelRange(t *testing.T) {
	for x := float32(-3); x <= 3; x += 0.01 {
		got := ScaleAccel(x)
		if got > 127 {
			t.Fatalf("ScaleAccel(%f) = %d out of range", x, got)
		}
		if (x >= 1 || x <= -1) && got != 127 {
			t.Fatalf("ScaleAccel(%f) = %d, expected saturation", x, got)
		}
	}
}

func TestScaleGyroRatio(t *testing.T) {
	testCases := map[string]struct {
		avg, max float32
		expected uint8
	}{
		"Constant":     {avg: 0.1, max: 0.1, expected: 0},
		"DoubleMax":    {avg: 1, max: 2, expected: 127},
		"Quarter":      {avg: 4, max: 5, expected: 32},
		"Spike":        {avg: 1, max: 50, expected: 127},
		"ZeroWindow":   {avg: 0, max: 0, expected: 0},
		"ZeroAverage":  {avg: 0, max: 3, expected: 0},
		"NegativeAvg":  {avg: -1, max: 1, expected: 0},
		"InfiniteMax":  {avg: 1, max: float32(math.Inf(1)), expected: 127},
		"NaNAverage":   {avg: float32(math.NaN()), max: 1, expected: 0},
		"BelowAverage": {avg: 2, max: 1, expected: 64},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			if got := ScaleGyroRatio(tt.avg, tt.max); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestScaleGyroRatioMonotonic(t *testing.T) {
	var prev uint8
	for max := float32(1); max <= 4; max += 0.005 {
		got := ScaleGyroRatio(1, max)
		if got > 127 {
			t.Fatalf("ScaleGyroRatio(1, %f) = %d out of range", max, got)
		}
		if got < prev {
			t.Fatalf("ScaleGyroRatio(1, %f) = %d decreased from %d", max, got, prev)
		}
		prev = got
	}
	if prev != 127 {
		t.Errorf("Expected saturation at large ratios, got %d", prev)
	}
}

func TestStillDeviceIsStable(t *testing.T) {
	w := NewWindow(WindowSize)
	for i := 0; i < 3*WindowSize; i++ {
		avg, max := w.Push(Magnitude(0))
		if got := ScaleGyroRatio(avg, max); got != 0 {
			t.Fatalf("Cycle %d: expected 0 for a still device, got %d", i, got)
		}
	}
}
