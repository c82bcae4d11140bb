package motion

// WindowSize is the number of gyro magnitudes kept for smoothing
const WindowSize = 24

// Window keeps the most recent magnitudes of one motion channel, newest first.
// Statistics are recomputed over the whole contents on every push.
type Window struct {
	values []float32
	size   int
}

// NewWindow creates a window holding at most size samples.
// A size below 1 falls back to WindowSize.
func NewWindow(size int) *Window {
	if size < 1 {
		size = WindowSize
	}
	return &Window{
		values: make([]float32, 0, size+1),
		size:   size,
	}
}

// Push inserts sample at the front, evicts the oldest entry once the window
// is over capacity, and returns the mean and maximum of what remains.
// During warm-up the statistics cover only the samples pushed so far.
func (w *Window) Push(sample float32) (average, max float32) {
	w.values = append(w.values, 0)
	copy(w.values[1:], w.values)
	w.values[0] = sample
	if len(w.values) > w.size {
		w.values = w.values[:w.size]
	}
	return w.Stats()
}

// Stats returns the mean and maximum of the current contents (0, 0 when empty)
func (w *Window) Stats() (average, max float32) {
	if len(w.values) == 0 {
		return 0, 0
	}

	// float64 accumulation keeps the mean of a constant stream exact
	var sum float64
	m := w.values[0]
	for _, v := range w.values {
		sum += float64(v)
		if v > m {
			m = v
		}
	}
	return float32(sum / float64(len(w.values))), m
}

// Len returns how many samples the window currently holds
func (w *Window) Len() int {
	return len(w.values)
}

// Cap returns the window capacity
func (w *Window) Cap() int {
	return w.size
}

// Values returns a copy of the contents, newest first
func (w *Window) Values() []float32 {
	out := make([]float32, len(w.values))
	copy(out, w.values)
	return out
}

// Reset empties the window
func (w *Window) Reset() {
	w.values = w.values[:0]
}
