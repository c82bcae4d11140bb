package motion

import "sync"

// Latch collects button presses from another goroutine (UI, input callback)
// and hands each press to exactly one Requests call.
type Latch struct {
	mu    sync.Mutex
	front bool
	side  bool
}

// PressFront records a front-button press
func (l *Latch) PressFront() {
	l.mu.Lock()
	l.front = true
	l.mu.Unlock()
}

// PressSide records a side-button press
func (l *Latch) PressSide() {
	l.mu.Lock()
	l.side = true
	l.mu.Unlock()
}

// Requests returns and clears the pending presses
func (l *Latch) Requests() (front, side bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	front, side = l.front, l.side
	l.front, l.side = false, false
	return front, side
}

// MultiButtons ORs the requests of several button sources
type MultiButtons []Buttons

func (m MultiButtons) Requests() (front, side bool) {
	for _, b := range m {
		f, s := b.Requests()
		front = front || f
		side = side || s
	}
	return front, side
}
