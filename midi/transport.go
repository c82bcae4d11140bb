package midi

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// ErrNotConnected is returned when sending with no listener attached
var ErrNotConnected = errors.New("not connected")

// LogTransport writes packets as hex lines to w. It stands in for a radio
// when running headless or replaying recordings.
type LogTransport struct {
	mu        sync.Mutex
	w         io.Writer
	connected atomic.Bool
	sent      atomic.Uint64
}

// NewLogTransport creates a console transport with the given initial
// connection state
func NewLogTransport(w io.Writer, connected bool) *LogTransport {
	t := &LogTransport{w: w}
	t.connected.Store(connected)
	return t
}

func (t *LogTransport) Send(p Packet) error {
	if !t.connected.Load() {
		return ErrNotConnected
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintln(t.w, p.String()); err != nil {
		return err
	}
	t.sent.Add(1)
	return nil
}

func (t *LogTransport) Connected() bool {
	return t.connected.Load()
}

// SetConnected simulates a listener attaching or leaving
func (t *LogTransport) SetConnected(c bool) {
	t.connected.Store(c)
}

// Sent returns how many packets were written
func (t *LogTransport) Sent() uint64 {
	return t.sent.Load()
}
