//go:build !tinygo

package midi

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.bug.st/serial"

	"motion-midi/debug"
)

// SerialTransport writes raw 5-byte packets to a UART, for boards where a
// separate radio chip turns them into BLE-MIDI notifications. The port being
// open counts as connected; a write error closes it and the watcher reopens.
type SerialTransport struct {
	device   string
	baud     int
	pollRate time.Duration
	open     func(device string, mode *serial.Mode) (serial.Port, error)

	mu        sync.Mutex
	port      serial.Port
	connected atomic.Bool
}

// NewSerialTransport creates a transport for device at baud
func NewSerialTransport(device string, baud int) *SerialTransport {
	return &SerialTransport{
		device:   device,
		baud:     baud,
		pollRate: time.Second,
		open:     serial.Open,
	}
}

// Open opens the port now rather than waiting for the watcher
func (t *SerialTransport) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port != nil {
		return nil
	}
	p, err := t.open(t.device, &serial.Mode{BaudRate: t.baud})
	if err != nil {
		return fmt.Errorf("serial %s: %w", t.device, err)
	}
	t.port = p
	t.connected.Store(true)
	debug.Log("serial", "opened %s at %d baud", t.device, t.baud)
	return nil
}

func (t *SerialTransport) Send(p Packet) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.port == nil {
		return ErrNotConnected
	}
	b := p.Bytes()
	n, err := t.port.Write(b[:])
	if err == nil && n != PacketSize {
		err = fmt.Errorf("short write: %d of %d bytes", n, PacketSize)
	}
	if err != nil {
		t.closeLocked()
		return fmt.Errorf("serial %s: %w", t.device, err)
	}
	return nil
}

func (t *SerialTransport) Connected() bool {
	return t.connected.Load()
}

// Run retries opening the port while it is closed (blocking - run in goroutine)
func (t *SerialTransport) Run(ctx context.Context) {
	ticker := time.NewTicker(t.pollRate)
	defer ticker.Stop()

	for {
		if !t.Connected() {
			if err := t.Open(); err != nil {
				debug.LogEvery(10, "serial", "%v", err)
			}
		}
		select {
		case <-ctx.Done():
			t.Close()
			return
		case <-ticker.C:
		}
	}
}

// Close closes the port
func (t *SerialTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closeLocked()
}

func (t *SerialTransport) closeLocked() error {
	t.connected.Store(false)
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	debug.Log("serial", "closed %s", t.device)
	return err
}

// ListSerialPorts returns the serial devices present on the host
func ListSerialPorts() ([]string, error) {
	return serial.GetPortsList()
}
