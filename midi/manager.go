//go:build !tinygo

package midi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"motion-midi/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // registers itself on init
)

// PortTransport sends packets to a local MIDI output port (a synth, a DAW,
// or a virtual port). It watches for the port appearing and disappearing;
// the port being present is what "connected" means here.
type PortTransport struct {
	match    string // case-insensitive substring of the port name
	virtual  string // name of a virtual port to create instead, if set
	pollRate time.Duration

	mu        sync.RWMutex
	out       drivers.Out
	send      func(gomidi.Message) error
	portName  string
	connected atomic.Bool
}

// NewPortTransport creates a transport for the first output port whose name
// contains match. An empty match takes the first port found.
func NewPortTransport(match string) *PortTransport {
	return &PortTransport{
		match:    match,
		pollRate: time.Second,
	}
}

// NewVirtualPortTransport creates a virtual output port that other
// applications can subscribe to. It is always connected once opened.
func NewVirtualPortTransport(name string) (*PortTransport, error) {
	drv, ok := drivers.Get().(*rtmididrv.Driver)
	if !ok {
		return nil, fmt.Errorf("virtual ports need the rtmidi driver")
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		return nil, fmt.Errorf("open virtual out %q: %w", name, err)
	}
	t := &PortTransport{virtual: name, pollRate: time.Second}
	if err := t.attach(out); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *PortTransport) Send(p Packet) error {
	t.mu.RLock()
	send := t.send
	t.mu.RUnlock()
	if send == nil {
		return ErrNotConnected
	}
	return send(p.Message())
}

func (t *PortTransport) Connected() bool {
	return t.connected.Load()
}

// PortName returns the attached port name, or "" when detached
func (t *PortTransport) PortName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.portName
}

// Run starts the polling loop (blocking - run in goroutine)
func (t *PortTransport) Run(ctx context.Context) {
	if t.virtual != "" {
		<-ctx.Done()
		t.detach()
		return
	}

	ticker := time.NewTicker(t.pollRate)
	defer ticker.Stop()

	// Initial scan
	t.scan()

	for {
		select {
		case <-ctx.Done():
			t.detach()
			return
		case <-ticker.C:
			t.scan()
		}
	}
}

func (t *PortTransport) scan() {
	// Port enumeration can hang on a wedged CoreMIDI
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	var outPorts []drivers.Out
	select {
	case outPorts = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("port", "port scan timed out")
		return
	}

	current := t.PortName()
	if current != "" {
		for _, op := range outPorts {
			if op.String() == current {
				return // still there
			}
		}
		debug.Log("port", "port %q disappeared", current)
		t.detach()
	}

	for _, op := range outPorts {
		if !matchPort(op.String(), t.match) {
			continue
		}
		if err := t.attach(op); err != nil {
			debug.Log("port", "open %q: %v", op.String(), err)
			continue
		}
		return
	}
}

func (t *PortTransport) attach(out drivers.Out) error {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	t.mu.Lock()
	t.out = out
	t.send = send
	t.portName = out.String()
	t.mu.Unlock()
	t.connected.Store(true)
	debug.Log("port", "attached to %q", out.String())
	return nil
}

func (t *PortTransport) detach() {
	t.connected.Store(false)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.out != nil {
		t.out.Close()
	}
	t.out = nil
	t.send = nil
	t.portName = ""
}

// ListOutPorts returns the names of all MIDI output ports
func ListOutPorts() []string {
	var names []string
	for _, op := range gomidi.GetOutPorts() {
		names = append(names, op.String())
	}
	return names
}

func matchPort(name, match string) bool {
	if match == "" {
		return !strings.Contains(strings.ToLower(name), "through")
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(match))
}
