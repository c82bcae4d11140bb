//go:build !tinygo

package midi

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"go.bug.st/serial"
)

// fakePort captures writes; the embedded interface panics on anything else
type fakePort struct {
	serial.Port
	buf    bytes.Buffer
	fail   bool
	short  bool
	closed bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.fail {
		return 0, errors.New("device unplugged")
	}
	if p.short {
		return p.buf.Write(b[:2])
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

// fakeOpener hands out ports in order and fails when none are left
type fakeOpener struct {
	ports []*fakePort
	opens int
	modes []serial.Mode
}

func (o *fakeOpener) open(device string, mode *serial.Mode) (serial.Port, error) {
	o.modes = append(o.modes, *mode)
	if o.opens >= len(o.ports) {
		return nil, errors.New("no such device")
	}
	p := o.ports[o.opens]
	o.opens++
	return p, nil
}

func newFakeSerial(ports ...*fakePort) (*SerialTransport, *fakeOpener) {
	o := &fakeOpener{ports: ports}
	t := NewSerialTransport("/dev/ttyTEST", 31250)
	t.open = o.open
	return t, o
}

func TestSerialSend(t *testing.T) {
	port := &fakePort{}
	tr, o := newFakeSerial(port)

	if err := tr.Send(EncodeOn(60, 100)); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected before open, got %v", err)
	}

	if err := tr.Open(); err != nil {
		t.Fatal(err)
	}
	if !tr.Connected() {
		t.Fatal("Expected connected after open")
	}
	if o.modes[0].BaudRate != 31250 {
		t.Errorf("Expected baud 31250, got %d", o.modes[0].BaudRate)
	}
	// opening twice keeps the same port
	if err := tr.Open(); err != nil || o.opens != 1 {
		t.Errorf("Second open should be a no-op, opens=%d err=%v", o.opens, err)
	}

	if err := tr.Send(EncodeOn(60, 100)); err != nil {
		t.Fatal(err)
	}
	if err := tr.Send(EncodeOff(60)); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x80, 0x80, 0x90, 60, 100, 0x80, 0x80, 0x20, 60, 0}
	if !bytes.Equal(port.buf.Bytes(), want) {
		t.Errorf("Wrote % x, want % x", port.buf.Bytes(), want)
	}
}

func TestSerialWriteErrorCloses(t *testing.T) {
	testCases := map[string]*fakePort{
		"Error":      {fail: true},
		"ShortWrite": {short: true},
	}

	for name, port := range testCases {
		port := port
		t.Run(name, func(t *testing.T) {
			tr, _ := newFakeSerial(port)
			if err := tr.Open(); err != nil {
				t.Fatal(err)
			}

			if err := tr.Send(EncodeOn(60, 100)); err == nil {
				t.Fatal("Expected send error")
			}
			if tr.Connected() {
				t.Error("Expected disconnected after write error")
			}
			if !port.closed {
				t.Error("Expected port closed after write error")
			}
			if err := tr.Send(EncodeOff(60)); !errors.Is(err, ErrNotConnected) {
				t.Errorf("Expected ErrNotConnected after close, got %v", err)
			}
		})
	}
}

func TestSerialRunReopens(t *testing.T) {
	first := &fakePort{fail: true}
	second := &fakePort{}
	tr, o := newFakeSerial(first, second)
	tr.pollRate = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tr.Run(ctx)
		close(done)
	}()

	waitFor := func(cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for !cond() {
			if time.Now().After(deadline) {
				t.Fatal("Timed out")
			}
			time.Sleep(time.Millisecond)
		}
	}

	waitFor(tr.Connected)
	if err := tr.Send(EncodeOn(60, 100)); err == nil {
		t.Fatal("Expected first port to fail")
	}
	waitFor(tr.Connected)
	if err := tr.Send(EncodeOn(61, 100)); err != nil {
		t.Fatalf("Expected reopened port to work, got %v", err)
	}

	cancel()
	<-done
	if !second.closed || tr.Connected() {
		t.Error("Expected Run to close the port on exit")
	}
	if o.opens != 2 {
		t.Errorf("Expected 2 opens, got %d", o.opens)
	}
	want := EncodeOn(61, 100).Bytes()
	if !bytes.Equal(second.buf.Bytes(), want[:]) {
		t.Errorf("Second port got % x", second.buf.Bytes())
	}
}
