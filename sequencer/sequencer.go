package sequencer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"motion-midi/debug"
	"motion-midi/midi"
	"motion-midi/motion"
)

// ErrSendFailed wraps transport errors reported by a cycle
var ErrSendFailed = errors.New("transport send failed")

// Timing defaults
const (
	DefaultHold = 100 * time.Millisecond // after note-on and after note-off
	DefaultIdle = 100 * time.Millisecond // after a cycle that sent nothing
)

// Transport delivers packets to the listener. Send is fire-and-forget;
// Connected may be flipped by another goroutine at any time.
type Transport interface {
	Send(p midi.Packet) error
	Connected() bool
}

// Options configures a Sequencer. Zero values take the defaults.
type Options struct {
	WindowSize  int
	Hold        time.Duration
	Idle        time.Duration
	CenterNote  uint8
	InitialMode Mode
	Sleep       func(time.Duration) // time.Sleep unless set
}

// Sequencer runs the sample → smooth → scale → encode → send cycle.
// All cycle state lives here and is only touched by the goroutine calling
// Cycle/Run; Status is safe to call from anywhere.
type Sequencer struct {
	source  motion.Source
	buttons motion.Buttons
	out     Transport

	window   *motion.Window
	selector *ModeSelector
	hold     time.Duration
	idle     time.Duration
	center   uint8
	sleep    func(time.Duration)

	wasConnected bool
	sampleCount  uint64
	cycles       uint64
	velocity     uint8 // data2 of the last packet sent
	sendFailures uint64

	mu     sync.RWMutex
	status Status

	// Notify UI of updates
	UpdateChan chan struct{}
}

// New creates a sequencer. buttons may be nil.
func New(source motion.Source, buttons motion.Buttons, out Transport, opts Options) *Sequencer {
	if buttons == nil {
		buttons = motion.NoButtons{}
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = motion.WindowSize
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Idle <= 0 {
		opts.Idle = DefaultIdle
	}
	if opts.CenterNote == 0 || opts.CenterNote > motion.MaxValue {
		opts.CenterNote = midi.MiddleC
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	s := &Sequencer{
		source:     source,
		buttons:    buttons,
		out:        out,
		window:     motion.NewWindow(opts.WindowSize),
		selector:   NewModeSelector(opts.InitialMode),
		hold:       opts.Hold,
		idle:       opts.Idle,
		center:     opts.CenterNote,
		sleep:      opts.Sleep,
		UpdateChan: make(chan struct{}, 1),
	}
	s.status.Mode = opts.InitialMode
	return s
}

// Run cycles until ctx is cancelled. Cancellation is only observed between
// cycles; a cycle in progress always completes.
func (s *Sequencer) Run(ctx context.Context) error {
	debug.Log("engine", "running: window=%d hold=%s idle=%s mode=%s",
		s.window.Cap(), s.hold, s.idle, s.selector.Mode())

	for {
		select {
		case <-ctx.Done():
			debug.Log("engine", "stopped after %d cycles", s.cycles)
			return ctx.Err()
		default:
		}

		if err := s.Cycle(); err != nil {
			if errors.Is(err, motion.ErrSensorUnavailable) {
				debug.LogEvery(20, "sensor", "%v", err)
			} else {
				debug.Log("send", "%v", err)
			}
		}
	}
}

// Cycle runs one full cycle. Errors are reported, never fatal: the window and
// mode are kept, and the caller should simply call Cycle again.
func (s *Sequencer) Cycle() error {
	connected := s.out.Connected()
	if connected && !s.wasConnected {
		s.sampleCount = 0
		debug.Log("conn", "listener connected (mode %s)", s.selector.Mode())
	} else if !connected && s.wasConnected {
		debug.Log("conn", "listener disconnected after %d samples", s.sampleCount)
	}
	s.wasConnected = connected
	s.cycles++

	sample, err := s.source.ReadMotion()
	if err != nil {
		s.updateMode()
		if !errors.Is(err, motion.ErrSensorUnavailable) {
			err = fmt.Errorf("%w: %v", motion.ErrSensorUnavailable, err)
		}
		s.publish(Status{Connected: connected, LastError: err.Error()}, false)
		s.sleep(s.idle)
		return err
	}

	avg, max := s.window.Push(motion.Magnitude(sample.Gyro.X))
	accelScaled := motion.ScaleAccel(sample.Accel.X)
	gyroScaled := motion.ScaleGyroRatio(avg, max)

	mode := s.updateMode()
	pair := s.assign(mode, accelScaled, gyroScaled)

	st := Status{
		Connected: connected,
		Accel:     sample.Accel,
		Gyro:      sample.Gyro,
		Average:   avg,
		Max:       max,
		WindowLen: s.window.Len(),
		Pair:      pair,
	}

	if !connected {
		s.publish(st, true)
		s.sleep(s.idle)
		return nil
	}

	var errs []error
	if err := s.send(midi.EncodeOn(pair.Note, pair.Velocity)); err != nil {
		errs = append(errs, fmt.Errorf("%w: note on: %w", ErrSendFailed, err))
	}
	s.sleep(s.hold)
	if err := s.send(midi.EncodeOff(pair.Note)); err != nil {
		errs = append(errs, fmt.Errorf("%w: note off: %w", ErrSendFailed, err))
	}
	s.sleep(s.hold)
	s.sampleCount++

	err = errors.Join(errs...)
	if err != nil {
		st.LastError = err.Error()
	}
	debug.LogEvery(50, "engine", "mode=%s note=%d vel=%d avg=%.3f max=%.3f",
		mode, pair.Note, pair.Velocity, avg, max)
	s.publish(st, true)
	return err
}

func (s *Sequencer) updateMode() Mode {
	mode, changed := s.selector.Update(s.buttons.Requests())
	if changed {
		debug.Log("mode", "mode -> %s", mode)
	}
	return mode
}

// assign decides which scaled value is the note and which the velocity
func (s *Sequencer) assign(mode Mode, accelScaled, gyroScaled uint8) Pair {
	switch mode {
	case ModeAccelerometer:
		return Pair{Note: accelScaled, Velocity: gyroScaled}
	case ModeGyroscope:
		return Pair{Note: gyroScaled, Velocity: accelScaled}
	default:
		// velocity is whatever the last packet carried
		return Pair{Note: s.center, Velocity: s.velocity}
	}
}

func (s *Sequencer) send(p midi.Packet) error {
	s.velocity = p.Data2
	if err := s.out.Send(p); err != nil {
		s.sendFailures++
		return err
	}
	return nil
}

func (s *Sequencer) publish(st Status, sensorOK bool) {
	st.Mode = s.selector.Mode()
	st.SensorOK = sensorOK
	st.SampleCount = s.sampleCount
	st.Cycles = s.cycles
	st.SendFailures = s.sendFailures
	if !sensorOK {
		// keep the last good reading on screen
		s.mu.RLock()
		prev := s.status
		s.mu.RUnlock()
		st.Accel, st.Gyro = prev.Accel, prev.Gyro
		st.Average, st.Max = s.window.Stats()
		st.WindowLen = s.window.Len()
		st.Pair = prev.Pair
	}

	s.mu.Lock()
	s.status = st
	s.mu.Unlock()

	select {
	case s.UpdateChan <- struct{}{}:
	default:
	}
}

// Status returns the snapshot published by the last cycle
func (s *Sequencer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Mode returns the current mode. Only call from the cycle goroutine or
// after Run has returned; use Status elsewhere.
func (s *Sequencer) Mode() Mode {
	return s.selector.Mode()
}

// SampleCount returns the number of cycles sent since the last connect, as
// of the last published Status. Safe from any goroutine.
func (s *Sequencer) SampleCount() uint64 {
	return s.Status().SampleCount
}
