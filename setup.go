package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"motion-midi/ble"
	"motion-midi/config"
	"motion-midi/debug"
	"motion-midi/midi"
	"motion-midi/motion"
	"motion-midi/sequencer"
	"motion-midi/tui"
)

func openSource(cfg config.SensorConfig) (motion.Source, func(), error) {
	src, closeSrc, err := openSensor(cfg)
	if err != nil || !cfg.Record {
		return src, closeSrc, err
	}

	dir, err := motion.RecordingsDir()
	if err != nil {
		closeSrc()
		return nil, func() {}, err
	}
	rec, err := motion.NewRecorder(src, motion.RecordingPath(dir, string(cfg.Kind), time.Now()))
	if err != nil {
		closeSrc()
		return nil, func() {}, fmt.Errorf("record: %w", err)
	}
	debug.Log("sensor", "recording to %s", rec.Path())
	return rec, func() {
		rec.Close()
		debug.Log("sensor", "recorded %d samples", rec.Len())
		closeSrc()
	}, nil
}

func openSensor(cfg config.SensorConfig) (motion.Source, func(), error) {
	noop := func() {}

	switch cfg.Kind {
	case config.SensorSim:
		return motion.NewSimSource(), noop, nil

	case config.SensorReplay:
		src, err := motion.LoadReplay(cfg.Path, cfg.Loop)
		if err != nil {
			return nil, noop, err
		}
		debug.Log("sensor", "replaying %d samples from %s", src.Len(), cfg.Path)
		return src, noop, nil

	case config.SensorEvdev:
		path := cfg.Path
		if path == "" {
			found, err := motion.FindMotionNode()
			if err != nil {
				return nil, noop, err
			}
			path = found
		}
		src, err := motion.OpenEvdev(path)
		if err != nil {
			return nil, noop, err
		}
		debug.Log("sensor", "evdev %s (%s)", path, src.Name())
		return src, func() { src.Close() }, nil

	case config.SensorIIO:
		dir := cfg.Path
		if dir == "" {
			found, err := motion.FindIIODevice(motion.IIOBase)
			if err != nil {
				return nil, noop, err
			}
			dir = found
		}
		src, err := motion.OpenIIO(dir)
		if err != nil {
			return nil, noop, err
		}
		debug.Log("sensor", "iio %s", src.Dir())
		return src, noop, nil
	}
	return nil, noop, fmt.Errorf("sensor: unknown kind %q", cfg.Kind)
}

func openButtons(cfg config.ButtonsConfig, latch *motion.Latch) (motion.Buttons, func(), error) {
	if cfg.EvdevPath == "" {
		return latch, func() {}, nil
	}
	front, side := cfg.FrontKey, cfg.SideKey
	if front == 0 {
		front = motion.DefaultFrontKey
	}
	if side == 0 {
		side = motion.DefaultSideKey
	}
	evb, err := motion.OpenEvdevButtons(cfg.EvdevPath, front, side)
	if err != nil {
		return nil, func() {}, err
	}
	return motion.MultiButtons{latch, evb}, func() { evb.Close() }, nil
}

// link is the opened transport plus what the UI needs to know about it
type link struct {
	transport sequencer.Transport
	toggle    tui.Linker // set when the connection can be flipped by hand
	describe  string
}

func openTransport(ctx context.Context, cfg *config.Config, headless bool) (link, error) {
	tc := cfg.Transport

	switch tc.Kind {
	case config.TransportBLE:
		p := ble.NewPeripheral(cfg.DeviceName)
		if err := p.Start(); err != nil {
			return link{}, fmt.Errorf("ble: %w", err)
		}
		return link{transport: p, describe: fmt.Sprintf("ble %q", p.Name())}, nil

	case config.TransportPort:
		t := midi.NewPortTransport(tc.PortName)
		go t.Run(ctx)
		return link{transport: t, describe: fmt.Sprintf("port %q", tc.PortName)}, nil

	case config.TransportVirtual:
		t, err := midi.NewVirtualPortTransport(cfg.DeviceName)
		if err != nil {
			return link{}, err
		}
		return link{transport: t, describe: fmt.Sprintf("virtual port %q", cfg.DeviceName)}, nil

	case config.TransportSerial:
		t := midi.NewSerialTransport(tc.Device, tc.Baud)
		if err := t.Open(); err != nil {
			debug.Log("serial", "%v (will retry)", err)
		}
		go t.Run(ctx)
		return link{transport: t, describe: fmt.Sprintf("serial %s @ %d", tc.Device, tc.Baud)}, nil

	case config.TransportLog:
		// the terminal UI owns stdout, so packets go to the debug log there
		var w io.Writer = os.Stdout
		if !headless {
			w = debug.Writer("send")
		}
		t := midi.NewLogTransport(w, true)
		return link{transport: t, toggle: t, describe: "log"}, nil
	}
	return link{}, fmt.Errorf("transport: unknown kind %q", tc.Kind)
}
