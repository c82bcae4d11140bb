package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"motion-midi/config"
	"motion-midi/debug"
	"motion-midi/motion"
	"motion-midi/sequencer"
	"motion-midi/theme"
	"motion-midi/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/motion-midi/config.yaml)")
	sensorFlag := flag.String("sensor", "", "sensor kind[:path] - sim, replay:<file.csv>, evdev[:<node>], iio[:<dir>]")
	transportFlag := flag.String("transport", "", "transport kind[:target] - ble, port[:<name>], virtual, serial[:<device>], log")
	headless := flag.Bool("headless", false, "no terminal UI, print status lines")
	debugFlag := flag.Bool("debug", false, "write debug log")
	logPath := flag.String("log", "", "debug log path (implies -debug)")
	record := flag.Bool("record", false, "save sensor samples for replay")
	flag.Parse()

	opts := runOptions{
		configPath: *configPath,
		sensor:     *sensorFlag,
		transport:  *transportFlag,
		headless:   *headless,
		debug:      *debugFlag || *logPath != "",
		logPath:    *logPath,
		record:     *record,
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	configPath string
	sensor     string
	transport  string
	headless   bool
	debug      bool
	logPath    string
	record     bool
}

func run(opts runOptions) error {
	if opts.debug {
		if err := debug.Enable(opts.logPath); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyOverrides(cfg, opts.sensor, opts.transport)
	if opts.record {
		cfg.Sensor.Record = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	debug.Log("config", "sensor=%s transport=%s window=%d hold=%s",
		cfg.Sensor.Kind, cfg.Transport.Kind, cfg.Engine.WindowSize, cfg.Hold())

	initial, err := sequencer.ParseMode(cfg.Engine.InitialMode)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, closeSource, err := openSource(cfg.Sensor)
	if err != nil {
		return err
	}
	defer closeSource()

	latch := &motion.Latch{}
	buttons, closeButtons, err := openButtons(cfg.Buttons, latch)
	if err != nil {
		return err
	}
	defer closeButtons()

	out, err := openTransport(ctx, cfg, opts.headless)
	if err != nil {
		return err
	}

	seq := sequencer.New(source, buttons, out.transport, sequencer.Options{
		WindowSize:  cfg.Engine.WindowSize,
		Hold:        cfg.Hold(),
		Idle:        cfg.Idle(),
		CenterNote:  uint8(cfg.Engine.CenterNote),
		InitialMode: initial,
	})

	fmt.Printf("%s ready\n", cfg.DeviceName)
	fmt.Printf("sensor: %s  transport: %s\n", cfg.Sensor.Kind, out.describe)
	debug.Log("engine", "%s ready", cfg.DeviceName)

	done := make(chan error, 1)
	go func() {
		done <- seq.Run(ctx)
	}()

	if opts.headless {
		printStatus(ctx, seq)
	} else {
		palette, err := theme.LoadOrDefault(cfg.UI.Palette)
		if err != nil {
			cancel()
			<-done
			return fmt.Errorf("palette: %w", err)
		}
		m := tui.NewModel(seq, latch, theme.New(palette), cfg.DeviceName)
		m.Link = out.toggle
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			cancel()
			<-done
			return err
		}
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// applyOverrides applies "kind[:target]" flag values on top of the file config
func applyOverrides(cfg *config.Config, sensor, transport string) {
	if sensor != "" {
		kind, target, _ := strings.Cut(sensor, ":")
		cfg.Sensor.Kind = config.SensorKind(kind)
		if target != "" {
			cfg.Sensor.Path = target
		}
	}
	if transport != "" {
		kind, target, _ := strings.Cut(transport, ":")
		cfg.Transport.Kind = config.TransportKind(kind)
		if target == "" {
			return
		}
		switch cfg.Transport.Kind {
		case config.TransportPort:
			cfg.Transport.PortName = target
		case config.TransportSerial:
			cfg.Transport.Device = target
		}
	}
}

// printStatus prints the status line whenever it changes
func printStatus(ctx context.Context, seq *sequencer.Sequencer) {
	last := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-seq.UpdateChan:
			line := sequencer.StatusLine(seq.Status())
			if line != last {
				fmt.Println(line)
				last = line
			}
			debug.LogEvery(50, "engine", "%s", line)
		}
	}
}
