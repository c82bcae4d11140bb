package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SensorKind identifies where motion samples come from
type SensorKind string

const (
	SensorSim    SensorKind = "sim"
	SensorReplay SensorKind = "replay"
	SensorEvdev  SensorKind = "evdev"
	SensorIIO    SensorKind = "iio"
)

// TransportKind identifies where packets go
type TransportKind string

const (
	TransportBLE     TransportKind = "ble"
	TransportPort    TransportKind = "port"
	TransportVirtual TransportKind = "virtual"
	TransportSerial  TransportKind = "serial"
	TransportLog     TransportKind = "log"
)

// SensorConfig selects the motion source
type SensorConfig struct {
	Kind SensorKind `yaml:"kind"`
	Path string     `yaml:"path,omitempty"` // recording, evdev node or IIO dir
	Loop bool       `yaml:"loop,omitempty"` // replay only

	Record bool `yaml:"record,omitempty"` // save samples under ~/.config/motion-midi/recordings
}

// ButtonsConfig selects the mode-request input besides the TUI keys
type ButtonsConfig struct {
	EvdevPath string `yaml:"evdev_path,omitempty"`
	FrontKey  int    `yaml:"front_key,omitempty"` // evdev key code, 0 = BTN_SOUTH
	SideKey   int    `yaml:"side_key,omitempty"`  // evdev key code, 0 = BTN_EAST
}

// TransportConfig selects the output
type TransportConfig struct {
	Kind     TransportKind `yaml:"kind"`
	PortName string        `yaml:"port_name,omitempty"` // substring match for port
	Device   string        `yaml:"device,omitempty"`    // serial device
	Baud     int           `yaml:"baud,omitempty"`
}

// EngineConfig holds the cycle tunables
type EngineConfig struct {
	WindowSize  int    `yaml:"window_size"`
	HoldMS      int    `yaml:"hold_ms"`
	IdleMS      int    `yaml:"idle_ms"`
	CenterNote  int    `yaml:"center_note"`
	InitialMode string `yaml:"initial_mode,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file, built-in if empty
}

// Config is the main configuration structure
type Config struct {
	DeviceName string          `yaml:"device_name"`
	Sensor     SensorConfig    `yaml:"sensor"`
	Buttons    ButtonsConfig   `yaml:"buttons,omitempty"`
	Transport  TransportConfig `yaml:"transport"`
	Engine     EngineConfig    `yaml:"engine"`
	UI         UIConfig        `yaml:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DeviceName: "motion-midi",
		Sensor: SensorConfig{
			Kind: SensorSim,
		},
		Transport: TransportConfig{
			Kind:   TransportBLE,
			Device: "/dev/ttyACM0",
			Baud:   115200,
		},
		Engine: EngineConfig{
			WindowSize: 24,
			HoldMS:     100,
			IdleMS:     100,
			CenterNote: 60,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "motion-midi"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing fields keep their defaults;
// a missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine cannot run with
func (c *Config) Validate() error {
	switch c.Sensor.Kind {
	case SensorSim, SensorEvdev, SensorIIO:
	case SensorReplay:
		if c.Sensor.Path == "" {
			return fmt.Errorf("sensor: replay needs a path")
		}
	default:
		return fmt.Errorf("sensor: unknown kind %q", c.Sensor.Kind)
	}

	switch c.Transport.Kind {
	case TransportBLE, TransportPort, TransportVirtual, TransportLog:
	case TransportSerial:
		if c.Transport.Device == "" || c.Transport.Baud <= 0 {
			return fmt.Errorf("transport: serial needs device and baud")
		}
	default:
		return fmt.Errorf("transport: unknown kind %q", c.Transport.Kind)
	}

	if c.Engine.WindowSize < 1 {
		return fmt.Errorf("engine: window_size must be at least 1")
	}
	if c.Engine.HoldMS < 1 || c.Engine.IdleMS < 1 {
		return fmt.Errorf("engine: hold_ms and idle_ms must be at least 1")
	}
	if c.Engine.CenterNote < 1 || c.Engine.CenterNote > 127 {
		return fmt.Errorf("engine: center_note %d out of range", c.Engine.CenterNote)
	}
	return nil
}

// Hold returns the note hold duration
func (c *Config) Hold() time.Duration {
	return time.Duration(c.Engine.HoldMS) * time.Millisecond
}

// Idle returns the pause after a cycle that sent nothing
func (c *Config) Idle() time.Duration {
	return time.Duration(c.Engine.IdleMS) * time.Millisecond
}
