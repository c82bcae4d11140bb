package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.WindowSize != 24 || cfg.Hold() != 100*time.Millisecond {
		t.Errorf("Expected defaults, got %+v", cfg.Engine)
	}
	if cfg.Transport.Kind != TransportBLE {
		t.Errorf("Expected ble transport by default, got %s", cfg.Transport.Kind)
	}
}

func TestLoadFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
device_name: wand
sensor:
  kind: replay
  path: swing.csv
  loop: true
transport:
  kind: port
  port_name: fluid
engine:
  hold_ms: 50
  initial_mode: gyro
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DeviceName != "wand" {
		t.Errorf("Expected device name wand, got %q", cfg.DeviceName)
	}
	if cfg.Sensor.Kind != SensorReplay || cfg.Sensor.Path != "swing.csv" || !cfg.Sensor.Loop {
		t.Errorf("Unexpected sensor %+v", cfg.Sensor)
	}
	if cfg.Transport.Kind != TransportPort || cfg.Transport.PortName != "fluid" {
		t.Errorf("Unexpected transport %+v", cfg.Transport)
	}
	if cfg.Hold() != 50*time.Millisecond {
		t.Errorf("Expected 50ms hold, got %s", cfg.Hold())
	}
	// untouched fields keep defaults
	if cfg.Idle() != 100*time.Millisecond || cfg.Engine.WindowSize != 24 || cfg.Transport.Baud != 115200 {
		t.Errorf("Defaults lost: %+v %+v", cfg.Engine, cfg.Transport)
	}
	if cfg.Engine.InitialMode != "gyro" {
		t.Errorf("Expected initial mode gyro, got %q", cfg.Engine.InitialMode)
	}
}

func TestValidate(t *testing.T) {
	testCases := map[string]struct {
		modify func(c *Config)
		valid  bool
	}{
		"Defaults":         {modify: func(c *Config) {}, valid: true},
		"UnknownSensor":    {modify: func(c *Config) { c.Sensor.Kind = "kinect" }},
		"ReplayNoPath":     {modify: func(c *Config) { c.Sensor.Kind = SensorReplay }},
		"UnknownTransport": {modify: func(c *Config) { c.Transport.Kind = "wifi" }},
		"SerialNoBaud":     {modify: func(c *Config) { c.Transport.Kind = TransportSerial; c.Transport.Baud = 0 }},
		"SerialOK":         {modify: func(c *Config) { c.Transport.Kind = TransportSerial }, valid: true},
		"ZeroWindow":       {modify: func(c *Config) { c.Engine.WindowSize = 0 }},
		"NegativeHold":     {modify: func(c *Config) { c.Engine.HoldMS = -1 }},
		"CenterTooHigh":    {modify: func(c *Config) { c.Engine.CenterNote = 128 }},
		"ZeroHold":         {modify: func(c *Config) { c.Engine.HoldMS = 0 }},
		"ZeroIdle":         {modify: func(c *Config) { c.Engine.IdleMS = 0 }},
		"ZeroCenter":       {modify: func(c *Config) { c.Engine.CenterNote = 0 }},
		"LowestCenter":     {modify: func(c *Config) { c.Engine.CenterNote = 1 }, valid: true},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transport:\n  kind: carrier-pigeon\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected validation error")
	}

	if err := os.WriteFile(path, []byte("engine: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.DeviceName = "stick"
	cfg.Engine.CenterNote = 48

	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DeviceName != "stick" || loaded.Engine.CenterNote != 48 {
		t.Errorf("Unexpected config after save: %+v", loaded)
	}
}
