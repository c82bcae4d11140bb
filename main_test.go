package main

import (
	"testing"

	"motion-midi/config"
)

func TestApplyOverrides(t *testing.T) {
	testCases := map[string]struct {
		sensor    string
		transport string
		check     func(t *testing.T, c *config.Config)
	}{
		"None": {
			check: func(t *testing.T, c *config.Config) {
				if c.Sensor.Kind != config.SensorSim || c.Transport.Kind != config.TransportBLE {
					t.Errorf("Defaults changed: %+v %+v", c.Sensor, c.Transport)
				}
			},
		},
		"ReplayPath": {
			sensor: "replay:swing.csv",
			check: func(t *testing.T, c *config.Config) {
				if c.Sensor.Kind != config.SensorReplay || c.Sensor.Path != "swing.csv" {
					t.Errorf("Unexpected sensor %+v", c.Sensor)
				}
			},
		},
		"PortName": {
			transport: "port:FluidSynth",
			check: func(t *testing.T, c *config.Config) {
				if c.Transport.Kind != config.TransportPort || c.Transport.PortName != "FluidSynth" {
					t.Errorf("Unexpected transport %+v", c.Transport)
				}
			},
		},
		"SerialDevice": {
			transport: "serial:/dev/ttyUSB1",
			check: func(t *testing.T, c *config.Config) {
				if c.Transport.Device != "/dev/ttyUSB1" || c.Transport.Baud != 115200 {
					t.Errorf("Unexpected transport %+v", c.Transport)
				}
			},
		},
		"KindOnly": {
			sensor:    "evdev",
			transport: "log",
			check: func(t *testing.T, c *config.Config) {
				if c.Sensor.Kind != config.SensorEvdev || c.Sensor.Path != "" || c.Transport.Kind != config.TransportLog {
					t.Errorf("Unexpected %+v %+v", c.Sensor, c.Transport)
				}
			},
		},
	}

	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			applyOverrides(cfg, tt.sensor, tt.transport)
			tt.check(t, cfg)
		})
	}
}
