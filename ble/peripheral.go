// Package ble exposes the engine as a BLE-MIDI peripheral: one GATT service
// with a single characteristic that carries 5-byte packets as notifications.
package ble

import (
	"fmt"
	"sync"
	"sync/atomic"

	"tinygo.org/x/bluetooth"

	"motion-midi/debug"
	"motion-midi/midi"
)

// Peripheral is a BLE-MIDI transport. Connected follows the central's
// connect and disconnect callbacks.
type Peripheral struct {
	name    string
	adapter *bluetooth.Adapter

	mu        sync.Mutex
	char      bluetooth.Characteristic
	started   bool
	connected atomic.Bool
	centrals  atomic.Int32
}

// NewPeripheral creates a peripheral advertising as name on the default adapter
func NewPeripheral(name string) *Peripheral {
	return &Peripheral{name: name, adapter: bluetooth.DefaultAdapter}
}

// Start enables the adapter, registers the MIDI service and starts
// advertising. Safe to call once.
func (p *Peripheral) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}

	serviceUUID, err := bluetooth.ParseUUID(midi.ServiceUUID)
	if err != nil {
		return fmt.Errorf("service uuid: %w", err)
	}
	charUUID, err := bluetooth.ParseUUID(midi.CharacteristicUUID)
	if err != nil {
		return fmt.Errorf("characteristic uuid: %w", err)
	}

	if err := p.adapter.Enable(); err != nil {
		return fmt.Errorf("enable adapter: %w", err)
	}
	p.adapter.SetConnectHandler(p.onConnect)

	err = p.adapter.AddService(&bluetooth.Service{
		UUID: serviceUUID,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &p.char,
				UUID:   charUUID,
				Value:  []byte{},
				Flags: bluetooth.CharacteristicReadPermission |
					bluetooth.CharacteristicWritePermission |
					bluetooth.CharacteristicWriteWithoutResponsePermission |
					bluetooth.CharacteristicNotifyPermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					debug.Log("ble", "central wrote %d bytes (ignored)", len(value))
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("add midi service: %w", err)
	}

	adv := p.adapter.DefaultAdvertisement()
	err = adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    p.name,
		ServiceUUIDs: []bluetooth.UUID{serviceUUID},
	})
	if err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	if err := adv.Start(); err != nil {
		return fmt.Errorf("start advertising: %w", err)
	}

	p.started = true
	debug.Log("ble", "advertising as %q", p.name)
	return nil
}

func (p *Peripheral) onConnect(device bluetooth.Device, connected bool) {
	p.setConnected(connected)
	debug.Log("ble", "central %s connected=%v", device.Address.String(), connected)
}

// setConnected tracks how many centrals are attached; one is enough
func (p *Peripheral) setConnected(connected bool) {
	var n int32
	if connected {
		n = p.centrals.Add(1)
	} else {
		n = p.centrals.Add(-1)
		if n < 0 {
			p.centrals.Store(0)
			n = 0
		}
	}
	p.connected.Store(n > 0)
}

// Send notifies subscribed centrals with the packet bytes
func (p *Peripheral) Send(pkt midi.Packet) error {
	if !p.connected.Load() {
		return midi.ErrNotConnected
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return midi.ErrNotConnected
	}
	b := pkt.Bytes()
	if _, err := p.char.Write(b[:]); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

func (p *Peripheral) Connected() bool {
	return p.connected.Load()
}

// Name returns the advertised name
func (p *Peripheral) Name() string {
	return p.name
}
