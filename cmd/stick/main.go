//go:build tinygo

// Command stick is the firmware build: an MPU6886 on I2C, two buttons and
// the radio's BLE-MIDI peripheral, running the same engine as the host.
package main

import (
	"context"
	"machine"
	"time"

	"tinygo.org/x/drivers/mpu6886"

	"motion-midi/ble"
	"motion-midi/sequencer"
)

const deviceName = "motion-midi"

func main() {
	time.Sleep(time.Second) // Wait for sensor to power up

	// Initialize I2C bus
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
	})
	if err != nil {
		println("Failed to configure I2C:", err.Error())
		return
	}

	imu := mpu6886.New(i2c)
	if err := imu.Configure(mpu6886.Config{}); err != nil {
		println("Failed to configure sensor:", err.Error())
		return
	}

	buttons := newPinButtons(frontPin, sidePin)

	radio := ble.NewPeripheral(deviceName)
	if err := radio.Start(); err != nil {
		println("Failed to start BLE:", err.Error())
		return
	}

	seq := sequencer.New(&imuSource{dev: &imu}, buttons, radio, sequencer.Options{})

	println(deviceName, "ready")

	go func() {
		last := ""
		for range seq.UpdateChan {
			line := sequencer.StatusLine(seq.Status())
			if line != last {
				println(line)
				last = line
			}
		}
	}()

	seq.Run(context.Background())
}
