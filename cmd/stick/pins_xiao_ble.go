//go:build tinygo && xiao_ble

package main

import "machine"

const (
	frontPin = machine.D1
	sidePin  = machine.D2
)
