// Package portlib provides output sinks and tick sources that connect a
// pattern.Engine to real microcontroller hardware.
package portlib

import (
	"errors"
	"math/bits"
)

var errNoPin = errors.New("portlib: output pin not connected")

// registerByte orders b for a serial-in parallel-out register loaded least
// significant bit first: after eight clocks bit i of b sits on output Qi.
func registerByte(b uint8) uint8 {
	return bits.Reverse8(b)
}
