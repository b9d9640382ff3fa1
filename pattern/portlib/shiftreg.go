//go:build tinygo

package portlib

import (
	"machine"

	"github.com/tinygo-org/ledfield/pattern"
	"tinygo.org/x/drivers/shiftregister"
)

var _ pattern.Sink = (*ShiftRegister)(nil)

// ShiftRegister latches patterns into an 8-bit serial-in parallel-out
// register such as the 74HC595. The register cannot be read back, so the
// last latched byte is cached and every write is merged into it.
type ShiftRegister struct {
	dev     *shiftregister.Device
	latched uint8
}

// NewShiftRegister configures the three control pins and clears all outputs.
func NewShiftRegister(latch, clock, out machine.Pin) (*ShiftRegister, error) {
	if latch == machine.NoPin || clock == machine.NoPin || out == machine.NoPin {
		return nil, errNoPin
	}
	dev := shiftregister.New(shiftregister.EIGHT_BITS, latch, clock, out)
	dev.Configure()
	dev.WriteMask(0)
	return &ShiftRegister{dev: dev}, nil
}

// WriteMasked merges value into the latched byte and shifts it out when any
// line changes. Bit i of the latched byte drives output Qi.
func (sr *ShiftRegister) WriteMasked(value, mask uint8) {
	next := sr.latched&^mask | value&mask
	if next == sr.latched {
		return
	}
	sr.latched = next
	sr.dev.WriteMask(uint32(registerByte(next)))
}

// Latched returns the byte currently held by the register.
func (sr *ShiftRegister) Latched() uint8 { return sr.latched }
