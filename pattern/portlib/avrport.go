//go:build avr && atmega328p

package portlib

import (
	"device/avr"

	"github.com/tinygo-org/ledfield/pattern"
)

var _ pattern.Sink = (*AVRPort)(nil)

// AVRPort writes directly to the PORTD output latch. Only the lines in the
// port's mask are ever modified.
type AVRPort struct {
	mask uint8
}

// NewAVRPortD switches the masked PORTD lines to output and returns a sink
// restricted to them. The reference wiring is mask 0xF0 (PD4..PD7).
func NewAVRPortD(mask uint8) *AVRPort {
	avr.DDRD.SetBits(mask)
	avr.PORTD.ClearBits(mask)
	return &AVRPort{mask: mask}
}

// WriteMasked performs a read-modify-write of PORTD.
func (p *AVRPort) WriteMasked(value, mask uint8) {
	mask &= p.mask
	avr.PORTD.ReplaceBits(value&mask, mask, 0)
}
