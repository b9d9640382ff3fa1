//go:build tinygo

package portlib

import (
	"machine"

	"github.com/tinygo-org/ledfield/pattern"
)

var _ pattern.Sink = (*Pins)(nil)

// Pins drives one GPIO per channel. Bit i of a write maps to pins[i], so the
// engine should use shift 0.
type Pins struct {
	pins [pattern.Channels]machine.Pin
}

// NewPins configures the pins as outputs, driven low.
func NewPins(pins [pattern.Channels]machine.Pin) (*Pins, error) {
	for _, pin := range pins {
		if pin == machine.NoPin {
			return nil, errNoPin
		}
	}
	for _, pin := range pins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
	return &Pins{pins: pins}, nil
}

// WriteMasked sets the pins selected by mask. Pins outside mask keep their level.
func (p *Pins) WriteMasked(value, mask uint8) {
	for i, pin := range p.pins {
		bit := uint8(1) << i
		if mask&bit != 0 {
			pin.Set(value&bit != 0)
		}
	}
}
