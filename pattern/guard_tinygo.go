//go:build tinygo

package pattern

import "runtime/interrupt"

// guard masks interrupts while the engine state is read or written, so a
// nested interrupt never observes a half-updated state vector.
type guard struct {
	state interrupt.State
}

func (g *guard) lock() { g.state = interrupt.Disable() }

func (g *guard) unlock() { interrupt.Restore(g.state) }
