// Package pattern computes a slowly evolving four-channel brightness pattern
// and dithers it onto binary output lines, one update per tick.
//
// Each tick blends two fixed cross-channel maps, adds value noise, an
// escape-time term and a per-channel oscillation, folds every channel back
// into [0, 1) and compares the result against a sawtooth threshold. The
// package has no hardware dependencies; output goes through a Sink.
package pattern

import (
	"errors"
	"math"
)

// Per-tick term weights and phase rates of the update engine.
const (
	noiseWeight      = 0.2
	escapeWeight     = 0.3
	oscillatorWeight = 0.2

	noiseScale     = 5
	noiseDriftRate = 0.01
	oscillatorRate = 0.05
)

// InitialState returns the state vector an engine starts from.
func InitialState() Vec { return Vec{0.5, 0.5, 0.5, 0.5} }

// Engine errors.
var (
	ErrNilSink        = errors.New("pattern: nil sink")
	ErrBadShift       = errors.New("pattern: output lines do not fit an 8-bit port")
	ErrNegativeWeight = errors.New("pattern: matrix entries must be non-negative")
)

// Engine owns the evolving channel state and advances it once per tick.
//
// Tick is the only method that mutates the state. It performs no allocation
// and never blocks, so it may be called straight from a timer interrupt. It
// must not be re-entered; on TinyGo targets interrupts are masked while it
// runs.
type Engine struct {
	a, b  Matrix
	state Vec
	tick  uint32
	last  Pattern

	sink  Sink
	shift uint8

	g  guard
	nc noCopy
}

// New returns an engine using the two fixed regimes, writing to the four
// port lines starting at shift.
func New(sink Sink, shift uint8) (*Engine, error) {
	return NewWithMatrices(regimeA, regimeB, sink, shift)
}

// NewWithMatrices returns an engine blending between a and b. The matrices
// are copied and never modified afterwards.
func NewWithMatrices(a, b Matrix, sink Sink, shift uint8) (*Engine, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	if shift > 8-Channels {
		return nil, ErrBadShift
	}
	if !a.nonNegative() || !b.nonNegative() {
		return nil, ErrNegativeWeight
	}
	return &Engine{
		a:     a,
		b:     b,
		state: InitialState(),
		sink:  sink,
		shift: shift,
	}, nil
}

// Tick advances the state by one step, writes the dithered output pattern to
// the sink and increments the tick counter, wrapping on overflow.
func (e *Engine) Tick() {
	e.g.lock()

	t := e.tick
	ft := float32(t)
	m := Blend(&e.a, &e.b, BlendWeight(t))
	cand := m.Apply(e.state)

	// Channels are folded in place, so the last channel sees the first
	// channel's updated value as its neighbour.
	for i := range cand {
		x := cand[i]
		y := cand[(i+1)%Channels]
		v := x
		v += noiseWeight * FBM(x*noiseScale+ft*noiseDriftRate, y*noiseScale)
		v += escapeWeight * EscapeTime(x*2-1, y*2-1, EscapeIterations)
		v += oscillatorWeight * FastSin(ft*oscillatorRate+float32(i)*halfPi)
		cand[i] = fold(v)
	}
	e.state = cand

	e.last = Quantize(&e.state, t)
	e.sink.WriteMasked(e.last.Port(e.shift), LineMask(e.shift))
	e.tick = t + 1

	e.g.unlock()
}

// fold maps v into [0, 1) by taking |v| modulo 1.
func fold(v float32) float32 {
	if v < 0 {
		v = -v
	}
	// Exact for float32 operands, so the result stays below 1.
	r := float32(math.Mod(float64(v), 1))
	if !(r >= 0 && r < 1) {
		// NaN or Inf input.
		return 0
	}
	return r
}

// State returns a snapshot of the channel values.
func (e *Engine) State() Vec {
	e.g.lock()
	defer e.g.unlock()
	return e.state
}

// TickCount returns the number of ticks run, modulo 2³².
func (e *Engine) TickCount() uint32 {
	e.g.lock()
	defer e.g.unlock()
	return e.tick
}

// Pattern returns the pattern written by the most recent tick.
func (e *Engine) Pattern() Pattern {
	e.g.lock()
	defer e.g.unlock()
	return e.last
}

// SetTick moves the tick counter, e.g. to resume a pattern at a known phase.
func (e *Engine) SetTick(tick uint32) {
	e.g.lock()
	defer e.g.unlock()
	e.tick = tick
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
