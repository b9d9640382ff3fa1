package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreshold(t *testing.T) {
	assert.Equal(t, float32(0), Threshold(0))
	assert.InDelta(t, 0.5, Threshold(50), 1e-7)
	assert.InDelta(t, 0.99, Threshold(99), 1e-7)
	assert.Equal(t, float32(0), Threshold(100))
	assert.Equal(t, Threshold(1234), Threshold(34))
}

func TestQuantizeAtZeroThreshold(t *testing.T) {
	state := Vec{0.1, 0, 0.5, 0.9}
	for _, tick := range []uint32{0, 100, 4200} {
		p := Quantize(&state, tick)
		assert.Equal(t, Pattern(0b1101), p, "tick=%d", tick)
	}
}

func TestQuantizeAtTopThreshold(t *testing.T) {
	state := Vec{0.5, 0.6, 0.9, 0.995}
	assert.Equal(t, Pattern(0b1000), Quantize(&state, 99))
	assert.Equal(t, Pattern(0b1000), Quantize(&state, 199))
}

func TestDutyCycleMonotonic(t *testing.T) {
	prev := -1
	for i := 0; i <= 1000; i++ {
		v := float32(i) / 1001
		d := DutyCycle(v)
		if d < prev {
			t.Fatalf("DutyCycle(%v) = %d, below previous %d", v, d, prev)
		}
		prev = d
	}
	assert.Equal(t, 0, DutyCycle(0))
	assert.Equal(t, 50, DutyCycle(0.5))
	assert.Equal(t, 100, DutyCycle(0.999))
}

func TestDutyCycleMatchesQuantize(t *testing.T) {
	state := Vec{0.05, 0.33, 0.5, 0.87}
	var on [Channels]int
	for tick := uint32(0); tick < DitherPeriod; tick++ {
		p := Quantize(&state, tick)
		for i := range on {
			if p.Bit(i) {
				on[i]++
			}
		}
	}
	for i, v := range state {
		assert.Equal(t, DutyCycle(v), on[i], "channel %d", i)
	}
	assert.True(t, on[0] < on[1] && on[1] < on[2] && on[2] < on[3])
}

func TestPatternPort(t *testing.T) {
	p := Pattern(0b1011)
	assert.Equal(t, uint8(0xB0), p.Port(4))
	assert.Equal(t, uint8(0x0B), p.Port(0))
	assert.Equal(t, uint8(0xF0), LineMask(4))
	assert.Equal(t, uint8(0x0F), LineMask(0))
	assert.Equal(t, uint8(0x3C), LineMask(2))
}
