package pattern

// DitherPeriod is the length in ticks of one sawtooth dither cycle.
const DitherPeriod = 100

// Pattern holds one output bit per channel; bit i drives channel i.
type Pattern uint8

const patternMask = 1<<Channels - 1

// Threshold returns the dither threshold for a tick. It ramps from 0 towards
// 1 in steps of 1/DitherPeriod and restarts every DitherPeriod ticks.
func Threshold(tick uint32) float32 {
	return float32(tick%DitherPeriod) / DitherPeriod
}

// Quantize sets bit i of the result when state[i] exceeds the tick's dither
// threshold. Averaged over a dither cycle, each bit is set for a fraction of
// ticks proportional to its channel value.
func Quantize(state *Vec, tick uint32) (p Pattern) {
	threshold := Threshold(tick)
	for i, v := range state {
		if v > threshold {
			p |= 1 << i
		}
	}
	return p
}

// Bit reports whether channel i is set.
func (p Pattern) Bit(i int) bool { return p&(1<<i) != 0 }

// Port places the channel bits on port lines shift..shift+3.
func (p Pattern) Port(shift uint8) uint8 {
	return uint8(p&patternMask) << shift
}

// LineMask returns the port mask covering the four lines starting at shift.
func LineMask(shift uint8) uint8 {
	return patternMask << shift
}

// DutyCycle returns how many ticks of one dither cycle a channel holding v is
// driven high.
func DutyCycle(v float32) (n int) {
	for t := uint32(0); t < DitherPeriod; t++ {
		if v > Threshold(t) {
			n++
		}
	}
	return n
}
