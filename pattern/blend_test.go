package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendEndpoints(t *testing.T) {
	a, b := RegimeA(), RegimeB()
	assert.Equal(t, a, Blend(&a, &b, 0))
	assert.Equal(t, b, Blend(&a, &b, 1))

	mid := Blend(&a, &b, 0.5)
	assert.InDelta(t, 0.85, mid[0][0], 1e-6)
	assert.InDelta(t, 0.05, mid[0][1], 1e-6)
	assert.InDelta(t, 0.10, mid[0][2], 1e-6)
	assert.InDelta(t, 0.00, mid[0][3], 1e-6)
}

func TestApply(t *testing.T) {
	identity := Matrix{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	v := Vec{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, v, identity.Apply(v))

	a := RegimeA()
	got := a.Apply(Vec{1, 0, 0, 0})
	assert.Equal(t, Vec{0.9, 0, 0, 0.1}, got)
}

func TestRegimesAreStochasticRows(t *testing.T) {
	// Rows of both regimes sum to one, so any blend preserves a uniform state.
	a, b := RegimeA(), RegimeB()
	for _, w := range []float32{0, 0.25, 0.5, 0.75, 1} {
		m := Blend(&a, &b, w)
		out := m.Apply(InitialState())
		for i := range out {
			assert.InDelta(t, 0.5, out[i], 1e-6)
		}
	}
}

func TestRegimeAccessorsReturnCopies(t *testing.T) {
	a := RegimeA()
	a[0][0] = 42
	assert.Equal(t, float32(0.9), RegimeA()[0][0])

	b := RegimeB()
	b[3][3] = -1
	assert.Equal(t, float32(0.8), RegimeB()[3][3])
}

func TestNonNegative(t *testing.T) {
	a := RegimeA()
	require.True(t, a.nonNegative())
	a[2][1] = -0.01
	assert.False(t, a.nonNegative())
}

func TestBlendWeightRange(t *testing.T) {
	var lo, hi float32 = 1, 0
	for tick := uint32(0); tick < 70000; tick += 7 {
		w := BlendWeight(tick)
		require.GreaterOrEqual(t, w, float32(0), "tick=%d", tick)
		require.LessOrEqual(t, w, float32(1), "tick=%d", tick)
		lo, hi = min(lo, w), max(hi, w)
	}
	assert.Less(t, lo, float32(0.01))
	assert.Greater(t, hi, float32(0.99))

	for _, tick := range []uint32{1 << 24, 1<<31 - 1, 1 << 31, 1<<32 - 1} {
		w := BlendWeight(tick)
		assert.True(t, w >= 0 && w <= 1, "tick=%d w=%v", tick, w)
	}
}

func TestBlendWeightPeriod(t *testing.T) {
	// One full oscillation takes 2π/BlendRate ≈ 6283 ticks.
	const period = 6283
	assert.Equal(t, float32(0.5), BlendWeight(0))
	for _, tick := range []uint32{0, 100, 1571, 3000, 4712, 6000} {
		assert.InDelta(t, BlendWeight(tick), BlendWeight(tick+period), 2e-3, "tick=%d", tick)
	}
	// Quarter period is the crest, three quarters the trough.
	assert.InDelta(t, 1, BlendWeight(1571), 1e-3)
	assert.InDelta(t, 0, BlendWeight(4712), 1e-3)
}
