package pattern

// Channels is the number of indicator channels driven by the engine.
const Channels = 4

// BlendRate scales the tick counter into the phase of the regime blend.
const BlendRate = 0.001

// Vec holds one value per channel.
type Vec [Channels]float32

// Matrix is a channel cross-influence map. Row i weights the contribution of
// every channel to channel i.
type Matrix [Channels][Channels]float32

var (
	regimeA = Matrix{
		{0.90, 0.10, 0.00, 0.00},
		{0.00, 0.90, 0.10, 0.00},
		{0.00, 0.00, 0.90, 0.10},
		{0.10, 0.00, 0.00, 0.90},
	}
	regimeB = Matrix{
		{0.80, 0.00, 0.20, 0.00},
		{0.20, 0.80, 0.00, 0.00},
		{0.00, 0.20, 0.80, 0.00},
		{0.00, 0.00, 0.20, 0.80},
	}
)

// RegimeA returns a copy of the first fixed transformation.
func RegimeA() Matrix { return regimeA }

// RegimeB returns a copy of the second fixed transformation.
func RegimeB() Matrix { return regimeB }

// Blend returns the entrywise convex combination a·(1-w) + b·w.
func Blend(a, b *Matrix, w float32) (m Matrix) {
	for i := range m {
		for j := range m[i] {
			m[i][j] = a[i][j]*(1-w) + b[i][j]*w
		}
	}
	return m
}

// Apply returns the matrix-vector product m·v. No normalization is applied.
func (m *Matrix) Apply(v Vec) (out Vec) {
	for i := range m {
		var sum float32
		for j := range m[i] {
			sum += m[i][j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// nonNegative reports whether every entry is >= 0. NaN entries fail.
func (m *Matrix) nonNegative() bool {
	for i := range m {
		for j := range m[i] {
			if !(m[i][j] >= 0) {
				return false
			}
		}
	}
	return true
}

// BlendWeight returns the regime blend weight for a tick, in [0, 1].
func BlendWeight(tick uint32) float32 {
	return (FastSin(float32(tick)*BlendRate) + 1) * 0.5
}
