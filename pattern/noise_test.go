package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseDeterministic(t *testing.T) {
	points := [][2]float32{{0, 0}, {0.3, 0.7}, {12.5, 3.25}, {255.9, 1}, {1000.1, 42.42}}
	for _, p := range points {
		first := Noise(p[0], p[1])
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Noise(p[0], p[1]))
		}
		assert.Equal(t, FBM(p[0], p[1]), FBM(p[0], p[1]))
	}
}

func TestNoiseLatticeValues(t *testing.T) {
	// On integer coordinates the smoothstep weights vanish and the result is
	// the hash of the lower-left corner.
	var tests = []struct {
		x, y float32
		want float32
	}{
		{0, 0, 0},
		{1, 0, 0.94140625},
		{0, 1, 0.1123046875},
		{3, 7, 0.46484375},
		{8, 0, -0.8251953125},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, Noise(tc.x, tc.y), 1e-6, "Noise(%v, %v)", tc.x, tc.y)
	}
}

func TestCornerHashSinglePrecision(t *testing.T) {
	// sin(12.9898) * 43758.5453 is 17979.94140625 in float32; the double
	// precision product would give 0.9397698.
	assert.Equal(t, float32(0.94140625), cornerHash(1, 0))
	assert.Equal(t, float32(-0.8251953125), cornerHash(8, 0))
	assert.Equal(t, float32(0), cornerHash(0, 0))
}

func TestNoiseCellPeriod(t *testing.T) {
	// Cell indices are masked to 8 bits.
	assert.Equal(t, Noise(3, 7), Noise(3+256, 7))
	assert.Equal(t, Noise(3, 7), Noise(3, 7+512))
}

func TestNoiseRange(t *testing.T) {
	var sawNegative bool
	for i := 0; i < 200; i++ {
		for j := 0; j < 50; j++ {
			v := Noise(float32(i)*0.37, float32(j)*0.53)
			if v < -1 || v > 1 {
				t.Fatalf("Noise out of range: %v", v)
			}
			if v < 0 {
				sawNegative = true
			}
		}
	}
	// Negative corner hashes are kept as-is.
	assert.True(t, sawNegative)
}

func TestFBMSumsOctaves(t *testing.T) {
	assert.Equal(t, float32(0), FBM(0, 0))

	x, y := float32(1.3), float32(2.9)
	want := 0.5*Noise(x, y) + 0.25*Noise(2*x, 2*y) + 0.125*Noise(4*x, 4*y) + 0.0625*Noise(8*x, 8*y)
	assert.InDelta(t, want, FBM(x, y), 1e-6)

	for i := 0; i < 100; i++ {
		v := FBM(float32(i)*0.77, float32(i)*0.11)
		assert.LessOrEqual(t, v, float32(0.9375))
		assert.GreaterOrEqual(t, v, float32(-0.9375))
	}
}
