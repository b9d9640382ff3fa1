package pattern

import "math"

const (
	// noisePeriod masks cell indices so the noise repeats every 256 cells.
	noisePeriod = 255

	fbmOctaves = 4
)

// Noise returns deterministic 2D value noise, roughly in [0, 1).
//
// Corner values come from the classic sine-scramble hash. The hash is reduced
// with a sign-preserving modulo so a negative sine yields a negative corner;
// results slightly below zero are expected and not corrected.
func Noise(x, y float32) float32 {
	// Truncation toward zero, like a C cast.
	xt, yt := int32(x), int32(y)
	xi, yi := xt&noisePeriod, yt&noisePeriod
	xf := x - float32(xt)
	yf := y - float32(yt)
	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	c00 := cornerHash(xi, yi)
	c10 := cornerHash(xi+1, yi)
	c01 := cornerHash(xi, yi+1)
	c11 := cornerHash(xi+1, yi+1)
	return c00*(1-u)*(1-v) +
		c10*u*(1-v) +
		c01*(1-u)*v +
		c11*u*v
}

func cornerHash(i, j int32) float32 {
	// Every step is rounded to float32, including the scramble product, so
	// the fractional part is taken from the single-precision value.
	n := float32(float32(i)*12.9898) + float32(float32(j)*78.233)
	h := float32(math.Sin(float64(n))) * 43758.5453
	return float32(math.Mod(float64(h), 1))
}

// FBM sums four octaves of Noise, starting at amplitude 0.5 and frequency 1
// and halving/doubling them per octave.
func FBM(x, y float32) float32 {
	var value float32
	amplitude := float32(0.5)
	frequency := float32(1)
	for i := 0; i < fbmOctaves; i++ {
		value += amplitude * Noise(x*frequency, y*frequency)
		amplitude *= 0.5
		frequency *= 2
	}
	return value
}
