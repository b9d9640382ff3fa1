package pattern

import "math"

const (
	twoPi  = float32(2 * math.Pi)
	pi     = float32(math.Pi)
	halfPi = float32(math.Pi / 2)
)

// FastSin approximates sin(x) with a truncated Taylor series.
//
// The angle is reduced modulo 2π and folded onto [-π/2, π/2] before the
// 7th-order polynomial is evaluated, which bounds the error to about 1.6e-4.
// The result never leaves [-1, 1] but is not as precise as math.Sin.
func FastSin(x float32) float32 {
	x = float32(math.Mod(float64(x), float64(twoPi)))
	// Mod keeps the sign of x: bring the angle into [-π, π].
	if x > pi {
		x -= twoPi
	} else if x < -pi {
		x += twoPi
	}
	if x > halfPi {
		x = pi - x
	} else if x < -halfPi {
		x = -pi - x
	}
	x2 := x * x
	return x * (1 - x2*(1.0/6-x2*(1.0/120-x2*(1.0/5040))))
}

// FastCos approximates cos(x) as FastSin shifted by π/2.
func FastCos(x float32) float32 {
	return FastSin(x + halfPi)
}
