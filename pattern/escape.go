package pattern

// EscapeIterations is the iteration cap used by the update engine.
const EscapeIterations = 20

// EscapeTime iterates z ← z² + z₀ from z₀ = (x, y) until |z|² exceeds 4 or
// maxIter iterations have run, and returns the count divided by maxIter.
// Points that never escape return exactly 1. A non-positive cap returns 0.
func EscapeTime(x, y float32, maxIter int) float32 {
	if maxIter <= 0 {
		return 0
	}
	x0, y0 := x, y
	iter := 0
	for x*x+y*y <= 4 && iter < maxIter {
		xtemp := x*x - y*y + x0
		y = 2*x*y + y0
		x = xtemp
		iter++
	}
	return float32(iter) / float32(maxIter)
}
