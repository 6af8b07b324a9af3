package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// minSeparation guards direction normalization. Below this distance two
// bodies are treated as coincident: the direction is undefined and the force
// contribution is dropped rather than letting a NaN corrupt the integration.
const minSeparation = 1e-9

// unitBetween returns the unit vector from a toward b, and false when the
// two points are too close to define a direction.
func unitBetween(from, to r3.Vec) (r3.Vec, bool) {
	d := r3.Sub(to, from)
	n := r3.Norm(d)
	if n < minSeparation {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, d), true
}

// clampNorm rescales v to length max when it is longer, preserving direction.
func clampNorm(v r3.Vec, max float64) r3.Vec {
	n := r3.Norm(v)
	if n <= max {
		return v
	}
	return r3.Scale(max/n, v)
}

// lerp interpolates linearly between a and b with t clamped to [0,1].
func lerp(a, b r3.Vec, t float64) r3.Vec {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func finite(v r3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
