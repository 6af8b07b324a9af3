package orbit

import "math"

// PreferredCompatibility scores how closely a body's attributes match the
// sun's preference vector, in [0,1] for in-range traits. Order matters: the
// sun's preferences are always compared against the body's attributes, so
// the function is not commutative.
func PreferredCompatibility(sun, body *Body) float64 {
	return traitSimilarity(sun.Preferences, body.Attributes)
}

// AttributeCompatibility scores the similarity of two bodies' own
// attributes. It is a pure normalized distance and therefore commutative,
// with AttributeCompatibility(a, a) == 1.
func AttributeCompatibility(a, b *Body) float64 {
	return traitSimilarity(a.Attributes, b.Attributes)
}

// traitSimilarity is 1 - (Σ|want[i]-have[i]|) / (N * AttrMax). Components in
// [AttrMin, AttrMax] guarantee a result in [0,1]; the function does not
// clamp, out-of-range inputs are the edit boundary's problem (see
// Cluster.SetAttribute). Mismatched dimensions score zero.
func traitSimilarity(want, have []float64) float64 {
	n := len(want)
	if n == 0 || len(have) != n {
		return 0
	}
	diff := 0.0
	for i := range want {
		diff += math.Abs(want[i] - have[i])
	}
	return 1 - diff/(float64(n)*AttrMax)
}
