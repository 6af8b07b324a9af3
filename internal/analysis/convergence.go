// Package analysis post-processes recorded runs: settling detection over
// scalar series such as the per-tick mean radius error.
package analysis

import "gonum.org/v1/gonum/stat"

// Convergence summarizes whether and when a series settled under a
// tolerance band.
type Convergence struct {
	// Settled reports whether the series entered the band and stayed.
	Settled bool
	// SettlingIndex is the first index after which every value stays
	// below the tolerance; -1 when the series never settles.
	SettlingIndex int
	// FinalMean and FinalStdDev describe the tail window.
	FinalMean   float64
	FinalStdDev float64
}

// Analyze scans a series for convergence below tol and summarizes its last
// window samples. Window is clamped to the series length; an empty series
// reports unsettled.
func Analyze(series []float64, tol float64, window int) Convergence {
	c := Convergence{SettlingIndex: -1}
	if len(series) == 0 {
		return c
	}

	// Walk backward: the settling index is where the final in-band
	// stretch begins.
	settle := len(series)
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] >= tol {
			break
		}
		settle = i
	}
	if settle < len(series) {
		c.Settled = true
		c.SettlingIndex = settle
	}

	if window > len(series) || window <= 0 {
		window = len(series)
	}
	tail := series[len(series)-window:]
	c.FinalMean = stat.Mean(tail, nil)
	if len(tail) > 1 {
		c.FinalStdDev = stat.StdDev(tail, nil)
	}
	return c
}
