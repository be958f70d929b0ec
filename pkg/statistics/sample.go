// Package statistics provides the weighted statistical primitives used by the
// colocalization analysis, plus a few general helpers.
package statistics

import (
	"gonum.org/v1/gonum/floats"

	"imgal/pkg/grid"
)

// EffectiveSampleSize computes Kish's effective sample size of a set of
// weights, (Σw)² / Σw². It is the number of unweighted samples the weighted
// set is statistically equivalent to. All-zero (or empty) weights give 0.
func EffectiveSampleSize(weights []float64) float64 {
	sumSq := floats.Dot(weights, weights)
	if sumSq == 0 {
		return 0
	}
	sum := floats.Sum(weights)
	return sum * sum / sumSq
}

// Sum returns the sum of data.
func Sum[T grid.Number](data []T) T {
	var total T
	for _, v := range data {
		total += v
	}
	return total
}

// MinMax returns the minimum and maximum of data. Empty input returns zero
// values.
func MinMax[T grid.Number](data []T) (T, T) {
	if len(data) == 0 {
		var zero T
		return zero, zero
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
