// Package distribution generates discrete probability distributions.
package distribution

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Gaussian samples exp(-(x-center)² / 2σ²) at bins evenly spaced points over
// [0, rangeWidth] and normalizes the result to sum to 1.
func Gaussian(sigma float64, bins int, rangeWidth, center float64) []float64 {
	if bins <= 0 {
		return nil
	}
	g := make([]float64, bins)
	if bins == 1 {
		g[0] = 1
		return g
	}

	width := rangeWidth / float64(bins-1)
	sigmaSq2 := 2 * sigma * sigma
	for i := range g {
		x := float64(i) * width
		g[i] = math.Exp(-(x - center) * (x - center) / sigmaSq2)
	}

	if sum := floats.Sum(g); sum > 0 {
		floats.Scale(1/sum, g)
	}
	return g
}
