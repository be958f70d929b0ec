package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"imgal/pkg/grid"
)

// PoissonNoise1D applies shot noise to data: each positive sample is replaced
// by a draw from a Poisson distribution with mean sample*scale, and every other
// sample becomes 0. The same seed always yields the same output. data is not
// modified.
func PoissonNoise1D[T grid.Number](data []T, scale float64, seed uint64) []float64 {
	src := rand.NewSource(seed)
	noisy := make([]float64, len(data))
	for i, v := range data {
		lambda := float64(v) * scale
		if lambda <= 0 {
			continue
		}
		noisy[i] = distuv.Poisson{Lambda: lambda, Src: src}.Rand()
	}
	return noisy
}
