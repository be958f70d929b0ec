// Package simulation generates synthetic fluorescence lifetime data: ideal and
// instrument-convolved exponential decays and shot noise.
package simulation

import (
	"math"

	"imgal/pkg/distribution"
	"imgal/pkg/filter"
	"imgal/pkg/grid"
	"imgal/pkg/imgerr"
)

// fwhmToSigma converts a Gaussian full width at half maximum to its standard
// deviation.
var fwhmToSigma = 1 / (2 * math.Sqrt(2*math.Ln2))

// timeStep returns the spacing of samples points evenly covering [0, period].
func timeStep(samples int, period float64) float64 {
	if samples < 2 {
		return 0
	}
	return period / float64(samples-1)
}

// IdealDecay1D simulates a mono-exponential decay I(t) = I₀ * e^(-t/τ) over
// samples evenly spaced time points covering one period.
func IdealDecay1D(samples int, period, tau, initialValue float64) []float64 {
	dt := timeStep(samples, period)
	decay := make([]float64, samples)
	for i := range decay {
		decay[i] = initialValue * math.Exp(-float64(i)*dt/tau)
	}
	return decay
}

// IdealExponentialDecay1D simulates a multi-exponential decay
//
//	I(t) = Σ αᵢ * e^(-t/τᵢ), αᵢ = totalCounts * fᵢ / τᵢ
//
// whose continuous integral equals totalCounts. taus and fractions are paired
// component lifetimes and their fractional contributions.
func IdealExponentialDecay1D(samples int, period float64, taus, fractions []float64, totalCounts float64) ([]float64, error) {
	if len(taus) != len(fractions) {
		return nil, &imgerr.MismatchedLengthsError{LenA: len(taus), LenB: len(fractions)}
	}

	dt := timeStep(samples, period)
	decay := make([]float64, samples)
	for k, tau := range taus {
		alpha := totalCounts * fractions[k] / tau
		for i := range decay {
			decay[i] += alpha * math.Exp(-float64(i)*dt/tau)
		}
	}
	return decay, nil
}

// GaussianIRF1D simulates a Gaussian instrument response function centered at
// center with the given full width at half maximum, normalized to sum to 1.
func GaussianIRF1D(samples int, period, center, fwhm float64) []float64 {
	return distribution.Gaussian(fwhm*fwhmToSigma, samples, period, center)
}

// GaussianExponentialDecay1D simulates a multi-exponential decay (see
// IdealExponentialDecay1D) convolved with a Gaussian instrument response
// function.
func GaussianExponentialDecay1D(samples int, period float64, taus, fractions []float64, totalCounts, irfCenter, irfWidth float64) ([]float64, error) {
	decay, err := IdealExponentialDecay1D(samples, period, taus, fractions, totalCounts)
	if err != nil {
		return nil, err
	}
	irf := GaussianIRF1D(samples, period, irfCenter, irfWidth)
	return filter.FFTConvolve(decay, irf), nil
}

// IdealDecay3D broadcasts a mono-exponential decay (see IdealDecay1D) to every
// pixel of a rows x cols image. The decay runs along the last axis, so the
// result is stored as a grid of rows planes, each a cols x samples image.
func IdealDecay3D(samples int, period, tau, initialValue float64, rows, cols int) grid.Grid3[float64] {
	decay := IdealDecay1D(samples, period, tau, initialValue)
	out := grid.NewGrid3[float64](rows, cols, samples)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			copy(out.Lane(r, c), decay)
		}
	}
	return out
}
