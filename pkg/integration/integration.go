// Package integration provides numerical integration of uniformly sampled
// 1-dimensional data.
package integration

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrOddSubintervals is returned by Simpson when the samples span an odd number
// of subintervals.
var ErrOddSubintervals = errors.New("simpson's 1/3 rule needs an even number of subintervals")

// Midpoint integrates samples taken at interval midpoints:
//
//	∫f(x)dx ≈ Δx * (f(x₁) + f(x₂) + ... + f(xₙ))
func Midpoint(x []float64, deltaX float64) float64 {
	return deltaX * floats.Sum(x)
}

// Simpson integrates y with Simpson's 1/3 rule:
//
//	∫f(x)dx ≈ (Δx/3) * (f(x₀) + 4f(x₁) + 2f(x₂) + ... + 4f(xₙ₋₁) + f(xₙ))
//
// y must hold an odd number of samples (an even number of subintervals),
// otherwise ErrOddSubintervals is returned.
func Simpson(y []float64, deltaX float64) (float64, error) {
	if len(y) == 0 {
		return 0, nil
	}
	n := len(y) - 1
	if n%2 != 0 {
		return 0, ErrOddSubintervals
	}

	integral := y[0] + y[n]
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			integral += 4 * y[i]
		} else {
			integral += 2 * y[i]
		}
	}
	return deltaX / 3 * integral, nil
}

// CompositeSimpson integrates y with Simpson's 1/3 rule, closing an odd number
// of subintervals with a trapezoid over the last one.
func CompositeSimpson(y []float64, deltaX float64) float64 {
	if len(y) < 2 {
		return 0
	}
	n := len(y) - 1
	if n%2 == 0 {
		integral, _ := Simpson(y, deltaX)
		return integral
	}

	integral, _ := Simpson(y[:n], deltaX)
	return integral + deltaX/2*(y[n-1]+y[n])
}
