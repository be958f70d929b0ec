// Package parameter computes physical parameters used by the lifetime and
// microscopy routines.
package parameter

import "math"

// Omega returns the angular frequency ω = 2π/T of the given period.
func Omega(period float64) float64 {
	return 2 * math.Pi / period
}

// AbbeDiffractionLimit returns Abbe's diffraction limit d = λ / 2NA, in the
// unit of wavelength.
func AbbeDiffractionLimit(wavelength, numericalAperture float64) float64 {
	return wavelength / (2 * numericalAperture)
}
