// Package filter provides signal filters.
package filter

import (
	"math/bits"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTConvolve convolves a with b in the frequency domain. Both signals are zero
// padded to the next power of two covering the full linear convolution, and the
// result is trimmed to the length of a.
//
// a is typically the data signal and b the kernel or instrument response.
func FFTConvolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return make([]float64, len(a))
	}
	n := nextPowerOfTwo(len(a) + len(b) - 1)
	fft := fourier.NewFFT(n)

	padded := make([]float64, n)
	copy(padded, a)
	coeffA := fft.Coefficients(nil, padded)

	clear(padded)
	copy(padded, b)
	coeffB := fft.Coefficients(nil, padded)

	for i := range coeffA {
		coeffA[i] *= coeffB[i]
	}

	// the inverse transform is unnormalized
	seq := fft.Sequence(padded, coeffA)
	scale := 1 / float64(n)
	out := make([]float64, len(a))
	for i := range out {
		out[i] = seq[i] * scale
	}
	return out
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
