package statistics

import (
	"cmp"

	"gonum.org/v1/gonum/floats"

	"imgal/pkg/imgerr"
)

// WeightedMergeSort sorts data in ascending order and permutes weights
// identically, so every weight stays paired with the value it started with.
// The sort is stable.
//
// While merging, each time an element of the right run is placed ahead of the
// elements still waiting in the left run, the product of its weight with the
// summed weight of those left elements is added to the returned count. The
// result is the weighted number of inversions, Σ w_i*w_j over every pair that
// was out of order, and is the discordance term of the weighted Kendall's Tau-b.
//
// Parameters:
//   - data: values to sort in place
//   - weights: per-value weights, same length as data, permuted in place
//
// Returns:
//   - The weighted inversion count, or an error if the lengths differ
func WeightedMergeSort[T cmp.Ordered](data []T, weights []float64) (float64, error) {
	if len(data) != len(weights) {
		return 0, &imgerr.MismatchedLengthsError{LenA: len(data), LenB: len(weights)}
	}
	n := len(data)
	if n < 2 {
		return 0, nil
	}

	src, srcW := data, weights
	dst, dstW := make([]T, n), make([]float64, n)
	inBuffer := false
	var swaps float64

	// bottom-up: merge runs of width 1, 2, 4, ... ping-ponging between buffers
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			swaps += merge(src[lo:mid], srcW[lo:mid], src[mid:hi], srcW[mid:hi], dst[lo:hi], dstW[lo:hi])
		}
		src, dst = dst, src
		srcW, dstW = dstW, srcW
		inBuffer = !inBuffer
	}

	if inBuffer {
		copy(data, src)
		copy(weights, srcW)
	}
	return swaps, nil
}

// merge merges two sorted runs into out and returns the weighted inversions
// resolved by the merge. Ties take the left element first.
func merge[T cmp.Ordered](left []T, leftW []float64, right []T, rightW []float64, out []T, outW []float64) float64 {
	leftRemaining := floats.Sum(leftW)
	var swaps float64
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			if leftRemaining > 0 {
				swaps += leftRemaining * rightW[j]
			}
			out[k], outW[k] = right[j], rightW[j]
			j++
		} else {
			out[k], outW[k] = left[i], leftW[i]
			leftRemaining -= leftW[i]
			i++
		}
		k++
	}
	for ; i < len(left); i++ {
		out[k], outW[k] = left[i], leftW[i]
		k++
	}
	for ; j < len(right); j++ {
		out[k], outW[k] = right[j], rightW[j]
		k++
	}
	return swaps
}
