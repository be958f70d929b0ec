// Package threshold computes image histograms and intensity thresholds.
package threshold

import (
	"imgal/pkg/grid"
	"imgal/pkg/statistics"
)

// DefaultBins is the histogram size used when none is given.
const DefaultBins = 256

// Histogram counts data into bins of equal width spanning [min, max]. The
// maximum falls into the last bin. Empty data or bins <= 0 yield a single empty
// bin; constant data lands entirely in the first bin.
func Histogram[T grid.Number](data []T, bins int) []int64 {
	if len(data) == 0 || bins <= 0 {
		return make([]int64, 1)
	}

	lo, hi := statistics.MinMax(data)
	hist := make([]int64, bins)
	width := (float64(hi) - float64(lo)) / float64(bins)
	if width == 0 {
		hist[0] = int64(len(data))
		return hist
	}
	for _, v := range data {
		idx := int((float64(v) - float64(lo)) / width)
		hist[min(idx, bins-1)]++
	}
	return hist
}

// ManualMask marks the samples strictly greater than threshold.
func ManualMask[T grid.Number](data []T, threshold T) []bool {
	mask := make([]bool, len(data))
	for i, v := range data {
		mask[i] = v > threshold
	}
	return mask
}

// Otsu returns the intensity that best separates data into two classes by
// maximizing the between-class variance of its histogram (Otsu's method).
// The threshold is the upper edge of the last background bin, in data units.
// bins <= 0 uses DefaultBins.
func Otsu[T grid.Number](data []T, bins int) float64 {
	if bins <= 0 {
		bins = DefaultBins
	}
	if len(data) == 0 {
		return 0
	}
	lo, hi := statistics.MinMax(data)
	if lo == hi {
		return float64(lo)
	}

	hist := Histogram(data, bins)
	bin := otsuBin(hist)
	width := (float64(hi) - float64(lo)) / float64(bins)
	return float64(lo) + float64(bin+1)*width
}

// otsuBin returns the index of the last background bin.
func otsuBin(histogram []int64) int {
	var total int64
	var sum float64
	for i, count := range histogram {
		total += count
		sum += float64(i) * float64(count)
	}

	var sumB float64
	var wB int64
	best, maxVariance := 0, 0.0
	for t, count := range histogram {
		wB += count
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}

		sumB += float64(t) * float64(count)
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)

		// between-class variance
		varBetween := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if varBetween > maxVariance {
			maxVariance = varBetween
			best = t
		}
	}
	return best
}
