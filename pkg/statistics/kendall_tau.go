package statistics

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"imgal/pkg/imgerr"
)

// ErrDegenerate is returned by WeightedKendallTauB when one of the sequences
// has no weighted variance, which leaves the statistic undefined.
var ErrDegenerate = errors.New("weighted kendall tau-b is undefined: zero variance")

const degenerateTolerance = 1e-12

// WeightedKendallTauB computes the weighted Kendall's Tau-b rank correlation
// between a and b, where each observation i carries weights[i] and a pair (i, j)
// contributes with weight weights[i]*weights[j].
//
// The observations are ordered by (a, b); the weighted discordance is then the
// weighted inversion count of the b sequence (see WeightedMergeSort). Ties are
// corrected for in both dimensions:
//
//	tau_b = (C - D) / sqrt((T - T_a) * (T - T_b))
//
// where T is the total pair weight, T_a and T_b the tied pair weights and C, D
// the concordant and discordant pair weights.
//
// Returns:
//   - tau_b in [-1, 1]
//   - ErrDegenerate when the denominator is zero
//   - *imgerr.MismatchedLengthsError when the inputs are not paired
func WeightedKendallTauB(a, b, weights []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &imgerr.MismatchedLengthsError{LenA: len(a), LenB: len(b)}
	}
	if len(a) != len(weights) {
		return 0, &imgerr.MismatchedLengthsError{LenA: len(a), LenB: len(weights)}
	}
	n := len(a)
	if n < 2 {
		return 0, ErrDegenerate
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(i, j int) int {
		if c := cmp.Compare(a[i], a[j]); c != 0 {
			return c
		}
		return cmp.Compare(b[i], b[j])
	})

	sortedB := make([]float64, n)
	sortedW := make([]float64, n)
	for k, i := range order {
		sortedB[k] = b[i]
		sortedW[k] = weights[i]
	}

	sum := floats.Sum(sortedW)
	total := (sum*sum - floats.Dot(sortedW, sortedW)) / 2

	// tied pairs in a, and jointly in (a, b), from the (a, b) ordering
	var tieA, tieAB float64
	var groupA, groupASq, groupAB, groupABSq float64
	for k, i := range order {
		w := weights[i]
		if k > 0 {
			prev := order[k-1]
			if a[i] != a[prev] {
				tieA += pairWeight(groupA, groupASq)
				groupA, groupASq = 0, 0
			}
			if a[i] != a[prev] || b[i] != b[prev] {
				tieAB += pairWeight(groupAB, groupABSq)
				groupAB, groupABSq = 0, 0
			}
		}
		groupA += w
		groupASq += w * w
		groupAB += w
		groupABSq += w * w
	}
	tieA += pairWeight(groupA, groupASq)
	tieAB += pairWeight(groupAB, groupABSq)

	discordant, err := WeightedMergeSort(sortedB, sortedW)
	if err != nil {
		return 0, err
	}

	// tied pairs in b, now that b is sorted
	var tieB, groupB, groupBSq float64
	for k := range sortedB {
		if k > 0 && sortedB[k] != sortedB[k-1] {
			tieB += pairWeight(groupB, groupBSq)
			groupB, groupBSq = 0, 0
		}
		groupB += sortedW[k]
		groupBSq += sortedW[k] * sortedW[k]
	}
	tieB += pairWeight(groupB, groupBSq)

	// C - D = (T - T_a - T_b + T_ab - D) - D
	numerator := total - tieA - tieB + tieAB - 2*discordant
	varA := total - tieA
	varB := total - tieB
	// the tie sums accumulate in a different order than total, so an exact
	// zero can come out as rounding noise
	if varA <= degenerateTolerance*total || varB <= degenerateTolerance*total {
		return 0, ErrDegenerate
	}
	denominator := math.Sqrt(varA * varB)
	if denominator == 0 || math.IsNaN(denominator) {
		return 0, ErrDegenerate
	}

	tau := numerator / denominator
	return math.Max(-1, math.Min(1, tau)), nil
}

// pairWeight returns Σ_{i<j} w_i*w_j for a group given Σw and Σw².
func pairWeight(sum, sumSq float64) float64 {
	return (sum*sum - sumSq) / 2
}
