package statistics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"imgal/pkg/imgerr"
)

// bruteForceInversions counts Σ w_i*w_j over pairs with i<j and data[i] > data[j].
func bruteForceInversions(data []int, weights []float64) float64 {
	var total float64
	for i := 0; i < len(data); i++ {
		for j := i + 1; j < len(data); j++ {
			if data[i] > data[j] {
				total += weights[i] * weights[j]
			}
		}
	}
	return total
}

// bruteForceTauB evaluates the weighted Tau-b definition over all pairs.
func bruteForceTauB(a, b, w []float64) float64 {
	var concordant, discordant, total, tieA, tieB float64
	for i := 0; i < len(a); i++ {
		for j := i + 1; j < len(a); j++ {
			pw := w[i] * w[j]
			total += pw
			if a[i] == a[j] {
				tieA += pw
			}
			if b[i] == b[j] {
				tieB += pw
			}
			s := (a[i] - a[j]) * (b[i] - b[j])
			if s > 0 {
				concordant += pw
			} else if s < 0 {
				discordant += pw
			}
		}
	}
	return (concordant - discordant) / math.Sqrt((total-tieA)*(total-tieB))
}

func TestWeightedMergeSortOrdersAndKeepsPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(60)
		data := make([]int, n)
		weights := make([]float64, n)
		pairs := make(map[[2]float64]int)
		for i := range data {
			data[i] = rng.Intn(10)
			weights[i] = rng.Float64()
			pairs[[2]float64{float64(data[i]), weights[i]}]++
		}
		want := bruteForceInversions(data, weights)

		got, err := WeightedMergeSort(data, weights)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i := 1; i < n; i++ {
			if data[i] < data[i-1] {
				t.Fatalf("Trial %d: data not sorted at %d: %v", trial, i, data)
			}
		}
		for i := range data {
			key := [2]float64{float64(data[i]), weights[i]}
			pairs[key]--
			if pairs[key] < 0 {
				t.Fatalf("Trial %d: pair (%d, %f) was not in the input", trial, data[i], weights[i])
			}
		}
		if got < 0 {
			t.Errorf("Trial %d: expected non-negative inversion count, got %f", trial, got)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Trial %d: expected inversion count %f, got %f", trial, want, got)
		}
	}
}

func TestWeightedMergeSortSortedInput(t *testing.T) {
	data := []float64{1, 2, 2, 3, 5, 8}
	weights := []float64{0.5, 1, 1, 2, 0.1, 3}
	swaps, err := WeightedMergeSort(data, weights)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if swaps != 0 {
		t.Errorf("Expected 0 inversions for sorted input, got %f", swaps)
	}
	if weights[5] != 3 {
		t.Errorf("Expected weights untouched, got %v", weights)
	}
}

func TestWeightedMergeSortReversed(t *testing.T) {
	data := []int{3, 2, 1}
	weights := []float64{1, 2, 4}
	swaps, _ := WeightedMergeSort(data, weights)
	// pairs (3,2), (3,1), (2,1): 1*2 + 1*4 + 2*4
	if swaps != 14 {
		t.Errorf("Expected 14 weighted inversions, got %f", swaps)
	}
	if weights[0] != 4 || weights[2] != 1 {
		t.Errorf("Expected weights to follow their values, got %v", weights)
	}
}

func TestWeightedMergeSortLengthMismatch(t *testing.T) {
	var lerr *imgerr.MismatchedLengthsError
	_, err := WeightedMergeSort([]int{1, 2}, []float64{1})
	if !errors.As(err, &lerr) {
		t.Fatalf("Expected MismatchedLengthsError, got %v", err)
	}
	if lerr.LenA != 2 || lerr.LenB != 1 {
		t.Errorf("Expected lengths 2 and 1, got %d and %d", lerr.LenA, lerr.LenB)
	}
}

func TestEffectiveSampleSize(t *testing.T) {
	for _, w := range []float64{0.3, 1, 17.5} {
		weights := make([]float64, 25)
		for i := range weights {
			weights[i] = w
		}
		if ess := EffectiveSampleSize(weights); math.Abs(ess-25) > 1e-9 {
			t.Errorf("Expected ESS 25 for equal weights %f, got %f", w, ess)
		}
	}

	single := []float64{0, 0, 0.7, 0}
	if ess := EffectiveSampleSize(single); ess != 1 {
		t.Errorf("Expected ESS 1 for a single non-zero weight, got %f", ess)
	}

	if ess := EffectiveSampleSize([]float64{0, 0, 0}); ess != 0 {
		t.Errorf("Expected ESS 0 for zero weights, got %f", ess)
	}
	if ess := EffectiveSampleSize(nil); ess != 0 {
		t.Errorf("Expected ESS 0 for empty weights, got %f", ess)
	}
}

func TestWeightedKendallTauBKnownValues(t *testing.T) {
	ones := []float64{1, 1, 1}

	tau, err := WeightedKendallTauB([]float64{1, 2, 3}, []float64{1, 3, 2}, ones)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(tau-1.0/3.0) > 1e-12 {
		t.Errorf("Expected tau 1/3, got %f", tau)
	}

	tau, _ = WeightedKendallTauB([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4}, []float64{1, 0.5, 0.2, 2})
	if math.Abs(tau-1) > 1e-12 {
		t.Errorf("Expected tau 1 for identical sequences, got %f", tau)
	}

	tau, _ = WeightedKendallTauB([]float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, []float64{1, 0.5, 0.2, 2})
	if math.Abs(tau+1) > 1e-12 {
		t.Errorf("Expected tau -1 for reversed sequences, got %f", tau)
	}
}

func TestWeightedKendallTauBMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 3 + rng.Intn(40)
		a := make([]float64, n)
		b := make([]float64, n)
		w := make([]float64, n)
		for i := 0; i < n; i++ {
			// small integer ranges to force ties
			a[i] = float64(rng.Intn(6))
			b[i] = float64(rng.Intn(6))
			w[i] = rng.Float64()
			if rng.Intn(5) == 0 {
				w[i] = 0
			}
		}
		want := bruteForceTauB(a, b, w)
		got, err := WeightedKendallTauB(a, b, w)
		if math.IsNaN(want) || math.IsInf(want, 0) {
			if !errors.Is(err, ErrDegenerate) {
				t.Errorf("Trial %d: expected ErrDegenerate, got %v", trial, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Trial %d: unexpected error: %v", trial, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Trial %d: expected tau %f, got %f", trial, want, got)
		}
		if got < -1 || got > 1 {
			t.Errorf("Trial %d: tau %f out of range", trial, got)
		}
	}
}

func TestWeightedKendallTauBDoesNotMutateInputs(t *testing.T) {
	a := []float64{3, 1, 2}
	b := []float64{1, 2, 3}
	w := []float64{1, 2, 3}
	if _, err := WeightedKendallTauB(a, b, w); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a[0] != 3 || b[0] != 1 || w[0] != 1 {
		t.Errorf("Inputs were modified: a=%v b=%v w=%v", a, b, w)
	}
}

func TestWeightedKendallTauBDegenerate(t *testing.T) {
	// constant a has no variance
	_, err := WeightedKendallTauB([]float64{2, 2, 2}, []float64{1, 2, 3}, []float64{1, 1, 1})
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for constant input, got %v", err)
	}

	// all weight on a single observation
	_, err = WeightedKendallTauB([]float64{1, 2, 3}, []float64{1, 2, 3}, []float64{0, 1, 0})
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("Expected ErrDegenerate for a single weighted observation, got %v", err)
	}

	var lerr *imgerr.MismatchedLengthsError
	_, err = WeightedKendallTauB([]float64{1, 2}, []float64{1, 2, 3}, []float64{1, 1})
	if !errors.As(err, &lerr) {
		t.Errorf("Expected MismatchedLengthsError, got %v", err)
	}
}

func TestSumAndMinMax(t *testing.T) {
	if s := Sum([]int{2, 5, 10, 23}); s != 40 {
		t.Errorf("Expected sum 40, got %d", s)
	}
	if s := Sum([]float64{1.0, 10.5, 3.25, 37.11}); math.Abs(s-51.86) > 1e-12 {
		t.Errorf("Expected sum 51.86, got %f", s)
	}

	lo, hi := MinMax([]uint16{7, 3, 900, 12})
	if lo != 3 || hi != 900 {
		t.Errorf("Expected (3, 900), got (%d, %d)", lo, hi)
	}
}
