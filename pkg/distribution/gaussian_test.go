package distribution

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestGaussian(t *testing.T) {
	g := Gaussian(2.0, 256, 12.5, 4.0)
	if len(g) != 256 {
		t.Fatalf("Expected 256 bins, got %d", len(g))
	}

	if sum := floats.Sum(g); math.Abs(sum-1.0) > 1e-12 {
		t.Errorf("Expected sum 1.0, got %f", sum)
	}

	// bin width is 12.5/255, so the peak lands at the bin closest to 4.0
	peak := floats.MaxIdx(g)
	want := int(math.Round(4.0 / (12.5 / 255)))
	if peak != want {
		t.Errorf("Expected peak at bin %d, got %d", want, peak)
	}
}

func TestGaussianDegenerateBins(t *testing.T) {
	if g := Gaussian(1, 0, 10, 5); g != nil {
		t.Errorf("Expected nil for zero bins, got %v", g)
	}
	if g := Gaussian(1, 1, 10, 5); len(g) != 1 || g[0] != 1 {
		t.Errorf("Expected [1], got %v", g)
	}
}
