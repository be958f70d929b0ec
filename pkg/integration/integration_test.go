package integration

import (
	"errors"
	"math"
	"testing"
)

func TestMidpoint(t *testing.T) {
	got := Midpoint([]float64{1, 2, 3, 4}, 0.5)
	if got != 5.0 {
		t.Errorf("Expected 5.0, got %f", got)
	}
}

func TestSimpson(t *testing.T) {
	// x^2 over [0, 2] sampled at 0, 0.5, ..., 2 is integrated exactly
	y := []float64{0, 0.25, 1, 2.25, 4}
	got, err := Simpson(y, 0.5)
	if err != nil {
		t.Fatalf("Simpson failed: %v", err)
	}
	if math.Abs(got-8.0/3.0) > 1e-12 {
		t.Errorf("Expected %f, got %f", 8.0/3.0, got)
	}

	if _, err := Simpson([]float64{1, 2, 3, 4}, 1); !errors.Is(err, ErrOddSubintervals) {
		t.Errorf("Expected ErrOddSubintervals, got %v", err)
	}
}

func TestCompositeSimpson(t *testing.T) {
	// a straight line is integrated exactly by both rules
	y := []float64{0, 1, 2, 3}
	got := CompositeSimpson(y, 1)
	if math.Abs(got-4.5) > 1e-12 {
		t.Errorf("Expected 4.5, got %f", got)
	}

	even := []float64{0, 1, 2, 3, 4}
	if got := CompositeSimpson(even, 1); math.Abs(got-8.0) > 1e-12 {
		t.Errorf("Expected 8.0, got %f", got)
	}
}
