package parameter

import (
	"math"
	"testing"
)

func TestOmega(t *testing.T) {
	got := Omega(12.5)
	if math.Abs(got-0.5026548245743669) > 1e-12 {
		t.Errorf("Expected 0.502655, got %f", got)
	}
}

func TestAbbeDiffractionLimit(t *testing.T) {
	got := AbbeDiffractionLimit(550, 1.4)
	if math.Abs(got-196.42857142857142) > 1e-9 {
		t.Errorf("Expected 196.428571, got %f", got)
	}
}
