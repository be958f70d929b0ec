package phasor

import (
	"errors"
	"math"
	"testing"

	"imgal/pkg/grid"
	"imgal/pkg/imgerr"
	"imgal/pkg/parameter"
	"imgal/pkg/simulation"
)

const (
	samples = 256
	period  = 12.5
	tau     = 4.0
)

func TestRealAndImaginary(t *testing.T) {
	decay := simulation.IdealDecay1D(samples, period, tau, 100)
	wantG, wantS := SingleComponentCoordinatePair(tau, parameter.Omega(period))

	if g := Real(decay, period, 1); math.Abs(g-wantG) > 0.01 {
		t.Errorf("Expected G close to %f, got %f", wantG, g)
	}
	if s := Imaginary(decay, period, 1); math.Abs(s-wantS) > 0.01 {
		t.Errorf("Expected S close to %f, got %f", wantS, s)
	}
}

func TestRealOfEmptyCurve(t *testing.T) {
	if g := Real([]float64{}, period, 1); g != 0 {
		t.Errorf("Expected 0, got %f", g)
	}
	if s := Imaginary(make([]uint16, 8), period, 1); s != 0 {
		t.Errorf("Expected 0 for a curve with no counts, got %f", s)
	}
}

func TestImage(t *testing.T) {
	data := simulation.IdealDecay3D(samples, period, tau, 100, 5, 3)
	decay := simulation.IdealDecay1D(samples, period, tau, 100)
	wantG := Real(decay, period, 1)
	wantS := Imaginary(decay, period, 1)

	g, s, err := Image(data, period, nil, 1)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	rows, cols := g.Dims()
	if rows != 5 || cols != 3 {
		t.Fatalf("Expected 5x3 maps, got %dx%d", rows, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.Abs(g.At(r, c)-wantG) > 1e-12 {
				t.Errorf("Expected G %f at (%d,%d), got %f", wantG, r, c, g.At(r, c))
			}
			if math.Abs(s.At(r, c)-wantS) > 1e-12 {
				t.Errorf("Expected S %f at (%d,%d), got %f", wantS, r, c, s.At(r, c))
			}
		}
	}
}

func TestImageWithMask(t *testing.T) {
	data := simulation.IdealDecay3D(samples, period, tau, 100, 2, 2)
	mask := []bool{true, false, false, true}

	g, s, err := Image(data, period, mask, 1)
	if err != nil {
		t.Fatalf("Image failed: %v", err)
	}
	if g.At(0, 1) != 0 || s.At(1, 0) != 0 {
		t.Errorf("Expected masked pixels to be 0, got G=%f S=%f", g.At(0, 1), s.At(1, 0))
	}
	if g.At(0, 0) == 0 || s.At(1, 1) == 0 {
		t.Error("Expected unmasked pixels to hold coordinates")
	}

	_, _, err = Image(data, period, []bool{true}, 1)
	var lenErr *imgerr.MismatchedLengthsError
	if !errors.As(err, &lenErr) {
		t.Errorf("Expected MismatchedLengthsError, got %v", err)
	}

	if _, _, err := Image(grid.Grid3[float64]{}, period, nil, 1); err == nil {
		t.Error("Expected error for empty data, got nil")
	}
}

func TestHistogramQuality(t *testing.T) {
	got := HistogramQuality([]int{0, 5, 10, 2}, 3)
	if got != 15.625 {
		t.Errorf("Expected 15.625, got %f", got)
	}
	if got := HistogramQuality([]int{1, 2}, 3); got != 0 {
		t.Errorf("Expected 0 when no bin exceeds the threshold, got %f", got)
	}

	data := grid.NewGrid3[int](1, 2, 4)
	copy(data.Lane(0, 1), []int{0, 5, 10, 2})
	q := HistogramQualityImage(data, 3)
	if q.At(0, 0) != 0 || q.At(0, 1) != 15.625 {
		t.Errorf("Expected [0 15.625], got [%f %f]", q.At(0, 0), q.At(0, 1))
	}
}

func TestModulationAndPhase(t *testing.T) {
	if m := Modulation(0.71, 0.43); math.Abs(m-0.8300602387778853) > 1e-12 {
		t.Errorf("Expected 0.830060, got %f", m)
	}
	if p := Phase(0, 1); math.Abs(p-math.Pi/2) > 1e-12 {
		t.Errorf("Expected pi/2, got %f", p)
	}
}

func TestSingleComponentOnSemicircle(t *testing.T) {
	g, s := SingleComponentCoordinatePair(2.5, parameter.Omega(period))
	// the universal semicircle is centered at (0.5, 0) with radius 0.5
	if r := math.Hypot(g-0.5, s); math.Abs(r-0.5) > 1e-12 {
		t.Errorf("Expected distance 0.5 from (0.5, 0), got %f", r)
	}
}

func TestCalibration(t *testing.T) {
	g, s := CalibrateCoordinatePair(0.3, 0.4, 1, 0)
	if math.Abs(g-0.3) > 1e-12 || math.Abs(s-0.4) > 1e-12 {
		t.Errorf("Expected identity calibration, got (%f, %f)", g, s)
	}

	g, s = CalibrateCoordinatePair(0.3, 0.4, 1, math.Pi/2)
	if math.Abs(g+0.4) > 1e-12 || math.Abs(s-0.3) > 1e-12 {
		t.Errorf("Expected (-0.4, 0.3), got (%f, %f)", g, s)
	}

	omega := parameter.Omega(period)
	trueG, trueS := SingleComponentCoordinatePair(tau, omega)
	measuredG, measuredS := CalibrateCoordinatePair(trueG, trueS, 0.5, -0.2)

	m, phi := CalibrationFromReference(measuredG, measuredS, tau, omega)
	if math.Abs(m-2) > 1e-9 || math.Abs(phi-0.2) > 1e-9 {
		t.Errorf("Expected modulation 2 and phase 0.2, got %f and %f", m, phi)
	}
	g, s = CalibrateCoordinatePair(measuredG, measuredS, m, phi)
	if math.Abs(g-trueG) > 1e-9 || math.Abs(s-trueS) > 1e-9 {
		t.Errorf("Expected (%f, %f), got (%f, %f)", trueG, trueS, g, s)
	}
}
