package simulation

import (
	"errors"
	"math"
	"testing"

	"imgal/pkg/imgerr"
	"imgal/pkg/integration"
)

const (
	samples     = 256
	period      = 12.5
	totalCounts = 5000.0
	irfCenter   = 3.0
	irfWidth    = 0.5
)

var (
	taus      = []float64{1.0, 3.0}
	fractions = []float64{0.7, 0.3}
)

func TestIdealDecay1D(t *testing.T) {
	decay := IdealDecay1D(samples, period, 4.0, 100)
	if len(decay) != samples {
		t.Fatalf("Expected %d samples, got %d", samples, len(decay))
	}
	if decay[0] != 100 {
		t.Errorf("Expected initial value 100, got %f", decay[0])
	}
	for i := 1; i < len(decay); i++ {
		if decay[i] >= decay[i-1] {
			t.Fatalf("Expected strictly decreasing decay at %d", i)
		}
	}
	want := 100 * math.Exp(-period/4.0)
	if math.Abs(decay[samples-1]-want) > 1e-9 {
		t.Errorf("Expected last sample %f, got %f", want, decay[samples-1])
	}
}

func TestIdealExponentialDecay1D(t *testing.T) {
	decay, err := IdealExponentialDecay1D(samples, period, taus, fractions, totalCounts)
	if err != nil {
		t.Fatalf("IdealExponentialDecay1D failed: %v", err)
	}

	dt := period / samples
	if got := integration.Midpoint(decay, dt); math.Abs(got-5055.86745659704) > 1e-9 {
		t.Errorf("Expected integral 5055.867457, got %f", got)
	}
	if math.Abs(decay[30]-1110.5191029245611) > 1e-9 {
		t.Errorf("Expected 1110.519103 at 30, got %f", decay[30])
	}

	_, err = IdealExponentialDecay1D(samples, period, taus, []float64{1}, totalCounts)
	var lenErr *imgerr.MismatchedLengthsError
	if !errors.As(err, &lenErr) {
		t.Errorf("Expected MismatchedLengthsError, got %v", err)
	}
}

func TestGaussianIRF1D(t *testing.T) {
	irf := GaussianIRF1D(samples, period, irfCenter, irfWidth)

	dt := period / samples
	if got := integration.Midpoint(irf, dt); math.Abs(got-dt) > 1e-12 {
		t.Errorf("Expected integral %f, got %f", dt, got)
	}
	if math.Abs(irf[62]-0.09054417121965984) > 1e-12 {
		t.Errorf("Expected 0.090544 at 62, got %f", irf[62])
	}
}

func TestGaussianExponentialDecay1D(t *testing.T) {
	decay, err := GaussianExponentialDecay1D(samples, period, taus, fractions, totalCounts, irfCenter, irfWidth)
	if err != nil {
		t.Fatalf("GaussianExponentialDecay1D failed: %v", err)
	}

	dt := period / samples
	if got := integration.Midpoint(decay, dt); math.Abs(got-5015.983504781878) > 1e-6 {
		t.Errorf("Expected integral 5015.983505, got %f", got)
	}
	if math.Abs(decay[68]-2810.4960313074985) > 1e-6 {
		t.Errorf("Expected 2810.496031 at 68, got %f", decay[68])
	}
}

func TestIdealDecay3D(t *testing.T) {
	g := IdealDecay3D(samples, period, 4.0, 100, 3, 4)
	if g.Planes != 3 || g.Rows != 4 || g.Cols != samples {
		t.Fatalf("Expected shape (3, 4, %d), got %v", samples, g.Shape())
	}
	want := IdealDecay1D(samples, period, 4.0, 100)
	lane := g.Lane(2, 3)
	for i := range want {
		if lane[i] != want[i] {
			t.Fatalf("Expected %f at %d, got %f", want[i], i, lane[i])
		}
	}
}

func TestPoissonNoise1D(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5}

	a := PoissonNoise1D(data, 0.5, 42)
	b := PoissonNoise1D(data, 0.5, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected deterministic noise at %d, got %f and %f", i, a[i], b[i])
		}
		if a[i] < 0 || a[i] != math.Trunc(a[i]) {
			t.Errorf("Expected a non-negative count at %d, got %f", i, a[i])
		}
	}
	if a[0] != 0 {
		t.Errorf("Expected 0 for zero signal, got %f", a[0])
	}
	if data[1] != 1 {
		t.Error("Expected input to be left untouched")
	}
}

func TestPoissonNoiseMean(t *testing.T) {
	data := make([]uint16, 20000)
	for i := range data {
		data[i] = 10
	}
	noisy := PoissonNoise1D(data, 2.0, 7)

	var sum float64
	for _, v := range noisy {
		sum += v
	}
	mean := sum / float64(len(noisy))
	if math.Abs(mean-20) > 0.5 {
		t.Errorf("Expected mean close to 20, got %f", mean)
	}
}
