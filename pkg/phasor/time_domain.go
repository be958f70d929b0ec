// Package phasor implements time domain phasor analysis of fluorescence
// lifetime data.
//
// A decay curve I(t) sampled over one period maps to the phasor coordinates
//
//	G = ∫ I(t) cos(nωt) dt / ∫ I(t) dt
//	S = ∫ I(t) sin(nωt) dt / ∫ I(t) dt
//
// where n is the harmonic and ω the angular frequency of the period. Integrals
// use the midpoint rule.
package phasor

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"imgal/pkg/grid"
	"imgal/pkg/imgerr"
	"imgal/pkg/integration"
	"imgal/pkg/parameter"
)

// waveforms returns cos(nωt) and sin(nωt) sampled at n points of one period.
func waveforms(n int, period, harmonic float64) ([]float64, []float64) {
	dt := period / float64(n)
	step := harmonic * parameter.Omega(period) * dt
	cosBuf := make([]float64, n)
	sinBuf := make([]float64, n)
	for i := range cosBuf {
		cosBuf[i] = math.Cos(step * float64(i))
		sinBuf[i] = math.Sin(step * float64(i))
	}
	return cosBuf, sinBuf
}

func transform[T grid.Number](data []T, period float64, wave []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	dt := period / float64(len(data))
	values := grid.ToFloat64(data)
	total := integration.Midpoint(values, dt)
	if total == 0 {
		return 0
	}
	floats.Mul(values, wave)
	return integration.Midpoint(values, dt) / total
}

// Real returns the real (G) phasor coordinate of a decay curve. harmonic is
// usually 1.
func Real[T grid.Number](data []T, period, harmonic float64) float64 {
	cosBuf, _ := waveforms(len(data), period, harmonic)
	return transform(data, period, cosBuf)
}

// Imaginary returns the imaginary (S) phasor coordinate of a decay curve.
func Imaginary[T grid.Number](data []T, period, harmonic float64) float64 {
	_, sinBuf := waveforms(len(data), period, harmonic)
	return transform(data, period, sinBuf)
}

// Image computes the G and S maps of a decay image stored with the decay along
// the last axis: data.Planes x data.Rows pixels of data.Cols time bins each.
//
// When mask is non-nil it must hold one entry per pixel in row-major order;
// pixels where it is false get G = S = 0. Pixels with no counts also map to 0.
func Image[T grid.Number](data grid.Grid3[T], period float64, mask []bool, harmonic float64) (*mat.Dense, *mat.Dense, error) {
	rows, cols, n := data.Planes, data.Rows, data.Cols
	if rows == 0 || cols == 0 || n == 0 {
		return nil, nil, &imgerr.InvalidParameterError{Param: "data_size", Value: 0, Relation: imgerr.Equal}
	}
	if mask != nil && len(mask) != rows*cols {
		return nil, nil, &imgerr.MismatchedLengthsError{LenA: rows * cols, LenB: len(mask)}
	}

	cosBuf, sinBuf := waveforms(n, period, harmonic)
	g := mat.NewDense(rows, cols, nil)
	s := mat.NewDense(rows, cols, nil)

	numWorkers := min(runtime.NumCPU(), rows)
	rowsPerWorker := (rows + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, rows)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			lane := make([]float64, n)
			for r := start; r < end; r++ {
				for c := 0; c < cols; c++ {
					if mask != nil && !mask[r*cols+c] {
						continue
					}
					src := data.Lane(r, c)
					for i, v := range src {
						lane[i] = float64(v)
					}
					total := floats.Sum(lane)
					if total == 0 {
						continue
					}
					// dt cancels in the normalized midpoint integrals
					g.Set(r, c, floats.Dot(lane, cosBuf)/total)
					s.Set(r, c, floats.Dot(lane, sinBuf)/total)
				}
			}
		}(start, end)
	}
	wg.Wait()

	return g, s, nil
}

// HistogramQuality scores a photon arrival histogram:
//
//	q = (vb / n²) * Σ xᵢ²  over bins with xᵢ > countThreshold
//
// where n is the number of bins and vb the number of bins above threshold.
// q is 0 when no bin exceeds the threshold; values between 1 and 10 indicate a
// usable histogram and values above 10 a high quality one.
func HistogramQuality[T grid.Number](data []T, countThreshold T) float64 {
	if len(data) == 0 {
		return 0
	}
	var valid, q float64
	for _, v := range data {
		if v > countThreshold {
			valid++
			q += float64(v) * float64(v)
		}
	}
	n := float64(len(data))
	return q * valid / (n * n)
}

// HistogramQualityImage computes HistogramQuality for every pixel of a decay
// image laid out as in Image.
func HistogramQualityImage[T grid.Number](data grid.Grid3[T], countThreshold T) *mat.Dense {
	q := mat.NewDense(max(data.Planes, 1), max(data.Rows, 1), nil)
	for r := 0; r < data.Planes; r++ {
		for c := 0; c < data.Rows; c++ {
			q.Set(r, c, HistogramQuality(data.Lane(r, c), countThreshold))
		}
	}
	return q
}
