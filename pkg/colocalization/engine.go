package colocalization

import (
	"math"
	"sync"

	"imgal/pkg/kernel"
	"imgal/pkg/statistics"
)

// engine runs SACA iterations over a 2D image (planes == 1) or a 3D stack.
type engine struct {
	dims   int
	planes int
	rows   int
	cols   int

	a []float64
	b []float64

	thresholdA float64
	thresholdB float64

	dn     float64
	lambda float64

	workers int
	state   *state
}

func newEngine(dims, planes, rows, cols int, a, b []float64, thresholdA, thresholdB float64, workers int) *engine {
	n := planes * rows * cols
	dn := math.Sqrt(math.Log(float64(n))) * 2.0
	return &engine{
		dims:       dims,
		planes:     planes,
		rows:       rows,
		cols:       cols,
		a:          a,
		b:          b,
		thresholdA: thresholdA,
		thresholdB: thresholdB,
		dn:         dn,
		lambda:     dn,
		workers:    workers,
		state:      newState(n),
	}
}

func (e *engine) index(plane, row, col int) int {
	return (plane*e.rows+row)*e.cols + col
}

// buildKernel builds the weighted neighborhood for one iteration.
func (e *engine) buildKernel(radius int) (*kernel.Kernel, error) {
	falloffRadius := float64(radius) * falloffScale
	if e.dims == 3 {
		return kernel.WeightedSphere(radius, falloffRadius)
	}
	return kernel.WeightedCircle(radius, falloffRadius)
}

// iterate runs one SACA iteration over every pixel and commits the new tau and
// sqrt(n) maps once all workers are done. Frozen pixels are skipped while
// boundCheck is set.
func (e *engine) iterate(radius int, boundCheck bool) error {
	k, err := e.buildKernel(radius)
	if err != nil {
		return err
	}
	bufSize := len(k.Weights)

	// Divide the image lines (plane, row) among the workers
	lines := e.planes * e.rows
	workers := max(1, min(e.workers, lines))
	linesPerWorker := (lines + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * linesPerWorker
		end := min(start+linesPerWorker, lines)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			buf := newBuffer(bufSize)
			for line := start; line < end; line++ {
				plane := line / e.rows
				row := line % e.rows
				for col := 0; col < e.cols; col++ {
					e.updatePixel(k, buf, plane, row, col, boundCheck)
				}
			}
		}(start, end)
	}
	wg.Wait()

	e.state.commit()
	return nil
}

// updatePixel computes the local tau, sqrt(n) and z-score of one pixel and
// evaluates its stop condition.
func (e *engine) updatePixel(k *kernel.Kernel, buf *buffer, plane, row, col int, boundCheck bool) {
	s := e.state
	idx := e.index(plane, row, col)
	px := &s.pixels[idx]
	if boundCheck && px.status == frozen {
		return
	}

	e.fill(k, buf, plane, row, col)
	e.applyThresholds(buf)

	sqrtN := math.Sqrt(statistics.EffectiveSampleSize(buf.weights))
	var tau, z float64
	if sqrtN > 0 {
		var err error
		tau, err = statistics.WeightedKendallTauB(buf.a, buf.b, buf.weights)
		if err != nil {
			// no variance in the neighborhood, no evidence either way
			tau = 0.0
		}
		z = tau * sqrtN * zScale
	}
	s.result[idx] = z

	if boundCheck {
		tauDiff := math.Abs(px.checkpointTau-tau) * px.checkpointSqrtN
		if tauDiff > e.lambda {
			px.freeze()
			tau = s.oldTau[idx]
			sqrtN = s.oldSqrtN[idx]
		}
	}

	s.newTau[idx] = tau
	s.newSqrtN[idx] = sqrtN
}
