package colocalization

import (
	"math"

	"imgal/pkg/kernel"
)

// buffer is the scratch space of one worker: the values of both images and the
// weight of every cell in the current pixel's neighborhood.
type buffer struct {
	a       []float64
	b       []float64
	weights []float64
}

func newBuffer(size int) *buffer {
	return &buffer{
		a:       make([]float64, size),
		b:       make([]float64, size),
		weights: make([]float64, size),
	}
}

// windowStart returns the first index of a window of the given radius around
// location, clamped at 0.
func windowStart(location, radius int) int {
	if location < radius {
		return 0
	}
	return location - radius
}

// windowEnd returns the last index (inclusive) of a window of the given radius
// around location, clamped at boundary-1.
func windowEnd(location, radius, boundary int) int {
	end := location + radius
	if end >= boundary {
		return boundary - 1
	}
	return end
}

// fill loads buf with the clamped window around (plane, row, col).
//
// Each cell gets its kernel weight scaled by how consistent its previous tau is
// with the center's: with diff = |tau_cell - tau_center| * sqrt_n_center / dn,
// the weight is multiplied by (1 - diff)^2 when diff < 1 and dropped otherwise.
// Slots past the window are zeroed.
func (e *engine) fill(k *kernel.Kernel, buf *buffer, plane, row, col int) {
	s := e.state
	r := k.Radius
	center := e.index(plane, row, col)
	ot := s.oldTau[center]
	onDn := 0.0
	if e.dn > 0 {
		onDn = s.oldSqrtN[center] / e.dn
	}

	planeStart, planeEnd := 0, 0
	if e.dims == 3 {
		planeStart, planeEnd = windowStart(plane, r), windowEnd(plane, r, e.planes)
	}
	rowStart, rowEnd := windowStart(row, r), windowEnd(row, r, e.rows)
	colStart, colEnd := windowStart(col, r), windowEnd(col, r, e.cols)

	i := 0
	for p := planeStart; p <= planeEnd; p++ {
		for rr := rowStart; rr <= rowEnd; rr++ {
			kr := rr - row + r
			for c := colStart; c <= colEnd; c++ {
				kc := c - col + r
				var w float64
				if e.dims == 3 {
					w = k.At(p-plane+r, kr, kc)
				} else {
					w = k.At(kr, kc)
				}

				src := e.index(p, rr, c)
				diff := math.Abs(s.oldTau[src]-ot) * onDn
				if diff < 1.0 {
					w *= (1.0 - diff) * (1.0 - diff)
				} else {
					w = 0.0
				}

				buf.a[i] = e.a[src]
				buf.b[i] = e.b[src]
				buf.weights[i] = w
				i++
			}
		}
	}

	clear(buf.a[i:])
	clear(buf.b[i:])
	clear(buf.weights[i:])
}

// applyThresholds drops the weight of every slot where either image is below
// its threshold.
func (e *engine) applyThresholds(buf *buffer) {
	for i := range buf.weights {
		if buf.a[i] < e.thresholdA || buf.b[i] < e.thresholdB {
			buf.weights[i] = 0.0
		}
	}
}
