// Package colocalization implements Spatially Adaptive Colocalization Analysis
// (SACA), a pixel-wise measure of colocalization between two fluorescence
// channels.
//
// For every pixel SACA grows a weighted circular (or spherical) neighborhood
// over a fixed multiscale schedule. Neighbors are weighted by their distance to
// the center and by how consistent their previous local estimate is with the
// center's (propagation and separation), and the weighted Kendall's Tau-b of the
// two channels over the neighborhood gives the local colocalization. Pixels
// whose estimate becomes unstable are frozen at their last stable value.
//
// Reference: https://doi.org/10.1109/TIP.2019.2909194
package colocalization

import (
	"math"
	"runtime"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"imgal/pkg/grid"
	"imgal/pkg/imgerr"
)

// Multiscale schedule of the analysis.
const (
	// totalIterations is the number of scales every run goes through.
	totalIterations = 15
	// boundIteration is the iteration after which the stability test is armed.
	boundIteration = 8
	// stepSize is the geometric growth of the neighborhood size per iteration.
	stepSize = 1.15
	// zScale converts tau * sqrt(n) into a z-score.
	zScale = 1.5
)

// falloffScale relates the kernel radius to its weight falloff radius.
var falloffScale = math.Sqrt(2.5)

// Option configures a SACA run.
type Option func(*options)

type options struct {
	workers int
	logger  zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// WithWorkers sets the number of goroutines processing pixels in parallel.
// The default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger receiving per-iteration debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// SACA2D computes the pixel-wise colocalization z-score of two 2-dimensional
// images.
//
// The sign of each z-score tells colocalization (positive) from
// anti-colocalization (negative); its magnitude is the strength of the
// relationship. Pixels of either image below its threshold get no weight in any
// neighborhood.
//
// Parameters:
//   - imageA, imageB: the two channels, which must have the same shape
//   - thresholdA, thresholdB: per-channel intensity thresholds
//   - opts: optional worker count and logger
//
// Returns:
//   - The z-score map with the images' shape
//   - *imgerr.MismatchedShapesError if the shapes differ
//   - *imgerr.MismatchedLengthsError if an image's data does not fill its shape
func SACA2D[T grid.Number](imageA, imageB grid.Grid2[T], thresholdA, thresholdB T, opts ...Option) (*mat.Dense, error) {
	if !grid.SameShape(imageA.Shape(), imageB.Shape()) {
		return nil, &imgerr.MismatchedShapesError{ShapeA: imageA.Shape(), ShapeB: imageB.Shape()}
	}
	if imageA.Rows == 0 || imageA.Cols == 0 {
		return nil, &imgerr.InvalidParameterError{Param: "image_size", Value: 0, Relation: imgerr.Equal}
	}
	if err := checkData(len(imageA.Data), len(imageB.Data), imageA.Len()); err != nil {
		return nil, err
	}

	e := newEngine(2, 1, imageA.Rows, imageA.Cols,
		grid.ToFloat64(imageA.Data), grid.ToFloat64(imageB.Data),
		float64(thresholdA), float64(thresholdB), 0)
	if err := e.run(newOptions(opts)); err != nil {
		return nil, err
	}
	return mat.NewDense(imageA.Rows, imageA.Cols, e.state.result), nil
}

// SACA3D computes the voxel-wise colocalization z-score of two 3-dimensional
// image stacks. It is the volumetric form of SACA2D: neighborhoods are weighted
// spheres instead of circles.
func SACA3D[T grid.Number](imageA, imageB grid.Grid3[T], thresholdA, thresholdB T, opts ...Option) (*grid.Grid3[float64], error) {
	if !grid.SameShape(imageA.Shape(), imageB.Shape()) {
		return nil, &imgerr.MismatchedShapesError{ShapeA: imageA.Shape(), ShapeB: imageB.Shape()}
	}
	if imageA.Len() == 0 {
		return nil, &imgerr.InvalidParameterError{Param: "image_size", Value: 0, Relation: imgerr.Equal}
	}
	if err := checkData(len(imageA.Data), len(imageB.Data), imageA.Len()); err != nil {
		return nil, err
	}

	e := newEngine(3, imageA.Planes, imageA.Rows, imageA.Cols,
		grid.ToFloat64(imageA.Data), grid.ToFloat64(imageB.Data),
		float64(thresholdA), float64(thresholdB), 0)
	if err := e.run(newOptions(opts)); err != nil {
		return nil, err
	}
	return &grid.Grid3[float64]{
		Planes: imageA.Planes,
		Rows:   imageA.Rows,
		Cols:   imageA.Cols,
		Data:   e.state.result,
	}, nil
}

// checkData verifies that both images carry exactly one value per pixel.
func checkData(lenA, lenB, pixels int) error {
	if lenA != pixels {
		return &imgerr.MismatchedLengthsError{LenA: lenA, LenB: pixels}
	}
	if lenB != pixels {
		return &imgerr.MismatchedLengthsError{LenA: lenB, LenB: pixels}
	}
	return nil
}

// run drives the multiscale loop. The neighborhood size grows geometrically
// from 1; after iteration boundIteration the current estimates are
// checkpointed and the stability test stays armed until the end. Every
// iteration always runs.
func (e *engine) run(o options) error {
	e.workers = o.workers

	size := 1.0
	boundCheck := false
	for s := 0; s < totalIterations; s++ {
		radius := int(math.Floor(size))
		if err := e.iterate(radius, boundCheck); err != nil {
			return err
		}
		size *= stepSize

		if s == boundIteration {
			boundCheck = true
			e.state.checkpoint()
		}

		if ev := o.logger.Debug(); ev.Enabled() {
			ev.Int("iteration", s).
				Int("radius", radius).
				Bool("bound_check", boundCheck).
				Int("frozen", e.state.frozenCount()).
				Msg("saca iteration complete")
		}
	}
	return nil
}
