package colocalization

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"imgal/pkg/grid"
)

// PValue returns the two-sided p-value of a SACA z-score under the standard
// normal null distribution.
func PValue(z float64) float64 {
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// PValues converts a 2D z-score map into a map of two-sided p-values.
func PValues(z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	p := mat.NewDense(rows, cols, nil)
	p.Apply(func(_, _ int, v float64) float64 {
		return PValue(v)
	}, z)
	return p
}

// PValues3D converts a 3D z-score volume into a volume of two-sided p-values.
func PValues3D(z *grid.Grid3[float64]) *grid.Grid3[float64] {
	p := grid.NewGrid3[float64](z.Planes, z.Rows, z.Cols)
	for i, v := range z.Data {
		p.Data[i] = PValue(v)
	}
	return &p
}

// Significant returns a mask of the z-scores whose two-sided p-value is below
// alpha, in row-major order.
func Significant(z []float64, alpha float64) []bool {
	mask := make([]bool, len(z))
	for i, v := range z {
		mask[i] = PValue(v) < alpha
	}
	return mask
}
