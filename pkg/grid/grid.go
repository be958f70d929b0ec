// Package grid provides the small row-major 2D and 3D sample containers the
// imgal algorithms operate on. Grids carry any integer or floating point element
// type; computations convert to float64 through Float64.
package grid

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types an image may hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Grid2 is a 2-dimensional image stored in row-major order.
type Grid2[T Number] struct {
	Rows int
	Cols int
	Data []T
}

// NewGrid2 allocates a zeroed rows x cols grid.
func NewGrid2[T Number](rows, cols int) Grid2[T] {
	return Grid2[T]{Rows: rows, Cols: cols, Data: make([]T, rows*cols)}
}

// FromRows builds a grid from a slice of equal-length rows.
func FromRows[T Number](rows [][]T) (Grid2[T], error) {
	if len(rows) == 0 {
		return Grid2[T]{}, nil
	}
	cols := len(rows[0])
	g := NewGrid2[T](len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			return Grid2[T]{}, fmt.Errorf("row %d has %d columns, expected %d", r, len(row), cols)
		}
		copy(g.Data[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// Shape returns the dimensions as (rows, cols).
func (g Grid2[T]) Shape() []int { return []int{g.Rows, g.Cols} }

// At returns the sample at (row, col).
func (g Grid2[T]) At(row, col int) T { return g.Data[row*g.Cols+col] }

// Set writes the sample at (row, col).
func (g Grid2[T]) Set(row, col int, v T) { g.Data[row*g.Cols+col] = v }

// Len returns the number of samples.
func (g Grid2[T]) Len() int { return g.Rows * g.Cols }

// Float64 returns a copy of the grid converted to float64.
func (g Grid2[T]) Float64() Grid2[float64] {
	return Grid2[float64]{Rows: g.Rows, Cols: g.Cols, Data: ToFloat64(g.Data)}
}

// Grid3 is a 3-dimensional image stack stored as planes of row-major images.
type Grid3[T Number] struct {
	Planes int
	Rows   int
	Cols   int
	Data   []T
}

// NewGrid3 allocates a zeroed planes x rows x cols grid.
func NewGrid3[T Number](planes, rows, cols int) Grid3[T] {
	return Grid3[T]{Planes: planes, Rows: rows, Cols: cols, Data: make([]T, planes*rows*cols)}
}

// Shape returns the dimensions as (planes, rows, cols).
func (g Grid3[T]) Shape() []int { return []int{g.Planes, g.Rows, g.Cols} }

// Index returns the flat index of (plane, row, col).
func (g Grid3[T]) Index(plane, row, col int) int {
	return (plane*g.Rows+row)*g.Cols + col
}

// At returns the sample at (plane, row, col).
func (g Grid3[T]) At(plane, row, col int) T { return g.Data[g.Index(plane, row, col)] }

// Set writes the sample at (plane, row, col).
func (g Grid3[T]) Set(plane, row, col int, v T) { g.Data[g.Index(plane, row, col)] = v }

// Len returns the number of samples.
func (g Grid3[T]) Len() int { return g.Planes * g.Rows * g.Cols }

// Lane returns the samples along the last (column) axis at (plane, row).
// The returned slice aliases the grid data.
func (g Grid3[T]) Lane(plane, row int) []T {
	start := g.Index(plane, row, 0)
	return g.Data[start : start+g.Cols]
}

// Float64 returns a copy of the grid converted to float64.
func (g Grid3[T]) Float64() Grid3[float64] {
	return Grid3[float64]{Planes: g.Planes, Rows: g.Rows, Cols: g.Cols, Data: ToFloat64(g.Data)}
}

// ToFloat64 converts a slice of numbers to a new float64 slice.
func ToFloat64[T Number](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

// SameShape reports whether two shapes are identical.
func SameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
