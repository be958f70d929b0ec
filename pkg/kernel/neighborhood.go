// Package kernel builds the circular and spherical neighborhood kernels used to
// weight local windows of an image.
//
// All kernels are square (or cubic) with a side length of 2*radius+1 and the
// center cell at index radius along every axis. Data is stored flat in
// row-major order (plane, row, col).
package kernel

import (
	"math"

	"imgal/pkg/imgerr"
)

// Kernel is a weighted neighborhood of 2 or 3 dimensions.
type Kernel struct {
	Radius  int
	Dims    int
	Side    int
	Weights []float64
}

// At returns the weight at the given (row, col) or (plane, row, col) index.
func (k *Kernel) At(idx ...int) float64 {
	return k.Weights[flatIndex(k.Side, idx)]
}

// Mask is a boolean neighborhood of 2 or 3 dimensions.
type Mask struct {
	Radius int
	Dims   int
	Side   int
	Values []bool
}

// At reports whether the given cell is inside the neighborhood.
func (m *Mask) At(idx ...int) bool {
	return m.Values[flatIndex(m.Side, idx)]
}

func flatIndex(side int, idx []int) int {
	i := 0
	for _, v := range idx {
		i = i*side + v
	}
	return i
}

// Circle creates a 2-dimensional boolean kernel of a filled circle. Cells whose
// Euclidean distance from the center is <= radius are true.
func Circle(radius int) (*Mask, error) {
	if radius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "radius", Value: 0, Relation: imgerr.Less}
	}
	side := 2*radius + 1
	center := float64(radius)
	m := &Mask{Radius: radius, Dims: 2, Side: side, Values: make([]bool, side*side)}
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			m.Values[row*side+col] = distance(float64(row)-center, float64(col)-center, 0) <= center
		}
	}
	return m, nil
}

// Sphere creates a 3-dimensional boolean kernel of a filled sphere. Cells whose
// Euclidean distance from the center is <= radius are true.
func Sphere(radius int) (*Mask, error) {
	if radius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "radius", Value: 0, Relation: imgerr.Equal}
	}
	side := 2*radius + 1
	center := float64(radius)
	m := &Mask{Radius: radius, Dims: 3, Side: side, Values: make([]bool, side*side*side)}
	i := 0
	for pln := 0; pln < side; pln++ {
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				m.Values[i] = distance(float64(pln)-center, float64(row)-center, float64(col)-center) <= center
				i++
			}
		}
	}
	return m, nil
}

// WeightedCircle creates a 2-dimensional kernel with a weighted circular
// neighborhood.
//
// The weight at the center is initialValue (default 1.0) and decays linearly
// with the Euclidean distance normalized by falloffRadius. Cells beyond the
// circle radius, or whose normalized distance reaches initialValue, are 0.
// Larger falloff radii give a slower decay.
//
// Parameters:
//   - radius: circle radius in pixels, must be greater than 0
//   - falloffRadius: distance scale of the weight decay, must be greater than 0
//   - initialValue: optional maximum weight at the center
//
// Returns:
//   - A kernel with side length 2*radius+1, or an error if radius or
//     falloffRadius is not positive
func WeightedCircle(radius int, falloffRadius float64, initialValue ...float64) (*Kernel, error) {
	if radius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "circle_radius", Value: 0, Relation: imgerr.Less}
	}
	if falloffRadius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "falloff_radius", Value: 0, Relation: imgerr.Less}
	}
	iv := 1.0
	if len(initialValue) > 0 {
		iv = initialValue[0]
	}
	side := 2*radius + 1
	center := float64(radius)
	normCenter := center / falloffRadius
	k := &Kernel{Radius: radius, Dims: 2, Side: side, Weights: make([]float64, side*side)}
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			d := distance(float64(row)-center, float64(col)-center, 0) / falloffRadius
			k.Weights[row*side+col] = falloff(d, normCenter, iv)
		}
	}
	return k, nil
}

// WeightedSphere creates a 3-dimensional kernel with a weighted spherical
// neighborhood. It is the volumetric counterpart of WeightedCircle.
func WeightedSphere(radius int, falloffRadius float64, initialValue ...float64) (*Kernel, error) {
	if radius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "sphere_radius", Value: 0, Relation: imgerr.Less}
	}
	if falloffRadius <= 0 {
		return nil, &imgerr.InvalidParameterError{Param: "falloff_radius", Value: 0, Relation: imgerr.Less}
	}
	iv := 1.0
	if len(initialValue) > 0 {
		iv = initialValue[0]
	}
	side := 2*radius + 1
	center := float64(radius)
	normCenter := center / falloffRadius
	k := &Kernel{Radius: radius, Dims: 3, Side: side, Weights: make([]float64, side*side*side)}
	i := 0
	for pln := 0; pln < side; pln++ {
		for row := 0; row < side; row++ {
			for col := 0; col < side; col++ {
				d := distance(float64(pln)-center, float64(row)-center, float64(col)-center) / falloffRadius
				k.Weights[i] = falloff(d, normCenter, iv)
				i++
			}
		}
	}
	return k, nil
}

// falloff maps a normalized distance to a weight.
func falloff(normDist, normCenter, initialValue float64) float64 {
	if normDist > normCenter {
		return 0.0
	}
	if normDist >= initialValue {
		return 0.0
	}
	return initialValue - normDist
}

func distance(dz, dy, dx float64) float64 {
	return math.Sqrt(dz*dz + dy*dy + dx*dx)
}
