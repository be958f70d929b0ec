// Package imgerr defines the error types returned by the imgal packages.
// Every error is a pointer to a struct so callers can match them with errors.As.
package imgerr

import "fmt"

// MismatchedShapesError is returned when two arrays that must share a shape do not.
type MismatchedShapesError struct {
	ShapeA []int
	ShapeB []int
}

func (e *MismatchedShapesError) Error() string {
	return fmt.Sprintf("mismatched array shapes, %v and %v, do not match", e.ShapeA, e.ShapeB)
}

// MismatchedLengthsError is returned when two sequences that must be paired
// element-wise have different lengths.
type MismatchedLengthsError struct {
	LenA int
	LenB int
}

func (e *MismatchedLengthsError) Error() string {
	return fmt.Sprintf("mismatched array lengths, %d and %d, do not match", e.LenA, e.LenB)
}

// Relation describes how an invalid parameter value violated its constraint.
type Relation int

const (
	// Equal means the parameter can not equal Value.
	Equal Relation = iota
	// Less means the parameter can not be less than Value.
	Less
	// Greater means the parameter can not be greater than Value.
	Greater
)

// InvalidParameterError is returned when a numeric parameter is outside its
// allowed range, for example a kernel radius of 0.
type InvalidParameterError struct {
	Param    string
	Value    int
	Relation Relation
}

func (e *InvalidParameterError) Error() string {
	switch e.Relation {
	case Less:
		return fmt.Sprintf("invalid parameter value, the parameter %s can not be less than %d", e.Param, e.Value)
	case Greater:
		return fmt.Sprintf("invalid parameter value, the parameter %s can not be greater than %d", e.Param, e.Value)
	default:
		return fmt.Sprintf("invalid parameter value, the parameter %s can not equal %d", e.Param, e.Value)
	}
}
