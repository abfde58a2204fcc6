package sparse

import "errors"

var (
	// ErrInvalidArgument is returned for out-of-range indices, non-square
	// input and dimension mismatches.
	ErrInvalidArgument = errors.New("sparse: invalid argument")

	// ErrSingularMatrix is returned when a matrix cannot be factorized:
	// a structurally empty row, a non positive definite pivot, or a
	// condition number beyond mat.ConditionTolerance.
	ErrSingularMatrix = errors.New("sparse: singular matrix")

	// ErrNotFactorized is returned when solving with a nil or zero-value
	// factorization.
	ErrNotFactorized = errors.New("sparse: matrix not factorized")
)
