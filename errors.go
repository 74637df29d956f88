package xmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when the dataset has no points.
	ErrEmptyDataset = errors.New("dataset must not be empty")

	// ErrNoInitialCenters is returned when no initial centers are provided.
	ErrNoInitialCenters = errors.New("at least one initial center is required")

	// ErrInvalidTolerance is returned when the tolerance is not positive.
	ErrInvalidTolerance = errors.New("tolerance must be positive")
)

// ErrDimensionMismatch indicates a center whose dimension differs from the
// dataset's.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidClusterBound indicates a maximum cluster count that is not
// positive or is below the number of initial centers.
type ErrInvalidClusterBound struct {
	Max     int
	Initial int
}

func (e *ErrInvalidClusterBound) Error() string {
	return fmt.Sprintf("invalid maximum clusters %d for %d initial centers", e.Max, e.Initial)
}
