package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a dataset has no points.
	ErrEmpty = errors.New("dataset is empty")

	// ErrInvalidDimension is returned when the dimension is not positive.
	ErrInvalidDimension = errors.New("dimension must be positive")
)

// ErrRaggedPoint indicates a point whose dimension differs from the first
// point of the dataset.
type ErrRaggedPoint struct {
	Index    int
	Expected int
	Actual   int
}

func (e *ErrRaggedPoint) Error() string {
	return fmt.Sprintf("point %d has dimension %d, expected %d", e.Index, e.Actual, e.Expected)
}

// Dataset is an immutable, flattened set of points sharing one dimension.
// The zero value is not usable; construct with New or FromFlat.
type Dataset struct {
	data []float64
	dim  int
}

// New builds a dataset from individual points, validating that every point
// has the same dimension. The point coordinates are copied.
func New(points [][]float64) (*Dataset, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}

	dim := len(points[0])
	if dim == 0 {
		return nil, ErrInvalidDimension
	}

	data := make([]float64, 0, len(points)*dim)
	for i, p := range points {
		if len(p) != dim {
			return nil, &ErrRaggedPoint{Index: i, Expected: dim, Actual: len(p)}
		}
		data = append(data, p...)
	}

	return &Dataset{data: data, dim: dim}, nil
}

// FromFlat wraps an already-flattened row-major slice without copying.
// The caller must not mutate data for the lifetime of the dataset.
func FromFlat(data []float64, dim int) (*Dataset, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimension
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("flat data length %d is not a multiple of dimension %d", len(data), dim)
	}
	return &Dataset{data: data, dim: dim}, nil
}

// Len returns the number of points.
func (d *Dataset) Len() int {
	return len(d.data) / d.dim
}

// Dim returns the dimension shared by all points.
func (d *Dataset) Dim() int {
	return d.dim
}

// At returns point i as a view into the underlying storage.
// The returned slice must not be mutated.
func (d *Dataset) At(i int) []float64 {
	return d.data[i*d.dim : (i+1)*d.dim]
}
