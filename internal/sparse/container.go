package sparse

import "fmt"

// Container is the capability set shared by every device sparse container.
type Container interface {
	// Shape returns the logical dimensions: one entry for vectors,
	// two (rows, cols) for matrices.
	Shape() []int

	// Dim returns the extent along dimension d (1-based). Dimensions
	// beyond the container's rank have extent 1, matching host
	// broadcasting conventions; d < 1 fails with ErrInvalidDimension.
	Dim(d int) (int, error)

	// NumElements returns the number of logical elements (dense count).
	NumElements() int

	// NNZ returns the number of stored nonzeros.
	NNZ() int

	// DeviceID returns the identifier of the device the buffers live on.
	DeviceID() int

	// DType returns the element type.
	DType() DataType
}

// dimOf implements the shared Dim semantics over a shape slice.
func dimOf(shape []int, d int) (int, error) {
	if d < 1 {
		return 0, fmt.Errorf("sparse: dimension %d: %w", d, ErrInvalidDimension)
	}
	if d > len(shape) {
		return 1, nil
	}
	return shape[d-1], nil
}
