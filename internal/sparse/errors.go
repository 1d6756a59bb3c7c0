package sparse

import "errors"

// Common errors.
var (
	// ErrInvalidDimension is returned when a non-positive dimension index
	// is queried.
	ErrInvalidDimension = errors.New("dimension index must be >= 1")

	// ErrShapeMismatch is returned when copying between containers whose
	// shapes (or structural buffer sizes) differ.
	ErrShapeMismatch = errors.New("container shapes do not match")

	// ErrUnsupportedConversion is returned when a container cannot be
	// built from, or materialized as, the requested host structure.
	ErrUnsupportedConversion = errors.New("unsupported sparse conversion")
)
