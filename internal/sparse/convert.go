package sparse

import "unsafe"

// Structural indices travel as fixed-width int32 on the device and as
// plain int on the host. Values travel as their native byte layout.

// indexBytes converts host indices to the device's int32 wire layout.
func indexBytes(ind []int) []byte {
	if len(ind) == 0 {
		return nil
	}
	out := make([]int32, len(ind))
	for k, v := range ind {
		out[k] = int32(v) //nolint:gosec // G115: indices are validated against container extents
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	return unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(out)*4)
}

// bytesToIndices converts a downloaded int32 index buffer back to host ints.
func bytesToIndices(data []byte) []int {
	n := len(data) / 4
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	raw := unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), n)
	out := make([]int, n)
	for k, v := range raw {
		out[k] = int(v)
	}
	return out
}

// scalarBytes reinterprets a scalar slice as its byte layout.
func scalarBytes[T Scalar](vals []T) []byte {
	if len(vals) == 0 {
		return nil
	}
	var dummy T
	size := inferDataType(dummy).Size()
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	return unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*size)
}

// bytesToScalars reinterprets a downloaded value buffer as scalars.
// The byte slice is copied so the result does not alias transfer scratch.
func bytesToScalars[T Scalar](data []byte) []T {
	var dummy T
	size := inferDataType(dummy).Size()
	n := len(data) / size
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation
	raw := unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
	out := make([]T, n)
	copy(out, raw)
	return out
}
