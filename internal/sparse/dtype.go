// Package sparse provides device-resident sparse vector and matrix
// containers mirroring host compressed formats (CSC, CSR, BSR, HYB) for
// interoperability with vendor sparse linear algebra routines.
package sparse

// Scalar is the constraint for supported container element types.
type Scalar interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// DataType represents runtime element-type information for containers.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
	Complex64
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsComplex reports whether the data type has an imaginary part.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T Scalar](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("unsupported type")
	}
}
