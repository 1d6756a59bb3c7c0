package sparse

// Annotation wrappers mark structural properties of an underlying
// container without duplicating its buffers. A wrapper holds a non-owning
// reference and must not outlive the container it decorates.

// Uplo selects which triangle of a wrapped matrix is logically significant.
type Uplo byte

const (
	// Upper marks the upper triangle.
	Upper Uplo = 'U'
	// Lower marks the lower triangle.
	Lower Uplo = 'L'
)

// Symmetric marks a matrix container as structurally symmetric: only the
// Uplo triangle is stored as significant, the other is implied.
type Symmetric[M Container] struct {
	Mat  M
	Uplo Uplo
}

// NewSymmetric wraps a container with a symmetry annotation.
func NewSymmetric[M Container](m M, uplo Uplo) Symmetric[M] {
	return Symmetric[M]{Mat: m, Uplo: uplo}
}

// IsSymmetric always reports true for the wrapper.
func (s Symmetric[M]) IsSymmetric() bool { return true }

// Upper reports whether the significant triangle is the upper one.
func (s Symmetric[M]) Upper() bool { return s.Uplo == Upper }

// Lower reports whether the significant triangle is the lower one.
func (s Symmetric[M]) Lower() bool { return s.Uplo == Lower }

// Hermitian marks a matrix container as Hermitian: only the Uplo triangle
// is stored as significant, the other is its conjugate transpose.
type Hermitian[M Container] struct {
	Mat  M
	Uplo Uplo
}

// NewHermitian wraps a container with a Hermitian annotation.
func NewHermitian[M Container](m M, uplo Uplo) Hermitian[M] {
	return Hermitian[M]{Mat: m, Uplo: uplo}
}

// IsHermitian always reports true for the wrapper.
func (h Hermitian[M]) IsHermitian() bool { return true }

// IsSymmetric reports true when the element type has no imaginary part,
// in which case Hermitian and symmetric coincide.
func (h Hermitian[M]) IsSymmetric() bool { return !h.Mat.DType().IsComplex() }

// Upper reports whether the significant triangle is the upper one.
func (h Hermitian[M]) Upper() bool { return h.Uplo == Upper }

// Lower reports whether the significant triangle is the lower one.
func (h Hermitian[M]) Lower() bool { return h.Uplo == Lower }

// Triangular marks a matrix container as triangular with the given
// orientation.
type Triangular[M Container] struct {
	Mat  M
	Uplo Uplo
}

// NewTriangular wraps a container with a triangular annotation.
func NewTriangular[M Container](m M, uplo Uplo) Triangular[M] {
	return Triangular[M]{Mat: m, Uplo: uplo}
}

// Upper reports whether the wrapper's orientation tag is upper.
func (t Triangular[M]) Upper() bool { return t.Uplo == Upper }

// Lower reports whether the wrapper's orientation tag is lower.
func (t Triangular[M]) Lower() bool { return t.Uplo == Lower }

// symmetryMarker is implemented by wrappers that assert symmetry.
type symmetryMarker interface{ IsSymmetric() bool }

// hermitianMarker is implemented by wrappers that assert Hermitian-ness.
type hermitianMarker interface{ IsHermitian() bool }

// IsSymmetric reports whether v is annotated as symmetric. Bare CSC and
// CSR containers carry no symmetry guarantee and always report false.
func IsSymmetric(v any) bool {
	if m, ok := v.(symmetryMarker); ok {
		return m.IsSymmetric()
	}
	return false
}

// IsHermitian reports whether v is annotated as Hermitian. Bare containers
// always report false.
func IsHermitian(v any) bool {
	if m, ok := v.(hermitianMarker); ok {
		return m.IsHermitian()
	}
	return false
}
