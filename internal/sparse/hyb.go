package sparse

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/device"
	"github.com/lattice-ml/lattice/internal/sparselib"
)

// HYB is a device-resident hybrid sparse matrix. Its payload is an opaque
// vendor-library handle: not directly inspectable, created by a vendor
// format conversion, and released through the library's destructor.
type HYB[T Scalar] struct {
	handle *sparselib.Handle

	rows, cols int
	nnz        int
	dev        *device.Device
}

// WrapHYB adopts an opaque handle produced by a vendor format conversion.
// The container owns the handle exclusively until CopyFrom aliases it.
func WrapHYB[T Scalar](dev *device.Device, h *sparselib.Handle, rows, cols, nnz int) *HYB[T] {
	return &HYB[T]{handle: h, rows: rows, cols: cols, nnz: nnz, dev: dev}
}

// NewHYBFromCSR converts a device CSR matrix into hybrid form through the
// registered vendor converter.
func NewHYBFromCSR[T Scalar](m *CSR[T], s *device.Stream) (*HYB[T], error) {
	conv, err := sparselib.GetConverter()
	if err != nil {
		return nil, err
	}
	h, err := conv.CompressedToHyb(m.dev, m.rowPtr, m.colInd, m.val, m.rows, m.cols, m.nnz, s)
	if err != nil {
		return nil, err
	}
	return WrapHYB[T](m.dev, h, m.rows, m.cols, m.nnz), nil
}

// Dims returns the matrix dimensions.
func (m *HYB[T]) Dims() (r, c int) { return m.rows, m.cols }

// Shape returns the logical dimensions.
func (m *HYB[T]) Shape() []int { return []int{m.rows, m.cols} }

// Dim returns the extent along dimension d. See Container.
func (m *HYB[T]) Dim(d int) (int, error) { return dimOf(m.Shape(), d) }

// NumElements returns the logical element count.
func (m *HYB[T]) NumElements() int { return m.rows * m.cols }

// NNZ returns the number of stored nonzeros.
func (m *HYB[T]) NNZ() int { return m.nnz }

// DeviceID returns the identifier of the owning device.
func (m *HYB[T]) DeviceID() int { return m.dev.ID() }

// DType returns the element type.
func (m *HYB[T]) DType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// Handle returns the opaque vendor handle, for forwarding to vendor calls.
func (m *HYB[T]) Handle() *sparselib.Handle { return m.handle }

// ToHost is unsupported: the hybrid payload is opaque to this layer.
// Convert back to a compressed format through the vendor library first.
func (m *HYB[T]) ToHost(_ *device.Stream) (HostCSC[T], error) {
	return HostCSC[T]{}, fmt.Errorf("sparse: hybrid payload is opaque: %w", ErrUnsupportedConversion)
}

// Similar returns a new container with the same shape, count, and device.
// The hybrid payload is opaque, so no fresh buffers can be allocated for
// it; the new container aliases the same vendor handle (see CopyFrom).
func (m *HYB[T]) Similar(_ *device.Stream) *HYB[T] {
	return &HYB[T]{handle: m.handle, rows: m.rows, cols: m.cols, nnz: m.nnz, dev: m.dev}
}

// Copy returns a new container via Similar and CopyFrom. Independence is
// only apparent: both containers alias one underlying vendor resource.
// Callers who need a real duplicate must go through the vendor library.
func (m *HYB[T]) Copy(s *device.Stream) (*HYB[T], error) {
	out := m.Similar(s)
	if err := out.CopyFrom(m, s); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFrom makes this container refer to src's opaque handle and copies
// the nonzero count.
//
// WARNING: because the hybrid payload cannot be inspected, this does NOT
// duplicate it. After CopyFrom the two containers silently alias one
// underlying vendor resource; the handle's destructor is idempotent, so
// the first Free wins and the other container is left holding a destroyed
// handle. Callers who need an independent copy must go through the vendor
// library's conversion routines.
func (m *HYB[T]) CopyFrom(src *HYB[T], _ *device.Stream) error {
	if m.rows != src.rows || m.cols != src.cols {
		return fmt.Errorf("sparse: matrix shapes %dx%d and %dx%d: %w",
			m.rows, m.cols, src.rows, src.cols, ErrShapeMismatch)
	}
	m.handle = src.handle
	m.nnz = src.nnz
	return nil
}

// SetHandle replaces the opaque handle after an in-place vendor
// reformatting run. The previous handle is not destroyed; the caller
// decides its fate.
func (m *HYB[T]) SetHandle(h *sparselib.Handle, nnz int) {
	m.handle = h
	m.nnz = nnz
}

// Free destroys the opaque handle through the vendor library.
// Destruction is idempotent across aliased containers.
func (m *HYB[T]) Free() {
	if m.handle != nil {
		m.handle.Destroy()
	}
}
