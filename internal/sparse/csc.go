package sparse

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/device"
)

// CSC is a device-resident compressed-sparse-column matrix. It owns three
// buffers: column pointers (cols+1 entries), row indices (one per nonzero,
// strictly increasing within each column), and values.
type CSC[T Scalar] struct {
	colPtr *device.Buffer
	rowInd *device.Buffer
	val    *device.Buffer

	rows, cols int
	nnz        int
	dev        *device.Device
}

// NewCSC uploads a host CSC matrix to dev. The format matches the host's
// native sparse type 1:1, so each buffer is uploaded directly.
func NewCSC[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*CSC[T], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &CSC[T]{
		colPtr: dev.Upload(indexBytes(m.ColPtr), s),
		rowInd: dev.Upload(indexBytes(m.RowInd), s),
		val:    dev.Upload(scalarBytes(m.Val), s),
		rows:   m.Rows,
		cols:   m.Cols,
		nnz:    m.NNZ(),
		dev:    dev,
	}, nil
}

// WrapCSC adopts device buffers produced by a prior vendor-library call.
func WrapCSC[T Scalar](dev *device.Device, colPtr, rowInd, val *device.Buffer, rows, cols, nnz int) *CSC[T] {
	return &CSC[T]{colPtr: colPtr, rowInd: rowInd, val: val, rows: rows, cols: cols, nnz: nnz, dev: dev}
}

// Dims returns the matrix dimensions.
func (m *CSC[T]) Dims() (r, c int) { return m.rows, m.cols }

// Shape returns the logical dimensions.
func (m *CSC[T]) Shape() []int { return []int{m.rows, m.cols} }

// Dim returns the extent along dimension d. See Container.
func (m *CSC[T]) Dim(d int) (int, error) { return dimOf(m.Shape(), d) }

// NumElements returns the logical element count.
func (m *CSC[T]) NumElements() int { return m.rows * m.cols }

// NNZ returns the number of stored nonzeros.
func (m *CSC[T]) NNZ() int { return m.nnz }

// DeviceID returns the identifier of the owning device.
func (m *CSC[T]) DeviceID() int { return m.dev.ID() }

// DType returns the element type.
func (m *CSC[T]) DType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// ColPtr returns the device buffer of column pointers.
func (m *CSC[T]) ColPtr() *device.Buffer { return m.colPtr }

// RowInd returns the device buffer of row indices.
func (m *CSC[T]) RowInd() *device.Buffer { return m.rowInd }

// Values returns the device buffer of nonzero values.
func (m *CSC[T]) Values() *device.Buffer { return m.val }

// ToHost downloads the matrix into an equivalent host CSC structure.
func (m *CSC[T]) ToHost(s *device.Stream) (HostCSC[T], error) {
	colPtrBytes, err := m.colPtr.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}
	rowIndBytes, err := m.rowInd.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}
	valBytes, err := m.val.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}
	return HostCSC[T]{
		Rows:   m.rows,
		Cols:   m.cols,
		ColPtr: bytesToIndices(colPtrBytes),
		RowInd: bytesToIndices(rowIndBytes),
		Val:    bytesToScalars[T](valBytes),
	}, nil
}

// Similar allocates a new CSC of the same shape, structure, and device.
// Structural index buffers are deep-copied; the values buffer is allocated
// but left uninitialized.
func (m *CSC[T]) Similar(s *device.Stream) *CSC[T] {
	return &CSC[T]{
		colPtr: m.colPtr.Clone(s),
		rowInd: m.rowInd.Clone(s),
		val:    m.dev.Alloc(m.val.ByteLen()),
		rows:   m.rows,
		cols:   m.cols,
		nnz:    m.nnz,
		dev:    m.dev,
	}
}

// CopyFrom overwrites every buffer of this matrix with src's contents via
// device-to-device copies. Fails with ErrShapeMismatch, without touching
// the destination, if shapes or nonzero counts differ.
func (m *CSC[T]) CopyFrom(src *CSC[T], s *device.Stream) error {
	if m.rows != src.rows || m.cols != src.cols {
		return fmt.Errorf("sparse: matrix shapes %dx%d and %dx%d: %w",
			m.rows, m.cols, src.rows, src.cols, ErrShapeMismatch)
	}
	if m.nnz != src.nnz {
		return fmt.Errorf("sparse: matrix nonzero counts %d and %d: %w", m.nnz, src.nnz, ErrShapeMismatch)
	}
	if err := m.colPtr.CopyFrom(src.colPtr, s); err != nil {
		return err
	}
	if err := m.rowInd.CopyFrom(src.rowInd, s); err != nil {
		return err
	}
	if err := m.val.CopyFrom(src.val, s); err != nil {
		return err
	}
	m.nnz = src.nnz
	return nil
}

// Copy returns an independent deep copy of the matrix.
func (m *CSC[T]) Copy(s *device.Stream) (*CSC[T], error) {
	out := m.Similar(s)
	if err := out.CopyFrom(m, s); err != nil {
		out.Free()
		return nil, err
	}
	return out, nil
}

// Free releases the matrix's device buffers. Free is idempotent.
func (m *CSC[T]) Free() {
	m.colPtr.Free()
	m.rowInd.Free()
	m.val.Free()
}
