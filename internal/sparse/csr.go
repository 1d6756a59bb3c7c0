package sparse

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/device"
)

// CSR is a device-resident compressed-sparse-row matrix. It owns three
// buffers: row pointers (rows+1 entries), column indices (one per nonzero,
// strictly increasing within each row), and values.
type CSR[T Scalar] struct {
	rowPtr *device.Buffer
	colInd *device.Buffer
	val    *device.Buffer

	rows, cols int
	nnz        int
	dev        *device.Device
}

// NewCSR uploads a host CSC matrix to dev as CSR. The row-compressed
// structure is assembled on the host before upload; this is pure data
// marshalling, not a device kernel.
func NewCSR[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*CSR[T], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rowPtr, colInd, val := compressByRow(m)
	return &CSR[T]{
		rowPtr: dev.Upload(indexBytes(rowPtr), s),
		colInd: dev.Upload(indexBytes(colInd), s),
		val:    dev.Upload(scalarBytes(val), s),
		rows:   m.Rows,
		cols:   m.Cols,
		nnz:    m.NNZ(),
		dev:    dev,
	}, nil
}

// compressByRow re-buckets a column-compressed host matrix by row.
// Walking columns in order keeps each row's column indices strictly
// increasing without a sort.
func compressByRow[T Scalar](m HostCSC[T]) (rowPtr, colInd []int, val []T) {
	rowPtr = make([]int, m.Rows+1)
	for _, i := range m.RowInd {
		rowPtr[i+1]++
	}
	for i := 0; i < m.Rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	colInd = make([]int, m.NNZ())
	val = make([]T, m.NNZ())
	next := make([]int, m.Rows)
	copy(next, rowPtr[:m.Rows])
	for j := 0; j < m.Cols; j++ {
		for k := m.ColPtr[j]; k < m.ColPtr[j+1]; k++ {
			i := m.RowInd[k]
			p := next[i]
			colInd[p] = j
			val[p] = m.Val[k]
			next[i]++
		}
	}
	return rowPtr, colInd, val
}

// WrapCSR adopts device buffers produced by a prior vendor-library call.
func WrapCSR[T Scalar](dev *device.Device, rowPtr, colInd, val *device.Buffer, rows, cols, nnz int) *CSR[T] {
	return &CSR[T]{rowPtr: rowPtr, colInd: colInd, val: val, rows: rows, cols: cols, nnz: nnz, dev: dev}
}

// Dims returns the matrix dimensions.
func (m *CSR[T]) Dims() (r, c int) { return m.rows, m.cols }

// Shape returns the logical dimensions.
func (m *CSR[T]) Shape() []int { return []int{m.rows, m.cols} }

// Dim returns the extent along dimension d. See Container.
func (m *CSR[T]) Dim(d int) (int, error) { return dimOf(m.Shape(), d) }

// NumElements returns the logical element count.
func (m *CSR[T]) NumElements() int { return m.rows * m.cols }

// NNZ returns the number of stored nonzeros.
func (m *CSR[T]) NNZ() int { return m.nnz }

// DeviceID returns the identifier of the owning device.
func (m *CSR[T]) DeviceID() int { return m.dev.ID() }

// DType returns the element type.
func (m *CSR[T]) DType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// RowPtr returns the device buffer of row pointers.
func (m *CSR[T]) RowPtr() *device.Buffer { return m.rowPtr }

// ColInd returns the device buffer of column indices.
func (m *CSR[T]) ColInd() *device.Buffer { return m.colInd }

// Values returns the device buffer of nonzero values.
func (m *CSR[T]) Values() *device.Buffer { return m.val }

// ToHost downloads the matrix and materializes it as a host CSC structure.
// The host ecosystem's native sparse type is column-compressed, so each
// row's pointer range is expanded into repeated row labels and the result
// is assembled from (row, col, value) triplets. O(nnz).
func (m *CSR[T]) ToHost(s *device.Stream) (HostCSC[T], error) {
	rowPtrBytes, err := m.rowPtr.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}
	colIndBytes, err := m.colInd.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}
	valBytes, err := m.val.Download(s)
	if err != nil {
		return HostCSC[T]{}, err
	}

	rowInd := expandPtr(bytesToIndices(rowPtrBytes))
	colInd := bytesToIndices(colIndBytes)
	val := bytesToScalars[T](valBytes)

	return FromTriplets(m.rows, m.cols, rowInd, colInd, val)
}

// Similar allocates a new CSR of the same shape, structure, and device.
// Structural index buffers are deep-copied; the values buffer is allocated
// but left uninitialized.
func (m *CSR[T]) Similar(s *device.Stream) *CSR[T] {
	return &CSR[T]{
		rowPtr: m.rowPtr.Clone(s),
		colInd: m.colInd.Clone(s),
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
func (m *CSR[T]) CopyFrom(src *CSR[T], s *device.Stream) error {
	if m.rows != src.rows || m.cols != src.cols {
		return fmt.Errorf("sparse: matrix shapes %dx%d and %dx%d: %w",
			m.rows, m.cols, src.rows, src.cols, ErrShapeMismatch)
	}
	if m.nnz != src.nnz {
		return fmt.Errorf("sparse: matrix nonzero counts %d and %d: %w", m.nnz, src.nnz, ErrShapeMismatch)
	}
	if err := m.rowPtr.CopyFrom(src.rowPtr, s); err != nil {
		return err
	}
	if err := m.colInd.CopyFrom(src.colInd, s); err != nil {
		return err
	}
	if err := m.val.CopyFrom(src.val, s); err != nil {
		return err
	}
	m.nnz = src.nnz
	return nil
}

// Copy returns an independent deep copy of the matrix.
func (m *CSR[T]) Copy(s *device.Stream) (*CSR[T], error) {
	out := m.Similar(s)
	if err := out.CopyFrom(m, s); err != nil {
		out.Free()
		return nil, err
	}
	return out, nil
}

// Free releases the matrix's device buffers. Free is idempotent.
func (m *CSR[T]) Free() {
	m.rowPtr.Free()
	m.colInd.Free()
	m.val.Free()
}
