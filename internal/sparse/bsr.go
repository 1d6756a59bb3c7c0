package sparse

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/device"
)

// BlockLayout is the storage order of the dense blocks inside a BSR
// values buffer.
type BlockLayout int

const (
	// BlockRowMajor stores each block row by row.
	BlockRowMajor BlockLayout = iota
	// BlockColMajor stores each block column by column.
	BlockColMajor
)

// String returns a human-readable layout name.
func (l BlockLayout) String() string {
	switch l {
	case BlockRowMajor:
		return "row-major"
	case BlockColMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// BSR is a device-resident block-sparse-row matrix: CSR whose nonzero
// units are dense blockDim x blockDim blocks. Block construction from other
// formats is the vendor library's job; BSR containers are built by wrapping
// the buffers such a conversion produced.
type BSR[T Scalar] struct {
	rowPtr *device.Buffer // block-row pointers
	colInd *device.Buffer // block-column indices
	val    *device.Buffer // blockDim*blockDim values per block

	rows, cols int // logical (element) dimensions
	blockDim   int
	layout     BlockLayout
	nnz        int // stored element count
	dev        *device.Device
}

// WrapBSR adopts device buffers produced by a prior vendor-library
// conversion. rows and cols are the logical element dimensions; nnz counts
// stored elements (blocks x blockDim^2).
func WrapBSR[T Scalar](dev *device.Device, rowPtr, colInd, val *device.Buffer,
	rows, cols, blockDim int, layout BlockLayout, nnz int) *BSR[T] {
	return &BSR[T]{
		rowPtr:   rowPtr,
		colInd:   colInd,
		val:      val,
		rows:     rows,
		cols:     cols,
		blockDim: blockDim,
		layout:   layout,
		nnz:      nnz,
		dev:      dev,
	}
}

// Dims returns the logical matrix dimensions.
func (m *BSR[T]) Dims() (r, c int) { return m.rows, m.cols }

// Shape returns the logical dimensions.
func (m *BSR[T]) Shape() []int { return []int{m.rows, m.cols} }

// Dim returns the extent along dimension d. See Container.
func (m *BSR[T]) Dim(d int) (int, error) { return dimOf(m.Shape(), d) }

// NumElements returns the logical element count.
func (m *BSR[T]) NumElements() int { return m.rows * m.cols }

// NNZ returns the number of stored elements.
func (m *BSR[T]) NNZ() int { return m.nnz }

// DeviceID returns the identifier of the owning device.
func (m *BSR[T]) DeviceID() int { return m.dev.ID() }

// DType returns the element type.
func (m *BSR[T]) DType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// BlockDim returns the side length of the dense blocks.
func (m *BSR[T]) BlockDim() int { return m.blockDim }

// Layout returns the block storage order.
func (m *BSR[T]) Layout() BlockLayout { return m.layout }

// RowPtr returns the device buffer of block-row pointers.
func (m *BSR[T]) RowPtr() *device.Buffer { return m.rowPtr }

// ColInd returns the device buffer of block-column indices.
func (m *BSR[T]) ColInd() *device.Buffer { return m.colInd }

// Values returns the device buffer of block values.
func (m *BSR[T]) Values() *device.Buffer { return m.val }

// ToHost downloads the matrix and materializes it as a host CSC structure
// by expanding every stored block into (row, col, value) triplets. Stored
// zeros inside blocks are kept, matching the device representation.
func (m *BSR[T]) ToHost(s *device.Stream) (HostCSC[T], error) {
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

	rowPtr := bytesToIndices(rowPtrBytes)
	colInd := bytesToIndices(colIndBytes)
	val := bytesToScalars[T](valBytes)

	bd := m.blockDim
	blockRows := expandPtr(rowPtr)
	rowOut := make([]int, 0, len(val))
	colOut := make([]int, 0, len(val))
	valOut := make([]T, 0, len(val))
	for b, bi := range blockRows {
		bj := colInd[b]
		base := b * bd * bd
		for u := 0; u < bd; u++ {
			for w := 0; w < bd; w++ {
				var off int
				if m.layout == BlockRowMajor {
					off = u*bd + w
				} else {
					off = w*bd + u
				}
				i := bi*bd + u
				j := bj*bd + w
				if i >= m.rows || j >= m.cols {
					// Padding block cells past the logical edge.
					continue
				}
				rowOut = append(rowOut, i)
				colOut = append(colOut, j)
				valOut = append(valOut, val[base+off])
			}
		}
	}

	return FromTriplets(m.rows, m.cols, rowOut, colOut, valOut)
}

// Similar allocates a new BSR of the same shape, structure, layout, and
// device. Structural index buffers are deep-copied; the values buffer is
// allocated but left uninitialized.
func (m *BSR[T]) Similar(s *device.Stream) *BSR[T] {
	return &BSR[T]{
		rowPtr:   m.rowPtr.Clone(s),
		colInd:   m.colInd.Clone(s),
		val:      m.dev.Alloc(m.val.ByteLen()),
		rows:     m.rows,
		cols:     m.cols,
		blockDim: m.blockDim,
		layout:   m.layout,
		nnz:      m.nnz,
		dev:      m.dev,
	}
}

// CopyFrom overwrites every buffer of this matrix with src's contents via
// device-to-device copies and adopts src's block layout. Fails with
// ErrShapeMismatch, without touching the destination, if shapes, block
// dimensions, or nonzero counts differ.
func (m *BSR[T]) CopyFrom(src *BSR[T], s *device.Stream) error {
	if m.rows != src.rows || m.cols != src.cols {
		return fmt.Errorf("sparse: matrix shapes %dx%d and %dx%d: %w",
			m.rows, m.cols, src.rows, src.cols, ErrShapeMismatch)
	}
	if m.blockDim != src.blockDim {
		return fmt.Errorf("sparse: block dimensions %d and %d: %w", m.blockDim, src.blockDim, ErrShapeMismatch)
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
	m.layout = src.layout
	return nil
}

// Copy returns an independent deep copy of the matrix.
func (m *BSR[T]) Copy(s *device.Stream) (*BSR[T], error) {
	out := m.Similar(s)
	if err := out.CopyFrom(m, s); err != nil {
		out.Free()
		return nil, err
	}
	return out, nil
}

// Free releases the matrix's device buffers. Free is idempotent.
func (m *BSR[T]) Free() {
	m.rowPtr.Free()
	m.colInd.Free()
	m.val.Free()
}
