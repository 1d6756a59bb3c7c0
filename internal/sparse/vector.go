package sparse

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/device"
)

// Vector is a device-resident sparse vector. It owns two buffers: the
// nonzero positions (int32, strictly increasing) and the nonzero values.
type Vector[T Scalar] struct {
	ind *device.Buffer
	val *device.Buffer

	length int
	nnz    int
	dev    *device.Device
}

// NewVector uploads a host sparse vector to dev.
// The host structure is validated before any buffer is allocated.
func NewVector[T Scalar](dev *device.Device, hv HostVector[T], s *device.Stream) (*Vector[T], error) {
	if err := hv.Validate(); err != nil {
		return nil, err
	}
	return &Vector[T]{
		ind:    dev.Upload(indexBytes(hv.Ind), s),
		val:    dev.Upload(scalarBytes(hv.Val), s),
		length: hv.Length,
		nnz:    hv.NNZ(),
		dev:    dev,
	}, nil
}

// NewVectorFromCSC builds a sparse vector from a single-column host matrix.
// Multi-column matrices fail with ErrUnsupportedConversion.
func NewVectorFromCSC[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*Vector[T], error) {
	if m.Cols != 1 {
		return nil, fmt.Errorf("sparse: cannot build a vector from a %dx%d matrix: %w",
			m.Rows, m.Cols, ErrUnsupportedConversion)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return NewVector(dev, HostVector[T]{Length: m.Rows, Ind: m.RowInd, Val: m.Val}, s)
}

// WrapVector adopts device buffers produced by a prior vendor-library call.
// The new container takes ownership of both buffers.
func WrapVector[T Scalar](dev *device.Device, ind, val *device.Buffer, length, nnz int) *Vector[T] {
	return &Vector[T]{ind: ind, val: val, length: length, nnz: nnz, dev: dev}
}

// Len returns the vector's logical length.
func (v *Vector[T]) Len() int { return v.length }

// Shape returns the logical dimensions.
func (v *Vector[T]) Shape() []int { return []int{v.length} }

// Dim returns the extent along dimension d. See Container.
func (v *Vector[T]) Dim(d int) (int, error) { return dimOf(v.Shape(), d) }

// NumElements returns the logical element count.
func (v *Vector[T]) NumElements() int { return v.length }

// NNZ returns the number of stored nonzeros.
func (v *Vector[T]) NNZ() int { return v.nnz }

// DeviceID returns the identifier of the owning device.
func (v *Vector[T]) DeviceID() int { return v.dev.ID() }

// DType returns the element type.
func (v *Vector[T]) DType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// Indices returns the device buffer of nonzero positions.
func (v *Vector[T]) Indices() *device.Buffer { return v.ind }

// Values returns the device buffer of nonzero values.
func (v *Vector[T]) Values() *device.Buffer { return v.val }

// ToHost downloads the vector into an equivalent host sparse vector.
func (v *Vector[T]) ToHost(s *device.Stream) (HostVector[T], error) {
	indBytes, err := v.ind.Download(s)
	if err != nil {
		return HostVector[T]{}, err
	}
	valBytes, err := v.val.Download(s)
	if err != nil {
		return HostVector[T]{}, err
	}
	return HostVector[T]{
		Length: v.length,
		Ind:    bytesToIndices(indBytes),
		Val:    bytesToScalars[T](valBytes),
	}, nil
}

// Similar allocates a new vector of the same length, nonzero count, and
// device. The index buffer is deep-copied; the values buffer is allocated
// but left uninitialized.
func (v *Vector[T]) Similar(s *device.Stream) *Vector[T] {
	return &Vector[T]{
		ind:    v.ind.Clone(s),
		val:    v.dev.Alloc(v.val.ByteLen()),
		length: v.length,
		nnz:    v.nnz,
		dev:    v.dev,
	}
}

// CopyFrom overwrites this vector's buffers with src's contents via
// device-to-device copies. Fails with ErrShapeMismatch, without touching
// the destination, if lengths or nonzero counts differ.
func (v *Vector[T]) CopyFrom(src *Vector[T], s *device.Stream) error {
	if v.length != src.length {
		return fmt.Errorf("sparse: vector lengths %d and %d: %w", v.length, src.length, ErrShapeMismatch)
	}
	if v.nnz != src.nnz {
		return fmt.Errorf("sparse: vector nonzero counts %d and %d: %w", v.nnz, src.nnz, ErrShapeMismatch)
	}
	if err := v.ind.CopyFrom(src.ind, s); err != nil {
		return err
	}
	if err := v.val.CopyFrom(src.val, s); err != nil {
		return err
	}
	v.nnz = src.nnz
	return nil
}

// Copy returns an independent deep copy of the vector.
func (v *Vector[T]) Copy(s *device.Stream) (*Vector[T], error) {
	out := v.Similar(s)
	if err := out.CopyFrom(v, s); err != nil {
		out.Free()
		return nil, err
	}
	return out, nil
}

// Free releases the vector's device buffers. Free is idempotent.
func (v *Vector[T]) Free() {
	v.ind.Free()
	v.val.Free()
}
