// Copyright 2025 Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sparse provides GPU-resident sparse containers for Lattice.
//
// The package defines five container types living in device memory:
//   - Vector[T]: a sparse vector (indices + values)
//   - CSC[T]: compressed sparse column matrix
//   - CSR[T]: compressed sparse row matrix
//   - BSR[T]: block sparse row matrix
//   - HYB[T]: an opaque vendor hybrid format
//
// Containers hold device buffers plus host-side shape and count metadata.
// All indices are 0-based on both host and device.
//
// Example:
//
//	dev, err := device.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Release()
//
//	hm := sparse.HostCSC[float32]{
//	    Rows: 4, Cols: 4,
//	    ColPtr: []int{0, 1, 2, 3, 4},
//	    RowInd: []int{0, 1, 2, 3},
//	    Val:    []float32{1, 2, 3, 4},
//	}
//	m, err := sparse.NewCSC(dev, hm, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Free()
package sparse

import (
	"github.com/lattice-ml/lattice/internal/device"
	"github.com/lattice-ml/lattice/internal/sparse"
	"github.com/lattice-ml/lattice/internal/sparselib"
)

// Type aliases for public API

// Scalar is a constraint for container value types.
// Supported types: float32, float64, complex64, complex128.
type Scalar = sparse.Scalar

// DataType represents the value type of a container at runtime.
type DataType = sparse.DataType

// Data type constants.
const (
	Float32    DataType = sparse.Float32
	Float64    DataType = sparse.Float64
	Complex64  DataType = sparse.Complex64
	Complex128 DataType = sparse.Complex128
)

// Sentinel errors. Operations wrap these; test with errors.Is.
var (
	ErrInvalidDimension      = sparse.ErrInvalidDimension
	ErrShapeMismatch         = sparse.ErrShapeMismatch
	ErrUnsupportedConversion = sparse.ErrUnsupportedConversion
)

// Container is the interface shared by all sparse container types.
type Container = sparse.Container

// Host-side structures

// HostVector is a sparse vector in host memory.
type HostVector[T Scalar] = sparse.HostVector[T]

// HostCSC is a compressed sparse column matrix in host memory.
type HostCSC[T Scalar] = sparse.HostCSC[T]

// FromTriplets assembles a HostCSC from coordinate triplets. Duplicate
// coordinates are summed.
func FromTriplets[T Scalar](rows, cols int, rowInd, colInd []int, val []T) (HostCSC[T], error) {
	return sparse.FromTriplets(rows, cols, rowInd, colInd, val)
}

// Device containers

// Vector is a sparse vector resident on a device.
type Vector[T Scalar] = sparse.Vector[T]

// CSC is a compressed sparse column matrix resident on a device.
type CSC[T Scalar] = sparse.CSC[T]

// CSR is a compressed sparse row matrix resident on a device.
type CSR[T Scalar] = sparse.CSR[T]

// BSR is a block sparse row matrix resident on a device.
type BSR[T Scalar] = sparse.BSR[T]

// HYB is an opaque vendor hybrid matrix resident on a device.
type HYB[T Scalar] = sparse.HYB[T]

// BlockLayout selects the element order inside each BSR block.
type BlockLayout = sparse.BlockLayout

// Block layout constants.
const (
	BlockRowMajor BlockLayout = sparse.BlockRowMajor
	BlockColMajor BlockLayout = sparse.BlockColMajor
)

// Handle is an opaque vendor sparse representation backing HYB matrices.
type Handle = sparselib.Handle

// Constructors

// NewVector uploads a host sparse vector to the device.
func NewVector[T Scalar](dev *device.Device, hv HostVector[T], s *device.Stream) (*Vector[T], error) {
	return sparse.NewVector(dev, hv, s)
}

// NewVectorFromCSC uploads a single-column CSC matrix as a sparse vector.
// Matrices with more than one column return ErrUnsupportedConversion.
func NewVectorFromCSC[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*Vector[T], error) {
	return sparse.NewVectorFromCSC(dev, m, s)
}

// NewCSC uploads a host CSC matrix to the device.
func NewCSC[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*CSC[T], error) {
	return sparse.NewCSC(dev, m, s)
}

// NewCSR uploads a host CSC matrix to the device in CSR form.
func NewCSR[T Scalar](dev *device.Device, m HostCSC[T], s *device.Stream) (*CSR[T], error) {
	return sparse.NewCSR(dev, m, s)
}

// NewHYBFromCSR converts a device CSR matrix to the vendor hybrid format.
// Requires a registered vendor converter.
func NewHYBFromCSR[T Scalar](m *CSR[T], s *device.Stream) (*HYB[T], error) {
	return sparse.NewHYBFromCSR(m, s)
}

// Wrappers over existing device buffers. The container takes ownership.

// WrapVector wraps existing device buffers as a sparse vector.
func WrapVector[T Scalar](dev *device.Device, ind, val *device.Buffer, length, nnz int) *Vector[T] {
	return sparse.WrapVector[T](dev, ind, val, length, nnz)
}

// WrapCSC wraps existing device buffers as a CSC matrix.
func WrapCSC[T Scalar](dev *device.Device, colPtr, rowInd, val *device.Buffer, rows, cols, nnz int) *CSC[T] {
	return sparse.WrapCSC[T](dev, colPtr, rowInd, val, rows, cols, nnz)
}

// WrapCSR wraps existing device buffers as a CSR matrix.
func WrapCSR[T Scalar](dev *device.Device, rowPtr, colInd, val *device.Buffer, rows, cols, nnz int) *CSR[T] {
	return sparse.WrapCSR[T](dev, rowPtr, colInd, val, rows, cols, nnz)
}

// WrapBSR wraps existing device buffers as a BSR matrix.
func WrapBSR[T Scalar](dev *device.Device, rowPtr, colInd, val *device.Buffer,
	rows, cols, blockDim int, layout BlockLayout, nnz int) *BSR[T] {
	return sparse.WrapBSR[T](dev, rowPtr, colInd, val, rows, cols, blockDim, layout, nnz)
}

// WrapHYB wraps a vendor handle as a HYB matrix.
func WrapHYB[T Scalar](dev *device.Device, h *Handle, rows, cols, nnz int) *HYB[T] {
	return sparse.WrapHYB[T](dev, h, rows, cols, nnz)
}

// Structure annotations. These tag a container as symmetric, hermitian or
// triangular without copying it; the wrapped container is not owned.

// Uplo selects which triangle of an annotated matrix is stored.
type Uplo = sparse.Uplo

// Triangle constants.
const (
	Upper Uplo = sparse.Upper
	Lower Uplo = sparse.Lower
)

// Symmetric tags a matrix as symmetric with one stored triangle.
type Symmetric[M Container] = sparse.Symmetric[M]

// Hermitian tags a matrix as hermitian with one stored triangle.
type Hermitian[M Container] = sparse.Hermitian[M]

// Triangular tags a matrix as triangular.
type Triangular[M Container] = sparse.Triangular[M]

// NewSymmetric wraps m as a symmetric matrix storing the given triangle.
func NewSymmetric[M Container](m M, uplo Uplo) Symmetric[M] {
	return sparse.NewSymmetric(m, uplo)
}

// NewHermitian wraps m as a hermitian matrix storing the given triangle.
func NewHermitian[M Container](m M, uplo Uplo) Hermitian[M] {
	return sparse.NewHermitian(m, uplo)
}

// NewTriangular wraps m as a triangular matrix with the given orientation.
func NewTriangular[M Container](m M, uplo Uplo) Triangular[M] {
	return sparse.NewTriangular(m, uplo)
}

// IsSymmetric reports whether v is annotated as symmetric. Bare
// containers report false.
func IsSymmetric(v any) bool { return sparse.IsSymmetric(v) }

// IsHermitian reports whether v is annotated as hermitian. Bare
// containers report false.
func IsHermitian(v any) bool { return sparse.IsHermitian(v) }
