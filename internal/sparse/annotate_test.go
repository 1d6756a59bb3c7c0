package sparse

import (
	"errors"
	"testing"
)

// stubMatrix is a host-only Container used to exercise wrapper and
// dimension-query semantics without a device.
type stubMatrix struct {
	shape []int
	dtype DataType
	nnz   int
}

func (m stubMatrix) Shape() []int           { return m.shape }
func (m stubMatrix) Dim(d int) (int, error) { return dimOf(m.shape, d) }
func (m stubMatrix) NNZ() int               { return m.nnz }
func (m stubMatrix) DeviceID() int          { return 0 }
func (m stubMatrix) DType() DataType        { return m.dtype }

func (m stubMatrix) NumElements() int {
	n := 1
	for _, d := range m.shape {
		n *= d
	}
	return n
}

func TestDimOf(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		d     int
		want  int
	}{
		{"matrix rows", []int{4, 6}, 1, 4},
		{"matrix cols", []int{4, 6}, 2, 6},
		{"matrix beyond rank", []int{4, 6}, 3, 1},
		{"matrix far beyond rank", []int{4, 6}, 9, 1},
		{"vector length", []int{7}, 1, 7},
		{"vector beyond rank", []int{7}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dimOf(tt.shape, tt.d)
			if err != nil {
				t.Fatalf("dimOf(%v, %d) failed: %v", tt.shape, tt.d, err)
			}
			if got != tt.want {
				t.Errorf("dimOf(%v, %d) = %d, want %d", tt.shape, tt.d, got, tt.want)
			}
		})
	}

	for _, d := range []int{0, -1, -5} {
		if _, err := dimOf([]int{4, 6}, d); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("dimOf(_, %d): expected ErrInvalidDimension, got %v", d, err)
		}
	}
}

func TestSymmetryFlags(t *testing.T) {
	bare := stubMatrix{shape: []int{3, 3}, dtype: Float64, nnz: 3}

	if IsSymmetric(bare) {
		t.Error("bare container must not report symmetric")
	}
	if IsHermitian(bare) {
		t.Error("bare container must not report hermitian")
	}

	sym := NewSymmetric[Container](bare, Upper)
	if !IsSymmetric(sym) {
		t.Error("symmetric wrapper must report symmetric")
	}
	if IsHermitian(sym) {
		t.Error("symmetric wrapper must not report hermitian")
	}

	herm := NewHermitian[Container](bare, Lower)
	if !IsHermitian(herm) {
		t.Error("hermitian wrapper must report hermitian")
	}
	// Real element type: hermitian implies symmetric.
	if !IsSymmetric(herm) {
		t.Error("real hermitian wrapper must report symmetric")
	}

	complexMat := stubMatrix{shape: []int{3, 3}, dtype: Complex128, nnz: 3}
	hermC := NewHermitian[Container](complexMat, Upper)
	if !IsHermitian(hermC) {
		t.Error("complex hermitian wrapper must report hermitian")
	}
	if IsSymmetric(hermC) {
		t.Error("complex hermitian wrapper must not report symmetric")
	}
}

func TestTriangularOrientation(t *testing.T) {
	bare := stubMatrix{shape: []int{3, 3}, dtype: Float32}

	up := NewTriangular[Container](bare, Upper)
	if !up.Upper() || up.Lower() {
		t.Error("upper triangular wrapper must report upper")
	}

	lo := NewTriangular[Container](bare, Lower)
	if lo.Upper() || !lo.Lower() {
		t.Error("lower triangular wrapper must report lower")
	}
}

func TestWrapperOrientationTags(t *testing.T) {
	bare := stubMatrix{shape: []int{2, 2}, dtype: Float32}

	if s := NewSymmetric[Container](bare, Lower); s.Upper() || !s.Lower() {
		t.Error("symmetric wrapper must honor its orientation tag")
	}
	if h := NewHermitian[Container](bare, Upper); !h.Upper() || h.Lower() {
		t.Error("hermitian wrapper must honor its orientation tag")
	}
}
