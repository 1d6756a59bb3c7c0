package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostVectorValidate(t *testing.T) {
	valid := HostVector[float32]{Length: 10, Ind: []int{0, 3, 9}, Val: []float32{1, 2, 3}}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 3, valid.NNZ())

	tests := []struct {
		name string
		v    HostVector[float32]
	}{
		{"length mismatch", HostVector[float32]{Length: 10, Ind: []int{0, 1}, Val: []float32{1}}},
		{"index out of range", HostVector[float32]{Length: 4, Ind: []int{0, 4}, Val: []float32{1, 2}}},
		{"negative index", HostVector[float32]{Length: 4, Ind: []int{-1, 2}, Val: []float32{1, 2}}},
		{"not increasing", HostVector[float32]{Length: 4, Ind: []int{2, 2}, Val: []float32{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.v.Validate())
		})
	}
}

func TestHostCSCValidate(t *testing.T) {
	valid := HostCSC[float64]{
		Rows: 4, Cols: 4,
		ColPtr: []int{0, 1, 2, 3, 4},
		RowInd: []int{0, 1, 2, 3},
		Val:    []float64{1, 2, 3, 4},
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, 4, valid.NNZ())

	tests := []struct {
		name string
		m    HostCSC[float64]
	}{
		{"wrong colptr length", HostCSC[float64]{Rows: 2, Cols: 2, ColPtr: []int{0, 1}, RowInd: []int{0}, Val: []float64{1}}},
		{"nonzero first pointer", HostCSC[float64]{Rows: 2, Cols: 1, ColPtr: []int{1, 1}, RowInd: []int{}, Val: []float64{}}},
		{"last pointer not nnz", HostCSC[float64]{Rows: 2, Cols: 1, ColPtr: []int{0, 2}, RowInd: []int{0}, Val: []float64{1}}},
		{"decreasing pointers", HostCSC[float64]{Rows: 2, Cols: 2, ColPtr: []int{0, 2, 1}, RowInd: []int{0}, Val: []float64{1}}},
		{"row out of range", HostCSC[float64]{Rows: 2, Cols: 1, ColPtr: []int{0, 1}, RowInd: []int{2}, Val: []float64{1}}},
		{"rows not increasing in column", HostCSC[float64]{Rows: 3, Cols: 1, ColPtr: []int{0, 2}, RowInd: []int{1, 1}, Val: []float64{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.m.Validate())
		})
	}
}

func TestHostCSCAt(t *testing.T) {
	m := HostCSC[float32]{
		Rows: 2, Cols: 3,
		ColPtr: []int{0, 1, 3, 3},
		RowInd: []int{0, 0, 1},
		Val:    []float32{5, 6, 7},
	}
	require.NoError(t, m.Validate())

	assert.Equal(t, float32(5), m.At(0, 0))
	assert.Equal(t, float32(6), m.At(0, 1))
	assert.Equal(t, float32(7), m.At(1, 1))
	assert.Equal(t, float32(0), m.At(1, 0))
	assert.Equal(t, float32(0), m.At(0, 2))

	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0, -1) })
}

func TestFromTriplets(t *testing.T) {
	// Unordered triplets for
	//   [5 6 0]
	//   [0 7 0]
	m, err := FromTriplets(2, 3,
		[]int{1, 0, 0},
		[]int{1, 1, 0},
		[]float32{7, 6, 5})
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, []int{0, 1, 3, 3}, m.ColPtr)
	assert.Equal(t, []int{0, 0, 1}, m.RowInd)
	assert.Equal(t, []float32{5, 6, 7}, m.Val)
}

func TestFromTripletsSumsDuplicates(t *testing.T) {
	m, err := FromTriplets(2, 2,
		[]int{0, 0, 1},
		[]int{0, 0, 1},
		[]float64{1.5, 2.5, 3})
	require.NoError(t, err)

	assert.Equal(t, 2, m.NNZ())
	assert.Equal(t, 4.0, m.At(0, 0))
	assert.Equal(t, 3.0, m.At(1, 1))
}

func TestFromTripletsRejectsBadInput(t *testing.T) {
	_, err := FromTriplets(2, 2, []int{0}, []int{0, 1}, []float32{1, 2})
	assert.Error(t, err)

	_, err = FromTriplets(2, 2, []int{2}, []int{0}, []float32{1})
	assert.Error(t, err)

	_, err = FromTriplets(2, 2, []int{0}, []int{-1}, []float32{1})
	assert.Error(t, err)
}

func TestExpandPtr(t *testing.T) {
	tests := []struct {
		name string
		ptr  []int
		want []int
	}{
		{"empty", nil, nil},
		{"no rows", []int{0}, nil},
		{"basic", []int{0, 2, 3}, []int{0, 0, 1}},
		{"empty rows", []int{0, 0, 2, 2, 3}, []int{1, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPtr(tt.ptr)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandPtrRepetitionCounts(t *testing.T) {
	// Each row label must appear exactly ptr[r+1]-ptr[r] times.
	ptr := []int{0, 3, 3, 7, 8}
	got := expandPtr(ptr)
	require.Len(t, got, 8)

	counts := make(map[int]int)
	for _, r := range got {
		counts[r]++
	}
	for r := 0; r < len(ptr)-1; r++ {
		assert.Equal(t, ptr[r+1]-ptr[r], counts[r], "row %d", r)
	}
}

func TestCompressByRow(t *testing.T) {
	// [5 6 0]
	// [0 7 0]
	m := HostCSC[float32]{
		Rows: 2, Cols: 3,
		ColPtr: []int{0, 1, 3, 3},
		RowInd: []int{0, 0, 1},
		Val:    []float32{5, 6, 7},
	}
	require.NoError(t, m.Validate())

	rowPtr, colInd, val := compressByRow(m)
	assert.Equal(t, []int{0, 2, 3}, rowPtr)
	assert.Equal(t, []int{0, 1, 1}, colInd)
	assert.Equal(t, []float32{5, 6, 7}, val)
}

func TestIndexBytesRoundTrip(t *testing.T) {
	ind := []int{0, 1, 127, 65536}
	got := bytesToIndices(indexBytes(ind))
	assert.Equal(t, ind, got)

	assert.Nil(t, bytesToIndices(indexBytes(nil)))
}

func TestScalarBytesRoundTrip(t *testing.T) {
	f := []float32{1.5, -2.25, 0}
	assert.Equal(t, f, bytesToScalars[float32](scalarBytes(f)))

	d := []float64{3.14159, -1}
	assert.Equal(t, d, bytesToScalars[float64](scalarBytes(d)))

	c := []complex64{1 + 2i, -3i}
	assert.Equal(t, c, bytesToScalars[complex64](scalarBytes(c)))

	z := []complex128{2.5 - 0.5i}
	assert.Equal(t, z, bytesToScalars[complex128](scalarBytes(z)))
}
