package sparse

import (
	"fmt"
	"sort"
)

// HostVector is a host-resident sparse vector: the upload source and
// ToHost result type for device sparse vectors. Indices are 0-based and
// strictly increasing.
type HostVector[T Scalar] struct {
	Length int
	Ind    []int
	Val    []T
}

// NNZ returns the number of stored nonzeros.
func (v HostVector[T]) NNZ() int {
	return len(v.Val)
}

// Validate checks the vector's structural invariants.
func (v HostVector[T]) Validate() error {
	if len(v.Ind) != len(v.Val) {
		return fmt.Errorf("sparse: host vector: %d indices for %d values", len(v.Ind), len(v.Val))
	}
	prev := -1
	for _, i := range v.Ind {
		if i < 0 || i >= v.Length {
			return fmt.Errorf("sparse: host vector: index %d out of bounds [0, %d)", i, v.Length)
		}
		if i <= prev {
			return fmt.Errorf("sparse: host vector: indices not strictly increasing at %d", i)
		}
		prev = i
	}
	return nil
}

// HostCSC is a host-resident compressed-sparse-column matrix: the native
// host sparse format, used as the upload source and the ToHost result type
// for all device matrix containers. ColPtr has Cols+1 entries with
// ColPtr[0] == 0 and ColPtr[Cols] == NNZ(); row indices are 0-based and
// strictly increasing within each column.
type HostCSC[T Scalar] struct {
	Rows, Cols int
	ColPtr     []int
	RowInd     []int
	Val        []T
}

// NNZ returns the number of stored nonzeros.
func (m HostCSC[T]) NNZ() int {
	return len(m.Val)
}

// Dims returns the matrix dimensions.
func (m HostCSC[T]) Dims() (r, c int) {
	return m.Rows, m.Cols
}

// Validate checks the matrix's structural invariants.
func (m HostCSC[T]) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("sparse: host CSC: negative dimensions %dx%d", m.Rows, m.Cols)
	}
	if len(m.ColPtr) != m.Cols+1 {
		return fmt.Errorf("sparse: host CSC: column pointer length %d, want %d", len(m.ColPtr), m.Cols+1)
	}
	if len(m.RowInd) != len(m.Val) {
		return fmt.Errorf("sparse: host CSC: %d row indices for %d values", len(m.RowInd), len(m.Val))
	}
	if m.ColPtr[0] != 0 {
		return fmt.Errorf("sparse: host CSC: ColPtr[0] = %d, want 0", m.ColPtr[0])
	}
	if m.ColPtr[m.Cols] != len(m.Val) {
		return fmt.Errorf("sparse: host CSC: ColPtr[%d] = %d, want %d", m.Cols, m.ColPtr[m.Cols], len(m.Val))
	}
	for j := 0; j < m.Cols; j++ {
		lo, hi := m.ColPtr[j], m.ColPtr[j+1]
		if hi < lo {
			return fmt.Errorf("sparse: host CSC: column pointers decrease at column %d", j)
		}
		prev := -1
		for k := lo; k < hi; k++ {
			i := m.RowInd[k]
			if i < 0 || i >= m.Rows {
				return fmt.Errorf("sparse: host CSC: row index %d out of bounds [0, %d)", i, m.Rows)
			}
			if i <= prev {
				return fmt.Errorf("sparse: host CSC: row indices not strictly increasing in column %d", j)
			}
			prev = i
		}
	}
	return nil
}

// At returns the element at (i, j), or zero if it is not stored.
// Panics if the position is out of bounds.
func (m HostCSC[T]) At(i, j int) T {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		panic(fmt.Sprintf("sparse: host CSC: position (%d, %d) out of bounds %dx%d", i, j, m.Rows, m.Cols))
	}
	lo, hi := m.ColPtr[j], m.ColPtr[j+1]
	k := lo + sort.SearchInts(m.RowInd[lo:hi], i)
	if k < hi && m.RowInd[k] == i {
		return m.Val[k]
	}
	var zero T
	return zero
}

// FromTriplets assembles a HostCSC from (row, col, value) triplets, the
// generic sparse build of the host ecosystem. Triplets may be unordered;
// duplicates are summed.
func FromTriplets[T Scalar](rows, cols int, rowInd, colInd []int, val []T) (HostCSC[T], error) {
	if len(rowInd) != len(colInd) || len(rowInd) != len(val) {
		return HostCSC[T]{}, fmt.Errorf("sparse: triplet length mismatch: rows=%d, cols=%d, values=%d",
			len(rowInd), len(colInd), len(val))
	}
	for k := range rowInd {
		if rowInd[k] < 0 || rowInd[k] >= rows {
			return HostCSC[T]{}, fmt.Errorf("sparse: triplet row index %d out of bounds [0, %d)", rowInd[k], rows)
		}
		if colInd[k] < 0 || colInd[k] >= cols {
			return HostCSC[T]{}, fmt.Errorf("sparse: triplet column index %d out of bounds [0, %d)", colInd[k], cols)
		}
	}

	// Bucket triplets by column.
	counts := make([]int, cols+1)
	for _, j := range colInd {
		counts[j+1]++
	}
	for j := 0; j < cols; j++ {
		counts[j+1] += counts[j]
	}

	bucketRow := make([]int, len(rowInd))
	bucketVal := make([]T, len(val))
	next := make([]int, cols)
	copy(next, counts[:cols])
	for k, j := range colInd {
		p := next[j]
		bucketRow[p] = rowInd[k]
		bucketVal[p] = val[k]
		next[j]++
	}

	// Sort each column by row and sum duplicates.
	m := HostCSC[T]{
		Rows:   rows,
		Cols:   cols,
		ColPtr: make([]int, cols+1),
		RowInd: make([]int, 0, len(rowInd)),
		Val:    make([]T, 0, len(val)),
	}
	for j := 0; j < cols; j++ {
		lo, hi := counts[j], counts[j+1]
		col := columnSorter[T]{rows: bucketRow[lo:hi], vals: bucketVal[lo:hi]}
		sort.Sort(col)
		for k := lo; k < hi; k++ {
			n := len(m.RowInd)
			if n > m.ColPtr[j] && m.RowInd[n-1] == bucketRow[k] {
				m.Val[n-1] += bucketVal[k]
				continue
			}
			m.RowInd = append(m.RowInd, bucketRow[k])
			m.Val = append(m.Val, bucketVal[k])
		}
		m.ColPtr[j+1] = len(m.RowInd)
	}

	return m, nil
}

// columnSorter sorts one column's rows and values in lockstep.
type columnSorter[T Scalar] struct {
	rows []int
	vals []T
}

func (c columnSorter[T]) Len() int           { return len(c.rows) }
func (c columnSorter[T]) Less(i, j int) bool { return c.rows[i] < c.rows[j] }
func (c columnSorter[T]) Swap(i, j int) {
	c.rows[i], c.rows[j] = c.rows[j], c.rows[i]
	c.vals[i], c.vals[j] = c.vals[j], c.vals[i]
}

// expandPtr expands a compressed pointer array into one explicit label per
// stored entry: label r is repeated ptr[r+1]-ptr[r] times. This is how a
// downloaded CSR (or BSR) structure is turned into triplets for the
// column-compressed host build.
func expandPtr(ptr []int) []int {
	if len(ptr) == 0 {
		return nil
	}
	out := make([]int, 0, ptr[len(ptr)-1])
	for r := 0; r < len(ptr)-1; r++ {
		for k := ptr[r]; k < ptr[r+1]; k++ {
			out = append(out, r)
		}
	}
	return out
}
