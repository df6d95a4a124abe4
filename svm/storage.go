package svm

import "github.com/ajroetker/go-ffsvm/internal/simd"

// DenseMatrix is a row-major matrix of T values whose rows are padded to a
// multiple of simd.MaxLanes[float32]() lanes with zeros, so that kernel
// reductions performed at lane granularity never read past valid data and
// never need a tail branch inside the hot loop.
//
// Used for per-class support-vector matrices (T = float32), the
// kernel-value matrix, the pairwise-probability matrix, and per-class
// coefficient matrices (T = float64).
type DenseMatrix[T simd.Lanes] struct {
	rows, cols, stride int
	data               []T
}

// alignedStride rounds cols up to a multiple of the SIMD lane width for
// float32, which is the narrowest element type this runtime pads (float64
// matrices reuse the same stride so every row for a given model shares one
// layout convention; the extra float64 padding lanes are simply unused,
// never read).
func alignedStride(cols int) int {
	lanes := simd.MaxLanes[float32]()
	if lanes <= 0 {
		return cols
	}
	if cols%lanes == 0 {
		return cols
	}
	return cols + (lanes - cols%lanes)
}

// NewDenseMatrix allocates a zero-initialised dense matrix with the given
// logical shape; rows are backed by lane-aligned, zero-padded storage.
func NewDenseMatrix[T simd.Lanes](rows, cols int) *DenseMatrix[T] {
	stride := alignedStride(cols)
	return &DenseMatrix[T]{
		rows:   rows,
		cols:   cols,
		stride: stride,
		data:   make([]T, rows*stride),
	}
}

// Rows returns the logical row count.
func (m *DenseMatrix[T]) Rows() int { return m.rows }

// Cols returns the logical column count (unpadded).
func (m *DenseMatrix[T]) Cols() int { return m.cols }

// Stride returns the padded row length, a multiple of simd.MaxLanes[float32]().
func (m *DenseMatrix[T]) Stride() int { return m.stride }

// Row returns the full padded backing slice for row r, of length Stride().
// Lanes at index >= Cols() are guaranteed zero.
func (m *DenseMatrix[T]) Row(r int) []T {
	start := r * m.stride
	return m.data[start : start+m.stride]
}

// LogicalRow returns row r's data up to Cols(), excluding the SIMD-lane
// padding between Cols() and Stride(). Use this for matrices whose logical
// column count is itself a "padded to capacity" quantity the spec defines
// (e.g. a problem's per-class kernel-value row, padded with zero out to
// num_total_sv); use Row for matrices read directly by the lane-granularity
// kernel reductions in kernel.go.
func (m *DenseMatrix[T]) LogicalRow(r int) []T {
	start := r * m.stride
	return m.data[start : start+m.cols]
}

// SetRow overwrites the first len(values) lanes of row r (values must not
// exceed Cols()); trailing lanes up to Stride() remain (or become) zero.
func (m *DenseMatrix[T]) SetRow(r int, values []T) {
	row := m.Row(r)
	copy(row, values)
	for i := len(values); i < len(row); i++ {
		row[i] = 0
	}
}

// Set writes a single cell (r, c), c < Cols().
func (m *DenseMatrix[T]) Set(r, c int, v T) {
	m.data[r*m.stride+c] = v
}

// At reads a single cell (r, c).
func (m *DenseMatrix[T]) At(r, c int) T {
	return m.data[r*m.stride+c]
}

// Zero resets every element, including padding lanes, to zero.
func (m *DenseMatrix[T]) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// SparseEntry is a single (index, value) pair within a sparse row, indices
// sorted ascending.
type SparseEntry struct {
	Index int
	Value float32
}

// SparseMatrix holds one sorted (index, value) sequence per row; used for
// the sparse support-vector storage strategy, where support vectors carry
// far fewer nonzero attributes than the model's full attribute count.
//
// For model sizes this runtime targets (one-time construction, read-many
// inference) a direct slice-of-slices representation is simpler and
// equally fast to iterate as a flattened CSR-style layout.
type SparseMatrix struct {
	rowsData [][]SparseEntry
}

// NewSparseMatrix allocates an empty sparse matrix; call AppendRow once per
// row, in row order, to populate it.
func NewSparseMatrix(rows int) *SparseMatrix {
	return &SparseMatrix{rowsData: make([][]SparseEntry, 0, rows)}
}

// Rows returns the row count.
func (m *SparseMatrix) Rows() int { return len(m.rowsData) }

// AppendRow appends a fully-built, index-sorted row. Rows must be appended
// in order during model assembly.
func (m *SparseMatrix) AppendRow(entries []SparseEntry) {
	row := make([]SparseEntry, len(entries))
	copy(row, entries)
	m.rowsData = append(m.rowsData, row)
}

// Row returns the sorted (index, value) pairs for row r.
func (m *SparseMatrix) Row(r int) []SparseEntry {
	return m.rowsData[r]
}
