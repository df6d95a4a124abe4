package svm

// Triangular holds data for unordered pairs (i, j), 0 <= i < j < n, in a
// flat buffer of length n*(n-1)/2. Indexing is symmetric: (i, j) and (j, i)
// address the same cell. Diagonal access is undefined and panics.
//
// Used for a model's rho and probability calibration parameters (a, b),
// and for a problem's decision_values.
type Triangular struct {
	n    int
	data []float64
}

// NewTriangular allocates a zero-initialised triangular store for n items.
func NewTriangular(n int) *Triangular {
	size := 0
	if n > 1 {
		size = n * (n - 1) / 2
	}
	return &Triangular{n: n, data: make([]float64, size)}
}

// TriangularFromFlat wraps a pre-computed flat lower-triangular list (as
// emitted by libSVM's rho/probA/probB header fields) for n classes. The
// caller guarantees len(flat) == n*(n-1)/2.
func TriangularFromFlat(n int, flat []float64) *Triangular {
	data := make([]float64, len(flat))
	copy(data, flat)
	return &Triangular{n: n, data: data}
}

// N returns the number of items the triangular store indexes pairs over.
func (t *Triangular) N() int {
	return t.n
}

// Len returns the number of stored cells, n*(n-1)/2.
func (t *Triangular) Len() int {
	return len(t.data)
}

// index computes the flat offset for unordered pair (i, j). Diagonal
// access (i == j) is a programmer error and panics.
func (t *Triangular) index(i, j int) int {
	if i == j {
		panic("svm: Triangular diagonal access is undefined")
	}
	if i > j {
		i, j = j, i
	}
	// Row i starts after i rows of decreasing length (n-1, n-2, ..., n-i);
	// that's i*n - i*(i+1)/2 cells, then offset by (j - i - 1) within row i.
	return i*t.n - i*(i+1)/2 + (j - i - 1)
}

// At returns t[(i, j)] == t[(j, i)].
func (t *Triangular) At(i, j int) float64 {
	return t.data[t.index(i, j)]
}

// Set stores v at the symmetric cell (i, j).
func (t *Triangular) Set(i, j int, v float64) {
	t.data[t.index(i, j)] = v
}
