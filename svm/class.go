package svm

// Class holds one class's support vectors and the dual coefficients it
// contributes to every pairwise sub-problem it takes part in. A Class is
// owned exclusively by its Model and never shared or mutated after
// construction.
type Class struct {
	// Label is the opaque integer identifier libSVM assigned during
	// training; it has no relationship to the class's position in
	// Model.Classes (its internal index).
	Label int

	// NumSV is this class's support-vector count.
	NumSV int

	// Dense holds this class's support vectors when the model was built
	// with dense storage; nil otherwise.
	Dense *DenseMatrix[float32]

	// Sparse holds this class's support vectors when the model was built
	// with sparse storage; nil otherwise.
	Sparse *SparseMatrix

	// Coefficients has shape (num_classes-1, NumSV). Row k holds the dual
	// coefficients this class contributes to its k-th pairwise problem; see
	// Predict for the exact pair-to-row mapping.
	Coefficients *DenseMatrix[float64]
}
