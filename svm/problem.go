package svm

// Problem is a reusable scratch space for one inference at a time. It is
// sized from a Model once and then mutated by exactly one goroutine per
// inference; distinct goroutines must hold distinct Problems. No inference
// path allocates once a Problem has been constructed.
type Problem struct {
	// Features is the input feature vector, length Model.NumAttributes.
	// The caller overwrites it before each inference.
	Features []float32

	// KernelValues has shape (num_classes, num_total_sv). Row i holds
	// kernel(sv, Features) for every support vector in class i, padded
	// with zero out to num_total_sv columns.
	KernelValues *DenseMatrix[float64]

	// DecisionValues is symmetric over class pairs; entry (i, j) is the
	// signed decision value for that pairwise sub-problem.
	DecisionValues *Triangular

	// Pairwise has shape (num_classes, num_classes). Off-diagonal entry
	// (i, j) is the calibrated probability that the input belongs to
	// class i given it belongs to {i, j}.
	Pairwise *DenseMatrix[float64]

	// Vote holds one counter per class.
	Vote []int

	// Probabilities holds one posterior estimate per class, filled iff
	// pairwise coupling ran.
	Probabilities []float64

	// Label is the final decision: an external class label, not an
	// internal index.
	Label int
}

// NewProblem allocates all scratch buffers for a model with the given
// dimensions, zero-initialised. Prefer ProblemFromModel when a Model is
// already at hand.
func NewProblem(numTotalSV, numClasses, numAttributes int) *Problem {
	return &Problem{
		Features:       make([]float32, numAttributes),
		KernelValues:   NewDenseMatrix[float64](numClasses, numTotalSV),
		DecisionValues: NewTriangular(numClasses),
		Pairwise:       NewDenseMatrix[float64](numClasses, numClasses),
		Vote:           make([]int, numClasses),
		Probabilities:  make([]float64, numClasses),
	}
}

// ProblemFromModel allocates a Problem sized for model, with an
// uninitialised (zero-valued) Features vector ready for the caller to
// populate before the first inference.
func ProblemFromModel(model *Model) *Problem {
	return NewProblem(model.NumTotalSV, model.NumClasses(), model.NumAttributes)
}
