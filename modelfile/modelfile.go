// Package modelfile reads libSVM's svm-train text model format into a
// plain data structure. It performs no domain validation beyond what is
// needed to tokenize the file correctly — kernel-name whitelisting,
// svm_type restriction to c_svc, and attribute-ordering checks are the
// svm package's job (see svm.NewModel), keeping this package a thin,
// mechanical reader, matching spec.md's framing of the parser as an
// external collaborator.
package modelfile

// Attribute is a single (index, value) pair from a support vector's
// feature line. Index is 1-based, as written by libSVM.
type Attribute struct {
	Index int
	Value float32
}

// SupportVector is one "SV" line: num_classes-1 training coefficients
// followed by a sparse attribute sequence.
type SupportVector struct {
	Coefficients []float64
	Attributes   []Attribute
}

// ParsedModel is the data model the svm package's model assembly step
// consumes; it mirrors libSVM's model-file header plus the SV block.
type ParsedModel struct {
	SVMType    string
	KernelType string

	// Gamma, Coef0 and Degree are only meaningful for the kernel types
	// that use them; zero values are harmless for kernels that don't.
	Gamma  float64
	Coef0  float64
	Degree int

	NrClass int
	TotalSV int

	// Label and NrSV each have NrClass entries, in declaration order.
	Label []int
	NrSV  []int

	// Rho is the flat lower-triangular bias list, length
	// NrClass*(NrClass-1)/2.
	Rho []float64

	// ProbA and ProbB are present iff the model was trained with
	// probability estimates, with the same length as Rho.
	ProbA []float64
	ProbB []float64

	// Vectors holds TotalSV entries, grouped by class in the same order
	// as Label/NrSV.
	Vectors []SupportVector
}
