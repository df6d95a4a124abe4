package svm

import (
	"fmt"
	"io"

	"github.com/ajroetker/go-ffsvm/modelfile"
)

// Probabilities holds the sigmoid calibration parameters (a, b) per class
// pair, present iff the model was trained with probability estimates.
type Probabilities struct {
	A *Triangular
	B *Triangular
}

// Model is an immutable, libSVM-trained C-SVC classifier ready for
// inference. It is safe for concurrent use by any number of goroutines,
// each driving its own Problem.
type Model struct {
	NumAttributes int
	NumTotalSV    int
	Rho           *Triangular
	Kernel        Kernel
	Classes       []Class
	Probabilities *Probabilities

	// Sparse records which storage strategy this model was built with;
	// Predict uses it to pick Kernel.ComputeDense vs ComputeSparse.
	Sparse bool
}

// NumClasses returns the number of classes this model distinguishes.
func (m *Model) NumClasses() int {
	return len(m.Classes)
}

// ClassIndexForLabel returns the internal class index for an external
// label, as emitted by libSVM's training process.
func (m *Model) ClassIndexForLabel(label int) (int, bool) {
	for i, c := range m.Classes {
		if c.Label == label {
			return i, true
		}
	}
	return 0, false
}

// ClassLabelForIndex returns the external label for an internal class
// index.
func (m *Model) ClassLabelForIndex(index int) (int, bool) {
	if index < 0 || index >= len(m.Classes) {
		return 0, false
	}
	return m.Classes[index].Label, true
}

// LoadModel reads a libSVM text model from r via the modelfile collaborator
// and assembles it into a Model. Errors from parsing are wrapped in
// *ParserError; everything else is as NewModel.
func LoadModel(r io.Reader, sparse bool) (*Model, error) {
	parsed, err := modelfile.Parse(r)
	if err != nil {
		return nil, &ParserError{Err: err}
	}
	return NewModel(parsed, sparse)
}

// NewModel validates and assembles a Model from a parsed libSVM text
// model. sparse selects the sparse support-vector storage strategy;
// dense is used otherwise.
func NewModel(parsed *modelfile.ParsedModel, sparse bool) (*Model, error) {
	if parsed.SVMType != "c_svc" {
		return nil, ErrUnsupportedSVMType
	}

	if len(parsed.Vectors) == 0 {
		return nil, &ModelInconsistentError{Reason: "model has no support vectors"}
	}

	numAttributes := len(parsed.Vectors[0].Attributes)
	if numAttributes == 0 {
		return nil, &ModelInconsistentError{Reason: "num_attributes must be > 0"}
	}
	for i, v := range parsed.Vectors {
		if len(v.Attributes) != numAttributes {
			return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
				"support vector %d has %d attributes, want %d (from vector 0)", i, len(v.Attributes), numAttributes)}
		}
	}

	numClasses := parsed.NrClass
	if numClasses < 2 {
		return nil, &ModelInconsistentError{Reason: "num_classes must be >= 2"}
	}
	if len(parsed.Label) != numClasses || len(parsed.NrSV) != numClasses {
		return nil, &ModelInconsistentError{Reason: "label/nr_sv length does not match nr_class"}
	}
	seenLabels := make(map[int]bool, numClasses)
	for _, label := range parsed.Label {
		if seenLabels[label] {
			return nil, &ModelInconsistentError{Reason: fmt.Sprintf("duplicate class label %d", label)}
		}
		seenLabels[label] = true
	}

	numTotalSV := 0
	for _, n := range parsed.NrSV {
		if n < 1 {
			return nil, &ModelInconsistentError{Reason: "every class needs at least one support vector"}
		}
		numTotalSV += n
	}
	if numTotalSV != parsed.TotalSV {
		return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
			"sum(nr_sv) = %d, want total_sv = %d", numTotalSV, parsed.TotalSV)}
	}
	if len(parsed.Vectors) != numTotalSV {
		return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
			"parsed %d SV lines, want total_sv = %d", len(parsed.Vectors), numTotalSV)}
	}

	wantTriLen := numClasses * (numClasses - 1) / 2
	if len(parsed.Rho) != wantTriLen {
		return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
			"rho has %d entries, want %d", len(parsed.Rho), wantTriLen)}
	}
	rho := TriangularFromFlat(numClasses, parsed.Rho)

	probs, err := buildProbabilities(parsed, numClasses, wantTriLen)
	if err != nil {
		return nil, err
	}

	kernel, err := buildKernel(parsed)
	if err != nil {
		return nil, err
	}

	classes := make([]Class, numClasses)
	for i := 0; i < numClasses; i++ {
		numSV := parsed.NrSV[i]
		classes[i] = Class{
			Label:        parsed.Label[i],
			NumSV:        numSV,
			Coefficients: NewDenseMatrix[float64](numClasses-1, numSV),
		}
		if sparse {
			classes[i].Sparse = NewSparseMatrix(numSV)
		} else {
			classes[i].Dense = NewDenseMatrix[float32](numSV, numAttributes)
		}
	}

	offset := 0
	for classIdx := 0; classIdx < numClasses; classIdx++ {
		numSV := parsed.NrSV[classIdx]
		class := &classes[classIdx]

		for vIdx := 0; vIdx < numSV; vIdx++ {
			sv := parsed.Vectors[offset+vIdx]

			lastIndex := 0
			entries := make([]SparseEntry, 0, len(sv.Attributes))
			for _, attr := range sv.Attributes {
				if attr.Index != lastIndex+1 {
					return nil, &AttributesUnorderedError{Index: attr.Index, LastIndex: lastIndex, Value: attr.Value}
				}
				lastIndex = attr.Index

				if sparse {
					entries = append(entries, SparseEntry{Index: attr.Index, Value: attr.Value})
				} else {
					class.Dense.Set(vIdx, attr.Index-1, attr.Value)
				}
			}
			if sparse {
				class.Sparse.AppendRow(entries)
			}

			if len(sv.Coefficients) != numClasses-1 {
				return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
					"support vector %d has %d coefficients, want %d", offset+vIdx, len(sv.Coefficients), numClasses-1)}
			}
			for coefIdx, coef := range sv.Coefficients {
				class.Coefficients.Set(coefIdx, vIdx, coef)
			}
		}

		offset += numSV
	}

	return &Model{
		NumAttributes: numAttributes,
		NumTotalSV:    numTotalSV,
		Rho:           rho,
		Kernel:        kernel,
		Classes:       classes,
		Probabilities: probs,
		Sparse:        sparse,
	}, nil
}

func buildProbabilities(parsed *modelfile.ParsedModel, numClasses, wantTriLen int) (*Probabilities, error) {
	hasA, hasB := len(parsed.ProbA) > 0, len(parsed.ProbB) > 0
	if !hasA && !hasB {
		return nil, nil
	}
	if hasA != hasB {
		return nil, &ModelInconsistentError{Reason: "model declares only one of probA/probB"}
	}
	if len(parsed.ProbA) != wantTriLen || len(parsed.ProbB) != wantTriLen {
		return nil, &ModelInconsistentError{Reason: fmt.Sprintf(
			"probA/probB must have %d entries for %d classes", wantTriLen, numClasses)}
	}
	return &Probabilities{
		A: TriangularFromFlat(numClasses, parsed.ProbA),
		B: TriangularFromFlat(numClasses, parsed.ProbB),
	}, nil
}

func buildKernel(parsed *modelfile.ParsedModel) (Kernel, error) {
	switch parsed.KernelType {
	case "linear":
		return Kernel{Kind: KernelLinear}, nil
	case "polynomial":
		return Kernel{Kind: KernelPolynomial, Gamma: parsed.Gamma, Coef0: parsed.Coef0, Degree: parsed.Degree}, nil
	case "rbf":
		return Kernel{Kind: KernelRBF, Gamma: parsed.Gamma}, nil
	case "sigmoid":
		return Kernel{Kind: KernelSigmoid, Gamma: parsed.Gamma, Coef0: parsed.Coef0}, nil
	default:
		return Kernel{}, &UnsupportedKernelError{Name: parsed.KernelType}
	}
}
