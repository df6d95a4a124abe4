package svm

import "fmt"

// AttributesUnorderedError reports a support vector whose attribute indices
// are not a dense, strictly-increasing sequence starting at 1.
type AttributesUnorderedError struct {
	Index     int
	LastIndex int
	Value     float32
}

func (e *AttributesUnorderedError) Error() string {
	return fmt.Sprintf("svm: attribute index %d does not follow %d (value %v)", e.Index, e.LastIndex, e.Value)
}

// UnsupportedKernelError reports a kernel_type outside the four this
// runtime implements.
type UnsupportedKernelError struct {
	Name string
}

func (e *UnsupportedKernelError) Error() string {
	return fmt.Sprintf("svm: unsupported kernel type %q", e.Name)
}

// ModelInconsistentError reports a structural mismatch between the parsed
// model's declared sizes and its actual data (coefficient counts, rho
// length, probability-parameter length, differing attribute counts across
// support vectors).
type ModelInconsistentError struct {
	Reason string
}

func (e *ModelInconsistentError) Error() string {
	return fmt.Sprintf("svm: model inconsistent: %s", e.Reason)
}

// ErrUnsupportedSVMType is returned when the parsed model's svm_type is
// anything other than c_svc; nu_svc, epsilon_svr and nu_svr are out of
// scope for this inference-only runtime.
var ErrUnsupportedSVMType = fmt.Errorf("svm: unsupported svm_type (only c_svc is implemented)")

// ErrIterationsExceeded is returned by Predict when pairwise probability
// coupling fails to converge within max(100, num_classes) iterations.
var ErrIterationsExceeded = fmt.Errorf("svm: probability coupling did not converge within the iteration budget")

// ParserError wraps an error returned by the modelfile parsing collaborator.
type ParserError struct {
	Err error
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("svm: parser error: %v", e.Err)
}

func (e *ParserError) Unwrap() error {
	return e.Err
}
