package svm

import (
	"math"

	"github.com/ajroetker/go-ffsvm/internal/simd"
)

// KernelKind identifies which of the four supported kernels a Kernel value
// computes. Kernel is a tagged union rather than an interface: the compute
// path switches on Kind for each support-vector row, a direct branch instead
// of a method call through a vtable, and there is no scenario where a caller
// needs to supply a kernel this runtime doesn't already know how to
// evaluate at full speed.
type KernelKind int

const (
	KernelLinear KernelKind = iota
	KernelPolynomial
	KernelRBF
	KernelSigmoid
)

func (k KernelKind) String() string {
	switch k {
	case KernelLinear:
		return "linear"
	case KernelPolynomial:
		return "polynomial"
	case KernelRBF:
		return "rbf"
	case KernelSigmoid:
		return "sigmoid"
	default:
		return "unknown"
	}
}

// Kernel is an immutable kernel configuration: linear, polynomial, RBF or
// sigmoid, parameterised by gamma/coef0/degree as applicable. Zero value
// fields that don't apply to Kind are simply unused.
type Kernel struct {
	Kind   KernelKind
	Gamma  float64
	Coef0  float64
	Degree int
}

// evalDotDense computes the dot product between a padded support-vector
// row and the (equally padded) feature row, using lane-granularity
// fused-multiply-add via internal/simd. The running sum is kept as a lane
// vector and reduced to a scalar exactly once, after the loop, widening to
// float64 only at that point, as spec requires.
func evalDotDense(row, features []float32) float64 {
	acc := simd.Zero[float32]()
	n := min(len(row), len(features))
	simd.ProcessWithTail[float32](n,
		func(offset int) {
			a := simd.Load(row[offset:])
			b := simd.Load(features[offset:])
			acc = simd.FMA(a, b, acc)
		},
		func(offset, count int) {
			mask := simd.TailMask[float32](count)
			a := simd.MaskLoad(mask, row[offset:])
			b := simd.MaskLoad(mask, features[offset:])
			acc = simd.FMA(a, b, acc)
		},
	)
	return float64(simd.ReduceSum(acc))
}

func evalSquaredDistanceDense(row, features []float32) float64 {
	acc := simd.Zero[float32]()
	n := min(len(row), len(features))
	simd.ProcessWithTail[float32](n,
		func(offset int) {
			a := simd.Load(row[offset:])
			b := simd.Load(features[offset:])
			d := simd.Sub(a, b)
			acc = simd.FMA(d, d, acc)
		},
		func(offset, count int) {
			mask := simd.TailMask[float32](count)
			a := simd.MaskLoad(mask, row[offset:])
			b := simd.MaskLoad(mask, features[offset:])
			d := simd.Sub(a, b)
			acc = simd.FMA(d, d, acc)
		},
	)
	return float64(simd.ReduceSum(acc))
}

func (k Kernel) evalDenseRow(row, features []float32) float64 {
	switch k.Kind {
	case KernelLinear:
		return evalDotDense(row, features)
	case KernelPolynomial:
		return math.Pow(k.Gamma*evalDotDense(row, features)+k.Coef0, float64(k.Degree))
	case KernelRBF:
		return math.Exp(-k.Gamma * evalSquaredDistanceDense(row, features))
	case KernelSigmoid:
		return math.Tanh(k.Gamma*evalDotDense(row, features) + k.Coef0)
	default:
		return 0
	}
}

// ComputeDense writes k(sv_r, features) for every row r of sv into out.
// len(out) must be >= sv.Rows().
func (k Kernel) ComputeDense(sv *DenseMatrix[float32], features []float32, out []float64) {
	for r := 0; r < sv.Rows(); r++ {
		out[r] = k.evalDenseRow(sv.Row(r), features)
	}
}

// ComputeSparse writes k(sv_r, features) for every row r of sv into out,
// walking each row's (index, value) pairs against the dense feature vector
// directly (no SIMD lane concept applies to a sparse reduction).
func (k Kernel) ComputeSparse(sv *SparseMatrix, features []float32, out []float64) {
	for r := 0; r < sv.Rows(); r++ {
		out[r] = k.evalSparseRow(sv.Row(r), features)
	}
}

func evalDotSparse(row []SparseEntry, features []float32) float64 {
	var acc float64
	for _, e := range row {
		if e.Index-1 < len(features) {
			acc += float64(e.Value) * float64(features[e.Index-1])
		}
	}
	return acc
}

func evalSquaredDistanceSparse(row []SparseEntry, features []float32) float64 {
	var acc float64
	for _, e := range row {
		var fi float32
		if e.Index-1 < len(features) {
			fi = features[e.Index-1]
		}
		d := float64(e.Value) - float64(fi)
		acc += d * d
	}
	// Attributes present in features but absent from this sparse row
	// contribute (0 - features[i])^2 for the RBF squared distance.
	for i, f := range features {
		if !sparseRowHasIndex(row, i+1) {
			acc += float64(f) * float64(f)
		}
	}
	return acc
}

func sparseRowHasIndex(row []SparseEntry, index int) bool {
	// Rows are short and sorted; linear scan is simpler than a binary
	// search at these sizes and keeps this a single allocation-free pass.
	for _, e := range row {
		if e.Index == index {
			return true
		}
		if e.Index > index {
			return false
		}
	}
	return false
}

func (k Kernel) evalSparseRow(row []SparseEntry, features []float32) float64 {
	switch k.Kind {
	case KernelLinear:
		return evalDotSparse(row, features)
	case KernelPolynomial:
		return math.Pow(k.Gamma*evalDotSparse(row, features)+k.Coef0, float64(k.Degree))
	case KernelRBF:
		return math.Exp(-k.Gamma * evalSquaredDistanceSparse(row, features))
	case KernelSigmoid:
		return math.Tanh(k.Gamma*evalDotSparse(row, features) + k.Coef0)
	default:
		return 0
	}
}
