package svm

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func closeEnough(a, b float64) bool {
	return closeEnoughEps(a, b, epsilon)
}

func closeEnoughEps(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestLinearKernelDenseDot(t *testing.T) {
	k := Kernel{Kind: KernelLinear}
	row := []float32{1, 2, 3, 0}
	features := []float32{4, 5, 6, 0}
	want := 1*4 + 2*5 + 3*6
	if got := k.evalDenseRow(row, features); !closeEnough(got, float64(want)) {
		t.Errorf("linear dot = %v, want %v", got, want)
	}
}

func TestRBFKernelSelfSimilarityIsOne(t *testing.T) {
	k := Kernel{Kind: KernelRBF, Gamma: 0.5}
	row := []float32{1, 2, 3}
	if got := k.evalDenseRow(row, row); !closeEnough(got, 1.0) {
		t.Errorf("rbf(x,x) = %v, want 1.0", got)
	}
}

func TestPolynomialKernelDegreeZeroConstant(t *testing.T) {
	k := Kernel{Kind: KernelPolynomial, Gamma: 1, Coef0: 1, Degree: 0}
	row := []float32{1, 2}
	features := []float32{3, 4}
	if got := k.evalDenseRow(row, features); !closeEnough(got, 1.0) {
		t.Errorf("x^0 = %v, want 1.0", got)
	}
}

func TestSigmoidKernelBounded(t *testing.T) {
	k := Kernel{Kind: KernelSigmoid, Gamma: 1, Coef0: 0}
	row := []float32{10, 10, 10}
	features := []float32{10, 10, 10}
	got := k.evalDenseRow(row, features)
	if got < -1 || got > 1 {
		t.Errorf("tanh output %v out of [-1, 1]", got)
	}
}

func TestComputeDenseMatchesPerRowEval(t *testing.T) {
	sv := NewDenseMatrix[float32](2, 3)
	sv.SetRow(0, []float32{1, 0, 0})
	sv.SetRow(1, []float32{0, 1, 0})
	features := []float32{1, 1, 1}

	k := Kernel{Kind: KernelLinear}
	out := make([]float64, 2)
	k.ComputeDense(sv, features, out)

	if !closeEnough(out[0], 1.0) || !closeEnough(out[1], 1.0) {
		t.Errorf("ComputeDense = %v, want [1, 1]", out)
	}
}

func TestSparseAndDenseAgreeOnLinearKernel(t *testing.T) {
	features := []float32{2, 0, 3}

	dense := NewDenseMatrix[float32](1, 3)
	dense.SetRow(0, []float32{1, 5, 1})

	sparse := NewSparseMatrix(1)
	sparse.AppendRow([]SparseEntry{{Index: 1, Value: 1}, {Index: 3, Value: 1}})

	k := Kernel{Kind: KernelLinear}
	denseOut := make([]float64, 1)
	sparseOut := make([]float64, 1)
	k.ComputeDense(dense, features, denseOut)
	k.ComputeSparse(sparse, features, sparseOut)

	want := float64(1*2 + 5*0 + 1*3)
	if !closeEnough(denseOut[0], want) {
		t.Errorf("dense linear = %v, want %v", denseOut[0], want)
	}

	wantSparse := float64(1*2 + 1*3)
	if !closeEnough(sparseOut[0], wantSparse) {
		t.Errorf("sparse linear = %v, want %v", sparseOut[0], wantSparse)
	}
}

func TestSparseRBFCountsMissingAttributesAsZero(t *testing.T) {
	sparse := NewSparseMatrix(1)
	sparse.AppendRow([]SparseEntry{{Index: 1, Value: 1}})
	features := []float32{1, 2}

	k := Kernel{Kind: KernelRBF, Gamma: 1}
	out := make([]float64, 1)
	k.ComputeSparse(sparse, features, out)

	want := math.Exp(-1 * (0*0 + 2*2))
	if !closeEnough(out[0], want) {
		t.Errorf("sparse rbf = %v, want %v", out[0], want)
	}
}

func TestPolynomialSelfSimilarityMatchesSquaredDot(t *testing.T) {
	k := Kernel{Kind: KernelPolynomial, Gamma: 1, Coef0: 0, Degree: 2}
	sv := []float32{3, 4, 0}
	got := k.evalDenseRow(sv, sv)

	dot := float64(3*3 + 4*4 + 0*0)
	want := dot * dot
	if !closeEnough(got, want) {
		t.Errorf("polynomial self-similarity = %v, want %v", got, want)
	}
}

func TestDenseRowLargerThanOneLaneWidth(t *testing.T) {
	n := 37 // deliberately not a multiple of any plausible lane width
	row := make([]float32, n)
	features := make([]float32, n)
	var want float32
	for i := 0; i < n; i++ {
		row[i] = float32(i)
		features[i] = 1
		want += row[i]
	}
	got := evalDotDense(row, features)
	if !closeEnough(got, float64(want)) {
		t.Errorf("evalDotDense over %d elements = %v, want %v", n, got, want)
	}
}
