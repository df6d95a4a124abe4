package svm

import (
	"os"
	"strings"
	"testing"
)

func buildModel(t *testing.T, text string, sparse bool) *Model {
	t.Helper()
	parsed := parseOrFail(t, text)
	model, err := NewModel(parsed, sparse)
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return model
}

func TestPredictTwoClassLinear(t *testing.T) {
	model := buildModel(t, twoClassLinearModel, false)
	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{1, 0})

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if problem.Label != 7 {
		t.Errorf("Label = %d, want 7", problem.Label)
	}
}

func TestPredictMatchesAcrossDenseAndSparseStorage(t *testing.T) {
	dense := buildModel(t, twoClassLinearModel, false)
	sparse := buildModel(t, twoClassLinearModel, true)

	features := []float32{1, 0}

	denseProblem := ProblemFromModel(dense)
	copy(denseProblem.Features, features)
	if err := Predict(dense, denseProblem); err != nil {
		t.Fatalf("Predict(dense) error: %v", err)
	}

	sparseProblem := ProblemFromModel(sparse)
	copy(sparseProblem.Features, features)
	if err := Predict(sparse, sparseProblem); err != nil {
		t.Fatalf("Predict(sparse) error: %v", err)
	}

	if denseProblem.Label != sparseProblem.Label {
		t.Errorf("dense label %d != sparse label %d", denseProblem.Label, sparseProblem.Label)
	}
}

func TestPredictWithProbabilitiesPicksHighestPosterior(t *testing.T) {
	text := strings.Replace(twoClassLinearModel, "nr_sv 1 1\n", "probA -4\nprobB 0\nnr_sv 1 1\n", 1)
	model := buildModel(t, text, false)
	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{1, 0})

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}

	sum := 0.0
	for _, p := range problem.Probabilities {
		if p < 0 || p > 1 {
			t.Errorf("probability %v out of [0, 1]", p)
		}
		sum += p
	}
	if !closeEnough(sum, 1.0) {
		t.Errorf("probabilities sum to %v, want 1.0", sum)
	}

	best := 0
	for i, p := range problem.Probabilities {
		if p > problem.Probabilities[best] {
			best = i
		}
	}
	wantLabel, _ := model.ClassLabelForIndex(best)
	if problem.Label != wantLabel {
		t.Errorf("Label = %d, want %d (argmax posterior)", problem.Label, wantLabel)
	}
}

const threeClassModel = `svm_type c_svc
kernel_type linear
nr_class 3
total_sv 3
rho 0 0 0
label 1 2 3
nr_sv 1 1 1
SV
1 -1 1:1 2:0
-1 1 1:0 2:1
-1 -1 1:0.5 2:0.5
`

func TestPredictThreeClassVoting(t *testing.T) {
	// Hand-traced: with features [1, 0] this model's pairwise decisions
	// work out to vote[0]=1, vote[1]=0, vote[2]=2, so class index 2
	// (label 3) wins the one-vs-one tally.
	model := buildModel(t, threeClassModel, false)
	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{1, 0})

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if problem.Label != 3 {
		t.Errorf("Label = %d, want 3", problem.Label)
	}
	want := []int{1, 0, 2}
	for i, w := range want {
		if problem.Vote[i] != w {
			t.Errorf("Vote[%d] = %d, want %d", i, problem.Vote[i], w)
		}
	}
}

func TestPredictReusesProblemScratch(t *testing.T) {
	model := buildModel(t, twoClassLinearModel, false)
	problem := ProblemFromModel(model)

	copy(problem.Features, []float32{1, 0})
	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	firstLabel := problem.Label

	copy(problem.Features, []float32{0, 1})
	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if problem.Label == firstLabel {
		t.Errorf("Label did not change across differing features: got %d both times", problem.Label)
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	model := buildModel(t, twoClassLinearModel, false)
	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{1, 0})

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	label1 := problem.Label
	d1 := problem.DecisionValues.At(0, 1)

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if problem.Label != label1 {
		t.Errorf("Label changed across repeated predictions: %d vs %d", problem.Label, label1)
	}
	if problem.DecisionValues.At(0, 1) != d1 {
		t.Errorf("DecisionValues changed across repeated predictions: %v vs %v", problem.DecisionValues.At(0, 1), d1)
	}
}

func TestPredictAllocatesNothing(t *testing.T) {
	text := strings.Replace(twoClassLinearModel, "nr_sv 1 1\n", "probA -4\nprobB 0\nnr_sv 1 1\n", 1)
	model := buildModel(t, text, false)
	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{1, 0})

	allocs := testing.AllocsPerRun(100, func() {
		if err := Predict(model, problem); err != nil {
			t.Fatalf("Predict() error: %v", err)
		}
	})
	if allocs != 0 {
		t.Errorf("Predict() allocated %.0f times per run, want 0 (Model/Problem construction is the only place allowed to allocate)", allocs)
	}
}

func TestArgmaxVoteTiesPickLowestIndex(t *testing.T) {
	if got := argmaxVote([]int{2, 2, 1}); got != 0 {
		t.Errorf("argmaxVote = %d, want 0", got)
	}
}

func TestArgmaxTiesPickLowestIndex(t *testing.T) {
	if got := argmax([]float64{0.5, 0.5, 0.1}); got != 0 {
		t.Errorf("argmax = %d, want 0", got)
	}
}

func TestPredictAgainstFixtureFile(t *testing.T) {
	f, err := os.Open("../testdata/iris_linear.model")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	model, err := LoadModel(f, false)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}

	problem := ProblemFromModel(model)
	copy(problem.Features, []float32{5.1, 3.5, 1.4, 0.2})

	if err := Predict(model, problem); err != nil {
		t.Fatalf("Predict: %v", err)
	}

	found := false
	for _, c := range model.Classes {
		if c.Label == problem.Label {
			found = true
		}
	}
	if !found {
		t.Errorf("Label %d is not one of the model's known class labels", problem.Label)
	}

	sum := 0.0
	for _, p := range problem.Probabilities {
		sum += p
	}
	if !closeEnoughEps(sum, 1.0, 1e-6) {
		t.Errorf("probabilities sum to %v, want 1.0", sum)
	}
}
