package svm

// Predict runs the three-phase decision procedure against problem.Features
// (which the caller must have already populated) and writes problem.Label.
//
// Phase 1 computes per-class kernel rows, phase 2 votes via pairwise
// decision values, and phase 3 (only if model carries probability
// calibration parameters) sigmoid-calibrates each pairwise decision and
// runs pairwise coupling to a full posterior distribution. Predict returns
// an error only if phase 3's coupling iteration fails to converge; it is
// otherwise total.
func Predict(model *Model, problem *Problem) error {
	computeKernelValues(model, problem)
	computeDecisionValues(model, problem)

	if model.Probabilities == nil {
		problem.Label = model.Classes[argmaxVote(problem.Vote)].Label
		return nil
	}

	computePairwiseProbabilities(model, problem)
	if err := couplePairwiseProbabilities(model.NumClasses(), problem); err != nil {
		return err
	}
	problem.Label = model.Classes[argmax(problem.Probabilities)].Label
	return nil
}

// computeKernelValues fills phase 1: for each class i, kernel(sv, features)
// for every support vector in class i, written into row i of
// problem.KernelValues and zero-padded out to num_total_sv columns.
func computeKernelValues(model *Model, problem *Problem) {
	for i, class := range model.Classes {
		row := problem.KernelValues.LogicalRow(i)
		out := row[:class.NumSV]

		if model.Sparse {
			model.Kernel.ComputeSparse(class.Sparse, problem.Features, out)
		} else {
			model.Kernel.ComputeDense(class.Dense, problem.Features, out)
		}
		for k := class.NumSV; k < len(row); k++ {
			row[k] = 0
		}
	}
}

// computeDecisionValues fills phase 2, following libSVM's one-vs-one
// voting: for every ordered pair (i, j) with i < j, class i's coefficient
// row (j-1) is dotted with class i's kernel row, class j's coefficient row
// i is dotted with class j's kernel row, and the pair's rho is subtracted.
func computeDecisionValues(model *Model, problem *Problem) {
	for i := range problem.Vote {
		problem.Vote[i] = 0
	}

	for i := 0; i < model.NumClasses(); i++ {
		for j := i + 1; j < model.NumClasses(); j++ {
			classI := &model.Classes[i]
			classJ := &model.Classes[j]

			coefI := classI.Coefficients.LogicalRow(j - 1)
			coefJ := classJ.Coefficients.LogicalRow(i)

			kvaluesI := problem.KernelValues.LogicalRow(i)
			kvaluesJ := problem.KernelValues.LogicalRow(j)

			sumI := dotF64(coefI, kvaluesI[:classI.NumSV])
			sumJ := dotF64(coefJ, kvaluesJ[:classJ.NumSV])

			d := sumI + sumJ - model.Rho.At(i, j)
			problem.DecisionValues.Set(i, j, d)

			if d > 0 {
				problem.Vote[i]++
			} else {
				problem.Vote[j]++
			}
		}
	}
}

func dotF64(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for k := 0; k < n; k++ {
		sum += a[k] * b[k]
	}
	return sum
}

// argmaxVote returns the index of the highest vote count, ties broken by
// lowest index.
func argmaxVote(votes []int) int {
	best := 0
	for i := 1; i < len(votes); i++ {
		if votes[i] > votes[best] {
			best = i
		}
	}
	return best
}

// argmax returns the index of the largest value, ties broken by lowest
// index.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
