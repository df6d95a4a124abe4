package svm

import "math"

// minProbability clamps calibrated pairwise probabilities away from 0 and
// 1 so that subsequent coupling arithmetic (which divides by Q[t][t], a sum
// of squared pairwise probabilities) stays well defined. Value fixed by
// compatibility with libSVM.
const minProbability = 1e-7

// computePairwiseProbabilities runs phase 3's sigmoid calibration step:
// for every pair (i, j), i < j, turns the decision value into a pairwise
// probability using the model's per-pair (a, b) parameters, clamped into
// (minProbability, 1-minProbability).
func computePairwiseProbabilities(model *Model, problem *Problem) {
	probs := model.Probabilities
	n := model.NumClasses()

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := problem.DecisionValues.At(i, j)
			a := probs.A.At(i, j)
			b := probs.B.At(i, j)

			p := 1.0 / (1.0 + math.Exp(a*d+b))
			if p < minProbability {
				p = minProbability
			} else if p > 1-minProbability {
				p = 1 - minProbability
			}

			problem.Pairwise.Set(i, j, p)
			problem.Pairwise.Set(j, i, 1-p)
		}
	}
}

// couplePairwiseProbabilities implements Method 2 of Wu, Lin & Weng (2004),
// "Probability Estimates for Multi-class Classification by Pairwise
// Coupling" (JMLR 5, 2004, 975-1005) — the same algorithm libSVM uses to
// turn C(n,2) pairwise probabilities into one posterior distribution, so
// that inference here agrees with libSVM's own multiclass_probability to
// within float tolerance.
//
// eps and the max_iter floor of 100 are load-bearing compatibility
// constants from libSVM and must not be tuned.
func couplePairwiseProbabilities(numClasses int, problem *Problem) error {
	maxIter := max(100, numClasses)
	eps := 0.005 / float64(numClasses)

	q := make([][]float64, numClasses)
	for i := range q {
		q[i] = make([]float64, numClasses)
	}
	qp := make([]float64, numClasses)
	p := problem.Probabilities

	// Build Q as in (14) of the paper: the symmetric matrix of Method 2's
	// quadratic form p^T Q p, whose minimiser subject to sum(p) = 1 is the
	// class posterior.
	for t := 0; t < numClasses; t++ {
		p[t] = 1.0 / float64(numClasses)
		q[t][t] = 0

		for j := 0; j < t; j++ {
			r := problem.Pairwise.At(j, t)
			q[t][t] += r * r
			q[t][j] = q[j][t]
		}
		for j := t + 1; j < numClasses; j++ {
			r := problem.Pairwise.At(j, t)
			q[t][t] += r * r
			q[t][j] = -problem.Pairwise.At(j, t) * problem.Pairwise.At(t, j)
		}
	}

	for i := 0; i <= maxIter; i++ {
		pqp := 0.0
		for t := 0; t < numClasses; t++ {
			qp[t] = 0
			for j := 0; j < numClasses; j++ {
				qp[t] += q[t][j] * p[j]
			}
			pqp += p[t] * qp[t]
		}

		maxError := 0.0
		for _, v := range qp {
			if e := math.Abs(v - pqp); e > maxError {
				maxError = e
			}
		}
		if maxError < eps {
			break
		}
		if i == maxIter {
			return ErrIterationsExceeded
		}

		for t := 0; t < numClasses; t++ {
			diff := (-qp[t] + pqp) / q[t][t]
			p[t] += diff
			pqp = (pqp + diff*(diff*q[t][t]+2*qp[t])) / ((1 + diff) * (1 + diff))

			for j := 0; j < numClasses; j++ {
				qp[j] = (qp[j] + diff*q[t][j]) / (1 + diff)
				p[j] /= 1 + diff
			}
		}
	}

	return nil
}
