package algorithms

import (
	"fmt"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// Result is what a finished run exposes for reporting.
type Result struct {
	Population          []framework.Individual
	IdealPoint          []float64
	ReferenceDirections [][]float64
	Generations         int
	Evaluations         int
	Replacements        int
}

// Objectives returns the objective vector of every subproblem, in
// subproblem order.
func (r *Result) Objectives() []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, len(r.Population))
	for i, ind := range r.Population {
		points[i] = ind.Objectives
	}
	return points
}

// ParetoFront returns the indices of the first non-dominated front of the
// final population.
func (r *Result) ParetoFront() []int {
	fronts := framework.NonDominatedSort(r.Objectives())
	if len(fronts) == 0 || !framework.AllFinite(r.Population[fronts[0][0]].Objectives) {
		return nil
	}
	return fronts[0]
}

// ParetoFrontPoints extracts the objective vectors of ParetoFront, removing
// duplicates that several subproblems converged to.
func (r *Result) ParetoFrontPoints() []framework.ObjectiveSpacePoint {
	var points []framework.ObjectiveSpacePoint
	seen := map[string]bool{}
	for _, i := range r.ParetoFront() {
		f := r.Population[i].Objectives
		key := fmt.Sprint(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		points = append(points, f)
	}
	return points
}
