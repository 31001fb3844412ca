package framework

import "slices"

// Individual represents a solution in the population: a decision vector and
// the objective vector it evaluated to.
type Individual struct {
	Variables  []float64
	Objectives []float64
}

// Clone returns a deep copy so that two population slots never share
// backing arrays.
func (ind Individual) Clone() Individual {
	return Individual{
		Variables:  slices.Clone(ind.Variables),
		Objectives: slices.Clone(ind.Objectives),
	}
}

// ObjectiveFunc defines the interface for objective functions
type ObjectiveFunc func([]float64) float64

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Bounds is the closed interval [L, H] a decision variable lives in.
type Bounds struct {
	L float64
	H float64
}

// Contains reports whether v lies inside the interval.
func (b Bounds) Contains(v float64) bool {
	return v >= b.L && v <= b.H
}

// Clip returns v limited to the interval.
func (b Bounds) Clip(v float64) float64 {
	return max(b.L, min(b.H, v))
}

// Problem describes the contract a specific multi-objective problem needs to implement.
// All objectives are minimized.
type Problem interface {
	Name() string

	// Bounds returns one interval per decision variable. Its length is the
	// dimensionality of the decision space.
	Bounds() []Bounds

	// ObjectiveFuncs returns one function per objective.
	ObjectiveFuncs() []ObjectiveFunc

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
}
