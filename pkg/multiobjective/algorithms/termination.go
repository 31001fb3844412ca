package algorithms

import (
	"slices"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// Snapshot is the read-only state handed to a Termination at every
// generation boundary. Its slices are copies.
type Snapshot struct {
	Generation  int
	Evaluations int
	Population  []framework.Individual
	IdealPoint  []float64
}

// Termination decides when a run stops. It is polled once after
// initialization (generation 0) and once after every completed generation.
type Termination interface {
	ShouldStop(generation int, snapshot Snapshot) bool
}

// TerminationFunc adapts a function to the Termination interface.
type TerminationFunc func(generation int, snapshot Snapshot) bool

func (f TerminationFunc) ShouldStop(generation int, snapshot Snapshot) bool {
	return f(generation, snapshot)
}

// MaxGenerations stops once n generations have completed.
func MaxGenerations(n int) Termination {
	return TerminationFunc(func(generation int, _ Snapshot) bool {
		return generation >= n
	})
}

// Any stops as soon as one of ts does. Every child is polled each time so
// stateful terminations keep their history.
func Any(ts ...Termination) Termination {
	return TerminationFunc(func(generation int, s Snapshot) bool {
		stop := false
		for _, t := range ts {
			if t.ShouldStop(generation, s) {
				stop = true
			}
		}
		return stop
	})
}

// IdealPointStagnation stops once no ideal point component has improved by
// more than Tolerance for Window consecutive generations.
type IdealPointStagnation struct {
	Window    int
	Tolerance float64

	best  []float64
	stale int
}

func NewIdealPointStagnation(window int, tolerance float64) *IdealPointStagnation {
	return &IdealPointStagnation{Window: window, Tolerance: tolerance}
}

func (s *IdealPointStagnation) ShouldStop(_ int, snapshot Snapshot) bool {
	if s.best == nil {
		s.best = slices.Clone(snapshot.IdealPoint)
		return false
	}

	improved := false
	for i, v := range snapshot.IdealPoint {
		if s.best[i]-v > s.Tolerance {
			improved = true
		}
	}
	if improved {
		s.best = slices.Clone(snapshot.IdealPoint)
		s.stale = 0
		return false
	}
	s.stale++
	return s.stale >= s.Window
}
