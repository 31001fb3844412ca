// Package operators holds variation operators that turn two parent decision
// vectors into one offspring decision vector.
package operators

import (
	"math"
	"math/rand/v2"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

const (
	DefaultCrossoverProbability = 1.0
	DefaultCrossoverEta         = 20.0
	DefaultMutationEta          = 20.0
)

// Variation produces one offspring from two parents. The offspring must lie
// inside bounds. Every random draw comes from rng.
type Variation interface {
	Vary(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds) []float64
}

// VariationFunc adapts a plain function to the Variation interface.
type VariationFunc func(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds) []float64

func (f VariationFunc) Vary(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds) []float64 {
	return f(rng, p1, p2, bounds)
}

// SBX performs simulated binary crossover followed by polynomial mutation.
// Values that leave the bounds are clipped back onto them.
type SBX struct {
	// CrossoverProbability is the chance that crossover happens at all.
	CrossoverProbability float64
	// CrossoverEta is the SBX distribution index; larger values keep
	// children closer to their parents.
	CrossoverEta float64
	// MutationProbability is the per-variable mutation chance. Zero
	// disables mutation.
	MutationProbability float64
	MutationEta         float64
}

// NewSBX returns SBX with the usual defaults for numVariables decision
// variables: one expected mutation per offspring.
func NewSBX(numVariables int) *SBX {
	s := &SBX{
		CrossoverProbability: DefaultCrossoverProbability,
		CrossoverEta:         DefaultCrossoverEta,
		MutationEta:          DefaultMutationEta,
	}
	if numVariables > 0 {
		s.MutationProbability = 1 / float64(numVariables)
	}
	return s
}

// Validate checks probabilities and distribution indices.
func (s *SBX) Validate() error {
	if s.CrossoverProbability < 0 || s.CrossoverProbability > 1 {
		return framework.InvalidConfigf("crossover probability %v not in [0, 1]", s.CrossoverProbability)
	}
	if s.MutationProbability < 0 || s.MutationProbability > 1 {
		return framework.InvalidConfigf("mutation probability %v not in [0, 1]", s.MutationProbability)
	}
	if s.CrossoverEta < 0 || s.MutationEta < 0 {
		return framework.InvalidConfigf("distribution indices must be non-negative, got crossover %v mutation %v",
			s.CrossoverEta, s.MutationEta)
	}
	return nil
}

func (s *SBX) Vary(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds) []float64 {
	child1, child2 := s.Crossover(rng, p1, p2, bounds)
	child := child1
	if rng.IntN(2) == 1 {
		child = child2
	}
	s.Mutate(rng, child, bounds)
	return child
}

// Crossover performs SBX (Simulated Binary Crossover)
func (s *SBX) Crossover(rng *rand.Rand, p1, p2 []float64, bounds []framework.Bounds) ([]float64, []float64) {
	child1 := make([]float64, len(p1))
	child2 := make([]float64, len(p2))
	copy(child1, p1)
	copy(child2, p2)

	if rng.Float64() >= s.CrossoverProbability {
		return child1, child2
	}

	exp := 1.0 / (s.CrossoverEta + 1)
	for i := range p1 {
		// Each variable crosses with probability one half.
		if rng.Float64() > 0.5 || math.Abs(p1[i]-p2[i]) < 1e-14 {
			continue
		}

		var beta float64
		if u := rng.Float64(); u <= 0.5 {
			beta = math.Pow(2*u, exp)
		} else {
			beta = math.Pow(1.0/(2*(1.0-u)), exp)
		}

		child1[i] = bounds[i].Clip(0.5 * ((1+beta)*p1[i] + (1-beta)*p2[i]))
		child2[i] = bounds[i].Clip(0.5 * ((1-beta)*p1[i] + (1+beta)*p2[i]))
	}

	return child1, child2
}

// Mutate performs polynomial mutation in place
func (s *SBX) Mutate(rng *rand.Rand, x []float64, bounds []framework.Bounds) {
	prob := s.MutationProbability
	if prob == 0 {
		return
	}

	exp := 1.0 / (s.MutationEta + 1)
	for i := range x {
		if rng.Float64() >= prob {
			continue
		}

		var delta float64
		if u := rng.Float64(); u < 0.5 {
			delta = math.Pow(2*u, exp) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), exp)
		}

		x[i] = bounds[i].Clip(x[i] + delta*(bounds[i].H-bounds[i].L))
	}
}
