package algorithms

import (
	"math/rand/v2"
)

// MatingSelector picks parents for a subproblem. With probability Delta the
// parents come from the subproblem's neighborhood, otherwise from the whole
// population.
type MatingSelector struct {
	Delta float64
}

// SelectParents returns two distinct population indices. A neighborhood
// with fewer than two members falls back to the whole population.
func (s MatingSelector) SelectParents(rng *rand.Rand, neighbors []int, popSize int) (int, int) {
	if rng.Float64() < s.Delta && len(neighbors) >= 2 {
		a, b := distinctPair(rng, len(neighbors))
		return neighbors[a], neighbors[b]
	}
	return distinctPair(rng, popSize)
}

// Scope returns the slots a subproblem's offspring may replace. It uses the
// same Delta as mating but an independent draw.
func (s MatingSelector) Scope(rng *rand.Rand, neighbors []int, popSize int) []int {
	if rng.Float64() < s.Delta {
		return neighbors
	}
	all := make([]int, popSize)
	for i := range all {
		all[i] = i
	}
	return all
}

// distinctPair draws two different integers from [0, n). n must be >= 2.
func distinctPair(rng *rand.Rand, n int) (int, int) {
	a := rng.IntN(n)
	b := rng.IntN(n - 1)
	if b >= a {
		b++
	}
	return a, b
}
