package algorithms

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"sigs.k8s.io/moead/pkg/multiobjective/decomposition"
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// ReplacementPolicy decides which population slots an evaluated offspring
// takes over.
type ReplacementPolicy struct {
	Decomposition decomposition.Decomposition
	// Weights holds one prepared weight vector per subproblem.
	Weights [][]float64
	// MaxReplacements caps how many slots a single offspring may take.
	MaxReplacements int
}

// Update folds the offspring into the ideal point, then walks scope in an
// order shuffled with rng and copies the offspring into every slot whose
// incumbent it beats under that slot's weights, stopping after
// MaxReplacements replacements. It returns the replaced slots in order.
//
// An offspring with a non-finite objective still lowers the ideal point
// through its finite components, replaces nothing and is reported as
// ErrNumericAnomaly.
func (r *ReplacementPolicy) Update(rng *rand.Rand, pop []framework.Individual, ideal []float64, offspring framework.Individual, scope []int) ([]int, error) {
	UpdateIdeal(ideal, offspring.Objectives)
	if err := framework.CheckFinite(offspring.Objectives); err != nil {
		return nil, fmt.Errorf("offspring %v: %w", offspring.Objectives, err)
	}

	order := slices.Clone(scope)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var replaced []int
	for _, j := range order {
		if len(replaced) >= r.MaxReplacements {
			break
		}
		w := r.Weights[j]
		offScore := r.Decomposition.Score(offspring.Objectives, w, ideal)
		if math.IsNaN(offScore) || math.IsInf(offScore, 0) {
			continue
		}
		incScore := r.Decomposition.Score(pop[j].Objectives, w, ideal)
		if math.IsNaN(incScore) || offScore < incScore {
			pop[j] = offspring.Clone()
			replaced = append(replaced, j)
		}
	}
	return replaced, nil
}

// UpdateIdeal lowers ideal component-wise to f, skipping non-finite
// components.
func UpdateIdeal(ideal, f []float64) {
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ideal[i] = min(ideal[i], v)
	}
}
