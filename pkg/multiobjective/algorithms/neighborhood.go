package algorithms

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// Neighborhoods returns, for every direction i, the indices of the t
// directions closest to it by Euclidean distance, nearest first. Index i
// itself is always at rank 0 and ties are broken by ascending index.
func Neighborhoods(directions [][]float64, t int) ([][]int, error) {
	n := len(directions)
	if t < 1 || t > n {
		return nil, framework.InvalidConfigf("neighborhood size %d not in [1, %d]", t, n)
	}

	type candidate struct {
		idx  int
		dist float64
	}

	neighbors := make([][]int, n)
	cands := make([]candidate, n)
	for i, di := range directions {
		for j, dj := range directions {
			cands[j] = candidate{idx: j, dist: floats.Distance(di, dj, 2)}
		}
		slices.SortFunc(cands, func(a, b candidate) int {
			// Self first even when another direction coincides with it.
			switch {
			case a.idx == b.idx:
				return 0
			case a.idx == i:
				return -1
			case b.idx == i:
				return 1
			}
			if c := cmp.Compare(a.dist, b.dist); c != 0 {
				return c
			}
			return cmp.Compare(a.idx, b.idx)
		})

		neighbors[i] = make([]int, t)
		for k := range t {
			neighbors[i][k] = cands[k].idx
		}
	}
	return neighbors, nil
}
