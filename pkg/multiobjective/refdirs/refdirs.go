// Package refdirs generates reference directions (weight vectors) on the unit
// simplex. Each direction defines one scalar subproblem of a
// decomposition-based optimizer.
package refdirs

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distmv"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// NumUniformPoints returns the size of the simplex-lattice design with the
// given number of objectives and partitions: C(H+M-1, M-1).
func NumUniformPoints(numObjectives, partitions int) int {
	return combin.Binomial(partitions+numObjectives-1, numObjectives-1)
}

// Uniform returns every integer composition of partitions into numObjectives
// non-negative parts, each divided by partitions (the Das-Dennis lattice).
// Directions are ordered lexicographically by their components, so for two
// objectives and ten partitions the first direction is (0, 1) and the last
// is (1, 0).
func Uniform(numObjectives, partitions int) ([][]float64, error) {
	if numObjectives < 2 {
		return nil, framework.InvalidConfigf("need at least 2 objectives, got %d", numObjectives)
	}
	if partitions < 1 {
		return nil, framework.InvalidConfigf("need at least 1 partition, got %d", partitions)
	}
	return lattice(numObjectives, partitions), nil
}

// lattice enumerates compositions with stars and bars: choosing M-1 bar
// positions out of H+M-1 slots splits the H stars into M groups.
func lattice(m, h int) [][]float64 {
	n := h + m - 1
	dirs := make([][]float64, 0, combin.Binomial(n, m-1))
	bars := make([]int, m-1)

	gen := combin.NewCombinationGenerator(n, m-1)
	for gen.Next() {
		gen.Combination(bars)
		dir := make([]float64, m)
		prev := -1
		for k, b := range bars {
			dir[k] = float64(b-prev-1) / float64(h)
			prev = b
		}
		dir[m-1] = float64(n-prev-1) / float64(h)
		dirs = append(dirs, dir)
	}
	return dirs
}

// PartitionsForPoints returns the largest number of partitions whose lattice
// holds no more than numPoints directions. It returns 0 when even a single
// partition produces too many points.
func PartitionsForPoints(numObjectives, numPoints int) int {
	if numObjectives < 2 || NumUniformPoints(numObjectives, 1) > numPoints {
		return 0
	}
	h := 1
	for NumUniformPoints(numObjectives, h+1) <= numPoints {
		h++
	}
	return h
}

// ForPoints returns exactly numPoints directions. It builds the largest
// lattice that fits and, when the lattice falls short, appends points drawn
// uniformly from the simplex (Dirichlet with all concentrations 1) using src.
// The output depends only on the arguments and the state of src.
func ForPoints(numObjectives, numPoints int, src rand.Source) ([][]float64, error) {
	if numObjectives < 2 {
		return nil, framework.InvalidConfigf("need at least 2 objectives, got %d", numObjectives)
	}
	if numPoints < numObjectives {
		return nil, framework.InvalidConfigf("cannot place %d reference directions in %d objectives, need at least %d",
			numPoints, numObjectives, numObjectives)
	}

	dirs := lattice(numObjectives, PartitionsForPoints(numObjectives, numPoints))
	if len(dirs) == numPoints {
		return dirs, nil
	}

	alpha := make([]float64, numObjectives)
	for i := range alpha {
		alpha[i] = 1
	}
	dirichlet := distmv.NewDirichlet(alpha, src)
	for len(dirs) < numPoints {
		p := dirichlet.Rand(nil)
		// Guard the sum against rounding in the gamma draws.
		floats.Scale(1/floats.Sum(p), p)
		dirs = append(dirs, p)
	}
	return dirs, nil
}
