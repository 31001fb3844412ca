package benchmarks

import (
	"math"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
	"sigs.k8s.io/moead/pkg/multiobjective/refdirs"
)

const (
	DTLZ1Name = "DTLZ1"
)

// DTLZ1 is scalable to any number of objectives
// It has a linear Pareto front and many local fronts
type DTLZ1 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ1(numVars, numObjectives int) *DTLZ1 {
	// Recommended: numVars = numObjectives + k - 1, where k = 5 for DTLZ1
	return &DTLZ1{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ1) Name() string {
	return DTLZ1Name
}

func (p *DTLZ1) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := range p.numObjectives {
		funcs[i] = func(x []float64) float64 {
			return p.objective(x, i)
		}
	}
	return funcs
}

func (p *DTLZ1) g(x []float64) float64 {
	k := p.numVars - p.numObjectives + 1
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2) - math.Cos(20*math.Pi*(x[i]-0.5))
	}
	return 100 * (float64(k) + sum)
}

func (p *DTLZ1) objective(x []float64, objIdx int) float64 {
	f := 0.5 * (1 + p.g(x))
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= x[i]
	}
	if objIdx > 0 {
		f *= 1 - x[p.numObjectives-objIdx-1]
	}
	return f
}

func (p *DTLZ1) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

// TrueParetoFront returns points of the hyperplane sum(f_i) = 0.5, laid out
// on the simplex lattice closest to numPoints.
func (p *DTLZ1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	h := refdirs.PartitionsForPoints(p.numObjectives, numPoints)
	if h == 0 {
		return nil
	}
	dirs, err := refdirs.Uniform(p.numObjectives, h)
	if err != nil {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, len(dirs))
	for i, d := range dirs {
		point := make(framework.ObjectiveSpacePoint, len(d))
		for j, v := range d {
			point[j] = 0.5 * v
		}
		points[i] = point
	}
	return points
}
