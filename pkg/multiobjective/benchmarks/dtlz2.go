package benchmarks

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
	"sigs.k8s.io/moead/pkg/multiobjective/refdirs"
)

const (
	DTLZ2Name = "DTLZ2"
)

// DTLZ2 has a spherical Pareto front
// It's easier than DTLZ1 as it has no local fronts
type DTLZ2 struct {
	numVars       int
	numObjectives int
}

func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	// Recommended: numVars = numObjectives + k - 1, where k = 10 for DTLZ2
	return &DTLZ2{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ2) Name() string {
	return DTLZ2Name
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := range p.numObjectives {
		funcs[i] = func(x []float64) float64 {
			return p.objective(x, i)
		}
	}
	return funcs
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		sum += math.Pow(x[i]-0.5, 2)
	}
	return sum
}

func (p *DTLZ2) objective(x []float64, objIdx int) float64 {
	f := 1 + p.g(x)

	// Product of cos terms
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= math.Cos(x[i] * math.Pi / 2)
	}

	// Last term is sin for all objectives except the first
	if objIdx > 0 {
		f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
	}

	return f
}

func (p *DTLZ2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

// TrueParetoFront projects simplex-lattice directions onto the unit sphere
// sum(f_i^2) = 1.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
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
		floats.Scale(1/floats.Norm(d, 2), d)
		points[i] = d
	}
	return points
}
