package benchmarks

import (
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

const (
	LinearName = "Linear"
)

// Linear is the smallest bi-objective problem there is: one variable x in
// [0, 1], f1 = x and f2 = 1 - x. Every point is Pareto optimal, so the whole
// image is the segment f1 + f2 = 1.
type Linear struct{}

func NewLinear() *Linear {
	return &Linear{}
}

func (p *Linear) Name() string {
	return LinearName
}

func (p *Linear) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{
		func(x []float64) float64 { return x[0] },
		func(x []float64) float64 { return 1 - x[0] },
	}
}

func (p *Linear) Bounds() []framework.Bounds {
	return unitBounds(1)
}

func (p *Linear) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := range numPoints {
		x := float64(i) / float64(max(numPoints-1, 1))
		points[i] = framework.ObjectiveSpacePoint{x, 1 - x}
	}
	return points
}
