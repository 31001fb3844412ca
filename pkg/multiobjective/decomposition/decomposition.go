// Package decomposition implements scalarization functions that turn an
// objective vector into a single score for one weight vector. Lower scores
// are better.
package decomposition

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// Kind names a decomposition function.
type Kind string

const (
	WeightedSum Kind = "weighted-sum"
	Tchebycheff Kind = "tchebycheff"
	PBI         Kind = "pbi"
)

const (
	// DefaultTheta is the PBI penalty applied to the perpendicular distance.
	DefaultTheta = 5.0

	// zeroWeight replaces zero Tchebycheff weights so that an axis with no
	// weight still breaks ties instead of being ignored entirely.
	zeroWeight = 1e-10
)

// Decomposition scores an objective vector f against a weight vector w and
// the ideal point. Score expects w to be the value returned by Prepare.
type Decomposition interface {
	Kind() Kind
	// Prepare converts a raw reference direction into the weight vector
	// Score expects. It is called once per direction at construction.
	Prepare(w []float64) []float64
	Score(f, w, ideal []float64) float64
}

// New returns the decomposition of the given kind. theta is only used by PBI.
func New(kind Kind, theta float64) (Decomposition, error) {
	switch kind {
	case WeightedSum:
		return weightedSum{}, nil
	case Tchebycheff:
		return tchebycheff{}, nil
	case PBI:
		if !(theta >= 0) {
			return nil, framework.InvalidConfigf("PBI theta must be non-negative, got %v", theta)
		}
		return pbi{theta: theta}, nil
	default:
		return nil, framework.InvalidConfigf("unknown decomposition %q", kind)
	}
}

// Default picks Tchebycheff for bi-objective problems and PBI otherwise.
func Default(numObjectives int) Kind {
	if numObjectives <= 2 {
		return Tchebycheff
	}
	return PBI
}

type weightedSum struct{}

func (weightedSum) Kind() Kind { return WeightedSum }

func (weightedSum) Prepare(w []float64) []float64 { return slices.Clone(w) }

// Score returns Σ wᵢ·(fᵢ − idealᵢ).
func (weightedSum) Score(f, w, ideal []float64) float64 {
	var s float64
	for i := range f {
		s += w[i] * (f[i] - ideal[i])
	}
	return s
}

type tchebycheff struct{}

func (tchebycheff) Kind() Kind { return Tchebycheff }

func (tchebycheff) Prepare(w []float64) []float64 {
	p := slices.Clone(w)
	for i := range p {
		if p[i] == 0 {
			p[i] = zeroWeight
		}
	}
	return p
}

// Score returns maxᵢ wᵢ·|fᵢ − idealᵢ|.
func (tchebycheff) Score(f, w, ideal []float64) float64 {
	var s float64
	for i := range f {
		wi := w[i]
		if wi == 0 {
			wi = zeroWeight
		}
		v := f[i] - ideal[i]
		if v < 0 {
			v = -v
		}
		s = max(s, wi*v)
	}
	return s
}

type pbi struct {
	theta float64
}

func (pbi) Kind() Kind { return PBI }

// Prepare normalizes w to unit length.
func (pbi) Prepare(w []float64) []float64 {
	p := slices.Clone(w)
	if n := floats.Norm(p, 2); n > 0 {
		floats.Scale(1/n, p)
	}
	return p
}

// Score returns d1 + θ·d2, where d1 is the length of the projection of
// f − ideal onto w and d2 is the distance from f to that projection.
func (d pbi) Score(f, w, ideal []float64) float64 {
	d1, d2 := d.Distances(f, w, ideal)
	return d1 + d.theta*d2
}

// Distances returns the projection distance d1 and the perpendicular
// distance d2. w must be unit length.
func (pbi) Distances(f, w, ideal []float64) (d1, d2 float64) {
	diff := make([]float64, len(f))
	floats.SubTo(diff, f, ideal)
	d1 = floats.Dot(diff, w)
	// perpendicular component: diff - d1*w
	floats.AddScaled(diff, -d1, w)
	return d1, floats.Norm(diff, 2)
}
