package framework

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type squareProblem struct{}

func (squareProblem) Name() string { return "square" }

func (squareProblem) Bounds() []Bounds { return []Bounds{{L: -1, H: 1}} }

func (squareProblem) ObjectiveFuncs() []ObjectiveFunc {
	return []ObjectiveFunc{
		func(x []float64) float64 { return x[0] * x[0] },
		func(x []float64) float64 { return (x[0] - 1) * (x[0] - 1) },
	}
}

func (squareProblem) TrueParetoFront(int) []ObjectiveSpacePoint { return nil }

func TestProblemEvaluator(t *testing.T) {
	ev := NewProblemEvaluator(squareProblem{})

	f, err := ev.Evaluate([]float64{0.5})
	require.NoError(t, err)
	assert.Equal(t, ObjectiveSpacePoint{0.25, 0.25}, f)

	_, err = ev.Evaluate([]float64{2})
	assert.True(t, errors.Is(err, ErrEvaluation), "out of bounds input must fail with ErrEvaluation, got %v", err)

	_, err = ev.Evaluate([]float64{0, 0})
	assert.True(t, errors.Is(err, ErrEvaluation))
}

func TestEvaluateWrapsForeignErrors(t *testing.T) {
	boom := errors.New("boom")
	ev := EvaluatorFunc(func([]float64) (ObjectiveSpacePoint, error) { return nil, boom })

	_, err := Evaluate(ev, []float64{1})
	assert.True(t, errors.Is(err, ErrEvaluation))
	assert.True(t, errors.Is(err, boom))
}

func TestCachedEvaluator(t *testing.T) {
	calls := 0
	inner := EvaluatorFunc(func(x []float64) (ObjectiveSpacePoint, error) {
		calls++
		return ObjectiveSpacePoint{x[0], 1 - x[0]}, nil
	})
	ev := NewCachedEvaluator(inner)

	f1, err := ev.Evaluate([]float64{0.3})
	require.NoError(t, err)
	f2, err := ev.Evaluate([]float64{0.3})
	require.NoError(t, err)
	_, err = ev.Evaluate([]float64{0.4})
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Equal(t, 2, calls)
	assert.EqualValues(t, 1, ev.Hits())
	assert.EqualValues(t, 2, ev.Misses())
	assert.Equal(t, 2, ev.Len())

	// Mutating a returned vector must not poison the cache.
	f2[0] = 42
	f3, err := ev.Evaluate([]float64{0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.3, f3[0])
}

func TestCachedEvaluatorDoesNotCacheErrors(t *testing.T) {
	fail := true
	inner := EvaluatorFunc(func(x []float64) (ObjectiveSpacePoint, error) {
		if fail {
			return nil, errors.New("transient")
		}
		return ObjectiveSpacePoint{x[0]}, nil
	})
	ev := NewCachedEvaluator(inner)

	_, err := ev.Evaluate([]float64{1})
	require.Error(t, err)
	fail = false
	f, err := ev.Evaluate([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, ObjectiveSpacePoint{1}, f)
}

func TestIndividualCloneDoesNotAlias(t *testing.T) {
	a := Individual{Variables: []float64{1, 2}, Objectives: []float64{3, 4}}
	b := a.Clone()
	b.Variables[0] = 9
	b.Objectives[0] = 9
	assert.Equal(t, 1.0, a.Variables[0])
	assert.Equal(t, 3.0, a.Objectives[0])
}

func TestNonDominatedSort(t *testing.T) {
	points := []ObjectiveSpacePoint{
		{1, 4}, // 0: front 0
		{2, 2}, // 1: front 0
		{4, 1}, // 2: front 0
		{3, 3}, // 3: dominated by 1
		{4, 4}, // 4: dominated by 3
		{math.NaN(), 0},
	}

	fronts := NonDominatedSort(points)
	require.Len(t, fronts, 4)
	assert.ElementsMatch(t, []int{0, 1, 2}, fronts[0])
	assert.Equal(t, []int{3}, fronts[1])
	assert.Equal(t, []int{4}, fronts[2])
	assert.Equal(t, []int{5}, fronts[3])

	// Check if first front is non-dominated
	for _, i := range fronts[0] {
		for _, j := range fronts[0] {
			if i != j && Dominates(points[i], points[j]) {
				t.Errorf("first front contains dominated point %v", points[j])
			}
		}
	}
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b ObjectiveSpacePoint
		want bool
	}{
		{"strictly better", ObjectiveSpacePoint{1, 1}, ObjectiveSpacePoint{2, 2}, true},
		{"better in one", ObjectiveSpacePoint{1, 2}, ObjectiveSpacePoint{2, 2}, true},
		{"equal", ObjectiveSpacePoint{1, 1}, ObjectiveSpacePoint{1, 1}, false},
		{"trade-off", ObjectiveSpacePoint{1, 3}, ObjectiveSpacePoint{2, 2}, false},
		{"NaN never dominates", ObjectiveSpacePoint{math.NaN(), 0}, ObjectiveSpacePoint{1, 1}, false},
		{"finite dominates NaN", ObjectiveSpacePoint{1, 1}, ObjectiveSpacePoint{math.NaN(), 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dominates(tt.a, tt.b))
		})
	}
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, CheckFinite([]float64{0, 1}))
	assert.True(t, errors.Is(CheckFinite([]float64{0, math.Inf(1)}), ErrNumericAnomaly))
	assert.False(t, AllFinite([]float64{math.NaN()}))
}
