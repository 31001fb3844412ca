package framework

import (
	"errors"
	"fmt"
)

// Evaluator maps a decision vector to its objective vector. Implementations
// must be deterministic and free of side effects visible to the optimizer.
type Evaluator interface {
	Evaluate(x []float64) (ObjectiveSpacePoint, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(x []float64) (ObjectiveSpacePoint, error)

func (f EvaluatorFunc) Evaluate(x []float64) (ObjectiveSpacePoint, error) { return f(x) }

// ProblemEvaluator evaluates the objective functions of a Problem after
// checking the decision vector against the problem bounds.
type ProblemEvaluator struct {
	problem Problem
	bounds  []Bounds
	funcs   []ObjectiveFunc
}

func NewProblemEvaluator(p Problem) *ProblemEvaluator {
	return &ProblemEvaluator{
		problem: p,
		bounds:  p.Bounds(),
		funcs:   p.ObjectiveFuncs(),
	}
}

// Evaluate calculates objective values for a decision vector
func (e *ProblemEvaluator) Evaluate(x []float64) (ObjectiveSpacePoint, error) {
	if len(x) != len(e.bounds) {
		return nil, fmt.Errorf("%w: %s expects %d variables, got %d",
			ErrEvaluation, e.problem.Name(), len(e.bounds), len(x))
	}
	for i, v := range x {
		if !e.bounds[i].Contains(v) {
			return nil, fmt.Errorf("%w: %s variable %d = %v outside [%v, %v]",
				ErrEvaluation, e.problem.Name(), i, v, e.bounds[i].L, e.bounds[i].H)
		}
	}

	objs := make(ObjectiveSpacePoint, len(e.funcs))
	for i, objFunc := range e.funcs {
		objs[i] = objFunc(x)
	}
	return objs, nil
}

// Evaluate runs ev on x and guarantees that any failure is reported as
// ErrEvaluation.
func Evaluate(ev Evaluator, x []float64) (ObjectiveSpacePoint, error) {
	f, err := ev.Evaluate(x)
	if err != nil {
		if errors.Is(err, ErrEvaluation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	return f, nil
}
