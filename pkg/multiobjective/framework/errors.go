package framework

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors shared by every multiobjective package. Callers match them
// with errors.Is; producers wrap them with context.
var (
	// ErrInvalidConfiguration is returned at construction time for bad
	// objective counts, partitions, neighborhood sizes, probabilities or
	// replacement caps. No run starts.
	ErrInvalidConfiguration = errors.New("multiobjective: invalid configuration")

	// ErrEvaluation is returned when an evaluator fails on a decision vector.
	// It aborts the run.
	ErrEvaluation = errors.New("multiobjective: evaluation failed")

	// ErrNumericAnomaly marks a NaN or Inf objective or score. It is logged
	// and the offending candidate never replaces anything.
	ErrNumericAnomaly = errors.New("multiobjective: non-finite value")

	// ErrInvalidState is returned when an optimizer operation is invoked in
	// a lifecycle state that does not allow it.
	ErrInvalidState = errors.New("multiobjective: invalid optimizer state")
)

// InvalidConfigf wraps ErrInvalidConfiguration with a formatted message.
func InvalidConfigf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// AllFinite reports whether no component of v is NaN or Inf.
func AllFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// CheckFinite returns an ErrNumericAnomaly error naming the first non-finite
// component of v, or nil.
func CheckFinite(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: component %d is %v", ErrNumericAnomaly, i, x)
		}
	}
	return nil
}
