// Package metrics exposes optimization run statistics as Prometheus metrics.
package metrics

import (
	"strconv"
	"sync"

	"k8s.io/component-base/metrics"

	"sigs.k8s.io/moead/apis/optimization/v1alpha1"
)

const subsystem = "moead"

// Metrics groups the collectors a run reports to. Collectors are inert until
// Register is called.
type Metrics struct {
	Runs         *metrics.CounterVec
	Generations  *metrics.Counter
	Evaluations  *metrics.Counter
	Replacements *metrics.Counter
	CacheHits    *metrics.Counter
	IdealPoint   *metrics.GaugeVec
	RunDuration  *metrics.Histogram

	registerOnce sync.Once
}

func New() *Metrics {
	return &Metrics{
		Runs: metrics.NewCounterVec(&metrics.CounterOpts{
			Subsystem:      subsystem,
			Name:           "runs_total",
			Help:           "Number of optimization runs by phase.",
			StabilityLevel: metrics.ALPHA,
		}, []string{"problem", "phase"}),
		Generations: metrics.NewCounter(&metrics.CounterOpts{
			Subsystem:      subsystem,
			Name:           "generations_total",
			Help:           "Number of completed generations.",
			StabilityLevel: metrics.ALPHA,
		}),
		Evaluations: metrics.NewCounter(&metrics.CounterOpts{
			Subsystem:      subsystem,
			Name:           "evaluations_total",
			Help:           "Number of objective evaluations.",
			StabilityLevel: metrics.ALPHA,
		}),
		Replacements: metrics.NewCounter(&metrics.CounterOpts{
			Subsystem:      subsystem,
			Name:           "replacements_total",
			Help:           "Number of population slots taken over by offspring.",
			StabilityLevel: metrics.ALPHA,
		}),
		CacheHits: metrics.NewCounter(&metrics.CounterOpts{
			Subsystem:      subsystem,
			Name:           "evaluation_cache_hits_total",
			Help:           "Number of evaluations answered from the evaluation cache.",
			StabilityLevel: metrics.ALPHA,
		}),
		IdealPoint: metrics.NewGaugeVec(&metrics.GaugeOpts{
			Subsystem:      subsystem,
			Name:           "ideal_point",
			Help:           "Best value seen so far for each objective.",
			StabilityLevel: metrics.ALPHA,
		}, []string{"objective"}),
		RunDuration: metrics.NewHistogram(&metrics.HistogramOpts{
			Subsystem:      subsystem,
			Name:           "run_duration_seconds",
			Help:           "Wall time of optimization runs.",
			Buckets:        metrics.ExponentialBuckets(0.001, 4, 10),
			StabilityLevel: metrics.ALPHA,
		}),
	}
}

// Register adds every collector to r. Subsequent calls do nothing.
func (m *Metrics) Register(r metrics.KubeRegistry) {
	m.registerOnce.Do(func() {
		r.MustRegister(m.Runs, m.Generations, m.Evaluations, m.Replacements, m.CacheHits, m.IdealPoint, m.RunDuration)
	})
}

// ObserveIdealPoint publishes the current ideal point, one gauge per
// objective.
func (m *Metrics) ObserveIdealPoint(ideal []float64) {
	for i, v := range ideal {
		m.IdealPoint.WithLabelValues(strconv.Itoa(i)).Set(v)
	}
}

// ObserveRun records a finished run from its status.
func (m *Metrics) ObserveRun(problem string, status *v1alpha1.OptimizationRunStatus) {
	m.Runs.WithLabelValues(problem, string(status.Phase)).Inc()
	m.Generations.Add(float64(status.Generations))
	m.Evaluations.Add(float64(status.Evaluations))
	m.Replacements.Add(float64(status.Replacements))
	m.CacheHits.Add(float64(status.CacheHits))
	if status.StartTime != nil && status.CompletionTime != nil {
		m.RunDuration.Observe(status.CompletionTime.Sub(status.StartTime.Time).Seconds())
	}
}
