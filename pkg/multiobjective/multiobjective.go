// Package multiobjective turns an OptimizationRun into a configured MOEA/D
// run and records the outcome in the run's status.
package multiobjective

import (
	"context"
	"fmt"
	"math/rand/v2"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/moead/apis/optimization/v1alpha1"
	"sigs.k8s.io/moead/apis/optimization/validation"
	"sigs.k8s.io/moead/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moead/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moead/pkg/multiobjective/decomposition"
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
	"sigs.k8s.io/moead/pkg/multiobjective/metrics"
	"sigs.k8s.io/moead/pkg/multiobjective/operators"
	"sigs.k8s.io/moead/pkg/multiobjective/refdirs"
)

// Option customizes Minimize and MinimizeProblem.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
}

// WithMetrics reports the run to m. m must already be registered.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Minimize defaults and validates run, builds the benchmark problem it
// names and solves it. The outcome is written to run.Status whether the run
// succeeds or not.
func Minimize(ctx context.Context, run *v1alpha1.OptimizationRun, opts ...Option) (*algorithms.Result, error) {
	o := newOptions(opts)
	defer o.observe(run)

	v1alpha1.SetDefaults_OptimizationRun(run)
	if err := validation.ValidateOptimizationRun(run); err != nil {
		return nil, fail(run, fmt.Errorf("%w: %w", framework.ErrInvalidConfiguration, err))
	}

	p := run.Spec.Problem
	problem, err := benchmarks.Get(*p.Name, *p.NumVariables, *p.NumObjectives)
	if err != nil {
		return nil, fail(run, err)
	}
	return solve(ctx, problem, run, o)
}

// MinimizeProblem solves a caller-supplied problem with the algorithm and
// termination settings of run. Unset fields of run.Spec.Problem are taken
// from problem.
func MinimizeProblem(ctx context.Context, problem framework.Problem, run *v1alpha1.OptimizationRun, opts ...Option) (*algorithms.Result, error) {
	o := newOptions(opts)
	defer o.observe(run)

	spec := &run.Spec
	if spec.Problem.Name == nil {
		spec.Problem.Name = ptr.To(problem.Name())
	}
	if spec.Problem.NumObjectives == nil {
		spec.Problem.NumObjectives = ptr.To(len(problem.ObjectiveFuncs()))
	}
	if spec.Problem.NumVariables == nil {
		spec.Problem.NumVariables = ptr.To(len(problem.Bounds()))
	}
	v1alpha1.SetDefaults_OptimizationRun(run)

	path := field.NewPath("spec")
	errs := validation.ValidateMOEADArgs(&spec.Algorithm, spec.Problem.NumObjectives, path.Child("algorithm"))
	errs = append(errs, validation.ValidateTerminationSpec(&spec.Termination, path.Child("termination"))...)
	if len(errs) > 0 {
		return nil, fail(run, fmt.Errorf("%w: %w", framework.ErrInvalidConfiguration, errs.ToAggregate()))
	}
	return solve(ctx, problem, run, o)
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) observe(run *v1alpha1.OptimizationRun) {
	if o.metrics != nil {
		o.metrics.ObserveRun(ptr.Deref(run.Spec.Problem.Name, ""), &run.Status)
	}
}

// solve runs a validated spec against problem.
func solve(ctx context.Context, problem framework.Problem, run *v1alpha1.OptimizationRun, o *options) (*algorithms.Result, error) {
	logger := klog.FromContext(ctx)
	spec := &run.Spec

	start := metav1.Now()
	run.Status = v1alpha1.OptimizationRunStatus{StartTime: &start}

	cfg := moeadConfig(spec)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	var evaluator framework.Evaluator = framework.NewProblemEvaluator(problem)
	var cached *framework.CachedEvaluator
	if ptr.Deref(spec.Algorithm.CacheEvaluations, false) {
		cached = framework.NewCachedEvaluator(evaluator)
		evaluator = cached
	}

	variation := variationOperator(&spec.Algorithm.Variation, len(problem.Bounds()))
	if err := variation.Validate(); err != nil {
		return nil, fail(run, err)
	}

	m, err := algorithms.NewMOEAD(cfg, problem,
		algorithms.WithRand(rng),
		algorithms.WithEvaluator(evaluator),
		algorithms.WithVariation(variation),
	)
	if err != nil {
		return nil, fail(run, err)
	}

	logger.V(2).Info("Starting optimization run", "run", klog.KObj(run), "problem", problem.Name(),
		"subproblems", len(m.ReferenceDirections()), "neighborhoodSize", cfg.NeighborhoodSize,
		"decomposition", cfg.Decomposition, "seed", cfg.Seed)

	term := termination(&spec.Termination)
	if o.metrics != nil {
		inner := term
		term = algorithms.TerminationFunc(func(gen int, s algorithms.Snapshot) bool {
			o.metrics.ObserveIdealPoint(s.IdealPoint)
			return inner.ShouldStop(gen, s)
		})
	}

	res, err := m.Run(ctx, term)
	if cached != nil {
		run.Status.CacheHits = cached.Hits()
	}
	if err != nil {
		run.Status.Generations = m.Generation()
		run.Status.Evaluations = m.Evaluations()
		return nil, fail(run, err)
	}

	now := metav1.Now()
	run.Status.Phase = v1alpha1.RunPhaseSucceeded
	run.Status.CompletionTime = &now
	run.Status.Generations = res.Generations
	run.Status.Evaluations = res.Evaluations
	run.Status.Replacements = res.Replacements
	run.Status.IdealPoint = res.IdealPoint
	for _, i := range res.ParetoFront() {
		run.Status.Solutions = append(run.Status.Solutions, v1alpha1.Solution{
			Subproblem: i,
			Weights:    res.ReferenceDirections[i],
			Variables:  res.Population[i].Variables,
			Objectives: res.Population[i].Objectives,
		})
	}
	return res, nil
}

// moeadConfig maps a defaulted spec onto the optimizer configuration. An
// unset neighborhood size becomes min(20, N) for population size N.
func moeadConfig(spec *v1alpha1.OptimizationRunSpec) algorithms.MOEADConfig {
	args := &spec.Algorithm
	numObjectives := *spec.Problem.NumObjectives

	cfg := algorithms.MOEADConfig{
		NumObjectives:             numObjectives,
		Partitions:                ptr.Deref(args.Partitions, 0),
		NumPoints:                 ptr.Deref(args.NumPoints, 0),
		Decomposition:             decomposition.Kind(*args.Decomposition),
		PBITheta:                  ptr.Deref(args.PBITheta, decomposition.DefaultTheta),
		NeighborMatingProbability: *args.NeighborMatingProbability,
		MaxReplacements:           *args.MaxReplacements,
		Seed:                      *spec.Seed,
	}

	if args.NeighborhoodSize != nil {
		cfg.NeighborhoodSize = *args.NeighborhoodSize
	} else {
		n := cfg.NumPoints
		if n == 0 {
			n = refdirs.NumUniformPoints(numObjectives, cfg.Partitions)
		}
		cfg.NeighborhoodSize = min(algorithms.DefaultNeighborhoodSize, n)
	}
	return cfg
}

func variationOperator(args *v1alpha1.VariationArgs, numVariables int) *operators.SBX {
	sbx := operators.NewSBX(numVariables)
	sbx.CrossoverProbability = ptr.Deref(args.CrossoverProbability, sbx.CrossoverProbability)
	sbx.CrossoverEta = ptr.Deref(args.CrossoverEta, sbx.CrossoverEta)
	sbx.MutationProbability = ptr.Deref(args.MutationProbability, sbx.MutationProbability)
	sbx.MutationEta = ptr.Deref(args.MutationEta, sbx.MutationEta)
	return sbx
}

func termination(t *v1alpha1.TerminationSpec) algorithms.Termination {
	term := algorithms.MaxGenerations(*t.MaxGenerations)
	if t.StagnationWindow == nil {
		return term
	}
	return algorithms.Any(term,
		algorithms.NewIdealPointStagnation(*t.StagnationWindow, ptr.Deref(t.StagnationTolerance, 0)))
}

func fail(run *v1alpha1.OptimizationRun, err error) error {
	now := metav1.Now()
	run.Status.Phase = v1alpha1.RunPhaseFailed
	run.Status.Message = err.Error()
	run.Status.CompletionTime = &now
	return err
}
