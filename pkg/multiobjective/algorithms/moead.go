package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/klog/v2"

	"sigs.k8s.io/moead/pkg/multiobjective/decomposition"
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
	"sigs.k8s.io/moead/pkg/multiobjective/operators"
	"sigs.k8s.io/moead/pkg/multiobjective/refdirs"
)

const (
	Name = "MOEA/D"

	DefaultNeighborhoodSize          = 20
	DefaultNeighborMatingProbability = 0.9
	DefaultMaxReplacements           = 2
	DefaultNumPoints                 = 100
)

// State is the lifecycle position of a MOEAD run.
type State int

const (
	// Uninitialized: directions and neighborhoods are built, the population
	// is empty.
	Uninitialized State = iota
	// Initialized: every subproblem holds one evaluated candidate.
	Initialized
	// Running: at least one generation has been stepped.
	Running
	// Terminated: the run stopped or failed. Nothing may step it again.
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MOEADConfig represents the MOEA/D algorithm configuration
type MOEADConfig struct {
	NumObjectives int
	// Partitions is the number of simplex-lattice divisions. It is ignored
	// when NumPoints is set.
	Partitions int
	// NumPoints requests an exact number of reference directions.
	NumPoints int
	// NeighborhoodSize is T, the number of closest directions (self
	// included) each subproblem mates with and updates.
	NeighborhoodSize int
	Decomposition    decomposition.Kind
	PBITheta         float64
	// NeighborMatingProbability is δ. It gates both parent selection and
	// the update scope, with independent draws.
	NeighborMatingProbability float64
	// MaxReplacements is nr, the most slots one offspring may take.
	MaxReplacements int
	Seed            uint64
}

// DefaultMOEADConfig returns the configuration used when nothing else is
// specified.
func DefaultMOEADConfig(numObjectives int) MOEADConfig {
	return MOEADConfig{
		NumObjectives:             numObjectives,
		NumPoints:                 DefaultNumPoints,
		NeighborhoodSize:          DefaultNeighborhoodSize,
		Decomposition:             decomposition.Default(numObjectives),
		PBITheta:                  decomposition.DefaultTheta,
		NeighborMatingProbability: DefaultNeighborMatingProbability,
		MaxReplacements:           DefaultMaxReplacements,
		Seed:                      1,
	}
}

// Validate reports every configuration problem at once.
func (c *MOEADConfig) Validate() error {
	var errs field.ErrorList
	path := field.NewPath("moead")

	if c.NumObjectives < 2 {
		errs = append(errs, field.Invalid(path.Child("numObjectives"), c.NumObjectives, "must be at least 2"))
	}
	switch {
	case c.NumPoints > 0:
		if c.NumPoints < c.NumObjectives {
			errs = append(errs, field.Invalid(path.Child("numPoints"), c.NumPoints, "must be at least the number of objectives"))
		}
	case c.Partitions < 1:
		errs = append(errs, field.Required(path.Child("partitions"), "either partitions or numPoints must be positive"))
	}
	if c.NeighborhoodSize < 1 {
		errs = append(errs, field.Invalid(path.Child("neighborhoodSize"), c.NeighborhoodSize, "must be at least 1"))
	}
	if !(c.NeighborMatingProbability >= 0 && c.NeighborMatingProbability <= 1) {
		errs = append(errs, field.Invalid(path.Child("neighborMatingProbability"), c.NeighborMatingProbability, "must be in [0, 1]"))
	}
	if c.MaxReplacements < 1 {
		errs = append(errs, field.Invalid(path.Child("maxReplacements"), c.MaxReplacements, "must be at least 1"))
	}
	if _, err := decomposition.New(c.Decomposition, c.PBITheta); err != nil {
		errs = append(errs, field.Invalid(path.Child("decomposition"), c.Decomposition, err.Error()))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", framework.ErrInvalidConfiguration, errs.ToAggregate())
	}
	return nil
}

// ReplacementEvent records one slot taken over by the offspring of a
// subproblem.
type ReplacementEvent struct {
	Generation int
	Subproblem int
	Slot       int
}

// Option customizes a MOEAD at construction.
type Option func(*MOEAD)

// WithRand injects the random source every stochastic choice draws from.
// Without it a PCG seeded from MOEADConfig.Seed is used.
func WithRand(rng *rand.Rand) Option {
	return func(m *MOEAD) { m.rng = rng }
}

// WithEvaluator replaces the problem's own objective functions, e.g. with a
// framework.CachedEvaluator.
func WithEvaluator(ev framework.Evaluator) Option {
	return func(m *MOEAD) { m.evaluator = ev }
}

// WithVariation sets the variation operator. The default is operators.NewSBX.
func WithVariation(v operators.Variation) Option {
	return func(m *MOEAD) { m.variation = v }
}

// WithReferenceDirections uses dirs instead of generating them.
func WithReferenceDirections(dirs [][]float64) Option {
	return func(m *MOEAD) { m.directions = dirs }
}

// WithInitialPopulation seeds one decision vector per subproblem instead of
// sampling them.
func WithInitialPopulation(xs [][]float64) Option {
	return func(m *MOEAD) { m.seeded = xs }
}

// WithReplacementHook calls fn for every replacement, in order.
func WithReplacementHook(fn func(ReplacementEvent)) Option {
	return func(m *MOEAD) { m.hook = fn }
}

// MOEAD is the decomposition-based multi-objective evolutionary algorithm.
// It keeps one candidate per reference direction and improves all of them
// together, one generation at a time. A MOEAD is not safe for concurrent
// use.
type MOEAD struct {
	cfg     MOEADConfig
	problem framework.Problem
	bounds  []framework.Bounds

	rng       *rand.Rand
	evaluator framework.Evaluator
	variation operators.Variation
	seeded    [][]float64
	hook      func(ReplacementEvent)

	directions  [][]float64
	neighbors   [][]int
	mating      MatingSelector
	replacement *ReplacementPolicy

	state        State
	population   []framework.Individual
	ideal        []float64
	generation   int
	evaluations  int
	replacements int
}

var _ framework.Algorithm = &MOEAD{}

// NewMOEAD validates cfg and builds the reference directions and
// neighborhoods. The returned optimizer is Uninitialized.
func NewMOEAD(cfg MOEADConfig, problem framework.Problem, opts ...Option) (*MOEAD, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &MOEAD{
		cfg:     cfg,
		problem: problem,
		bounds:  problem.Bounds(),
		mating:  MatingSelector{Delta: cfg.NeighborMatingProbability},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	if m.evaluator == nil {
		m.evaluator = framework.NewProblemEvaluator(problem)
	}
	if m.variation == nil {
		m.variation = operators.NewSBX(len(m.bounds))
	}

	if n := len(problem.ObjectiveFuncs()); n != cfg.NumObjectives {
		return nil, framework.InvalidConfigf("%s has %d objectives, configured for %d", problem.Name(), n, cfg.NumObjectives)
	}
	if len(m.bounds) == 0 {
		return nil, framework.InvalidConfigf("%s has no decision variables", problem.Name())
	}
	for i, b := range m.bounds {
		if !(b.L <= b.H) {
			return nil, framework.InvalidConfigf("%s variable %d has empty bounds [%v, %v]", problem.Name(), i, b.L, b.H)
		}
	}

	if err := m.buildDirections(); err != nil {
		return nil, err
	}
	neighbors, err := Neighborhoods(m.directions, cfg.NeighborhoodSize)
	if err != nil {
		return nil, err
	}
	m.neighbors = neighbors

	dec, err := decomposition.New(cfg.Decomposition, cfg.PBITheta)
	if err != nil {
		return nil, err
	}
	weights := make([][]float64, len(m.directions))
	for i, d := range m.directions {
		weights[i] = dec.Prepare(d)
	}
	m.replacement = &ReplacementPolicy{
		Decomposition:   dec,
		Weights:         weights,
		MaxReplacements: cfg.MaxReplacements,
	}

	if m.seeded != nil {
		if len(m.seeded) != len(m.directions) {
			return nil, framework.InvalidConfigf("initial population has %d members, need %d", len(m.seeded), len(m.directions))
		}
		for i, x := range m.seeded {
			if len(x) != len(m.bounds) {
				return nil, framework.InvalidConfigf("initial member %d has %d variables, need %d", i, len(x), len(m.bounds))
			}
		}
	}

	return m, nil
}

func (m *MOEAD) buildDirections() error {
	if m.directions == nil {
		var err error
		if m.cfg.NumPoints > 0 {
			m.directions, err = refdirs.ForPoints(m.cfg.NumObjectives, m.cfg.NumPoints, m.rng)
		} else {
			m.directions, err = refdirs.Uniform(m.cfg.NumObjectives, m.cfg.Partitions)
		}
		return err
	}

	if len(m.directions) < 2 {
		return framework.InvalidConfigf("need at least 2 reference directions, got %d", len(m.directions))
	}
	dirs := make([][]float64, len(m.directions))
	for i, d := range m.directions {
		if len(d) != m.cfg.NumObjectives {
			return framework.InvalidConfigf("reference direction %d has %d components, need %d", i, len(d), m.cfg.NumObjectives)
		}
		for _, v := range d {
			if !(v >= 0) || math.IsInf(v, 0) {
				return framework.InvalidConfigf("reference direction %d has invalid component %v", i, v)
			}
		}
		dirs[i] = slices.Clone(d)
	}
	m.directions = dirs
	return nil
}

func (m *MOEAD) Name() string {
	return Name
}

// Initialize fills every subproblem with an evaluated candidate and sets the
// ideal point to the best objective values among them.
func (m *MOEAD) Initialize(ctx context.Context) error {
	if m.state != Uninitialized {
		return fmt.Errorf("%w: cannot initialize in state %s", framework.ErrInvalidState, m.state)
	}
	logger := klog.FromContext(ctx)

	pop := make([]framework.Individual, len(m.directions))
	ideal := make([]float64, m.cfg.NumObjectives)
	for i := range ideal {
		ideal[i] = math.Inf(1)
	}

	for i := range pop {
		var x []float64
		if m.seeded != nil {
			x = slices.Clone(m.seeded[i])
		} else {
			x = make([]float64, len(m.bounds))
			for j, b := range m.bounds {
				x[j] = b.L + m.rng.Float64()*(b.H-b.L)
			}
		}

		f, err := framework.Evaluate(m.evaluator, x)
		if err != nil {
			m.state = Terminated
			return fmt.Errorf("initializing subproblem %d: %w", i, err)
		}
		m.evaluations++
		if err := framework.CheckFinite(f); err != nil {
			logAnomaly(logger, 0, i, x, err)
		}
		UpdateIdeal(ideal, f)
		pop[i] = framework.Individual{Variables: x, Objectives: f}
	}

	m.population = pop
	m.ideal = ideal
	m.state = Initialized
	logger.V(2).Info("Initialized optimizer", "algorithm", Name, "problem", m.problem.Name(),
		"subproblems", len(pop), "neighborhoodSize", m.cfg.NeighborhoodSize,
		"decomposition", m.cfg.Decomposition, "idealPoint", ideal)
	return nil
}

// Step runs one generation: every subproblem, in ascending order, breeds one
// offspring from selected parents, evaluates it and offers it to the
// replacement policy. Replacements made for earlier subproblems are visible
// to later ones within the same generation.
func (m *MOEAD) Step(ctx context.Context) error {
	if m.state != Initialized && m.state != Running {
		return fmt.Errorf("%w: cannot step in state %s", framework.ErrInvalidState, m.state)
	}
	m.state = Running
	logger := klog.FromContext(ctx)

	gen := m.generation + 1
	popSize := len(m.population)
	replaced := 0
	for i := range popSize {
		p1, p2 := m.mating.SelectParents(m.rng, m.neighbors[i], popSize)
		x := m.variation.Vary(m.rng, m.population[p1].Variables, m.population[p2].Variables, m.bounds)

		f, err := framework.Evaluate(m.evaluator, x)
		if err != nil {
			m.state = Terminated
			return fmt.Errorf("generation %d, subproblem %d: %w", gen, i, err)
		}
		m.evaluations++

		scope := m.mating.Scope(m.rng, m.neighbors[i], popSize)
		offspring := framework.Individual{Variables: x, Objectives: f}
		slots, err := m.replacement.Update(m.rng, m.population, m.ideal, offspring, scope)
		if err != nil {
			logAnomaly(logger, gen, i, x, err)
			continue
		}
		logger.V(5).Info("Offered offspring", "generation", gen, "subproblem", i, "objectives", f, "replaced", slots)

		replaced += len(slots)
		if m.hook != nil {
			for _, slot := range slots {
				m.hook(ReplacementEvent{Generation: gen, Subproblem: i, Slot: slot})
			}
		}
	}

	m.generation = gen
	m.replacements += replaced
	logger.V(4).Info("Completed generation", "generation", gen, "replacements", replaced,
		"evaluations", m.evaluations, "idealPoint", m.ideal)
	return nil
}

func logAnomaly(logger logr.Logger, generation, subproblem int, x []float64, err error) {
	logger.V(2).Info("Non-finite objectives", "generation", generation, "subproblem", subproblem,
		"variables", x, "err", err)
}

// Run initializes the optimizer if needed and steps generations until term
// signals stop. term is polled at generation boundaries only, and so is ctx;
// a cancelled context aborts the run with no result.
func (m *MOEAD) Run(ctx context.Context, term Termination) (*Result, error) {
	if m.state == Uninitialized {
		if err := m.Initialize(ctx); err != nil {
			return nil, err
		}
	}
	if m.state == Terminated {
		return nil, fmt.Errorf("%w: run already terminated", framework.ErrInvalidState)
	}
	logger := klog.FromContext(ctx)

	for !term.ShouldStop(m.generation, m.Snapshot()) {
		if err := ctx.Err(); err != nil {
			m.state = Terminated
			return nil, fmt.Errorf("generation %d: %w", m.generation, err)
		}
		if err := m.Step(ctx); err != nil {
			return nil, err
		}
	}

	m.state = Terminated
	logger.V(2).Info("Terminated optimizer", "algorithm", Name, "problem", m.problem.Name(),
		"generations", m.generation, "evaluations", m.evaluations, "replacements", m.replacements)
	return m.Result(), nil
}

// Snapshot copies the current population and ideal point.
func (m *MOEAD) Snapshot() Snapshot {
	return Snapshot{
		Generation:  m.generation,
		Evaluations: m.evaluations,
		Population:  m.Population(),
		IdealPoint:  m.IdealPoint(),
	}
}

// Result copies everything a caller needs to report on the run.
func (m *MOEAD) Result() *Result {
	dirs := make([][]float64, len(m.directions))
	for i, d := range m.directions {
		dirs[i] = slices.Clone(d)
	}
	return &Result{
		Population:          m.Population(),
		IdealPoint:          m.IdealPoint(),
		ReferenceDirections: dirs,
		Generations:         m.generation,
		Evaluations:         m.evaluations,
		Replacements:        m.replacements,
	}
}

func (m *MOEAD) State() State { return m.state }

func (m *MOEAD) Generation() int { return m.generation }

func (m *MOEAD) Evaluations() int { return m.evaluations }

// Population returns a deep copy of the current population.
func (m *MOEAD) Population() []framework.Individual {
	pop := make([]framework.Individual, len(m.population))
	for i, ind := range m.population {
		pop[i] = ind.Clone()
	}
	return pop
}

// IdealPoint returns a copy of the current ideal point.
func (m *MOEAD) IdealPoint() []float64 { return slices.Clone(m.ideal) }

// ReferenceDirections returns the directions, one per subproblem. The
// caller must not modify them.
func (m *MOEAD) ReferenceDirections() [][]float64 { return m.directions }

// Neighbors returns the neighborhood of every subproblem. The caller must
// not modify them.
func (m *MOEAD) Neighbors() [][]int { return m.neighbors }
