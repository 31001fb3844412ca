// Command moead runs MOEA/D on a benchmark problem described by an
// OptimizationRun document and reports the resulting Pareto front.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/component-base/cli"
	k8smetrics "k8s.io/component-base/metrics"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"sigs.k8s.io/moead/apis/optimization/v1alpha1"
	"sigs.k8s.io/moead/pkg/multiobjective"
	"sigs.k8s.io/moead/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moead/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
	"sigs.k8s.io/moead/pkg/multiobjective/metrics"
	"sigs.k8s.io/moead/pkg/multiobjective/util"
)

type options struct {
	configFile  string
	problem     string
	objectives  int
	generations int
	seed        uint64
	output      string
	plotDir     string
	metricsFile string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", "", "Path to an OptimizationRun YAML file. Flags override its fields.")
	fs.StringVar(&o.problem, "problem", "", fmt.Sprintf("Benchmark problem, one of %s.", strings.Join(benchmarks.Names, ", ")))
	fs.IntVar(&o.objectives, "objectives", 0, "Number of objectives.")
	fs.IntVar(&o.generations, "generations", 0, "Number of generations to run.")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed of the random source.")
	fs.StringVar(&o.output, "output", "", "Write the completed OptimizationRun, status included, to this YAML file.")
	fs.StringVar(&o.plotDir, "plot-dir", "", "Write an HTML scatter plot of the Pareto front into this directory.")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write run metrics in the Prometheus text format to this file.")
}

func main() {
	command := newCommand(os.Stdout)
	code := cli.Run(command)
	os.Exit(code)
}

func newCommand(stdout io.Writer) *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "moead",
		Short: "Run MOEA/D on a benchmark problem",
		Long: `moead solves a multi-objective benchmark problem with MOEA/D, the
decomposition-based evolutionary algorithm, and prints the non-dominated
solutions it found. The run is described by an OptimizationRun document;
flags override selected fields.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return o.run(ctx, cmd.Flags(), stdout)
		},
	}
	o.addFlags(cmd.Flags())
	return cmd
}

func (o *options) run(ctx context.Context, fs *pflag.FlagSet, stdout io.Writer) error {
	optRun, err := loadRun(o.configFile)
	if err != nil {
		return err
	}
	o.applyTo(fs, optRun)

	logger := klog.FromContext(ctx)
	ctx = klog.NewContext(ctx, logger.WithValues("run", klog.KObj(optRun)))

	var opts []multiobjective.Option
	registry := k8smetrics.NewKubeRegistry()
	if o.metricsFile != "" {
		m := metrics.New()
		m.Register(registry)
		opts = append(opts, multiobjective.WithMetrics(m))
	}

	res, runErr := multiobjective.Minimize(ctx, optRun, opts...)
	if o.output != "" {
		if err := writeRun(o.output, optRun); err != nil {
			return err
		}
	}
	if o.metricsFile != "" {
		if err := writeMetrics(o.metricsFile, registry); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	printSummary(stdout, optRun, res)

	if o.plotDir != "" {
		p := optRun.Spec.Problem
		problem, err := benchmarks.Get(*p.Name, *p.NumVariables, *p.NumObjectives)
		if err != nil {
			return err
		}
		if err := util.PlotResults(res.ParetoFrontPoints(), problem, algorithms.Name, o.plotDir); err != nil {
			return fmt.Errorf("plotting results: %w", err)
		}
		logger.V(2).Info("Wrote plot", "path", util.ResultsFile(o.plotDir, problem, algorithms.Name))
	}
	return nil
}

// applyTo overrides the fields of optRun whose flags were set explicitly.
func (o *options) applyTo(fs *pflag.FlagSet, optRun *v1alpha1.OptimizationRun) {
	spec := &optRun.Spec
	if fs.Changed("problem") {
		spec.Problem.Name = &o.problem
		// The variable count of the old problem rarely fits the new one.
		spec.Problem.NumVariables = nil
	}
	if fs.Changed("objectives") {
		spec.Problem.NumObjectives = &o.objectives
		spec.Problem.NumVariables = nil
	}
	if fs.Changed("generations") {
		spec.Termination.MaxGenerations = &o.generations
	}
	if fs.Changed("seed") {
		spec.Seed = &o.seed
	}
}

func loadRun(path string) (*v1alpha1.OptimizationRun, error) {
	optRun := &v1alpha1.OptimizationRun{}
	if path == "" {
		return optRun, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, optRun); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", framework.ErrInvalidConfiguration, path, err)
	}
	if optRun.APIVersion != "" && optRun.APIVersion != v1alpha1.SchemeGroupVersion.String() {
		return nil, framework.InvalidConfigf("%s: unsupported apiVersion %q", path, optRun.APIVersion)
	}
	if optRun.Kind != "" && optRun.Kind != v1alpha1.Kind {
		return nil, framework.InvalidConfigf("%s: unsupported kind %q", path, optRun.Kind)
	}
	return optRun, nil
}

func writeRun(path string, optRun *v1alpha1.OptimizationRun) error {
	data, err := yaml.Marshal(optRun)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeMetrics(path string, registry k8smetrics.KubeRegistry) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func printSummary(w io.Writer, optRun *v1alpha1.OptimizationRun, res *algorithms.Result) {
	st := optRun.Status
	elapsed := st.CompletionTime.Sub(st.StartTime.Time).Round(time.Millisecond)

	fmt.Fprintf(w, "%s on %s: %s generations, %s evaluations, %s replacements in %s\n",
		algorithms.Name, *optRun.Spec.Problem.Name,
		humanize.Comma(int64(st.Generations)),
		humanize.Comma(int64(st.Evaluations)),
		humanize.Comma(int64(st.Replacements)),
		elapsed)
	if st.CacheHits > 0 {
		fmt.Fprintf(w, "evaluation cache hits: %s\n", humanize.Comma(st.CacheHits))
	}
	fmt.Fprintf(w, "ideal point: %s\n", formatPoint(st.IdealPoint))
	fmt.Fprintf(w, "non-dominated solutions: %d of %d\n", len(st.Solutions), len(res.Population))
	for _, f := range res.ParetoFrontPoints() {
		fmt.Fprintf(w, "  %s\n", formatPoint(f))
	}
}

func formatPoint(p []float64) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = humanize.FtoaWithDigits(v, 4)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
