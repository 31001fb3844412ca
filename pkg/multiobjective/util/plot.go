package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// trueFrontPoints is how many reference points of the analytic Pareto front
// are drawn next to the results.
const trueFrontPoints = 100

var fileNameReplacer = strings.NewReplacer("/", "-", " ", "_", "\\", "-")

// ResultsFile returns the path PlotResults writes to inside dir.
func ResultsFile(dir string, problem framework.Problem, algorithmName string) string {
	name := fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithmName)
	return filepath.Join(dir, fileNameReplacer.Replace(name))
}

// PlotResults creates a scatter plot comparing the true Pareto front of the given Problem
// with the final population resulted from the algorithm. Two and three
// objectives are supported; the chart is written to ResultsFile(dir, ...).
func PlotResults(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string, dir string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %s Benchmark", problem.Name())
	}

	f, err := os.Create(ResultsFile(dir, problem, algorithmName))
	if err != nil {
		return err
	}
	defer f.Close()

	switch len(results[0]) {
	case 2:
		return renderScatter(f, results, problem, algorithmName)
	case 3:
		return renderScatter3D(f, results, problem, algorithmName)
	default:
		return fmt.Errorf("can only plot 2 or 3 objectives for %s Benchmark, got %d", problem.Name(), len(results[0]))
	}
}

func renderScatter(w io.Writer, results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "f1(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "f2(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}))

	trueFront := problem.TrueParetoFront(trueFrontPoints)
	trueData := make([]opts.ScatterData, len(trueFront))
	for i, p := range trueFront {
		trueData[i] = opts.ScatterData{
			Value:      []float64{p[0], p[1]},
			Symbol:     "circle",
			SymbolSize: 10,
		}
	}

	found := make([]opts.ScatterData, len(results))
	for i, res := range results {
		found[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 10,
		}
	}

	scatter.AddSeries("True Pareto Front", trueData).
		AddSeries(fmt.Sprintf("%s Solutions", algorithmName), found).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return scatter.Render(w)
}

func renderScatter3D(w io.Writer, results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string) error {
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "f1(x)"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "f2(x)"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "f3(x)"}),
	)

	scatter.AddSeries("True Pareto Front", chart3DData(problem.TrueParetoFront(trueFrontPoints))).
		AddSeries(fmt.Sprintf("%s Solutions", algorithmName), chart3DData(results))

	return scatter.Render(w)
}

func chart3DData(points []framework.ObjectiveSpacePoint) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(points))
	for i, p := range points {
		data[i] = opts.Chart3DData{Value: []interface{}{p[0], p[1], p[2]}}
	}
	return data
}
