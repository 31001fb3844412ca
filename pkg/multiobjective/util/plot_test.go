package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/moead/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

func TestResultsFileIsSafe(t *testing.T) {
	path := ResultsFile("out", benchmarks.NewZDT1(30), "MOEA/D")
	assert.Equal(t, filepath.Join("out", "ZDT1_MOEA-D_results.html"), path)
}

func TestPlotResults2D(t *testing.T) {
	dir := t.TempDir()
	zdt1 := benchmarks.NewZDT1(30)

	require.NoError(t, PlotResults(zdt1.TrueParetoFront(20), zdt1, "MOEA/D", dir))

	b, err := os.ReadFile(ResultsFile(dir, zdt1, "MOEA/D"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "True Pareto Front"))
}

func TestPlotResults3D(t *testing.T) {
	dir := t.TempDir()
	dtlz2 := benchmarks.NewDTLZ2(12, 3)

	require.NoError(t, PlotResults(dtlz2.TrueParetoFront(91), dtlz2, "MOEA/D", dir))
	_, err := os.Stat(ResultsFile(dir, dtlz2, "MOEA/D"))
	assert.NoError(t, err)
}

func TestPlotResultsRejectsUnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	zdt1 := benchmarks.NewZDT1(30)

	assert.Error(t, PlotResults(nil, zdt1, "MOEA/D", dir))
	assert.Error(t, PlotResults([]framework.ObjectiveSpacePoint{{1, 2, 3, 4}}, zdt1, "MOEA/D", dir))
}
