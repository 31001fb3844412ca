package benchmarks

import (
	"strings"

	"sigs.k8s.io/moead/pkg/multiobjective/framework"
)

// Names lists the problems Get knows, in lower case.
var Names = []string{"zdt1", "dtlz1", "dtlz2", "linear"}

// DefaultNumVariables returns the customary decision-space size for a named
// problem with numObjectives objectives, or 0 for unknown names.
func DefaultNumVariables(name string, numObjectives int) int {
	switch strings.ToLower(name) {
	case "zdt1":
		return 30
	case "dtlz1":
		return numObjectives + 4
	case "dtlz2":
		return numObjectives + 9
	case "linear":
		return 1
	}
	return 0
}

// Get builds a benchmark problem by name. numVars <= 0 selects
// DefaultNumVariables.
func Get(name string, numVars, numObjectives int) (framework.Problem, error) {
	if numVars <= 0 {
		numVars = DefaultNumVariables(name, numObjectives)
	}

	switch strings.ToLower(name) {
	case "zdt1":
		if numObjectives != 2 {
			return nil, framework.InvalidConfigf("%s has 2 objectives, got %d", ZDT1Name, numObjectives)
		}
		return NewZDT1(numVars), nil
	case "dtlz1", "dtlz2":
		if numObjectives < 2 {
			return nil, framework.InvalidConfigf("%s needs at least 2 objectives, got %d", name, numObjectives)
		}
		if numVars < numObjectives {
			return nil, framework.InvalidConfigf("%s with %d objectives needs at least %d variables, got %d",
				name, numObjectives, numObjectives, numVars)
		}
		if strings.ToLower(name) == "dtlz1" {
			return NewDTLZ1(numVars, numObjectives), nil
		}
		return NewDTLZ2(numVars, numObjectives), nil
	case "linear":
		if numObjectives != 2 || numVars != 1 {
			return nil, framework.InvalidConfigf("%s has 1 variable and 2 objectives, got %d and %d",
				LinearName, numVars, numObjectives)
		}
		return NewLinear(), nil
	}
	return nil, framework.InvalidConfigf("unknown problem %q, known problems are %s", name, strings.Join(Names, ", "))
}
