/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package validation

import (
	"fmt"
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/moead/apis/optimization/v1alpha1"
	"sigs.k8s.io/moead/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moead/pkg/multiobjective/decomposition"
)

var validDecompositions = []string{
	string(decomposition.WeightedSum),
	string(decomposition.Tchebycheff),
	string(decomposition.PBI),
}

// ValidateOptimizationRun validates a defaulted OptimizationRun.
func ValidateOptimizationRun(run *v1alpha1.OptimizationRun) error {
	return ValidateOptimizationRunSpec(&run.Spec, field.NewPath("spec")).ToAggregate()
}

// ValidateOptimizationRunSpec validates a defaulted spec and returns every
// problem found.
func ValidateOptimizationRunSpec(spec *v1alpha1.OptimizationRunSpec, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	allErrs = append(allErrs, validateProblemSpec(&spec.Problem, path.Child("problem"))...)
	allErrs = append(allErrs, ValidateMOEADArgs(&spec.Algorithm, spec.Problem.NumObjectives, path.Child("algorithm"))...)
	allErrs = append(allErrs, ValidateTerminationSpec(&spec.Termination, path.Child("termination"))...)
	if spec.Seed == nil {
		allErrs = append(allErrs, field.Required(path.Child("seed"), ""))
	}
	return allErrs
}

func validateProblemSpec(p *v1alpha1.ProblemSpec, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if p.Name == nil {
		allErrs = append(allErrs, field.Required(path.Child("name"), ""))
	} else if !slices.Contains(benchmarks.Names, strings.ToLower(*p.Name)) {
		allErrs = append(allErrs, field.NotSupported(path.Child("name"), *p.Name, benchmarks.Names))
	}
	if p.NumObjectives == nil {
		allErrs = append(allErrs, field.Required(path.Child("numObjectives"), ""))
	} else if *p.NumObjectives < 2 {
		allErrs = append(allErrs, field.Invalid(path.Child("numObjectives"), *p.NumObjectives, "must be at least 2"))
	}
	if p.NumVariables == nil {
		allErrs = append(allErrs, field.Required(path.Child("numVariables"), ""))
	} else if *p.NumVariables < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("numVariables"), *p.NumVariables, "must be at least 1"))
	}
	if len(allErrs) > 0 {
		return allErrs
	}

	// Problem-specific shape constraints.
	if _, err := benchmarks.Get(*p.Name, *p.NumVariables, *p.NumObjectives); err != nil {
		allErrs = append(allErrs, field.Invalid(path, fmt.Sprintf("%s/%d/%d", *p.Name, *p.NumVariables, *p.NumObjectives), err.Error()))
	}
	return allErrs
}

// ValidateMOEADArgs validates defaulted algorithm arguments for a problem
// with numObjectives objectives.
func ValidateMOEADArgs(args *v1alpha1.MOEADArgs, numObjectives *int, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	switch {
	case args.Partitions != nil && args.NumPoints != nil:
		allErrs = append(allErrs, field.Forbidden(path.Child("numPoints"), "may not be set together with partitions"))
	case args.Partitions != nil:
		if *args.Partitions < 1 {
			allErrs = append(allErrs, field.Invalid(path.Child("partitions"), *args.Partitions, "must be at least 1"))
		}
	case args.NumPoints != nil:
		if numObjectives != nil && *args.NumPoints < *numObjectives {
			allErrs = append(allErrs, field.Invalid(path.Child("numPoints"), *args.NumPoints, "must be at least the number of objectives"))
		}
	default:
		allErrs = append(allErrs, field.Required(path.Child("numPoints"), "either partitions or numPoints must be set"))
	}

	if args.NeighborhoodSize != nil && *args.NeighborhoodSize < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("neighborhoodSize"), *args.NeighborhoodSize, "must be at least 1"))
	}
	if args.Decomposition == nil {
		allErrs = append(allErrs, field.Required(path.Child("decomposition"), ""))
	} else if !slices.Contains(validDecompositions, *args.Decomposition) {
		allErrs = append(allErrs, field.NotSupported(path.Child("decomposition"), *args.Decomposition, validDecompositions))
	}
	if args.PBITheta != nil && !(*args.PBITheta >= 0) {
		allErrs = append(allErrs, field.Invalid(path.Child("pbiTheta"), *args.PBITheta, "must be non-negative"))
	}
	allErrs = append(allErrs, validateProbability(args.NeighborMatingProbability, path.Child("neighborMatingProbability"))...)
	if args.MaxReplacements == nil {
		allErrs = append(allErrs, field.Required(path.Child("maxReplacements"), ""))
	} else if *args.MaxReplacements < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxReplacements"), *args.MaxReplacements, "must be at least 1"))
	}

	vpath := path.Child("variation")
	allErrs = append(allErrs, validateProbability(args.Variation.CrossoverProbability, vpath.Child("crossoverProbability"))...)
	allErrs = append(allErrs, validateProbability(args.Variation.MutationProbability, vpath.Child("mutationProbability"))...)
	allErrs = append(allErrs, validateDistributionIndex(args.Variation.CrossoverEta, vpath.Child("crossoverEta"))...)
	allErrs = append(allErrs, validateDistributionIndex(args.Variation.MutationEta, vpath.Child("mutationEta"))...)
	return allErrs
}

func validateProbability(p *float64, path *field.Path) field.ErrorList {
	if p == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if !(*p >= 0 && *p <= 1) {
		return field.ErrorList{field.Invalid(path, *p, "must be in [0, 1]")}
	}
	return nil
}

func validateDistributionIndex(eta *float64, path *field.Path) field.ErrorList {
	if eta == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if !(*eta >= 0) {
		return field.ErrorList{field.Invalid(path, *eta, "must be non-negative")}
	}
	return nil
}

// ValidateTerminationSpec validates defaulted termination criteria.
func ValidateTerminationSpec(t *v1alpha1.TerminationSpec, path *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if t.MaxGenerations == nil {
		allErrs = append(allErrs, field.Required(path.Child("maxGenerations"), ""))
	} else if *t.MaxGenerations < 0 {
		allErrs = append(allErrs, field.Invalid(path.Child("maxGenerations"), *t.MaxGenerations, "must be non-negative"))
	}
	if t.StagnationWindow != nil && *t.StagnationWindow < 1 {
		allErrs = append(allErrs, field.Invalid(path.Child("stagnationWindow"), *t.StagnationWindow, "must be at least 1"))
	}
	if t.StagnationTolerance != nil && !(*t.StagnationTolerance >= 0) {
		allErrs = append(allErrs, field.Invalid(path.Child("stagnationTolerance"), *t.StagnationTolerance, "must be non-negative"))
	}
	return allErrs
}
