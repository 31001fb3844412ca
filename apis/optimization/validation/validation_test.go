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
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/moead/apis/optimization/v1alpha1"
)

func defaultedRun(mutate func(*v1alpha1.OptimizationRunSpec)) *v1alpha1.OptimizationRun {
	run := &v1alpha1.OptimizationRun{}
	if mutate != nil {
		mutate(&run.Spec)
	}
	v1alpha1.SetDefaults_OptimizationRun(run)
	return run
}

func fields(errs field.ErrorList) []string {
	var out []string
	for _, err := range errs {
		out = append(out, err.Field)
	}
	return out
}

func TestValidateOptimizationRunSpec(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*v1alpha1.OptimizationRunSpec)
		after  func(*v1alpha1.OptimizationRunSpec)
		want   []string
	}{
		{
			name: "defaults are valid",
		},
		{
			name: "three objective dtlz1",
			mutate: func(s *v1alpha1.OptimizationRunSpec) {
				s.Problem.Name = ptr.To("DTLZ1")
				s.Problem.NumObjectives = ptr.To(3)
				s.Algorithm.Partitions = ptr.To(12)
			},
		},
		{
			name:   "unknown problem",
			mutate: func(s *v1alpha1.OptimizationRunSpec) { s.Problem.Name = ptr.To("rastrigin") },
			want:   []string{"spec.problem.name", "spec.problem.numVariables", "spec.algorithm.variation.mutationProbability"},
		},
		{
			name:   "single objective",
			mutate: func(s *v1alpha1.OptimizationRunSpec) { s.Problem.NumObjectives = ptr.To(1) },
			want:   []string{"spec.problem.numObjectives"},
		},
		{
			name:   "zdt1 with three objectives",
			mutate: func(s *v1alpha1.OptimizationRunSpec) { s.Problem.NumObjectives = ptr.To(3) },
			want:   []string{"spec.problem"},
		},
		{
			name: "partitions and points together",
			after: func(s *v1alpha1.OptimizationRunSpec) {
				s.Algorithm.Partitions = ptr.To(10)
			},
			want: []string{"spec.algorithm.numPoints"},
		},
		{
			name:   "zero partitions",
			mutate: func(s *v1alpha1.OptimizationRunSpec) { s.Algorithm.Partitions = ptr.To(0) },
			want:   []string{"spec.algorithm.partitions"},
		},
		{
			name:   "fewer points than objectives",
			mutate: func(s *v1alpha1.OptimizationRunSpec) { s.Algorithm.NumPoints = ptr.To(1) },
			want:   []string{"spec.algorithm.numPoints"},
		},
		{
			name: "out of range algorithm settings",
			mutate: func(s *v1alpha1.OptimizationRunSpec) {
				s.Algorithm.NeighborhoodSize = ptr.To(0)
				s.Algorithm.Decomposition = ptr.To("boundary-intersection")
				s.Algorithm.PBITheta = ptr.To(-1.0)
				s.Algorithm.NeighborMatingProbability = ptr.To(1.1)
				s.Algorithm.MaxReplacements = ptr.To(0)
			},
			want: []string{
				"spec.algorithm.neighborhoodSize",
				"spec.algorithm.decomposition",
				"spec.algorithm.pbiTheta",
				"spec.algorithm.neighborMatingProbability",
				"spec.algorithm.maxReplacements",
			},
		},
		{
			name: "out of range variation settings",
			mutate: func(s *v1alpha1.OptimizationRunSpec) {
				s.Algorithm.Variation.CrossoverProbability = ptr.To(-0.1)
				s.Algorithm.Variation.MutationProbability = ptr.To(2.0)
				s.Algorithm.Variation.CrossoverEta = ptr.To(-1.0)
				s.Algorithm.Variation.MutationEta = ptr.To(-1.0)
			},
			want: []string{
				"spec.algorithm.variation.crossoverProbability",
				"spec.algorithm.variation.mutationProbability",
				"spec.algorithm.variation.crossoverEta",
				"spec.algorithm.variation.mutationEta",
			},
		},
		{
			name: "bad termination",
			mutate: func(s *v1alpha1.OptimizationRunSpec) {
				s.Termination.MaxGenerations = ptr.To(-1)
				s.Termination.StagnationWindow = ptr.To(0)
				s.Termination.StagnationTolerance = ptr.To(-1.0)
			},
			want: []string{
				"spec.termination.maxGenerations",
				"spec.termination.stagnationWindow",
				"spec.termination.stagnationTolerance",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := defaultedRun(tt.mutate)
			if tt.after != nil {
				tt.after(&run.Spec)
			}
			errs := ValidateOptimizationRunSpec(&run.Spec, field.NewPath("spec"))
			assert.Equal(t, tt.want, fields(errs), "errors: %v", errs)
		})
	}
}

func TestValidateOptimizationRunRequiresDefaults(t *testing.T) {
	err := ValidateOptimizationRun(&v1alpha1.OptimizationRun{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "spec.problem.name")
	assert.NoError(t, ValidateOptimizationRun(defaultedRun(nil)))
}
