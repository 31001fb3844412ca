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

package v1alpha1

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func TestSetDefaults_OptimizationRun(t *testing.T) {
	tests := []struct {
		name     string
		in       *OptimizationRun
		expected *OptimizationRun
	}{
		{
			name: "empty run",
			in:   &OptimizationRun{},
			expected: &OptimizationRun{
				TypeMeta: metav1.TypeMeta{APIVersion: "optimization.moead.x-k8s.io/v1alpha1", Kind: "OptimizationRun"},
				Spec: OptimizationRunSpec{
					Problem: ProblemSpec{
						Name:          ptr.To("zdt1"),
						NumVariables:  ptr.To(30),
						NumObjectives: ptr.To(2),
					},
					Algorithm: MOEADArgs{
						NumPoints:                 ptr.To(100),
						Decomposition:             ptr.To("tchebycheff"),
						PBITheta:                  ptr.To(5.0),
						NeighborMatingProbability: ptr.To(0.9),
						MaxReplacements:           ptr.To(2),
						CacheEvaluations:          ptr.To(false),
						Variation: VariationArgs{
							CrossoverProbability: ptr.To(1.0),
							CrossoverEta:         ptr.To(20.0),
							MutationProbability:  ptr.To(1.0 / 30),
							MutationEta:          ptr.To(20.0),
						},
					},
					Termination: TerminationSpec{MaxGenerations: ptr.To(200)},
					Seed:        ptr.To[uint64](1),
				},
			},
		},
		{
			name: "three objective dtlz2 with partitions",
			in: &OptimizationRun{
				ObjectMeta: metav1.ObjectMeta{Name: "dtlz2"},
				Spec: OptimizationRunSpec{
					Problem:     ProblemSpec{Name: ptr.To("dtlz2"), NumObjectives: ptr.To(3)},
					Algorithm:   MOEADArgs{Partitions: ptr.To(12), NeighborhoodSize: ptr.To(15)},
					Termination: TerminationSpec{StagnationWindow: ptr.To(10)},
					Seed:        ptr.To[uint64](9),
				},
			},
			expected: &OptimizationRun{
				TypeMeta:   metav1.TypeMeta{APIVersion: "optimization.moead.x-k8s.io/v1alpha1", Kind: "OptimizationRun"},
				ObjectMeta: metav1.ObjectMeta{Name: "dtlz2"},
				Spec: OptimizationRunSpec{
					Problem: ProblemSpec{
						Name:          ptr.To("dtlz2"),
						NumVariables:  ptr.To(12),
						NumObjectives: ptr.To(3),
					},
					Algorithm: MOEADArgs{
						Partitions:                ptr.To(12),
						NeighborhoodSize:          ptr.To(15),
						Decomposition:             ptr.To("pbi"),
						PBITheta:                  ptr.To(5.0),
						NeighborMatingProbability: ptr.To(0.9),
						MaxReplacements:           ptr.To(2),
						CacheEvaluations:          ptr.To(false),
						Variation: VariationArgs{
							CrossoverProbability: ptr.To(1.0),
							CrossoverEta:         ptr.To(20.0),
							MutationProbability:  ptr.To(1.0 / 12),
							MutationEta:          ptr.To(20.0),
						},
					},
					Termination: TerminationSpec{
						MaxGenerations:      ptr.To(200),
						StagnationWindow:    ptr.To(10),
						StagnationTolerance: ptr.To(1e-6),
					},
					Seed: ptr.To[uint64](9),
				},
			},
		},
		{
			name: "unknown problem keeps variables unset",
			in: &OptimizationRun{
				Spec: OptimizationRunSpec{Problem: ProblemSpec{Name: ptr.To("rastrigin")}},
			},
			expected: &OptimizationRun{
				TypeMeta: metav1.TypeMeta{APIVersion: "optimization.moead.x-k8s.io/v1alpha1", Kind: "OptimizationRun"},
				Spec: OptimizationRunSpec{
					Problem: ProblemSpec{Name: ptr.To("rastrigin"), NumObjectives: ptr.To(2)},
					Algorithm: MOEADArgs{
						NumPoints:                 ptr.To(100),
						Decomposition:             ptr.To("tchebycheff"),
						PBITheta:                  ptr.To(5.0),
						NeighborMatingProbability: ptr.To(0.9),
						MaxReplacements:           ptr.To(2),
						CacheEvaluations:          ptr.To(false),
						Variation: VariationArgs{
							CrossoverProbability: ptr.To(1.0),
							CrossoverEta:         ptr.To(20.0),
							MutationEta:          ptr.To(20.0),
						},
					},
					Termination: TerminationSpec{MaxGenerations: ptr.To(200)},
					Seed:        ptr.To[uint64](1),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDefaults_OptimizationRun(tt.in)
			if diff := cmp.Diff(tt.expected, tt.in); diff != "" {
				t.Errorf("unexpected defaults (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetDefaults_OptimizationRunKeepsExplicitValues(t *testing.T) {
	run := &OptimizationRun{
		Spec: OptimizationRunSpec{
			Problem: ProblemSpec{Name: ptr.To("linear")},
			Algorithm: MOEADArgs{
				Decomposition:             ptr.To("weighted-sum"),
				NeighborMatingProbability: ptr.To(0.0),
				Variation:                 VariationArgs{MutationProbability: ptr.To(0.5)},
			},
			Seed: ptr.To[uint64](0),
		},
	}
	SetDefaults_OptimizationRun(run)

	if got := *run.Spec.Algorithm.Decomposition; got != "weighted-sum" {
		t.Errorf("decomposition overwritten: %s", got)
	}
	if got := *run.Spec.Algorithm.NeighborMatingProbability; got != 0 {
		t.Errorf("neighbor mating probability overwritten: %v", got)
	}
	if got := *run.Spec.Algorithm.Variation.MutationProbability; got != 0.5 {
		t.Errorf("mutation probability overwritten: %v", got)
	}
	if got := *run.Spec.Seed; got != 0 {
		t.Errorf("seed overwritten: %v", got)
	}
	if got := *run.Spec.Problem.NumVariables; got != 1 {
		t.Errorf("linear problem should default to 1 variable, got %d", got)
	}
}
