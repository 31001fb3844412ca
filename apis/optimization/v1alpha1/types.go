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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// OptimizationRun describes one MOEA/D run against a benchmark problem and,
// once the run finished, what it found.
type OptimizationRun struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   OptimizationRunSpec   `json:"spec,omitempty"`
	Status OptimizationRunStatus `json:"status,omitempty"`
}

// OptimizationRunSpec defines the problem, the algorithm settings and when to stop
type OptimizationRunSpec struct {
	Problem     ProblemSpec     `json:"problem,omitempty"`
	Algorithm   MOEADArgs       `json:"algorithm,omitempty"`
	Termination TerminationSpec `json:"termination,omitempty"`

	// Seed initializes the random source. Two runs with the same spec and
	// seed produce identical results.
	Seed *uint64 `json:"seed,omitempty"`
}

// ProblemSpec selects a registered benchmark problem
type ProblemSpec struct {
	// Name is one of zdt1, dtlz1, dtlz2 or linear.
	Name          *string `json:"name,omitempty"`
	NumVariables  *int    `json:"numVariables,omitempty"`
	NumObjectives *int    `json:"numObjectives,omitempty"`
}

// MOEADArgs holds the arguments used to configure the MOEA/D algorithm
type MOEADArgs struct {
	// Partitions is the number of simplex-lattice divisions used to build
	// the reference directions. Mutually exclusive with NumPoints.
	Partitions *int `json:"partitions,omitempty"`

	// NumPoints requests an exact number of reference directions (the
	// population size).
	NumPoints *int `json:"numPoints,omitempty"`

	// NeighborhoodSize is the number of closest directions each subproblem
	// cooperates with. Defaults to min(20, population size).
	NeighborhoodSize *int `json:"neighborhoodSize,omitempty"`

	// +kubebuilder:validation:Enum=weighted-sum;tchebycheff;pbi
	Decomposition *string  `json:"decomposition,omitempty"`
	PBITheta      *float64 `json:"pbiTheta,omitempty"`

	// NeighborMatingProbability is the chance that parents and the update
	// scope come from the neighborhood rather than the whole population.
	NeighborMatingProbability *float64 `json:"neighborMatingProbability,omitempty"`

	// MaxReplacements caps how many subproblems one offspring may take over.
	MaxReplacements *int `json:"maxReplacements,omitempty"`

	Variation VariationArgs `json:"variation,omitempty"`

	// CacheEvaluations memoizes objective vectors of repeated decision
	// vectors.
	CacheEvaluations *bool `json:"cacheEvaluations,omitempty"`
}

// VariationArgs configures SBX crossover and polynomial mutation
type VariationArgs struct {
	CrossoverProbability *float64 `json:"crossoverProbability,omitempty"`
	CrossoverEta         *float64 `json:"crossoverEta,omitempty"`
	// MutationProbability is per variable. Defaults to 1/numVariables.
	MutationProbability *float64 `json:"mutationProbability,omitempty"`
	MutationEta         *float64 `json:"mutationEta,omitempty"`
}

// TerminationSpec defines when a run stops. The run stops as soon as any
// configured criterion is met.
type TerminationSpec struct {
	MaxGenerations *int `json:"maxGenerations,omitempty"`

	// StagnationWindow stops the run once the ideal point has not improved
	// by more than StagnationTolerance for this many generations. Unset
	// disables the criterion.
	StagnationWindow    *int     `json:"stagnationWindow,omitempty"`
	StagnationTolerance *float64 `json:"stagnationTolerance,omitempty"`
}

// OptimizationRunStatus defines the observed outcome of an OptimizationRun
type OptimizationRunStatus struct {
	// +kubebuilder:validation:Enum=Succeeded;Failed
	Phase RunPhase `json:"phase,omitempty"`

	Generations  int `json:"generations,omitempty"`
	Evaluations  int `json:"evaluations,omitempty"`
	Replacements int `json:"replacements,omitempty"`
	// CacheHits counts evaluations answered from the evaluation cache
	CacheHits int64 `json:"cacheHits,omitempty"`

	IdealPoint []float64 `json:"idealPoint,omitempty"`

	// Solutions contains the non-dominated members of the final population
	Solutions []Solution `json:"solutions,omitempty"`

	StartTime      *metav1.Time `json:"startTime,omitempty"`
	CompletionTime *metav1.Time `json:"completionTime,omitempty"`

	// Message explains a failed run
	Message string `json:"message,omitempty"`
}

// RunPhase represents the phase of an OptimizationRun
type RunPhase string

const (
	// RunPhaseSucceeded indicates the run reached its termination criterion
	RunPhaseSucceeded RunPhase = "Succeeded"

	// RunPhaseFailed indicates the run was rejected or aborted
	RunPhaseFailed RunPhase = "Failed"
)

// Solution is one non-dominated member of the final population
type Solution struct {
	// Subproblem is the index of the reference direction the solution
	// belongs to
	Subproblem int       `json:"subproblem"`
	Weights    []float64 `json:"weights"`
	Variables  []float64 `json:"variables"`
	Objectives []float64 `json:"objectives"`
}
