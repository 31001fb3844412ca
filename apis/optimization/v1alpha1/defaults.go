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
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/moead/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/moead/pkg/multiobjective/decomposition"
)

var (
	defaultProblemName               = "zdt1"
	defaultNumObjectives             = 2
	defaultNumPoints                 = 100
	defaultPBITheta                  = decomposition.DefaultTheta
	defaultNeighborMatingProbability = 0.9
	defaultMaxReplacements           = 2
	defaultSeed               uint64 = 1
	defaultMaxGenerations            = 200
	defaultCrossoverProbability      = 1.0
	defaultDistributionIndex         = 20.0
	defaultStagnationTolerance       = 1e-6
)

// SetDefaults_OptimizationRun fills every unset field of obj.Spec. The
// neighborhood size is left alone because it depends on the population
// size, which is only known once the reference directions are built.
func SetDefaults_OptimizationRun(obj *OptimizationRun) {
	klog.V(5).InfoS("Setting defaults", "kind", Kind, "name", obj.Name)

	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}

	spec := &obj.Spec
	if spec.Problem.Name == nil {
		spec.Problem.Name = ptr.To(defaultProblemName)
	}
	if spec.Problem.NumObjectives == nil {
		spec.Problem.NumObjectives = ptr.To(defaultNumObjectives)
	}
	if spec.Problem.NumVariables == nil {
		if n := benchmarks.DefaultNumVariables(*spec.Problem.Name, *spec.Problem.NumObjectives); n > 0 {
			spec.Problem.NumVariables = ptr.To(n)
		}
	}

	args := &spec.Algorithm
	if args.Partitions == nil && args.NumPoints == nil {
		args.NumPoints = ptr.To(defaultNumPoints)
	}
	if args.Decomposition == nil {
		args.Decomposition = ptr.To(string(decomposition.Default(*spec.Problem.NumObjectives)))
	}
	if args.PBITheta == nil {
		args.PBITheta = ptr.To(defaultPBITheta)
	}
	if args.NeighborMatingProbability == nil {
		args.NeighborMatingProbability = ptr.To(defaultNeighborMatingProbability)
	}
	if args.MaxReplacements == nil {
		args.MaxReplacements = ptr.To(defaultMaxReplacements)
	}
	if args.CacheEvaluations == nil {
		args.CacheEvaluations = ptr.To(false)
	}
	setDefaultsVariationArgs(&args.Variation, spec.Problem.NumVariables)

	if spec.Termination.MaxGenerations == nil {
		spec.Termination.MaxGenerations = ptr.To(defaultMaxGenerations)
	}
	if spec.Termination.StagnationWindow != nil && spec.Termination.StagnationTolerance == nil {
		spec.Termination.StagnationTolerance = ptr.To(defaultStagnationTolerance)
	}

	if spec.Seed == nil {
		spec.Seed = ptr.To(defaultSeed)
	}
}

func setDefaultsVariationArgs(args *VariationArgs, numVariables *int) {
	if args.CrossoverProbability == nil {
		args.CrossoverProbability = ptr.To(defaultCrossoverProbability)
	}
	if args.CrossoverEta == nil {
		args.CrossoverEta = ptr.To(defaultDistributionIndex)
	}
	if args.MutationProbability == nil && numVariables != nil && *numVariables > 0 {
		args.MutationProbability = ptr.To(1 / float64(*numVariables))
	}
	if args.MutationEta == nil {
		args.MutationEta = ptr.To(defaultDistributionIndex)
	}
}
