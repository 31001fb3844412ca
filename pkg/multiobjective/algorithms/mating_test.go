package algorithms

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectParentsFromNeighborhood(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	s := MatingSelector{Delta: 1}
	neighbors := []int{7, 3, 9}

	for range 500 {
		p1, p2 := s.SelectParents(rng, neighbors, 20)
		assert.NotEqual(t, p1, p2)
		assert.Contains(t, neighbors, p1)
		assert.Contains(t, neighbors, p2)
	}
}

func TestSelectParentsFromPopulation(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	s := MatingSelector{Delta: 0}
	seen := map[int]bool{}

	for range 2000 {
		p1, p2 := s.SelectParents(rng, []int{0, 1}, 10)
		assert.NotEqual(t, p1, p2)
		assert.True(t, p1 >= 0 && p1 < 10)
		assert.True(t, p2 >= 0 && p2 < 10)
		seen[p1] = true
		seen[p2] = true
	}
	assert.Len(t, seen, 10, "whole-population sampling must reach every index")
}

func TestSelectParentsSingleNeighborFallsBack(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	s := MatingSelector{Delta: 1}

	for range 200 {
		p1, p2 := s.SelectParents(rng, []int{4}, 6)
		assert.NotEqual(t, p1, p2)
		assert.True(t, p1 >= 0 && p1 < 6)
		assert.True(t, p2 >= 0 && p2 < 6)
	}
}

func TestScope(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	neighbors := []int{2, 1, 3}

	assert.Equal(t, neighbors, MatingSelector{Delta: 1}.Scope(rng, neighbors, 5))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, MatingSelector{Delta: 0}.Scope(rng, neighbors, 5))
}
