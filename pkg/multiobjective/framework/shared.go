package framework

import "math"

// NonDominatedSort performs non-dominated sorting on a set of objective
// vectors and returns the fronts as index lists. Front 0 is the set of
// points no other point dominates. Points with non-finite components are
// ranked after every finite point.
func NonDominatedSort(points []ObjectiveSpacePoint) [][]int {
	var fronts [][]int
	dominated := make([][]int, len(points))
	domCount := make([]int, len(points))

	// Calculate domination for each point
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if Dominates(points[i], points[j]) {
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			} else if Dominates(points[j], points[i]) {
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	// Find first front
	var currentFront []int
	var anomalies []int
	for i := 0; i < len(points); i++ {
		if !AllFinite(points[i]) {
			anomalies = append(anomalies, i)
			continue
		}
		if domCount[i] == 0 {
			currentFront = append(currentFront, i)
		}
	}

	// Find subsequent fronts
	for len(currentFront) > 0 {
		fronts = append(fronts, currentFront)
		var nextFront []int
		for _, idx := range currentFront {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 && AllFinite(points[dominatedIdx]) {
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		currentFront = nextFront
	}

	if len(anomalies) > 0 {
		fronts = append(fronts, anomalies)
	}
	return fronts
}

// Dominates checks if point a dominates point b: a is no worse in every
// objective and strictly better in at least one. NaN components never
// dominate.
func Dominates(a, b ObjectiveSpacePoint) bool {
	if !AllFinite(a) {
		return false
	}
	better := false
	for i := 0; i < len(a); i++ {
		if !(a[i] <= b[i]) {
			if math.IsNaN(b[i]) {
				better = true
				continue
			}
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}
