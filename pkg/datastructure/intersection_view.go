package datastructure

import "sort"

// IntersectionViewData is one entry of the legality- and merge-aware
// intersection view: the turn angle relative to the incoming road (0 is a
// u-turn, 180 is straight ahead), whether taking this exit is legal given
// restrictions/barriers/one-way direction, and whether it's the one
// emanating-only-turn destination if a restriction nominates one.
type IntersectionViewData struct {
	Shape      IntersectionShapeData
	Angle      float64
	Entry      bool
	OnlyTurn   bool
	UTurnAngle float64
}

// IntersectionView is the angle-sorted, legality-annotated adjacency of a
// node, anchored so entry 0 is always the u-turn back along the incoming
// road (angle ~ 0).
type IntersectionView []IntersectionViewData

// SortByAngle stable-sorts entries by angle ascending. Stability matters: it
// preserves original graph order among parallel edges sharing the same
// bearing, which is an explicit testable property of the core.
func (v IntersectionView) SortByAngle() {
	sort.SliceStable(v, func(i, j int) bool {
		return v[i].Angle < v[j].Angle
	})
}

// FindClosestTurn returns the index of the entry whose angle is closest to
// angle, restricted to entries with Entry == true. Mirrors OSRM's
// Intersection::findClosestTurn / IntersectionView::findClosestTurn.
func (v IntersectionView) FindClosestTurn(angle float64) int {
	best := -1
	bestDeviation := 360.0
	for i, entry := range v {
		if !entry.Entry {
			continue
		}
		deviation := AngularDeviationDegrees(entry.Angle, angle)
		if deviation < bestDeviation {
			bestDeviation = deviation
			best = i
		}
	}
	return best
}

// Valid reports the invariant OSRM asserts after every transform: non-empty,
// sorted by angle, and entry 0 sits within epsilon of the u-turn angle.
func (v IntersectionView) Valid() bool {
	const epsilon = 0.01
	if len(v) == 0 {
		return false
	}
	for i := 1; i < len(v); i++ {
		if v[i].Angle < v[i-1].Angle {
			return false
		}
	}
	return v[0].Angle < epsilon
}
