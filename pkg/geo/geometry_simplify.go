package geo

import (
	"container/list"
	"math"

	"github.com/golang/geo/s2"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

const douglasPeuckerThresholdMeters = 7.0

// SimplifyPolyline reduces a polyline to its Douglas-Peucker-significant
// points at a 7m threshold. Neither ingestion nor the edge store calls it:
// polylines are stored as given, and the intersection core always works off
// that untouched recorded geometry.
// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/
func SimplifyPolyline(coords []datastructure.FloatCoordinate) []datastructure.FloatCoordinate {
	size := len(coords)
	if size < 2 {
		return coords
	}

	kept := make([]bool, size)
	kept[0] = true
	kept[size-1] = true

	stack := list.New()
	stack.PushBack([2]int{0, size - 1})

	for stack.Len() > 0 {
		pair := stack.Remove(stack.Back()).([2]int)
		left, right := pair[0], pair[1]

		var maxDist float64
		farthest := left
		for i := left + 1; i < right; i++ {
			dist := PointLinePerpendicularDistance(coords[left], coords[right], coords[i])
			if dist > maxDist {
				maxDist = dist
				farthest = i
			}
		}

		if maxDist > douglasPeuckerThresholdMeters {
			kept[farthest] = true
			if left < farthest {
				stack.PushBack([2]int{left, farthest})
			}
			if farthest < right {
				stack.PushBack([2]int{farthest, right})
			}
		}
	}

	simplified := make([]datastructure.FloatCoordinate, 0, size)
	for i, keep := range kept {
		if keep {
			simplified = append(simplified, coords[i])
		}
	}
	return simplified
}

// PointLinePerpendicularDistance returns the great-circle distance in
// meters from point to its projection onto the line segment (lineStart,
// lineEnd).
func PointLinePerpendicularDistance(lineStart, lineEnd, point datastructure.FloatCoordinate) float64 {
	projected := ProjectPointToLine(lineStart, lineEnd, point)
	return HaversineDistance(point, projected)
}

// ProjectPointToLine projects point onto the great-circle segment between
// lineStart and lineEnd via s2.Project.
func ProjectPointToLine(lineStart, lineEnd, point datastructure.FloatCoordinate) datastructure.FloatCoordinate {
	startS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lineStart.Lat, lineStart.Lon))
	endS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lineEnd.Lat, lineEnd.Lon))
	pointS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(point.Lat, point.Lon))

	projection := s2.Project(pointS2, startS2, endS2)
	projected := s2.LatLngFromPoint(projection)
	return datastructure.FloatCoordinate{Lat: projected.Lat.Degrees(), Lon: projected.Lng.Degrees()}
}

const tolerancePointInLine = 1e-3

// PointOnLineIndex returns the index i such that the query point's
// projection lies between linePoints[i-1] and linePoints[i], or 0 if it
// doesn't fall between any consecutive pair within tolerance.
func PointOnLineIndex(query datastructure.FloatCoordinate, linePoints []datastructure.FloatCoordinate) int {
	minDiff := math.MaxFloat64
	var pos int
	for i := 0; i < len(linePoints)-1; i++ {
		queryToCurr := s2.LatLngFromDegrees(query.Lat, query.Lon).Distance(s2.LatLngFromDegrees(linePoints[i].Lat, linePoints[i].Lon)).Radians()
		queryToNext := s2.LatLngFromDegrees(query.Lat, query.Lon).Distance(s2.LatLngFromDegrees(linePoints[i+1].Lat, linePoints[i+1].Lon)).Radians()
		currToNext := s2.LatLngFromDegrees(linePoints[i].Lat, linePoints[i].Lon).Distance(s2.LatLngFromDegrees(linePoints[i+1].Lat, linePoints[i+1].Lon)).Radians()

		diff := math.Abs(queryToCurr + queryToNext - currToNext)
		if diff < tolerancePointInLine && diff < minDiff {
			minDiff = diff
			pos = i + 1
		}
	}
	return pos
}
