package geo

import (
	"github.com/golang/geo/s2"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

const earthRadiusM = 6371008.8

// HaversineDistance returns the great-circle distance in meters between two
// WGS84 points, via s2's spherical-distance primitive rather than a
// hand-rolled haversine: same result, one less place to get the formula
// wrong.
func HaversineDistance(a, b datastructure.FloatCoordinate) float64 {
	ll1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	ll2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return ll1.Distance(ll2).Radians() * earthRadiusM
}

// HaversineLength sums the pairwise distance along a polyline, used by
// intersection.ComputeIntersectionShape to fill in each entry's
// SegmentLength.
func HaversineLength(coords []datastructure.FloatCoordinate) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += HaversineDistance(coords[i-1], coords[i])
	}
	return total
}
