package geo

import (
	"math"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

const regressionEpsilon = 1e-12

// LeastSquaresRegression fits a line through coords and returns two synthetic
// points far outside the coordinate's own lon range, evaluated on that line,
// so a caller can compute a stable bearing even from a very short or noisy
// polyline. Ported from OSRM's toolkit.hpp::leastSquareRegression: degenerate
// input (near-vertical line, divisor underflow) falls back to the original
// front/back coordinates unchanged.
func LeastSquaresRegression(coords []datastructure.FloatCoordinate) (first, last datastructure.FloatCoordinate) {
	if len(coords) < 2 {
		if len(coords) == 1 {
			return coords[0], coords[0]
		}
		return datastructure.FloatCoordinate{}, datastructure.FloatCoordinate{}
	}

	var sumLon, sumLat, sumLonLat, sumLonSq float64
	minLon, maxLon := coords[0].Lon, coords[0].Lon

	for _, c := range coords {
		sumLon += c.Lon
		sumLat += c.Lat
		sumLonLat += c.Lon * c.Lat
		sumLonSq += c.Lon * c.Lon
		if c.Lon < minLon {
			minLon = c.Lon
		}
		if c.Lon > maxLon {
			maxLon = c.Lon
		}
	}

	n := float64(len(coords))
	divisor := n*sumLonSq - sumLon*sumLon

	if math.Abs(divisor) < regressionEpsilon {
		// Near-vertical spread in longitude: a line fit would blow up, so
		// hand back the original endpoints instead of a synthetic pair.
		return coords[0], coords[len(coords)-1]
	}

	slope := (n*sumLonLat - sumLon*sumLat) / divisor
	intercept := (-sumLon*sumLonLat + sumLonSq*sumLat) / divisor

	evalLon := func(lon float64) datastructure.FloatCoordinate {
		return datastructure.FloatCoordinate{Lon: lon, Lat: slope*lon + intercept}
	}

	first = evalLon(minLon - 1)
	last = evalLon(maxLon + 1)
	return first, last
}
