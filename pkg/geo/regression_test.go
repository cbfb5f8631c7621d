package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestLeastSquaresRegressionStraightLine(t *testing.T) {
	coords := []datastructure.FloatCoordinate{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
	}

	first, last := LeastSquaresRegression(coords)

	assert.InDelta(t, first.Lat, first.Lon, 1e-6)
	assert.InDelta(t, last.Lat, last.Lon, 1e-6)
	assert.True(t, last.Lon > first.Lon)
}

func TestLeastSquaresRegressionDegenerateFallsBack(t *testing.T) {
	coords := []datastructure.FloatCoordinate{
		{Lat: 0, Lon: 5},
		{Lat: 1, Lon: 5},
		{Lat: 2, Lon: 5},
	}

	first, last := LeastSquaresRegression(coords)

	assert.Equal(t, coords[0], first)
	assert.Equal(t, coords[len(coords)-1], last)
}
