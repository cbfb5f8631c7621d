package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestSimplifyPolylineDropsNearlyStraightPoints(t *testing.T) {
	coords := []datastructure.FloatCoordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
		{Lat: -7.566406, Lon: 110.833232},
	}

	simplified := SimplifyPolyline(coords)

	assert.LessOrEqual(t, len(simplified), 2)
}

func TestPointOnLineIndex(t *testing.T) {
	query := datastructure.NewFloatCoordinate(47.667347, -122.120561)
	linePoints := []datastructure.FloatCoordinate{
		datastructure.NewFloatCoordinate(47.667324, -122.118989),
		datastructure.NewFloatCoordinate(47.667338, -122.121784),
	}

	assert.Equal(t, 1, PointOnLineIndex(query, linePoints))
}
