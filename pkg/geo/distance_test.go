package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestHaversineDistanceKnownPoints(t *testing.T) {
	jakarta := datastructure.NewFloatCoordinate(-6.200000, 106.816666)
	bandung := datastructure.NewFloatCoordinate(-6.914744, 107.609810)

	dist := HaversineDistance(jakarta, bandung)

	assert.InDelta(t, 118000, dist, 5000)
}

func TestHaversineLengthSumsSegments(t *testing.T) {
	coords := []datastructure.FloatCoordinate{
		datastructure.NewFloatCoordinate(-7.565837, 110.831586),
		datastructure.NewFloatCoordinate(-7.566063, 110.832379),
		datastructure.NewFloatCoordinate(-7.566406, 110.833232),
	}

	total := HaversineLength(coords)
	a := HaversineDistance(coords[0], coords[1])
	b := HaversineDistance(coords[1], coords[2])

	assert.InDelta(t, a+b, total, 1e-6)
}
