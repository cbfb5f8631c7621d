package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestBearingNorth(t *testing.T) {
	from := datastructure.NewFloatCoordinate(0, 0)
	to := datastructure.NewFloatCoordinate(1, 0)

	assert.InDelta(t, 0.0, Bearing(from, to), 1e-6)
}

func TestBearingEast(t *testing.T) {
	from := datastructure.NewFloatCoordinate(0, 0)
	to := datastructure.NewFloatCoordinate(0, 1)

	assert.InDelta(t, 90.0, Bearing(from, to), 1e-6)
}

func TestReverseBearing(t *testing.T) {
	assert.InDelta(t, 180.0, ReverseBearing(0), 1e-9)
	assert.InDelta(t, 0.0, ReverseBearing(180), 1e-9)
	assert.InDelta(t, 90.0, ReverseBearing(270), 1e-9)
}

func TestAngleBetweenBearingsUTurnAndStraight(t *testing.T) {
	assert.InDelta(t, 0.0, AngleBetweenBearings(0, 180), 1e-9)
	assert.InDelta(t, 180.0, AngleBetweenBearings(0, 0), 1e-9)
}

func TestAngularDeviationWrapsAround(t *testing.T) {
	assert.InDelta(t, 20.0, AngularDeviation(350, 10), 1e-9)
}
