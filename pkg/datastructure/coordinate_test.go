package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateRoundTrip(t *testing.T) {
	original := NewFloatCoordinate(-7.565837, 110.831586)

	fixed := FromFloating(original)
	back := fixed.ToFloating()

	assert.InDelta(t, original.Lat, back.Lat, 1e-6)
	assert.InDelta(t, original.Lon, back.Lon, 1e-6)
}

func TestCoordinateIsValid(t *testing.T) {
	assert.True(t, NewCoordinate(110832379, -7566406).IsValid())
	assert.False(t, NewCoordinate(110832379, 95000000).IsValid())
}
