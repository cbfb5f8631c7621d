package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionModifierMirrorIsInvolution(t *testing.T) {
	for m := UTurn; m <= SharpRight; m++ {
		assert.Equal(t, m, m.Mirror().Mirror())
	}
}

func TestDirectionModifierMirrorPairs(t *testing.T) {
	assert.Equal(t, SharpRight, SharpLeft.Mirror())
	assert.Equal(t, Right, Left.Mirror())
	assert.Equal(t, Straight, Straight.Mirror())
	assert.Equal(t, UTurn, UTurn.Mirror())
}

func TestMirrorViewKeepsUTurnAnchor(t *testing.T) {
	view := IntersectionView{
		{Angle: 0},
		{Angle: 90},
		{Angle: 270},
	}

	mirrored := MirrorView(view)

	assert.True(t, mirrored.Valid())
	assert.InDelta(t, 0, mirrored[0].Angle, mirrorEpsilon)
}
