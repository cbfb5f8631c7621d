package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersectionViewSortByAngleIsStable(t *testing.T) {
	view := IntersectionView{
		{Shape: IntersectionShapeData{EdgeID: 3}, Angle: 90},
		{Shape: IntersectionShapeData{EdgeID: 1}, Angle: 0},
		{Shape: IntersectionShapeData{EdgeID: 2}, Angle: 90},
	}

	view.SortByAngle()

	assert.Equal(t, EdgeID(1), view[0].Shape.EdgeID)
	assert.Equal(t, EdgeID(3), view[1].Shape.EdgeID)
	assert.Equal(t, EdgeID(2), view[2].Shape.EdgeID)
}

func TestIntersectionViewValid(t *testing.T) {
	valid := IntersectionView{
		{Angle: 0},
		{Angle: 90},
		{Angle: 180},
	}
	assert.True(t, valid.Valid())

	unsorted := IntersectionView{
		{Angle: 90},
		{Angle: 0},
	}
	assert.False(t, unsorted.Valid())

	noUTurnAnchor := IntersectionView{
		{Angle: 45},
		{Angle: 180},
	}
	assert.False(t, noUTurnAnchor.Valid())
}

func TestIntersectionViewFindClosestTurn(t *testing.T) {
	view := IntersectionView{
		{Angle: 0, Entry: true},
		{Angle: 90, Entry: true},
		{Angle: 170, Entry: false},
		{Angle: 180, Entry: true},
	}

	assert.Equal(t, 1, view.FindClosestTurn(100))
	assert.Equal(t, 3, view.FindClosestTurn(175))
}
