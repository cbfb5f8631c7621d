package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObviousByRoadClassPrefersHigherPriority(t *testing.T) {
	incoming := RoadClassification{Priority: 2}
	primary := RoadClassification{Priority: 2}
	sideStreet := RoadClassification{Priority: 8}

	assert.True(t, ObviousByRoadClass(incoming, primary, sideStreet))
}

func TestObviousByRoadClassRejectsLowPriority(t *testing.T) {
	incoming := RoadClassification{Priority: 2}
	candidate := RoadClassification{Priority: 2, LowPriority: true}
	other := RoadClassification{Priority: 8}

	assert.False(t, ObviousByRoadClass(incoming, candidate, other))
}

func TestObviousByRoadClassNoDistinction(t *testing.T) {
	incoming := RoadClassification{Priority: 4}
	candidate := RoadClassification{Priority: 4}
	other := RoadClassification{Priority: 5}

	assert.False(t, ObviousByRoadClass(incoming, candidate, other))
}
