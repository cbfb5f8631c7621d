package barrier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestSetContainsOnlyAddedNodes(t *testing.T) {
	s := NewSet()
	s.Add(datastructure.NodeID(7))

	assert.True(t, s.IsBarrier(datastructure.NodeID(7)))
	assert.False(t, s.IsBarrier(datastructure.NodeID(8)))
	assert.Equal(t, 1, s.Len())
}
