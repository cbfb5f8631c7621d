package memgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func buildFourWay(t *testing.T) *Graph {
	g := NewGraph()
	center := g.AddNode()
	north := g.AddNode()
	east := g.AddNode()
	south := g.AddNode()
	west := g.AddNode()

	g.AddEdge(center, north, datastructure.EdgeData{})
	g.AddEdge(center, east, datastructure.EdgeData{})
	g.AddEdge(center, south, datastructure.EdgeData{})
	g.AddEdge(center, west, datastructure.EdgeData{})

	require.NoError(t, g.Build())
	return g
}

func TestGraphOutDegreeAndAdjacency(t *testing.T) {
	g := buildFourWay(t)
	center := datastructure.NodeID(0)

	assert.Equal(t, 4, g.OutDegree(center))
	assert.Len(t, g.AdjacentEdges(center), 4)
	assert.Equal(t, 0, g.OutDegree(datastructure.NodeID(1)))
}

func TestGraphFindEdge(t *testing.T) {
	g := buildFourWay(t)
	center := datastructure.NodeID(0)
	north := datastructure.NodeID(1)

	edge := g.FindEdge(center, north)
	require.True(t, edge.Valid())
	assert.Equal(t, north, g.Target(edge))
	assert.Equal(t, center, g.Source(edge))

	assert.False(t, g.FindEdge(north, center).Valid())
}

func TestGraphBuildTwiceErrors(t *testing.T) {
	g := buildFourWay(t)
	assert.Error(t, g.Build())
}

func TestGraphPreservesInsertionOrderAmongParallelEdges(t *testing.T) {
	g := NewGraph()
	a := g.AddNode()
	b := g.AddNode()

	g.AddEdge(a, b, datastructure.EdgeData{NameID: 1})
	g.AddEdge(a, b, datastructure.EdgeData{NameID: 2})

	require.NoError(t, g.Build())

	edges := g.AdjacentEdges(a)
	require.Len(t, edges, 2)
	assert.Equal(t, int32(1), g.EdgeData(edges[0]).NameID)
	assert.Equal(t, int32(2), g.EdgeData(edges[1]).NameID)
}
