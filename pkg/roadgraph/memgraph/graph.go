// Package memgraph is the in-memory, read-only RoadGraph implementation:
// a CSR (compressed sparse row) adjacency built once during ingestion,
// generalized from a contraction hierarchy's up/down edges to a single
// flat out-edge list.
package memgraph

import (
	"fmt"
	"sort"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

type pendingEdge struct {
	from, to datastructure.NodeID
	data     datastructure.EdgeData
}

// Graph is built via AddNode/AddEdge while staging, then frozen into CSR
// form by Build. Before Build, the query methods are not valid.
type Graph struct {
	numNodes int
	pending  []pendingEdge
	built    bool

	// CSR form, populated by Build.
	nodeFirstEdge []int32 // len numNodes+1, nodeFirstEdge[n]..nodeFirstEdge[n+1] are n's out-edges
	edgeTarget    []datastructure.NodeID
	edgeSource    []datastructure.NodeID
	edgeData      []datastructure.EdgeData
}

func NewGraph() *Graph {
	return &Graph{}
}

// AddNode reserves the next NodeID and returns it. Nodes must be added
// before any edge referencing them.
func (g *Graph) AddNode() datastructure.NodeID {
	id := datastructure.NodeID(g.numNodes)
	g.numNodes++
	return id
}

// AddEdge stages a directed edge from->to. It returns no EdgeID: edges are
// renumbered by source node during the CSR pack, so an edge's id is known
// only after Build (via FindEdge or AdjacentEdges).
func (g *Graph) AddEdge(from, to datastructure.NodeID, data datastructure.EdgeData) {
	g.pending = append(g.pending, pendingEdge{from: from, to: to, data: data})
}

// Build freezes the staged edges into CSR form. Must be called exactly once,
// after all AddNode/AddEdge calls and before any query method.
func (g *Graph) Build() error {
	if g.built {
		return fmt.Errorf("memgraph: Build called twice")
	}

	outDegree := make([]int32, g.numNodes+1)
	for _, e := range g.pending {
		if int(e.from) < 0 || int(e.from) >= g.numNodes {
			return fmt.Errorf("memgraph: edge source %d out of range", e.from)
		}
		if int(e.to) < 0 || int(e.to) >= g.numNodes {
			return fmt.Errorf("memgraph: edge target %d out of range", e.to)
		}
		outDegree[e.from]++
	}

	nodeFirstEdge := make([]int32, g.numNodes+1)
	for n := 0; n < g.numNodes; n++ {
		nodeFirstEdge[n+1] = nodeFirstEdge[n] + outDegree[n]
	}

	total := nodeFirstEdge[g.numNodes]
	edgeTarget := make([]datastructure.NodeID, total)
	edgeSource := make([]datastructure.NodeID, total)
	edgeData := make([]datastructure.EdgeData, total)

	cursor := make([]int32, g.numNodes)
	copy(cursor, nodeFirstEdge[:g.numNodes])

	// Stable order within a node's out-edges preserves the original
	// insertion (OSM way-member) order, which downstream shape/view sorting
	// relies on for parallel-edge tie-breaking.
	ordered := make([]int, len(g.pending))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return g.pending[ordered[i]].from < g.pending[ordered[j]].from
	})

	for _, idx := range ordered {
		e := g.pending[idx]
		slot := cursor[e.from]
		cursor[e.from]++
		edgeTarget[slot] = e.to
		edgeSource[slot] = e.from
		edgeData[slot] = e.data
	}

	g.nodeFirstEdge = nodeFirstEdge
	g.edgeTarget = edgeTarget
	g.edgeSource = edgeSource
	g.edgeData = edgeData
	g.pending = nil
	g.built = true
	return nil
}

func (g *Graph) OutDegree(node datastructure.NodeID) int {
	return int(g.nodeFirstEdge[node+1] - g.nodeFirstEdge[node])
}

func (g *Graph) AdjacentEdges(node datastructure.NodeID) []datastructure.EdgeID {
	start := g.nodeFirstEdge[node]
	end := g.nodeFirstEdge[node+1]
	edges := make([]datastructure.EdgeID, 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, datastructure.EdgeID(i))
	}
	return edges
}

func (g *Graph) Target(edge datastructure.EdgeID) datastructure.NodeID {
	return g.edgeTarget[edge]
}

func (g *Graph) Source(edge datastructure.EdgeID) datastructure.NodeID {
	return g.edgeSource[edge]
}

func (g *Graph) EdgeData(edge datastructure.EdgeID) datastructure.EdgeData {
	return g.edgeData[edge]
}

func (g *Graph) FindEdge(from, to datastructure.NodeID) datastructure.EdgeID {
	start := g.nodeFirstEdge[from]
	end := g.nodeFirstEdge[from+1]
	for i := start; i < end; i++ {
		if g.edgeTarget[i] == to {
			return datastructure.EdgeID(i)
		}
	}
	return datastructure.InvalidEdgeID
}

func (g *Graph) NumNodes() int {
	return g.numNodes
}

func (g *Graph) NumEdges() int {
	return len(g.edgeTarget)
}
