package intersection

import (
	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph"
)

// GetActualNextIntersection walks forward from the target of viaEdge across
// any chain of degree-2 nodes (geometry-only OSM nodes that split a way
// without representing a real intersection), stopping at the first node that
// either isn't degree-2, whose continuing edge's data is incompatible with
// viaEdge's (a different road, not just a shape vertex), or that would
// revisit startNode (a one-node loop). Ported from
// intersection_generator.cpp's GetActualNextIntersection.
func GetActualNextIntersection(graph roadgraph.RoadGraph, startNode datastructure.NodeID, viaEdge datastructure.EdgeID) (datastructure.NodeID, datastructure.EdgeID) {
	node := graph.Target(viaEdge)
	edge := viaEdge

	visited := map[datastructure.NodeID]struct{}{startNode: {}}

	for graph.OutDegree(node) == 2 {
		if _, seen := visited[node]; seen {
			break
		}
		visited[node] = struct{}{}

		next, ok := nextNonBackwardEdge(graph, node, edge)
		if !ok {
			break
		}

		target := graph.Target(next)
		if target == startNode {
			break
		}
		if !compatibleEdgeData(graph.EdgeData(edge), graph.EdgeData(next)) {
			break
		}

		node = target
		edge = next
	}

	return node, edge
}

// nextNonBackwardEdge picks the out-edge at node that doesn't lead back to
// where edge came from, i.e. the "continue forward" choice at a degree-2
// pass-through node.
func nextNonBackwardEdge(graph roadgraph.RoadGraph, node datastructure.NodeID, edge datastructure.EdgeID) (datastructure.EdgeID, bool) {
	cameFrom := graph.Source(edge)
	for _, candidate := range graph.AdjacentEdges(node) {
		if graph.Target(candidate) != cameFrom {
			return candidate, true
		}
	}
	return datastructure.InvalidEdgeID, false
}

// compatibleEdgeData reports whether two edges represent the same logical
// road rather than just adjacent OSM ways that happen to meet at a shape
// vertex, so the walk doesn't silently cross onto a different street.
func compatibleEdgeData(a, b datastructure.EdgeData) bool {
	return a.NameID == b.NameID && a.Classification.Priority == b.Classification.Priority
}
