// Package roadgraph declares the narrow, consumer-side interfaces the
// intersection core needs from the road network. Concrete implementations
// live in the memgraph, edgestore, restriction, and barrier subpackages;
// pkg/intersection imports only this package, never its implementations.
package roadgraph

import (
	"context"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

// RoadGraph is the pure, in-memory adjacency the core queries synchronously,
// with no I/O.
type RoadGraph interface {
	OutDegree(node datastructure.NodeID) int
	AdjacentEdges(node datastructure.NodeID) []datastructure.EdgeID
	Target(edge datastructure.EdgeID) datastructure.NodeID
	Source(edge datastructure.EdgeID) datastructure.NodeID
	EdgeData(edge datastructure.EdgeID) datastructure.EdgeData
	// FindEdge returns the edge from->to, or InvalidEdgeID if none exists.
	FindEdge(from, to datastructure.NodeID) datastructure.EdgeID
}

// NodeCoordinateTable is the pure O(1) node id -> coordinate lookup.
type NodeCoordinateTable interface {
	CoordinateOf(node datastructure.NodeID) datastructure.Coordinate
}

// BarrierSet is the pure barrier/access-restricted node membership test.
type BarrierSet interface {
	IsBarrier(node datastructure.NodeID) bool
}

// CompressedEdgeContainer is the only collaborator backed by real I/O
// (pebble): it returns the full, uncompressed polyline geometry recorded
// along an edge, used for representative-coordinate extraction and
// close-to-turn bearing sampling.
type CompressedEdgeContainer interface {
	GetCoordinatesAlongRoad(ctx context.Context, edge datastructure.EdgeID) ([]datastructure.FloatCoordinate, error)
}

// RestrictionIndex is the other I/O-backed collaborator (badger): turn
// restriction lookups keyed by the (from edge, via node) pair.
type RestrictionIndex interface {
	// IsRestricted reports whether turning from "from" via "via" onto "to"
	// is forbidden by a no_* turn restriction.
	IsRestricted(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) (bool, error)
	// OnlyAllowedTurn returns the single edge an only_* restriction forces
	// traffic from "from" via "via" onto, and ok=true if one exists.
	OnlyAllowedTurn(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID) (to datastructure.EdgeID, ok bool, err error)
}
