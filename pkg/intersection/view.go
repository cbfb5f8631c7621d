package intersection

import (
	"context"
	"fmt"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/geo"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph"
)

const viewAngleEpsilon = 0.01

// Collaborators bundles the read-only adapters the core queries, so facade
// methods don't have to thread five separate interface parameters through
// every call.
type Collaborators struct {
	Graph        roadgraph.RoadGraph
	Edges        roadgraph.CompressedEdgeContainer
	Nodes        roadgraph.NodeCoordinateTable
	Restrictions roadgraph.RestrictionIndex
	Barriers     roadgraph.BarrierSet
}

// TransformIntersectionShapeIntoView turns a bearing-sorted shape into a
// legality-annotated, angle-sorted view. fromEdge is the edge the traveler
// arrived via; incomingBearing is that edge's bearing looking into viaNode.
// Ported from intersection_generator.cpp's
// TransformIntersectionShapeIntoView, without its merge-aware overload
// (parallel-road merging is out of scope here; see DESIGN.md).
func TransformIntersectionShapeIntoView(
	ctx context.Context,
	collab Collaborators,
	shape datastructure.IntersectionShape,
	viaNode datastructure.NodeID,
	fromEdge datastructure.EdgeID,
	incomingBearing float64,
) (datastructure.IntersectionView, error) {
	onlyTurnDest, hasOnlyTurn, err := GetOnlyAllowedTurnIfExistent(ctx, collab, fromEdge, viaNode)
	if err != nil {
		return nil, fmt.Errorf("intersection: transform shape at node %d: %w", viaNode, err)
	}

	isBarrierNode := collab.Barriers.IsBarrier(viaNode)
	previousNode := datastructure.InvalidNodeID
	if fromEdge.Valid() {
		previousNode = collab.Graph.Source(fromEdge)
	}

	view := make(datastructure.IntersectionView, 0, len(shape))
	for _, entry := range shape {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		angle := geo.AngleBetweenBearings(incomingBearing, entry.Bearing)
		target := collab.Graph.Target(entry.EdgeID)
		edgeData := collab.Graph.EdgeData(entry.EdgeID)

		restricted, err := collab.Restrictions.IsRestricted(ctx, fromEdge, viaNode, entry.EdgeID)
		if err != nil {
			return nil, fmt.Errorf("intersection: restriction lookup at node %d: %w", viaNode, err)
		}

		blockedByBarrier := isBarrierNode && target != previousNode
		isOnlyTurnDestination := hasOnlyTurn && entry.EdgeID == onlyTurnDest

		legal := !edgeData.Reversed && !blockedByBarrier && !restricted
		if hasOnlyTurn {
			legal = legal && isOnlyTurnDestination
		}

		view = append(view, datastructure.IntersectionViewData{
			Shape:      entry,
			Angle:      angle,
			Entry:      legal,
			OnlyTurn:   isOnlyTurnDestination,
			UTurnAngle: geo.ReverseBearing(incomingBearing),
		})
	}

	if err := reevaluateUTurnLegality(ctx, collab, view, viaNode, fromEdge, isBarrierNode, hasOnlyTurn, onlyTurnDest); err != nil {
		return nil, fmt.Errorf("intersection: u-turn re-evaluation at node %d: %w", viaNode, err)
	}

	view.SortByAngle()

	if !view.Valid() {
		panic(fmt.Sprintf("intersection: no u-turn anchor found at node %d (from edge %d)", viaNode, fromEdge))
	}

	return view, nil
}

// reevaluateUTurnLegality re-derives the u-turn entry's legality once the
// rest of the intersection has been classified. Outside a barrier, casual
// u-turns aren't allowed: if the u-turn is currently legal but isn't the
// only legal exit, or if nothing at all is legal, the u-turn is only kept
// (or revived) when it genuinely has no other way out -- its own edge isn't
// one-way or restricted, and the node is a real dead end (at most one
// bidirectional edge touches it). Ported from intersection_generator.cpp's
// dead-end re-evaluation block.
func reevaluateUTurnLegality(
	ctx context.Context,
	collab Collaborators,
	view datastructure.IntersectionView,
	viaNode datastructure.NodeID,
	fromEdge datastructure.EdgeID,
	isBarrierNode bool,
	hasOnlyTurn bool,
	onlyTurnDest datastructure.EdgeID,
) error {
	validCount := 0
	uturnIdx := -1
	for i, entry := range view {
		if entry.Entry {
			validCount++
		}
		if datastructure.AngularDeviationDegrees(entry.Angle, 0) <= viewAngleEpsilon {
			uturnIdx = i
		}
	}

	if uturnIdx == -1 {
		return nil
	}

	reevaluate := (view[uturnIdx].Entry && !isBarrierNode && validCount != 1) || validCount == 0
	if !reevaluate {
		return nil
	}

	uturnEdge := view[uturnIdx].Shape.EdgeID

	if collab.Graph.EdgeData(uturnEdge).Reversed {
		view[uturnIdx].Entry = false
		return nil
	}
	if hasOnlyTurn && uturnEdge != onlyTurnDest {
		view[uturnIdx].Entry = false
		return nil
	}

	restricted, err := collab.Restrictions.IsRestricted(ctx, fromEdge, viaNode, uturnEdge)
	if err != nil {
		return err
	}
	if restricted {
		view[uturnIdx].Entry = false
		return nil
	}

	view[uturnIdx].Entry = bidirectionalEdgeCount(collab.Graph, viaNode) <= 1
	return nil
}

// bidirectionalEdgeCount counts out-edges at node whose reverse edge also
// exists and is not Reversed, i.e. roads that can be traveled both ways
// through this node.
func bidirectionalEdgeCount(graph roadgraph.RoadGraph, node datastructure.NodeID) int {
	count := 0
	for _, edge := range graph.AdjacentEdges(node) {
		target := graph.Target(edge)
		if reverse := graph.FindEdge(target, node); reverse.Valid() && !graph.EdgeData(reverse).Reversed {
			count++
		}
	}
	return count
}

// GetOnlyAllowedTurnIfExistent looks up an only_* restriction for the
// (fromEdge, viaNode) pair and verifies its nominated destination edge is
// still adjacent to viaNode — a restriction referencing an edge that no
// longer exists (deleted way, disconnected extract boundary) is silently
// ignored rather than surfaced as an error, matching OSRM's own graceful
// degradation.
func GetOnlyAllowedTurnIfExistent(ctx context.Context, collab Collaborators, fromEdge datastructure.EdgeID, viaNode datastructure.NodeID) (datastructure.EdgeID, bool, error) {
	dest, ok, err := collab.Restrictions.OnlyAllowedTurn(ctx, fromEdge, viaNode)
	if err != nil || !ok {
		return datastructure.InvalidEdgeID, false, err
	}

	for _, edge := range collab.Graph.AdjacentEdges(viaNode) {
		if edge == dest {
			return dest, true, nil
		}
	}
	return datastructure.InvalidEdgeID, false, nil
}
