package intersection

import (
	"context"
	"fmt"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/geo"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph"
)

// MaxLaneCountForLookahead clamps the lane count fed into the
// representative-coordinate lookahead scaling, so a bad lane tag on the
// source data can't blow the lookahead distance out past what's sane for a
// real intersection. Overridable via config.Config.MaxLaneCount, mirroring
// datastructure.PriorityDistinctionFactor's wiring.
var MaxLaneCountForLookahead uint8 = 8

// CoordinateExtractor resolves the coordinate used to compute an edge's
// bearing at an intersection, choosing between the cheap "close to turn"
// sample and the more expensive least-squares "representative" coordinate
// based on node degree and the caller's precision flag (lane count only
// scales the representative lookahead), ported from OSRM's
// intersection_generator.cpp's two extraction modes.
type CoordinateExtractor struct {
	edges roadgraph.CompressedEdgeContainer
	nodes roadgraph.NodeCoordinateTable
}

func NewCoordinateExtractor(edges roadgraph.CompressedEdgeContainer, nodes roadgraph.NodeCoordinateTable) *CoordinateExtractor {
	return &CoordinateExtractor{edges: edges, nodes: nodes}
}

// ShouldUseLowPrecisionAngles decides the extraction mode for a node: a
// low-degree intersection (<=2, i.e. a through-road with no real branching)
// has no real ambiguity for the cheap sample to mislead the angle sort, and
// a caller re-deriving a shape it has already committed to treating
// coarsely (see Generator.GetConnectedRoadsLowPrecision) can force the same
// choice explicitly.
func (e *CoordinateExtractor) ShouldUseLowPrecisionAngles(useLowPrecisionAngles bool, intersectionDegree int) bool {
	return useLowPrecisionAngles || intersectionDegree <= 2
}

// GetCoordinateCloseToTurn returns the first recorded coordinate along edge
// past viaNode: the cheap bearing sample.
func (e *CoordinateExtractor) GetCoordinateCloseToTurn(ctx context.Context, edge datastructure.EdgeID, viaNode datastructure.NodeID) (datastructure.FloatCoordinate, error) {
	coords, err := e.edges.GetCoordinatesAlongRoad(ctx, edge)
	if err != nil {
		return datastructure.FloatCoordinate{}, fmt.Errorf("intersection: coordinate close to turn: %w", err)
	}
	if len(coords) == 0 {
		return e.nodes.CoordinateOf(viaNode).ToFloating(), nil
	}
	return coords[0], nil
}

// representativeCoordinateBaseLookaheadMeters is the per-lane distance the
// representative-coordinate regression looks down the road before fitting:
// a wider intersection needs a longer look to get past the lane-merge noise
// right at the junction mouth.
const representativeCoordinateBaseLookaheadMeters = 10.0

// ExtractRepresentativeCoordinate fits a least-squares line through edge's
// recorded geometry out to a lane-count-scaled lookahead distance and
// returns the synthetic far point on that line, the expensive but stable
// bearing sample used whenever the close-to-turn sample would be ambiguous
// (see ShouldUseLowPrecisionAngles).
func (e *CoordinateExtractor) ExtractRepresentativeCoordinate(ctx context.Context, edge datastructure.EdgeID, viaNode datastructure.NodeID, laneCount uint8) (datastructure.FloatCoordinate, error) {
	coords, err := e.edges.GetCoordinatesAlongRoad(ctx, edge)
	if err != nil {
		return datastructure.FloatCoordinate{}, fmt.Errorf("intersection: representative coordinate: %w", err)
	}
	if len(coords) == 0 {
		return e.nodes.CoordinateOf(viaNode).ToFloating(), nil
	}

	lanes := laneCount
	if lanes == 0 {
		lanes = 1
	}
	if lanes > MaxLaneCountForLookahead {
		lanes = MaxLaneCountForLookahead
	}
	lookahead := representativeCoordinateBaseLookaheadMeters * float64(lanes)
	coords = coordinatesWithinLookahead(coords, lookahead)
	if len(coords) < 2 {
		return coords[0], nil
	}

	via := e.nodes.CoordinateOf(viaNode).ToFloating()
	first, last := geo.LeastSquaresRegression(coords)
	// The regression line gives two synthetic endpoints; the one farther
	// from the via node is the one actually pointing away along the road.
	if geo.HaversineDistance(via, first) > geo.HaversineDistance(via, last) {
		return first, nil
	}
	return last, nil
}

// coordinatesWithinLookahead returns the prefix of coords (which run
// outward from the via node) up to and including the first point at or
// beyond lookaheadMeters of cumulative distance.
func coordinatesWithinLookahead(coords []datastructure.FloatCoordinate, lookaheadMeters float64) []datastructure.FloatCoordinate {
	trimmed := coords[:1]
	cumulative := 0.0
	for i := 1; i < len(coords); i++ {
		cumulative += geo.HaversineDistance(coords[i-1], coords[i])
		trimmed = coords[:i+1]
		if cumulative >= lookaheadMeters {
			break
		}
	}
	return trimmed
}

// GetCoordinateForBearing picks the extraction mode per
// ShouldUseLowPrecisionAngles and resolves the coordinate accordingly.
// laneCount scales the lookahead in representative mode and is unused in
// close-to-turn mode.
func (e *CoordinateExtractor) GetCoordinateForBearing(ctx context.Context, edge datastructure.EdgeID, viaNode datastructure.NodeID, intersectionDegree int, laneCount uint8, useLowPrecisionAngles bool) (datastructure.FloatCoordinate, error) {
	if e.ShouldUseLowPrecisionAngles(useLowPrecisionAngles, intersectionDegree) {
		return e.GetCoordinateCloseToTurn(ctx, edge, viaNode)
	}
	return e.ExtractRepresentativeCoordinate(ctx, edge, viaNode, laneCount)
}

// GetLaneCountAtIntersection returns the maximum lane count among the
// adjacent edges in shape, ported from toolkit.hpp's
// getLaneCountAtIntersection.
func GetLaneCountAtIntersection(graph roadgraph.RoadGraph, shape datastructure.IntersectionShape) uint8 {
	var max uint8
	for _, entry := range shape {
		lanes := graph.EdgeData(entry.EdgeID).Classification.NumLanes
		if lanes > max {
			max = lanes
		}
	}
	return max
}
