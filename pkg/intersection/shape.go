package intersection

import (
	"context"
	"fmt"
	"sort"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/geo"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph"
)

// ComputeIntersectionShape builds the bearing-sorted adjacency of viaNode,
// excluding nothing: every out-edge at viaNode gets an entry, including the
// one that leads back along fromEdge (the u-turn). Ported from
// intersection_generator.cpp's ComputeIntersectionShape.
//
// baseBearing anchors the sort: entries are ordered by their angular offset
// from baseBearing ascending, so the u-turn (whose bearing sits at
// baseBearing itself) sorts first. Pass the reverse bearing of fromEdge as
// baseBearing when fromEdge is known, or any fixed bearing (e.g. 0) for the
// first call in a chain with no real predecessor.
//
// useLowPrecisionAngles forces the cheap close-to-turn bearing sample at
// every edge regardless of node degree, for callers re-deriving a shape
// they've already committed to treating coarsely (see
// Generator.GetConnectedRoadsLowPrecision); ordinary callers pass false and
// let CoordinateExtractor.ShouldUseLowPrecisionAngles decide per node.
func ComputeIntersectionShape(
	ctx context.Context,
	graph roadgraph.RoadGraph,
	extractor *CoordinateExtractor,
	viaNode datastructure.NodeID,
	baseBearing float64,
	useLowPrecisionAngles bool,
) (datastructure.IntersectionShape, error) {
	edges := graph.AdjacentEdges(viaNode)
	shape := make(datastructure.IntersectionShape, 0, len(edges))

	laneCount := GetLaneCountAtIntersection(graph, shapeFromEdges(edges))
	degree := len(edges)
	viaCoord := nodeCoordinate(extractor, viaNode)

	for _, edge := range edges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		coords, err := extractor.edges.GetCoordinatesAlongRoad(ctx, edge)
		if err != nil {
			return nil, fmt.Errorf("intersection: compute shape at node %d: %w", viaNode, err)
		}
		segmentLength := geo.HaversineLength(coords)

		far, err := extractor.GetCoordinateForBearing(ctx, edge, viaNode, degree, laneCount, useLowPrecisionAngles)
		if err != nil {
			return nil, fmt.Errorf("intersection: compute shape at node %d: %w", viaNode, err)
		}

		bearing := geo.Bearing(viaCoord, far)
		shape = append(shape, datastructure.IntersectionShapeData{EdgeID: edge, Bearing: bearing, SegmentLength: segmentLength})
	}

	sort.SliceStable(shape, func(i, j int) bool {
		return angularOffset(shape[i].Bearing, baseBearing) < angularOffset(shape[j].Bearing, baseBearing)
	})

	return shape, nil
}

func shapeFromEdges(edges []datastructure.EdgeID) datastructure.IntersectionShape {
	shape := make(datastructure.IntersectionShape, len(edges))
	for i, e := range edges {
		shape[i] = datastructure.IntersectionShapeData{EdgeID: e}
	}
	return shape
}

func nodeCoordinate(extractor *CoordinateExtractor, node datastructure.NodeID) datastructure.FloatCoordinate {
	return extractor.nodes.CoordinateOf(node).ToFloating()
}

// angularOffset is the clockwise angular distance from base to bearing,
// normalized into [0, 360), used to rank shape entries by how far they sit
// from the sort anchor rather than by raw compass bearing.
func angularOffset(bearing, base float64) float64 {
	offset := bearing - base
	for offset < 0 {
		offset += 360
	}
	for offset >= 360 {
		offset -= 360
	}
	return offset
}
