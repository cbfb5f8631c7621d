// Package intersection is the core: it turns a road graph into the
// bearing-sorted, legality-annotated view of what a traveler can do at each
// intersection, the Go port of OSRM's extractor/guidance intersection
// generator. It depends only on the roadgraph interfaces, never on a
// concrete graph/store implementation.
package intersection

import (
	"context"
	"fmt"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/geo"
)

// Generator is the façade gluing C2-C6 together: given the edge a traveler
// arrived on, it produces the full view of the intersection at that edge's
// target node. Construct once per process against the read-only
// collaborators; Generator itself holds no mutable state and is safe for
// concurrent use by many goroutines.
type Generator struct {
	collab    Collaborators
	extractor *CoordinateExtractor
}

func NewGenerator(collab Collaborators) *Generator {
	return &Generator{
		collab:    collab,
		extractor: NewCoordinateExtractor(collab.Edges, collab.Nodes),
	}
}

// GetConnectedRoads returns the intersection view at the node fromEdge leads
// into, using the full representative-coordinate precision at
// high-degree nodes. Ported from intersection_generator.cpp's public
// operator(), which calls GetConnectedRoads with USE_HIGH_PRECISION_MODE.
func (g *Generator) GetConnectedRoads(ctx context.Context, fromEdge datastructure.EdgeID) (datastructure.IntersectionView, error) {
	return g.getConnectedRoads(ctx, fromEdge, false)
}

// GetConnectedRoadsLowPrecision is the precision-flag variant of
// GetConnectedRoads: it forces the cheap close-to-turn bearing sample at
// every adjacent edge, for callers (merge/mirror re-evaluation) that have
// already committed to treating this shape coarsely and don't want the
// representative-coordinate regression's cost or its sensitivity to
// upstream geometry changes.
func (g *Generator) GetConnectedRoadsLowPrecision(ctx context.Context, fromEdge datastructure.EdgeID) (datastructure.IntersectionView, error) {
	return g.getConnectedRoads(ctx, fromEdge, true)
}

func (g *Generator) getConnectedRoads(ctx context.Context, fromEdge datastructure.EdgeID, useLowPrecisionAngles bool) (datastructure.IntersectionView, error) {
	viaNode := g.collab.Graph.Target(fromEdge)

	incomingBearing, err := g.incomingBearing(ctx, fromEdge, viaNode)
	if err != nil {
		return nil, fmt.Errorf("intersection: get connected roads at node %d: %w", viaNode, err)
	}

	shape, err := ComputeIntersectionShape(ctx, g.collab.Graph, g.extractor, viaNode, geo.ReverseBearing(incomingBearing), useLowPrecisionAngles)
	if err != nil {
		return nil, err
	}

	return TransformIntersectionShapeIntoView(ctx, g.collab, shape, viaNode, fromEdge, incomingBearing)
}

// GetActualNextIntersection skips forward across any chain of trivial
// degree-2 nodes starting at the target of fromEdge, then returns the
// connected-roads view at the first real intersection found along with the
// edge and node the walk actually resolved to, so a caller juggling the
// original fromEdge for guidance text can tell the two apart.
func (g *Generator) GetActualNextIntersection(ctx context.Context, fromEdge datastructure.EdgeID) (view datastructure.IntersectionView, resolvedFrom datastructure.EdgeID, resolvedVia datastructure.NodeID, err error) {
	startNode := g.collab.Graph.Source(fromEdge)
	resolvedVia, resolvedFrom = GetActualNextIntersection(g.collab.Graph, startNode, fromEdge)

	view, err = g.GetConnectedRoads(ctx, resolvedFrom)
	if err != nil {
		return nil, datastructure.InvalidEdgeID, datastructure.InvalidNodeID, err
	}
	return view, resolvedFrom, resolvedVia, nil
}

// incomingBearing is the bearing of travel arriving at viaNode along
// fromEdge, sampled symmetrically with the outgoing bearings: close to the
// node along fromEdge's reverse direction if that edge exists, else the
// straight-line bearing between the two nodes' coordinates.
func (g *Generator) incomingBearing(ctx context.Context, fromEdge datastructure.EdgeID, viaNode datastructure.NodeID) (float64, error) {
	sourceNode := g.collab.Graph.Source(fromEdge)
	viaCoord := g.collab.Nodes.CoordinateOf(viaNode).ToFloating()

	if reverseEdge := g.collab.Graph.FindEdge(viaNode, sourceNode); reverseEdge.Valid() {
		near, err := g.extractor.GetCoordinateCloseToTurn(ctx, reverseEdge, viaNode)
		if err != nil {
			return 0, err
		}
		return geo.ReverseBearing(geo.Bearing(viaCoord, near)), nil
	}

	sourceCoord := g.collab.Nodes.CoordinateOf(sourceNode).ToFloating()
	return geo.Bearing(sourceCoord, viaCoord), nil
}
