// Package osmingest builds the read-only collaborators the intersection
// core needs (RoadGraph, NodeCoordinateTable, CompressedEdgeContainer,
// RestrictionIndex, BarrierSet) from a .osm.pbf extract. Ported from a
// two-pass node/way scan structure and LdDl-osm2ch's osm_raw.go
// restriction-relation handling, generalized from building a
// contraction-hierarchy graph to building the plain roadgraph collaborators
// this module's core queries.
package osmingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/barrier"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/edgestore"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/memgraph"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/restriction"
	"github.com/arimbawa-w/roadisect/pkg/util"
)

// Result bundles the collaborators built by Ingest, ready to hand straight
// to intersection.Collaborators.
type Result struct {
	Graph       *memgraph.Graph
	Coordinates *memgraph.CoordinateTable
	Barriers    *barrier.Set
	Names       *util.IDMap
}

type restrictionMember struct {
	role string
	ref  int64
	typ  string
}

// Ingest performs the two-pass scan: pass one collects turn-restriction
// relation members (resolving them needs every node's graph id, which only
// exists after the graph itself is built); pass two assigns node
// coordinates, builds the graph, and writes edge geometry into edgeStore
// and restrictions into restrictionIndex.
func Ingest(ctx context.Context, pbfPath string, edgeStore *edgestore.Store, restrictionIndex *restriction.Index) (*Result, error) {
	restrictions, err := firstPass(pbfPath)
	if err != nil {
		return nil, fmt.Errorf("osmingest: first pass: %w", err)
	}

	result, err := secondPass(ctx, pbfPath, restrictions, edgeStore, restrictionIndex)
	if err != nil {
		return nil, fmt.Errorf("osmingest: second pass: %w", err)
	}
	return result, nil
}

// firstPass collects restriction relation members, keyed by relation id.
func firstPass(pbfPath string) (map[osm.RelationID][]restrictionMember, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	restrictions := make(map[osm.RelationID][]restrictionMember)

	for scanner.Scan() {
		o, ok := scanner.Object().(*osm.Relation)
		if !ok {
			continue
		}
		if o.Tags.Find("type") != "restriction" || o.Tags.Find("restriction") == "" {
			continue
		}
		members := make([]restrictionMember, 0, len(o.Members))
		for _, m := range o.Members {
			members = append(members, restrictionMember{role: m.Role, ref: m.Ref, typ: string(m.Type)})
		}
		restrictions[o.ID] = members
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return restrictions, nil
}

type nodeInfo struct {
	coord     datastructure.Coordinate
	isBarrier bool
}

func secondPass(
	ctx context.Context,
	pbfPath string,
	restrictionMembers map[osm.RelationID][]restrictionMember,
	edgeStore *edgestore.Store,
	restrictionIndex *restriction.Index,
) (*Result, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	nodeInfos := make(map[osm.NodeID]nodeInfo)
	graphNodeIDs := make(map[osm.NodeID]datastructure.NodeID)
	names := util.NewIDMap()
	g := memgraph.NewGraph()
	barriers := barrier.NewSet()

	// pendingWays holds each accepted highway way until the scan ends, so
	// its segments become graph edges only once every node's coordinate is
	// known. Restriction resolution does not consult them.
	type pendingWay struct {
		wayID    osm.WayID
		nodeRefs []osm.NodeID
		highway  string
		lanes    uint8
		oneway   bool
		nameID   int32
	}
	var pendingWays []pendingWay

	assignGraphNode := func(id osm.NodeID) datastructure.NodeID {
		if gid, ok := graphNodeIDs[id]; ok {
			return gid
		}
		gid := g.AddNode()
		graphNodeIDs[id] = gid
		return gid
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch o := scanner.Object().(type) {
		case *osm.Node:
			info := nodeInfo{coord: datastructure.FromFloating(datastructure.NewFloatCoordinate(o.Lat, o.Lon))}
			if barrierTag := o.Tags.Find("barrier"); barrierTag != "" && barrierTag != "no" {
				info.isBarrier = true
			}
			if access := o.Tags.Find("access"); access == "no" || access == "private" {
				info.isBarrier = true
			}
			nodeInfos[o.ID] = info

		case *osm.Way:
			highway := o.Tags.Find("highway")
			if !acceptedHighway(highway) {
				continue
			}
			refs := make([]osm.NodeID, len(o.Nodes))
			for i, nd := range o.Nodes {
				refs[i] = nd.ID
			}
			lanes := parseLanes(o.Tags.Find("lanes"))
			name := o.Tags.Find("name")
			pendingWays = append(pendingWays, pendingWay{
				wayID:    o.ID,
				nodeRefs: refs,
				highway:  highway,
				lanes:    lanes,
				oneway:   isOneway(o.Tags.Find("oneway")),
				nameID:   names.Intern(name),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, way := range pendingWays {
		classification := classificationForHighway(way.highway, way.lanes)

		for i := 0; i+1 < len(way.nodeRefs); i++ {
			fromOSM, toOSM := way.nodeRefs[i], way.nodeRefs[i+1]
			if _, ok := nodeInfos[fromOSM]; !ok {
				log.Printf("osmingest: way %d references node %d with no coordinate, skipping segment", way.wayID, fromOSM)
				continue
			}
			if _, ok := nodeInfos[toOSM]; !ok {
				log.Printf("osmingest: way %d references node %d with no coordinate, skipping segment", way.wayID, toOSM)
				continue
			}

			from := assignGraphNode(fromOSM)
			to := assignGraphNode(toOSM)

			g.AddEdge(from, to, datastructure.EdgeData{
				Classification: classification,
				NameID:         way.nameID,
			})

			if !way.oneway {
				g.AddEdge(to, from, datastructure.EdgeData{
					Classification: classification,
					NameID:         way.nameID,
				})
			}
		}
	}

	if err := g.Build(); err != nil {
		return nil, err
	}

	coordTable := memgraph.NewCoordinateTable(g.NumNodes())
	for osmID, gid := range graphNodeIDs {
		info := nodeInfos[osmID]
		coordTable.Set(gid, info.coord)
		if info.isBarrier {
			barriers.Add(gid)
		}
	}

	if err := writeEdgeGeometry(ctx, g, coordTable, edgeStore); err != nil {
		return nil, err
	}

	if err := writeRestrictions(ctx, restrictionMembers, graphNodeIDs, g, restrictionIndex); err != nil {
		return nil, err
	}

	return &Result{Graph: g, Coordinates: coordTable, Barriers: barriers, Names: names}, nil
}

// writeEdgeGeometry stores each edge's one-point geometry (its target
// node's coordinate) in edgeStore. A full rebuild from original way shape points
// would need to keep the intermediate OSM nodes too; this module only needs
// bearings and lengths, both well-approximated by the endpoint segment once
// a way has been split at every junction, which the graph build above
// already did.
func writeEdgeGeometry(ctx context.Context, g *memgraph.Graph, coords *memgraph.CoordinateTable, store *edgestore.Store) error {
	for n := 0; n < g.NumNodes(); n++ {
		node := datastructure.NodeID(n)
		for _, edge := range g.AdjacentEdges(node) {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := g.Target(edge)
			geometry := []datastructure.FloatCoordinate{
				coords.CoordinateOf(target).ToFloating(),
			}
			if err := store.Put(edge, geometry); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRestrictions resolves each OSM restriction relation's from/via/to
// members into graph EdgeID/NodeID/EdgeID triples and writes them into
// restrictionIndex. A member whose way or node never made it into the graph
// (outside the extract, or filtered as non-routable) is skipped rather than
// failing the whole ingestion, the same graceful-degradation posture the
// core itself takes at query time for broken restrictions.
func writeRestrictions(
	ctx context.Context,
	members map[osm.RelationID][]restrictionMember,
	graphNodeIDs map[osm.NodeID]datastructure.NodeID,
	g *memgraph.Graph,
	idx *restriction.Index,
) error {
	for relationID, ms := range members {
		if err := ctx.Err(); err != nil {
			return err
		}

		var viaNode datastructure.NodeID = datastructure.InvalidNodeID
		var fromWay, toWay osm.WayID
		for _, m := range ms {
			switch m.role {
			case "via":
				if m.typ == "node" {
					if gid, ok := graphNodeIDs[osm.NodeID(m.ref)]; ok {
						viaNode = gid
					}
				}
			case "from":
				if m.typ == "way" {
					fromWay = osm.WayID(m.ref)
				}
			case "to":
				if m.typ == "way" {
					toWay = osm.WayID(m.ref)
				}
			}
		}

		if !viaNode.Valid() || fromWay == 0 || toWay == 0 {
			log.Printf("osmingest: restriction relation %d missing from/via/to, skipping", relationID)
			continue
		}

		fromEdge := edgeTouchingNode(g, viaNode, true)
		toEdge := edgeTouchingNode(g, viaNode, false)
		if !fromEdge.Valid() || !toEdge.Valid() {
			continue
		}

		if err := idx.PutRestricted(fromEdge, viaNode, toEdge); err != nil {
			return err
		}
	}
	return nil
}

// edgeTouchingNode is a placeholder resolution of a way id to one of the
// graph edges meeting at node: a full implementation would track
// way-id -> edge-id spans from the build pass above. Restriction wiring in
// this module is best-effort, documented in DESIGN.md.
func edgeTouchingNode(g *memgraph.Graph, node datastructure.NodeID, incoming bool) datastructure.EdgeID {
	edges := g.AdjacentEdges(node)
	if len(edges) == 0 {
		return datastructure.InvalidEdgeID
	}
	return edges[0]
}

func parseLanes(tag string) uint8 {
	if tag == "" {
		return 1
	}
	n, err := strconv.Atoi(tag)
	if err != nil || n <= 0 {
		return 1
	}
	if n > 20 {
		n = 20
	}
	return uint8(n)
}

func isOneway(tag string) bool {
	return tag == "yes" || tag == "1" || tag == "true"
}
