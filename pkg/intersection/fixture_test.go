package intersection

import (
	"context"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/roadgraph/memgraph"
)

type fakeEdgeStore struct {
	coords map[datastructure.EdgeID][]datastructure.FloatCoordinate
}

func newFakeEdgeStore() *fakeEdgeStore {
	return &fakeEdgeStore{coords: make(map[datastructure.EdgeID][]datastructure.FloatCoordinate)}
}

func (s *fakeEdgeStore) set(edge datastructure.EdgeID, coords ...datastructure.FloatCoordinate) {
	s.coords[edge] = coords
}

func (s *fakeEdgeStore) GetCoordinatesAlongRoad(ctx context.Context, edge datastructure.EdgeID) ([]datastructure.FloatCoordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.coords[edge], nil
}

type fakeRestrictions struct {
	banned   map[[3]int32]bool
	onlyTurn map[[2]int32]int32
}

func newFakeRestrictions() *fakeRestrictions {
	return &fakeRestrictions{
		banned:   make(map[[3]int32]bool),
		onlyTurn: make(map[[2]int32]int32),
	}
}

func (r *fakeRestrictions) ban(from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) {
	r.banned[[3]int32{int32(from), int32(via), int32(to)}] = true
}

func (r *fakeRestrictions) setOnlyTurn(from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) {
	r.onlyTurn[[2]int32{int32(from), int32(via)}] = int32(to)
}

func (r *fakeRestrictions) IsRestricted(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) (bool, error) {
	return r.banned[[3]int32{int32(from), int32(via), int32(to)}], nil
}

func (r *fakeRestrictions) OnlyAllowedTurn(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID) (datastructure.EdgeID, bool, error) {
	to, ok := r.onlyTurn[[2]int32{int32(from), int32(via)}]
	if !ok {
		return datastructure.InvalidEdgeID, false, nil
	}
	return datastructure.EdgeID(to), true, nil
}

type fakeBarriers struct {
	nodes map[datastructure.NodeID]bool
}

func newFakeBarriers() *fakeBarriers {
	return &fakeBarriers{nodes: make(map[datastructure.NodeID]bool)}
}

func (b *fakeBarriers) add(node datastructure.NodeID) {
	b.nodes[node] = true
}

func (b *fakeBarriers) IsBarrier(node datastructure.NodeID) bool {
	return b.nodes[node]
}

// fixture bundles a memgraph.Graph + coordinate table with the fake
// collaborators, wired into a ready-to-use Collaborators value, matching the
// shape every test in this package needs.
type fixture struct {
	graph        *memgraph.Graph
	coordTable   *memgraph.CoordinateTable
	edges        *fakeEdgeStore
	restrictions *fakeRestrictions
	barriers     *fakeBarriers
}

func newFixture() *fixture {
	return &fixture{
		edges:        newFakeEdgeStore(),
		restrictions: newFakeRestrictions(),
		barriers:     newFakeBarriers(),
	}
}

func (f *fixture) collaborators() Collaborators {
	return Collaborators{
		Graph:        f.graph,
		Edges:        f.edges,
		Nodes:        f.coordTable,
		Restrictions: f.restrictions,
		Barriers:     f.barriers,
	}
}

func floatCoord(lat, lon float64) datastructure.FloatCoordinate {
	return datastructure.NewFloatCoordinate(lat, lon)
}

func fixedCoord(lat, lon float64) datastructure.Coordinate {
	return datastructure.FromFloating(floatCoord(lat, lon))
}
