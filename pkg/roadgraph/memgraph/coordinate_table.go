package memgraph

import (
	"errors"

	h3 "github.com/uber/h3-go/v4"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
	"github.com/arimbawa-w/roadisect/pkg/geo"
)

// h3Resolution matches pkg/kv/kv_db.go's street-bucketing resolution.
const h3Resolution = 9

var ErrNoNearbyNode = errors.New("memgraph: no node within search radius")

// CoordinateTable is a dense NodeID -> Coordinate array, the simplest
// possible implementation of roadgraph.NodeCoordinateTable: one slice,
// indexed directly, no hashing. It also keeps an H3 cell bucket index
// purely for the debug tool's nearest-node lookup; the core's own queries
// never touch it.
type CoordinateTable struct {
	coords []datastructure.Coordinate
	cells  map[h3.Cell][]datastructure.NodeID
}

func NewCoordinateTable(numNodes int) *CoordinateTable {
	return &CoordinateTable{
		coords: make([]datastructure.Coordinate, numNodes),
		cells:  make(map[h3.Cell][]datastructure.NodeID),
	}
}

func (t *CoordinateTable) Set(node datastructure.NodeID, c datastructure.Coordinate) {
	t.coords[node] = c
	cell := cellOf(c)
	t.cells[cell] = append(t.cells[cell], node)
}

func (t *CoordinateTable) CoordinateOf(node datastructure.NodeID) datastructure.Coordinate {
	return t.coords[node]
}

func (t *CoordinateTable) Len() int {
	return len(t.coords)
}

func cellOf(c datastructure.Coordinate) h3.Cell {
	f := c.ToFloating()
	return h3.LatLngToCell(h3.NewLatLng(f.Lat, f.Lon), h3Resolution)
}

// NearestNode finds the node closest to (lat, lon) by widening an H3 grid
// disk search until a candidate ring is non-empty, then picking the
// haversine-closest node among the candidates. Ported from
// pkg/kv/kv_db.go's GetNearestStreetsFromPointCoord ring-widening loop,
// generalized from edge buckets to node buckets and from "any hit" to
// "closest hit".
func (t *CoordinateTable) NearestNode(lat, lon float64) (datastructure.NodeID, error) {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	query := datastructure.NewFloatCoordinate(lat, lon)

	for radius := 0; radius <= 10; radius++ {
		var candidates []datastructure.NodeID
		for _, cell := range h3.GridDisk(origin, radius) {
			candidates = append(candidates, t.cells[cell]...)
		}
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		bestDist := geo.HaversineDistance(query, t.coords[best].ToFloating())
		for _, n := range candidates[1:] {
			d := geo.HaversineDistance(query, t.coords[n].ToFloating())
			if d < bestDist {
				best, bestDist = n, d
			}
		}
		return best, nil
	}
	return datastructure.InvalidNodeID, ErrNoNearbyNode
}
