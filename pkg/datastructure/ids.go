package datastructure

// NodeID and EdgeID index into the road graph's node and edge arrays.
// Kept as int32 since a country-sized OSM extract stays well within int32
// range and the smaller width halves the memory footprint of
// IntersectionShapeData slices.
type NodeID int32

type EdgeID int32

const (
	InvalidNodeID NodeID = -1
	InvalidEdgeID EdgeID = -1
)

func (id NodeID) Valid() bool {
	return id != InvalidNodeID
}

func (id EdgeID) Valid() bool {
	return id != InvalidEdgeID
}
