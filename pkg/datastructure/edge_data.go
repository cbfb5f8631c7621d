package datastructure

// EdgeData is the road-graph metadata the intersection core needs per
// directed edge: is it the against-direction of a one-way road (never a
// legal exit), and what's its classification for obviousness/priority
// comparisons.
type EdgeData struct {
	Reversed       bool
	Classification RoadClassification
	NameID         int32
}
