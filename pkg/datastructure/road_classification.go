package datastructure

// RoadClassification mirrors the OSRM road-priority contract: a coarse
// priority rank (lower is more important, matching OSRM's road_priority_class
// ordinal), a lane count, and a low-priority flag for service/track roads
// that should never be picked as an "obvious" continuation even when their
// priority number happens to be close to the incoming road's.
type RoadClassification struct {
	Priority    uint8
	NumLanes    uint8
	LowPriority bool
}

// PriorityDistinctionFactor is the minimum ratio between two roads'
// priorities for the higher one to be considered an "obvious" candidate
// over the other, ported from OSRM's toolkit.hpp. Overridable via
// pkg/config for extracts with unusually fine-grained tagging.
var PriorityDistinctionFactor float64 = 2.0

// ObviousByRoadClass reports whether candidate is obviously the intended
// continuation of incoming given the alternative other, purely on road
// classification (no geometry involved). Ported from OSRM's
// toolkit.hpp::obviousByRoadClass.
func ObviousByRoadClass(incoming, candidate, other RoadClassification) bool {
	hasHighPriority := PriorityDistinctionFactor*float64(candidate.Priority) < float64(other.Priority)
	continuesOnSameClass := incoming == candidate

	return (hasHighPriority && continuesOnSameClass) ||
		(!candidate.LowPriority && !incoming.LowPriority && other.LowPriority)
}
