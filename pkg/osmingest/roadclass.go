package osmingest

import "github.com/arimbawa-w/roadisect/pkg/datastructure"

// highwayPriority ranks OSM highway tag values the way OSRM's road
// priority classes do: lower number means more important. Unlisted/unknown
// highway values fall back to a low-priority service-road classification.
var highwayPriority = map[string]uint8{
	"motorway":       1,
	"motorway_link":  1,
	"trunk":          2,
	"trunk_link":     2,
	"primary":        3,
	"primary_link":   3,
	"secondary":      4,
	"secondary_link": 4,
	"tertiary":       5,
	"tertiary_link":  5,
	"unclassified":   6,
	"residential":    6,
	"living_street":  7,
	"service":        8,
	"track":          8,
}

var lowPriorityHighways = map[string]bool{
	"service": true,
	"track":   true,
	"living_street": true,
}

func classificationForHighway(highway string, lanes uint8) datastructure.RoadClassification {
	priority, ok := highwayPriority[highway]
	if !ok {
		priority = 8
	}
	return datastructure.RoadClassification{
		Priority:    priority,
		NumLanes:    lanes,
		LowPriority: lowPriorityHighways[highway],
	}
}

// acceptedHighway reports whether a highway tag value is routable at all,
// filtering out footpaths, steps, platforms, and other non-drivable ways.
func acceptedHighway(highway string) bool {
	switch highway {
	case "", "footway", "path", "steps", "pedestrian", "platform", "proposed", "construction", "raceway":
		return false
	default:
		return true
	}
}
