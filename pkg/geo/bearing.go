package geo

import (
	"math"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

// Bearing returns the initial compass bearing in degrees (0 = north,
// clockwise) from "from" to "to". Uses the spherical forward-azimuth
// formula, the same one OSRM's util::coordinate_calculation::bearing uses.
func Bearing(from, to datastructure.FloatCoordinate) float64 {
	lat1 := degToRad(from.Lat)
	lat2 := degToRad(to.Lat)
	deltaLon := degToRad(to.Lon - from.Lon)

	y := math.Sin(deltaLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(deltaLon)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// ReverseBearing returns the bearing pointing the opposite direction,
// ported from OSRM's util::bearing::reverse (bearing + 180, wrapped).
func ReverseBearing(bearing float64) float64 {
	return math.Mod(bearing+180, 360)
}

// AngularDeviation is the absolute angular distance between two bearings,
// folded into [0, 180]. Re-exported from datastructure so callers outside
// that package don't need to know the shape types live there.
func AngularDeviation(a, b float64) float64 {
	return datastructure.AngularDeviationDegrees(a, b)
}

// AngleBetweenBearings turns two bearings (looking into and out of a node)
// into the OSRM-style turn angle: 0 is a u-turn back the way you came, 180
// is straight ahead, measured clockwise from the reverse of the incoming
// bearing to the outgoing bearing.
func AngleBetweenBearings(incomingBearing, outgoingBearing float64) float64 {
	turn := outgoingBearing - ReverseBearing(incomingBearing)
	return math.Mod(turn+360, 360)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
