package datastructure

// DirectionModifier classifies a turn angle into one of OSRM's eight
// canonical buckets. It is pure geometry here, not guidance text: nothing
// in this package turns a DirectionModifier into a sentence.
type DirectionModifier int

const (
	UTurn DirectionModifier = iota
	SharpLeft
	Left
	SlightLeft
	Straight
	SlightRight
	Right
	SharpRight
)

// Mirror returns the left/right-flipped modifier, an involution:
// Mirror(Mirror(m)) == m. Ported from ConnectedRoad::mirror's modifier table.
func (m DirectionModifier) Mirror() DirectionModifier {
	switch m {
	case UTurn:
		return UTurn
	case SharpLeft:
		return SharpRight
	case Left:
		return Right
	case SlightLeft:
		return SlightRight
	case Straight:
		return Straight
	case SlightRight:
		return SlightLeft
	case Right:
		return Left
	case SharpRight:
		return SharpLeft
	default:
		return m
	}
}

// ModifierFromAngle buckets a 0-360 turn angle into a DirectionModifier
// using OSRM's fixed thresholds (u-turn at 0, sharp turns below/above 35
// degrees of the extreme, straight ahead within 5 degrees of 180).
func ModifierFromAngle(angle float64) DirectionModifier {
	switch {
	case angle < 0.01:
		return UTurn
	case angle < 35:
		return SharpLeft
	case angle < 105:
		return Left
	case angle < 175:
		return SlightLeft
	case angle <= 185:
		return Straight
	case angle <= 255:
		return SlightRight
	case angle <= 325:
		return Right
	default:
		return SharpRight
	}
}

const mirrorEpsilon = 0.01

// MirrorView reflects an entire intersection view across the incoming-road
// axis: angle becomes 360-angle (entries already at angle ~0, the u-turn
// itself, are left untouched so the anchor invariant keeps holding), ported
// directly from ConnectedRoad::mirror applied across a whole intersection.
func MirrorView(view IntersectionView) IntersectionView {
	mirrored := make(IntersectionView, len(view))
	for i, entry := range view {
		mirrored[i] = entry
		if AngularDeviationDegrees(entry.Angle, 0) <= mirrorEpsilon {
			continue
		}
		mirrored[i].Angle = 360 - entry.Angle
	}
	mirrored.SortByAngle()
	return mirrored
}
