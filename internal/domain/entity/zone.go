package entity

// Zone is the closed set of trigger-volume kinds the core reacts to
type Zone int

const (
	ZoneWater Zone = iota
	ZoneHot
	ZoneCold
	ZoneClimb

	// ZoneCount is the number of zone kinds
	ZoneCount
)

// Collider tags used by hosts for zone volumes
const (
	TagWater = "Water"
	TagHot   = "HotZone"
	TagCold  = "ColdZone"
	TagClimb = "ClimbZone"
)

// String returns the zone name
func (z Zone) String() string {
	switch z {
	case ZoneWater:
		return "Water"
	case ZoneHot:
		return "Hot"
	case ZoneCold:
		return "Cold"
	case ZoneClimb:
		return "Climb"
	default:
		return "Unknown"
	}
}

// Tag returns the collider tag hosts use for the zone
func (z Zone) Tag() string {
	switch z {
	case ZoneWater:
		return TagWater
	case ZoneHot:
		return TagHot
	case ZoneCold:
		return TagCold
	case ZoneClimb:
		return TagClimb
	default:
		return ""
	}
}

// Hazard reports whether lingering in the zone without its immunity
// upgrade sends the character back to its respawn point
func (z Zone) Hazard() bool {
	return z == ZoneWater || z == ZoneHot || z == ZoneCold
}

// ClassifyTag maps a collider tag to a zone kind
func ClassifyTag(tag string) (Zone, bool) {
	switch tag {
	case TagWater:
		return ZoneWater, true
	case TagHot:
		return ZoneHot, true
	case TagCold:
		return ZoneCold, true
	case TagClimb:
		return ZoneClimb, true
	default:
		return 0, false
	}
}

// ZoneState is the tri-state membership of a zone
type ZoneState uint8

const (
	ZoneNone ZoneState = iota
	// ZoneContains means the character volume overlaps the zone
	ZoneContains
	// ZoneCore means the head reference point is inside the zone.
	// Core implies Contains.
	ZoneCore
)

// String returns the zone state name
func (s ZoneState) String() string {
	switch s {
	case ZoneNone:
		return "None"
	case ZoneContains:
		return "Contains"
	case ZoneCore:
		return "Core"
	default:
		return "Unknown"
	}
}

// Inside reports Contains or Core
func (s ZoneState) Inside() bool {
	return s != ZoneNone
}

// ZoneStates holds the state of every zone kind
type ZoneStates [ZoneCount]ZoneState

// Get returns the state of a zone
func (zs ZoneStates) Get(z Zone) ZoneState {
	if z < 0 || z >= ZoneCount {
		return ZoneNone
	}
	return zs[z]
}

// Exposed reports a hazard zone at Core depth without its immunity upgrade
func (zs ZoneStates) Exposed(up UpgradeSet) bool {
	for z := Zone(0); z < ZoneCount; z++ {
		if z.Hazard() && zs[z] == ZoneCore && !up.Immune(z) {
			return true
		}
	}
	return false
}

// Safe reports that every hazard zone is either absent or mitigated
func (zs ZoneStates) Safe(up UpgradeSet) bool {
	for z := Zone(0); z < ZoneCount; z++ {
		if z.Hazard() && zs[z].Inside() && !up.Immune(z) {
			return false
		}
	}
	return true
}
