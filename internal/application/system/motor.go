package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/kinecore/internal/domain/entity"
)

// Collider is the part of a physics collider the movement core reads
type Collider struct {
	Tag string
}

// GroundingStatus is the motor's ground probe result for the current frame
type GroundingStatus struct {
	FoundAnyGround   bool
	IsStableOnGround bool
	GroundNormal     mgl64.Vec3
	GroundCollider   Collider
}

// Motor is the kinematic character mover the controller drives.
// All calls are synchronous and happen on the simulation goroutine.
type Motor interface {
	GroundingStatus() GroundingStatus
	LastGroundingStatus() GroundingStatus

	// SetCapsuleDimensions resizes the character capsule; yOffset is the
	// capsule center height above the feet
	SetCapsuleDimensions(radius, height, yOffset float64)
	// CharacterOverlap returns the solid colliders overlapping the current
	// capsule placed at position. Trigger volumes are not reported.
	CharacterOverlap(position mgl64.Vec3, rotation mgl64.Quat) []Collider

	// ForceUnground skips ground probing and snapping on the next update
	ForceUnground()
	// DirectionTangentToSurface returns the unit direction along the surface
	// that keeps direction's heading relative to the character up axis
	DirectionTangentToSurface(direction, surfaceNormal mgl64.Vec3) mgl64.Vec3

	BaseVelocity() mgl64.Vec3
	SetBaseVelocity(v mgl64.Vec3)
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)

	SetAllowSteppingWithoutStableGrounding(allow bool)
}

// ZoneProbe answers the small-radius core overlap query for zone volumes
type ZoneProbe interface {
	OverlapSphere(center mgl64.Vec3, radius float64) []Collider
}

// Breakable is an obstacle that an upgrade can destroy
type Breakable interface {
	Kind() entity.BreakableKind
	Break()
}

// Interactor casts the interaction ray
type Interactor interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (Breakable, bool)
}
