package sandbox

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/younwookim/kinecore/internal/application/system"
	"github.com/younwookim/kinecore/internal/domain/entity"
)

const (
	// groundSkin is how far below the feet the ground probe reaches, in pixels
	groundSkin = 1.0
	// stepHeight is the tallest ledge the motor walks onto, in world units
	stepHeight = 0.3
	// rayStep is the interaction ray marching distance, in world units
	rayStep = 0.25
)

// Motor moves a box approximation of the character capsule through a World.
// Movement happens in the XY plane; Z velocity is dropped.
type Motor struct {
	world *World
	obj   *resolv.Object

	// feet center in stage pixels
	px, py float64

	velocity mgl64.Vec3
	radius   float64
	height   float64
	yOffset  float64

	grounding     system.GroundingStatus
	lastGrounding system.GroundingStatus
	groundBody    *Body
	forceUnground bool
	allowStepping bool

	// heading is the sign of the last horizontal movement
	heading float64
}

// NewMotor places a character box with the feet at position
func NewMotor(w *World, position mgl64.Vec3) *Motor {
	m := &Motor{
		world:   w,
		obj:     resolv.NewObject(0, 0, 1, 1, tagCharacter),
		radius:  0.5,
		height:  2,
		yOffset: 1,
		heading: 1,
	}
	w.space.Add(m.obj)
	m.SetPosition(position)
	m.probeGround()
	m.lastGrounding = m.grounding
	return m
}

func (m *Motor) box() rect {
	ts := m.world.tileSize
	w := 2 * m.radius * ts
	h := m.height * ts
	return rect{x: m.px - w/2, y: m.py - h, w: w, h: h}
}

func (m *Motor) syncObject() {
	r := m.box()
	m.obj.X, m.obj.Y, m.obj.W, m.obj.H = r.x, r.y, r.w, r.h
	m.obj.Update()
}

// Rect returns the character box in stage pixels
func (m *Motor) Rect() (x, y, w, h float64) {
	r := m.box()
	return r.x, r.y, r.w, r.h
}

// Heading returns +1 or -1 for the last horizontal movement direction
func (m *Motor) Heading() float64 {
	return m.heading
}

// GroundBody returns the body under the feet, or nil when airborne
func (m *Motor) GroundBody() *Body {
	return m.groundBody
}

func (m *Motor) GroundingStatus() system.GroundingStatus     { return m.grounding }
func (m *Motor) LastGroundingStatus() system.GroundingStatus { return m.lastGrounding }

func (m *Motor) SetCapsuleDimensions(radius, height, yOffset float64) {
	m.radius, m.height, m.yOffset = radius, height, yOffset
	m.syncObject()
}

func (m *Motor) CharacterOverlap(position mgl64.Vec3, _ mgl64.Quat) []system.Collider {
	ts := m.world.tileSize
	px, py := m.world.ToPixels(position)
	w := 2 * m.radius * ts
	h := m.height * ts
	return colliders(m.world.overlapping(rect{x: px - w/2, y: py - h, w: w, h: h}, tagSolid))
}

func (m *Motor) ForceUnground() {
	m.forceUnground = true
}

func (m *Motor) DirectionTangentToSurface(direction, surfaceNormal mgl64.Vec3) mgl64.Vec3 {
	right := direction.Cross(entity.WorldUp)
	t := surfaceNormal.Cross(right)
	if t.Len() < 1e-9 {
		return mgl64.Vec3{}
	}
	return t.Normalize()
}

func (m *Motor) BaseVelocity() mgl64.Vec3 {
	return m.velocity
}

func (m *Motor) SetBaseVelocity(v mgl64.Vec3) {
	v[2] = 0
	m.velocity = v
}

func (m *Motor) Position() mgl64.Vec3 {
	return m.world.ToWorld(m.px, m.py)
}

func (m *Motor) SetPosition(p mgl64.Vec3) {
	m.px, m.py = m.world.ToPixels(p)
	m.syncObject()
}

func (m *Motor) SetAllowSteppingWithoutStableGrounding(allow bool) {
	m.allowStepping = allow
}

// OverlapSphere returns the zone volumes within a square of the given
// half extent around center
func (m *Motor) OverlapSphere(center mgl64.Vec3, radius float64) []system.Collider {
	px, py := m.world.ToPixels(center)
	half := radius * m.world.tileSize
	return colliders(m.world.overlapping(rect{x: px - half, y: py - half, w: 2 * half, h: 2 * half}, tagZone))
}

// Raycast marches from origin and returns the first solid body if it is
// breakable. The flattened Z component of dir is folded onto the current
// heading, so looking forward casts along the facing direction.
func (m *Motor) Raycast(origin, dir mgl64.Vec3, maxDist float64) (system.Breakable, bool) {
	d := mgl64.Vec2{dir.X() + dir.Z()*m.heading, dir.Y()}
	if d.Len() < 1e-6 {
		d = mgl64.Vec2{m.heading, 0}
	}
	d = d.Normalize()

	for s := 0.0; s <= maxDist; s += rayStep {
		px, py := m.world.ToPixels(origin.Add(mgl64.Vec3{d.X() * s, d.Y() * s, 0}))
		hits := m.world.overlapping(rect{x: px - 0.5, y: py - 0.5, w: 1, h: 1}, tagSolid)
		if len(hits) == 0 {
			continue
		}
		for _, b := range hits {
			if b.obstacle != nil {
				return b.obstacle, true
			}
		}
		return nil, false
	}
	return nil, false
}

// Carry moves the character with the body it stands on
func (m *Motor) Carry(dy float64) {
	m.py += dy
	m.syncObject()
}

// Move integrates the base velocity against solid bodies, then probes the
// ground unless ForceUnground was called since the last move
func (m *Motor) Move(dt float64) {
	m.lastGrounding = m.grounding

	ts := m.world.tileSize
	dx := m.velocity.X() * dt * ts
	dy := -m.velocity.Y() * dt * ts
	if dx > 0 {
		m.heading = 1
	} else if dx < 0 {
		m.heading = -1
	}

	// Substeps keep every step inside the broadphase cells
	steps := max(1, int(math.Ceil(max(math.Abs(dx), math.Abs(dy))/(ts/2))))
	for range steps {
		m.moveX(dx / float64(steps))
		m.moveY(dy / float64(steps))
	}

	if m.forceUnground {
		m.forceUnground = false
		m.grounding = system.GroundingStatus{GroundNormal: entity.WorldUp}
		m.groundBody = nil
		return
	}
	m.probeGround()
}

func (m *Motor) moveX(dx float64) {
	if dx == 0 {
		return
	}
	if d, b := m.world.sweep(m.box(), dx, 0); b != nil {
		if m.tryStep(dx) {
			return
		}
		dx = d
		m.velocity[0] = 0
	}
	m.px += dx
	m.syncObject()
}

func (m *Motor) moveY(dy float64) {
	if dy == 0 {
		return
	}
	if d, b := m.world.sweep(m.box(), 0, dy); b != nil {
		dy = d
		m.velocity[1] = 0
	}
	m.py += dy
	m.syncObject()
}

// tryStep climbs a ledge lower than stepHeight. It needs stable ground
// unless stepping without grounding is allowed.
func (m *Motor) tryStep(dx float64) bool {
	if !m.allowStepping && !m.grounding.IsStableOnGround {
		return false
	}

	lift := stepHeight * m.world.tileSize
	box := m.box()
	if _, b := m.world.sweep(box, 0, -lift); b != nil {
		return false
	}
	raised := box.offset(0, -lift)
	if _, b := m.world.sweep(raised, dx, 0); b != nil {
		return false
	}

	settle := lift
	if d, b := m.world.sweep(raised.offset(dx, 0), 0, lift); b != nil {
		settle = d
	}
	m.px += dx
	m.py += settle - lift
	m.syncObject()
	return true
}

// probeGround snaps to a solid body within groundSkin below the feet
func (m *Motor) probeGround() {
	d, b := m.world.sweep(m.box(), 0, groundSkin)
	if b == nil {
		m.grounding = system.GroundingStatus{GroundNormal: entity.WorldUp}
		m.groundBody = nil
		return
	}

	m.py += d
	m.syncObject()
	m.groundBody = b
	m.grounding = system.GroundingStatus{
		FoundAnyGround:   true,
		IsStableOnGround: true,
		GroundNormal:     entity.WorldUp,
		GroundCollider:   system.Collider{Tag: b.Tag},
	}
}

// sweep moves r along one axis and returns the allowed distance and the
// closest solid body in the way. Bodies already overlapping r are ignored.
func (w *World) sweep(r rect, dx, dy float64) (float64, *Body) {
	q := w.query
	q.X, q.Y, q.W, q.H = r.x, r.y, r.w, r.h
	q.Update()

	check := q.Check(dx, dy, tagSolid)
	if check == nil {
		return 0, nil
	}

	moved := r.offset(dx, dy)
	var (
		best    float64
		closest *Body
	)
	for _, obj := range check.Objects {
		b, ok := obj.Data.(*Body)
		if !ok || b.removed {
			continue
		}
		br := b.rect()
		if r.overlaps(br) || !moved.overlaps(br) {
			continue
		}

		contact := check.ContactWithObject(obj)
		d := contact.Y()
		if dy == 0 {
			d = contact.X()
		}
		if closest == nil || math.Abs(d) < math.Abs(best) {
			best, closest = d, b
		}
	}
	return best, closest
}

func colliders(bodies []*Body) []system.Collider {
	if len(bodies) == 0 {
		return nil
	}
	out := make([]system.Collider, len(bodies))
	for i, b := range bodies {
		out[i] = system.Collider{Tag: b.Tag}
	}
	return out
}
