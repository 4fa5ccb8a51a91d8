package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

var flatGround = GroundingStatus{
	FoundAnyGround:   true,
	IsStableOnGround: true,
	GroundNormal:     entity.WorldUp,
	GroundCollider:   Collider{Tag: "solid"},
}

// fakeMotor is a scriptable motor: grounding and overlaps are set by the test
type fakeMotor struct {
	grounding     GroundingStatus
	lastGrounding GroundingStatus
	velocity      mgl64.Vec3
	position      mgl64.Vec3

	radius, height, yOffset float64
	capsuleCalls            int

	// blockAbove is the capsule height above which CharacterOverlap reports a hit
	blockAbove float64
	core       []Collider
	hit        Breakable

	ungroundCalls int
	allowStepping bool
	steppingCalls int
}

func newFakeMotor() *fakeMotor {
	return &fakeMotor{grounding: flatGround}
}

func (m *fakeMotor) GroundingStatus() GroundingStatus     { return m.grounding }
func (m *fakeMotor) LastGroundingStatus() GroundingStatus { return m.lastGrounding }

func (m *fakeMotor) SetCapsuleDimensions(radius, height, yOffset float64) {
	m.radius, m.height, m.yOffset = radius, height, yOffset
	m.capsuleCalls++
}

func (m *fakeMotor) CharacterOverlap(position mgl64.Vec3, rotation mgl64.Quat) []Collider {
	if m.blockAbove > 0 && m.height > m.blockAbove {
		return []Collider{{Tag: "solid"}}
	}
	return nil
}

func (m *fakeMotor) ForceUnground() { m.ungroundCalls++ }

func (m *fakeMotor) DirectionTangentToSurface(direction, surfaceNormal mgl64.Vec3) mgl64.Vec3 {
	right := direction.Cross(entity.WorldUp)
	return normalizeSafe(surfaceNormal.Cross(right))
}

func (m *fakeMotor) BaseVelocity() mgl64.Vec3     { return m.velocity }
func (m *fakeMotor) SetBaseVelocity(v mgl64.Vec3) { m.velocity = v }
func (m *fakeMotor) Position() mgl64.Vec3         { return m.position }
func (m *fakeMotor) SetPosition(p mgl64.Vec3)     { m.position = p }

func (m *fakeMotor) SetAllowSteppingWithoutStableGrounding(allow bool) {
	m.allowStepping = allow
	m.steppingCalls++
}

func (m *fakeMotor) OverlapSphere(center mgl64.Vec3, radius float64) []Collider {
	return m.core
}

func (m *fakeMotor) Raycast(origin, dir mgl64.Vec3, maxDist float64) (Breakable, bool) {
	if m.hit == nil {
		return nil, false
	}
	return m.hit, true
}

type fakeBreakable struct {
	kind   entity.BreakableKind
	broken bool
}

func (b *fakeBreakable) Kind() entity.BreakableKind { return b.kind }
func (b *fakeBreakable) Break()                     { b.broken = true }

// fakeInput replays a mutable snapshot
type fakeInput struct {
	state InputState
}

func (f *fakeInput) Snapshot() InputState { return f.state }

func createTestConfig() *config.CharacterConfig {
	cfg := config.Default()
	cfg.Jump.PreGroundingGraceTime = 0.1
	cfg.Jump.PostGroundingGraceTime = 0.1
	cfg.Dash.Length = 0.1
	cfg.Dash.CooldownLength = 0.5
	cfg.Respawn.TimerLength = 1
	return cfg
}

func createTestController(cfg *config.CharacterConfig) (*Controller, *fakeMotor, *fakeInput) {
	if cfg == nil {
		cfg = createTestConfig()
	}
	m := newFakeMotor()
	in := &fakeInput{}
	c, err := NewController(cfg, m, in, Options{})
	if err != nil {
		panic(err)
	}
	return c, m, in
}

// tick runs one full pipeline pass with naive integration in place of
// collision resolution
func tick(c *Controller, m *fakeMotor, dt float64) {
	c.BeforeUpdate(dt)
	c.UpdateRotation(dt)
	v := c.UpdateVelocity(dt)
	m.velocity = v
	m.position = m.position.Add(v.Mul(dt))
	c.AfterUpdate(dt)
	m.lastGrounding = m.grounding
}

func airborne() GroundingStatus {
	return GroundingStatus{GroundNormal: entity.WorldUp}
}
