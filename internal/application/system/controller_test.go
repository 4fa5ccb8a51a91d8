package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), 1e-9, "x")
	assert.InDelta(t, want.Y(), got.Y(), 1e-9, "y")
	assert.InDelta(t, want.Z(), got.Z(), 1e-9, "z")
}

func TestNewController(t *testing.T) {
	t.Run("missing motor", func(t *testing.T) {
		_, err := NewController(nil, nil, &fakeInput{}, Options{})
		assert.ErrorIs(t, err, ErrMissingMotor)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := NewController(nil, newFakeMotor(), nil, Options{})
		assert.ErrorIs(t, err, ErrMissingInput)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Dash.Speed = 0
		_, err := NewController(cfg, newFakeMotor(), &fakeInput{}, Options{})
		assert.ErrorContains(t, err, "dash.speed")
	})

	t.Run("initial state", func(t *testing.T) {
		m := newFakeMotor()
		m.position = mgl64.Vec3{1, 2, 0}
		c, err := NewController(nil, m, &fakeInput{}, Options{})
		require.NoError(t, err)

		ch := c.Character()
		assert.Equal(t, entity.MovementNormal, ch.Movement)
		assert.Equal(t, m.position, ch.RespawnPos)
		assert.Equal(t, 1.0, ch.RespawnTimer)
		assert.Equal(t, 4.0, ch.FinalSpeed)
		assert.Equal(t, 2.0, m.height, "standing capsule applied")
		assert.Equal(t, 1.0, m.yOffset)
		assert.False(t, m.allowStepping)
		// The motor doubles as probe and interactor
		assert.NotNil(t, c.probe)
		assert.NotNil(t, c.ray)
	})
}

func TestController_DashDirection(t *testing.T) {
	tests := []struct {
		name string
		move mgl64.Vec2
		want mgl64.Vec3
	}{
		{"right input", mgl64.Vec2{1, 0}, mgl64.Vec3{1, 0, 0}},
		{"no input uses facing", mgl64.Vec2{}, entity.LocalForward},
		{"tiny input uses facing", mgl64.Vec2{0.01, 0.01}, entity.LocalForward},
		{"diagonal input", mgl64.Vec2{3, 4}, mgl64.Vec3{0.6, 0, 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			cfg.Upgrades.Dash = true
			c, m, in := createTestController(cfg)

			in.state = InputState{Move: tt.move, Dash: true}
			c.BeforeUpdate(1.0 / 60)

			ch := c.Character()
			require.Equal(t, entity.MovementDash, ch.Movement)
			assertVecNear(t, tt.want, ch.Dash.Direction)
			assert.False(t, ch.Dash.Ready)
			assert.True(t, m.allowStepping)
		})
	}
}

func TestController_DashRequiresUpgrade(t *testing.T) {
	c, _, in := createTestController(nil)

	in.state.Dash = true
	c.BeforeUpdate(1.0 / 60)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
}

func TestController_DashDuration(t *testing.T) {
	const dt = 1.0 / 60
	cfg := createTestConfig()
	cfg.Upgrades.Dash = true
	c, m, in := createTestController(cfg)

	in.state = InputState{Move: mgl64.Vec2{1, 0}, Dash: true}
	tick(c, m, dt)
	require.Equal(t, entity.MovementDash, c.Character().Movement)
	in.state = InputState{}

	elapsed := 0.0
	for c.Character().Movement == entity.MovementDash {
		require.Less(t, elapsed, 1.0, "dash never ended")
		assertVecNear(t, mgl64.Vec3{cfg.Dash.Speed, 0, 0}, m.velocity)
		tick(c, m, dt)
		elapsed += dt
	}

	assert.GreaterOrEqual(t, elapsed, cfg.Dash.Length)
	assert.Less(t, elapsed, cfg.Dash.Length+2*dt)
	assert.False(t, m.allowStepping)
	assert.Zero(t, c.Character().Dash.Timer)
}

func TestController_DashStallEnds(t *testing.T) {
	cfg := createTestConfig()
	cfg.Upgrades.Dash = true
	c, m, in := createTestController(cfg)

	in.state = InputState{Move: mgl64.Vec2{1, 0}, Dash: true}
	c.BeforeUpdate(1.0 / 60)
	require.Equal(t, entity.MovementDash, c.Character().Movement)

	// An obstruction stopped the motor
	m.velocity = mgl64.Vec3{}
	c.BeforeUpdate(1.0 / 60)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
}

func TestController_DashCooldown(t *testing.T) {
	const dt = 0.05
	cfg := createTestConfig()
	cfg.Upgrades.Dash = true
	c, m, in := createTestController(cfg)

	in.state = InputState{Move: mgl64.Vec2{1, 0}, Dash: true}
	for c.Character().Movement != entity.MovementDash || c.Character().Dash.Timer == 0 {
		tick(c, m, dt)
	}
	for c.Character().Movement == entity.MovementDash {
		tick(c, m, dt)
	}

	// Dash held through the cooldown does not re-enter
	cooldown := 0.0
	for !c.Character().Dash.Ready {
		require.Equal(t, entity.MovementNormal, c.Character().Movement)
		tick(c, m, dt)
		cooldown += dt
		require.Less(t, cooldown, 2.0)
	}
	assert.GreaterOrEqual(t, cooldown, cfg.Dash.CooldownLength)

	tick(c, m, dt)
	assert.Equal(t, entity.MovementDash, c.Character().Movement)
}

func TestController_DashDropsPendingJump(t *testing.T) {
	cfg := createTestConfig()
	cfg.Upgrades.Dash = true
	c, m, in := createTestController(cfg)
	m.grounding = airborne()

	c.Character().Jump.Requested = true
	in.state = InputState{Move: mgl64.Vec2{1, 0}, Dash: true}
	c.BeforeUpdate(1.0 / 60)

	assert.Equal(t, entity.MovementDash, c.Character().Movement)
	assert.False(t, c.Character().Jump.Requested)
}

func TestController_SetMovementStateIsIdempotent(t *testing.T) {
	c, m, _ := createTestController(nil)
	calls := m.steppingCalls

	c.SetMovementState(entity.MovementNormal)
	assert.Equal(t, calls, m.steppingCalls)

	c.SetMovementState(entity.MovementDash)
	c.SetMovementState(entity.MovementDash)
	assert.Equal(t, calls+1, m.steppingCalls, "enter runs once")

	c.SetMovementState(entity.MovementNormal)
	c.SetMovementState(entity.MovementNormal)
	assert.Equal(t, calls+2, m.steppingCalls, "exit runs once")
}

func TestController_Teleport(t *testing.T) {
	c, m, _ := createTestController(nil)
	m.velocity = mgl64.Vec3{3, 4, 5}
	c.SetMovementState(entity.MovementDash)

	dest := mgl64.Vec3{10, 20, 0}
	c.Teleport(dest)

	assert.Equal(t, dest, m.position)
	assert.Equal(t, mgl64.Vec3{}, m.velocity)
	assert.Equal(t, dest, c.Character().Position)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
}

func TestController_HazardRespawn(t *testing.T) {
	const dt = 0.1
	c, m, _ := createTestController(nil)

	safe := mgl64.Vec3{2, 0, 0}
	m.position = safe
	tick(c, m, dt)
	require.Equal(t, safe, c.Character().RespawnPos)

	// Fall into a hot zone up to the head
	m.grounding = airborne()
	m.position = mgl64.Vec3{8, -3, 0}
	c.OnZoneEnter(entity.TagHot)
	m.core = []Collider{{Tag: entity.TagHot}}

	// Nine ticks leave a tenth of the timer
	for i := 0; i < 9; i++ {
		tick(c, m, dt)
		require.NotEqual(t, safe, m.position, "teleported early at tick %d", i)
	}

	teleported := false
	for i := 0; i < 3 && !teleported; i++ {
		c.BeforeUpdate(dt)
		teleported = m.position == safe
	}
	require.True(t, teleported)
	assert.Equal(t, mgl64.Vec3{}, m.velocity)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
	assert.Equal(t, c.cfg.Respawn.TimerLength, c.Character().RespawnTimer)
}

func TestController_HazardImmunity(t *testing.T) {
	const dt = 0.1
	cfg := createTestConfig()
	cfg.Upgrades.Heat = true
	c, m, _ := createTestController(cfg)

	c.OnZoneEnter(entity.TagHot)
	m.core = []Collider{{Tag: entity.TagHot}}
	m.position = mgl64.Vec3{5, 0, 0}

	for i := 0; i < 30; i++ {
		tick(c, m, dt)
	}
	assert.Equal(t, cfg.Respawn.TimerLength, c.Character().RespawnTimer)
	// Immune hazards still allow recording the respawn point
	assert.Equal(t, c.Character().Position, c.Character().RespawnPos)
}

func TestController_ExposureMustBeContinuous(t *testing.T) {
	const dt = 0.1
	c, m, _ := createTestController(nil)
	m.grounding = airborne()
	c.OnZoneEnter(entity.TagCold)

	for round := 0; round < 5; round++ {
		m.core = []Collider{{Tag: entity.TagCold}}
		for i := 0; i < 5; i++ {
			tick(c, m, dt)
		}
		// Head leaves the zone: timer resets
		m.core = nil
		tick(c, m, dt)
		assert.Equal(t, c.cfg.Respawn.TimerLength, c.Character().RespawnTimer)
	}
}

func TestController_RespawnExcludedGround(t *testing.T) {
	c, m, _ := createTestController(nil)
	start := c.Character().RespawnPos

	m.grounding.GroundCollider = Collider{Tag: "Moving"}
	m.position = mgl64.Vec3{7, 1, 0}
	tick(c, m, 0.1)

	assert.Equal(t, start, c.Character().RespawnPos)
}

func TestController_NoRespawnPointInsideUnsafeZone(t *testing.T) {
	c, m, _ := createTestController(nil)
	start := c.Character().RespawnPos

	// Standing in water without Swim, head above the surface
	c.OnZoneEnter(entity.TagWater)
	m.position = mgl64.Vec3{3, 0, 0}
	tick(c, m, 0.1)
	assert.Equal(t, start, c.Character().RespawnPos)

	c.GrantUpgrade(entity.UpgradeSwim)
	tick(c, m, 0.1)
	assert.Equal(t, m.position, c.Character().RespawnPos)
}

func TestController_UncrouchRetry(t *testing.T) {
	const dt = 1.0 / 60
	c, m, in := createTestController(nil)
	crouched := c.cfg.Capsule.CrouchedHeight

	in.state.Crouch = true
	tick(c, m, dt)
	require.True(t, c.Character().Crouch.IsCrouching)
	assert.Equal(t, crouched, m.height)

	// Something is above the head
	m.blockAbove = crouched
	in.state.Crouch = false
	for i := 0; i < 10; i++ {
		tick(c, m, dt)
		require.True(t, c.Character().Crouch.IsCrouching, "frame %d", i)
		require.Equal(t, crouched, m.height)
	}

	m.blockAbove = 0
	tick(c, m, dt)
	assert.False(t, c.Character().Crouch.IsCrouching)
	assert.Equal(t, c.cfg.Capsule.Height, m.height)
}

func TestController_CrouchCancelsSprint(t *testing.T) {
	c, m, in := createTestController(nil)

	in.state.Sprint = true
	tick(c, m, 0.1)
	assert.True(t, c.Character().Sprinting)
	assert.Equal(t, 8.0, c.Character().FinalSpeed)

	in.state.Crouch = true
	tick(c, m, 0.1)
	assert.False(t, c.Character().Sprinting)
	assert.Equal(t, 2.0, c.Character().FinalSpeed)
}

func TestController_SprintNeedsGroundToStart(t *testing.T) {
	c, m, in := createTestController(nil)
	m.grounding = airborne()

	in.state.Sprint = true
	tick(c, m, 0.1)
	assert.False(t, c.Character().Sprinting)
}

func TestController_CrouchCamera(t *testing.T) {
	const dt = 0.05
	c, m, in := createTestController(nil)
	base := c.cfg.Camera.BaseHeight

	tick(c, m, dt)
	assert.InDelta(t, base, c.Character().CameraHeight, 1e-6)

	in.state.Crouch = true
	for i := 0; i < 20; i++ {
		tick(c, m, dt)
		h := c.Character().CameraHeight
		require.LessOrEqual(t, h, base+1e-6)
		require.GreaterOrEqual(t, h, base/2-1e-6)
	}
	assert.InDelta(t, base/2, c.Character().CameraHeight, 1e-6)
	assert.Equal(t, 1.0, c.Character().Crouch.LerpTime)

	in.state.Crouch = false
	for i := 0; i < 20; i++ {
		tick(c, m, dt)
	}
	assert.InDelta(t, base, c.Character().CameraHeight, 1e-6)
}

func TestController_Look(t *testing.T) {
	c, _, _ := createTestController(nil)

	// UpdateRotation reads the snapshot taken by BeforeUpdate
	c.in = InputState{Look: mgl64.Vec2{90, 0}, PointerLook: true}
	q := c.UpdateRotation(1.0 / 60)
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, q.Rotate(entity.LocalForward))

	// Stick input is scaled by dt
	c.in = InputState{Look: mgl64.Vec2{0, 60}}
	c.UpdateRotation(0.5)
	assert.InDelta(t, 30, c.Character().Pitch, 1e-9)

	c.in = InputState{Look: mgl64.Vec2{0, 500}, PointerLook: true}
	c.UpdateRotation(1.0 / 60)
	assert.Equal(t, 90.0, c.Character().Pitch)

	// Below the dead zone nothing turns
	before := c.Character().Orientation
	c.in = InputState{Look: mgl64.Vec2{0.05, 0.05}, PointerLook: true}
	c.UpdateRotation(1.0 / 60)
	assert.Equal(t, before, c.Character().Orientation)
}

func TestController_MoveFollowsYaw(t *testing.T) {
	c, m, in := createTestController(nil)

	in.state = InputState{Look: mgl64.Vec2{90, 0}, PointerLook: true}
	tick(c, m, 1.0/60)

	in.state = InputState{Move: mgl64.Vec2{0, 1}}
	for i := 0; i < 120; i++ {
		tick(c, m, 1.0/60)
	}
	// Forward now points along +X
	assert.InDelta(t, c.cfg.Ground.BaseSpeed, m.velocity.X(), 1e-6)
	assert.InDelta(t, 0, m.velocity.Z(), 1e-6)
}

func TestController_MoveInputClamped(t *testing.T) {
	c, m, in := createTestController(nil)

	in.state = InputState{Move: mgl64.Vec2{10, 0}}
	for i := 0; i < 120; i++ {
		tick(c, m, 1.0/60)
	}
	assert.InDelta(t, c.cfg.Ground.BaseSpeed, m.velocity.Len(), 1e-6)
}

func TestController_Interact(t *testing.T) {
	tests := []struct {
		name     string
		upgrades entity.UpgradeSet
		kind     entity.BreakableKind
		want     bool
	}{
		{"no upgrades", entity.UpgradeSet{}, entity.BreakableCut, false},
		{"cut breaks plants", entity.UpgradeSet{Cut: true}, entity.BreakableCut, true},
		{"cut cannot smash", entity.UpgradeSet{Cut: true}, entity.BreakableSmash, false},
		{"smash breaks rocks", entity.UpgradeSet{Smash: true}, entity.BreakableSmash, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestConfig()
			cfg.Upgrades = tt.upgrades
			c, m, in := createTestController(cfg)
			target := &fakeBreakable{kind: tt.kind}
			m.hit = target

			in.state.Interact = true
			c.BeforeUpdate(1.0 / 60)
			assert.Equal(t, tt.want, target.broken)
		})
	}
}

func TestController_ClimbState(t *testing.T) {
	const dt = 1.0 / 60
	c, m, in := createTestController(nil)
	m.grounding = airborne()

	c.OnZoneEnter(entity.TagClimb)
	tick(c, m, dt)
	require.Equal(t, entity.MovementClimb, c.Character().Movement)

	// Holding forward climbs
	in.state.Move = mgl64.Vec2{0, 1}
	m.velocity = mgl64.Vec3{}
	tick(c, m, dt)
	assert.Greater(t, m.velocity.Y(), 0.0)

	// Water takes over
	c.OnZoneEnter(entity.TagWater)
	tick(c, m, dt)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
	c.OnZoneExit(entity.TagWater)
	tick(c, m, dt)
	assert.Equal(t, entity.MovementClimb, c.Character().Movement)

	c.OnZoneExit(entity.TagClimb)
	tick(c, m, dt)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
}

func TestController_ClimbLiftsOffGround(t *testing.T) {
	c, m, in := createTestController(nil)

	c.OnZoneEnter(entity.TagClimb)
	tick(c, m, 1.0/60)
	require.Equal(t, entity.MovementClimb, c.Character().Movement)

	in.state.Move = mgl64.Vec2{0, 1}
	tick(c, m, 1.0/60)
	assert.Greater(t, m.velocity.Y(), 0.0)
	assert.Equal(t, 1, m.ungroundCalls)
}

func TestController_ClimbStateDisabled(t *testing.T) {
	cfg := createTestConfig()
	cfg.Climb.EnableState = false
	c, m, _ := createTestController(cfg)

	c.OnZoneEnter(entity.TagClimb)
	tick(c, m, 1.0/60)
	assert.Equal(t, entity.MovementNormal, c.Character().Movement)
	// Climb params still apply
	assert.Equal(t, cfg.Climb.DownVel, c.Character().Params.TerminalVelocity)
}

func TestController_AddVelocity(t *testing.T) {
	c, m, _ := createTestController(nil)

	c.AddVelocity(mgl64.Vec3{0, 5, 0})
	c.AddVelocity(mgl64.Vec3{0, 1, 0})
	tick(c, m, 0)
	assert.InDelta(t, 6, m.velocity.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, c.Character().PendingVelocity)
}

func TestController_ApplyConfig(t *testing.T) {
	c, m, in := createTestController(nil)

	in.state.Crouch = true
	tick(c, m, 0.1)
	require.True(t, c.Character().Crouch.IsCrouching)

	next := createTestConfig()
	next.Ground.BaseSpeed = 9
	next.Capsule.CrouchedHeight = 0.8
	require.NoError(t, c.ApplyConfig(next))

	assert.Equal(t, 9.0, c.Character().Params.BaseSpeed)
	assert.Equal(t, 0.8, m.height)

	bad := createTestConfig()
	bad.Air.Speed = -1
	assert.Error(t, c.ApplyConfig(bad))
	assert.Equal(t, 9.0, c.Character().Params.BaseSpeed)
}
