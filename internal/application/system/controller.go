package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

var (
	// ErrMissingMotor is returned when a controller is built without a motor
	ErrMissingMotor = errors.New("motor is required")
	// ErrMissingInput is returned when a controller is built without an input source
	ErrMissingInput = errors.New("input source is required")
)

// dashDirectionMinInput is the move input magnitude below which a dash goes forward
const dashDirectionMinInput = 0.05

// dashStallSqrSpeed ends a dash that an obstruction has stopped
const dashStallSqrSpeed = 0.1

// Options carries the optional collaborators of a Controller.
// When Probe or Interactor is nil and the motor implements it, the motor is used.
type Options struct {
	Logger     *zap.Logger
	Probe      ZoneProbe
	Interactor Interactor
}

// paramKey is everything the active movement params depend on
type paramKey struct {
	inWater bool
	inClimb bool
	swim    bool
	valid   bool
}

// Controller is the movement core of one character. The host calls
// BeforeUpdate, UpdateRotation, UpdateVelocity and AfterUpdate in that
// order once per tick, and forwards trigger volume events in between.
type Controller struct {
	cfg    *config.CharacterConfig
	motor  Motor
	input  InputSource
	probe  ZoneProbe
	ray    Interactor
	logger *zap.Logger

	zones    *ZoneClassifier
	jump     *JumpArbiter
	velocity *VelocitySolver
	crouch   *CrouchHandler
	respawn  *RespawnHandler
	look     *LookHandler
	interact *InteractHandler

	char      *entity.Character
	in        InputState
	move      mgl64.Vec3
	targetYaw mgl64.Quat
	params    paramKey
}

// NewController creates a controller for a character standing at the
// motor's position. A nil cfg selects config.Default.
func NewController(cfg *config.CharacterConfig, motor Motor, input InputSource, opts Options) (*Controller, error) {
	if motor == nil {
		return nil, fmt.Errorf("failed to create controller: %w", ErrMissingMotor)
	}
	if input == nil {
		return nil, fmt.Errorf("failed to create controller: %w", ErrMissingInput)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	probe := opts.Probe
	if probe == nil {
		probe, _ = motor.(ZoneProbe)
	}
	ray := opts.Interactor
	if ray == nil {
		ray, _ = motor.(Interactor)
	}

	c := &Controller{
		motor:     motor,
		input:     input,
		probe:     probe,
		ray:       ray,
		logger:    logger,
		zones:     NewZoneClassifier(logger),
		targetYaw: mgl64.QuatIdent(),
	}
	c.configure(cfg)

	c.char = entity.NewCharacter(motor.Position(), c.targetYaw)
	c.char.Upgrades = cfg.Upgrades
	c.char.CameraHeight = cfg.Camera.BaseHeight
	c.respawn.Reset(c.char)
	c.refreshParams()
	c.char.FinalSpeed = c.char.Params.BaseSpeed

	c.crouch.Stand(motor)
	motor.SetAllowSteppingWithoutStableGrounding(false)

	return c, nil
}

// configure builds the stateless components around cfg
func (c *Controller) configure(cfg *config.CharacterConfig) {
	c.cfg = cfg
	c.jump = NewJumpArbiter(&cfg.Jump)
	c.velocity = NewVelocitySolver(cfg, c.jump)
	c.crouch = NewCrouchHandler(cfg)
	c.respawn = NewRespawnHandler(&cfg.Respawn)
	c.look = NewLookHandler(&cfg.Camera)
	c.interact = NewInteractHandler(&cfg.Interact, c.ray)
	c.params.valid = false
}

// ApplyConfig swaps in new tuning between ticks. Unlocked upgrades and all
// runtime state are kept.
func (c *Controller) ApplyConfig(cfg *config.CharacterConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}
	c.configure(cfg)
	c.refreshParams()
	if c.char.Crouch.IsCrouching {
		c.crouch.Shrink(c.motor)
	} else {
		c.crouch.Stand(c.motor)
	}
	c.logger.Info("character config applied")
	return nil
}

// Character returns the simulated state. Callers must not mutate it
// during a tick.
func (c *Controller) Character() *entity.Character {
	return c.char
}

// Input returns the snapshot taken by the last BeforeUpdate
func (c *Controller) Input() InputState {
	return c.in
}

// ZoneCount returns the reference count of a zone kind
func (c *Controller) ZoneCount(z entity.Zone) int {
	return c.zones.Count(z)
}

// GrantUpgrade unlocks an upgrade. Params are recomputed immediately so an
// upgrade granted inside a zone takes effect at once.
func (c *Controller) GrantUpgrade(u entity.Upgrade) {
	c.char.Upgrades.Set(u, true)
	c.refreshParams()
	c.logger.Info("upgrade granted", zap.Stringer("upgrade", u))
}

// AddVelocity queues a one-shot impulse for the next Normal velocity update
func (c *Controller) AddVelocity(v mgl64.Vec3) {
	c.char.PendingVelocity = c.char.PendingVelocity.Add(v)
}

// OnZoneEnter counts a trigger volume the character started overlapping
func (c *Controller) OnZoneEnter(tag string) {
	z, ok := entity.ClassifyTag(tag)
	if !ok {
		c.logger.Debug("ignoring unknown zone tag", zap.String("tag", tag))
		return
	}
	c.zones.Enter(z)
	c.refreshParams()
}

// OnZoneExit counts a trigger volume the character stopped overlapping
func (c *Controller) OnZoneExit(tag string) {
	z, ok := entity.ClassifyTag(tag)
	if !ok {
		c.logger.Debug("ignoring unknown zone tag", zap.String("tag", tag))
		return
	}
	c.zones.Exit(z)
	c.refreshParams()
}

// refreshParams rebuilds the movement params when water, climb or Swim changed
func (c *Controller) refreshParams() {
	key := paramKey{
		inWater: c.zones.Count(entity.ZoneWater) > 0,
		inClimb: c.zones.Count(entity.ZoneClimb) > 0,
		swim:    c.char.Upgrades.Swim,
		valid:   true,
	}
	if key == c.params {
		return
	}
	c.params = key
	c.char.Params = ResolveParams(c.cfg, key.inWater, key.inClimb, c.char.Upgrades)
	c.logger.Debug("movement params recomputed",
		zap.Bool("water", key.inWater),
		zap.Bool("climb", key.inClimb),
		zap.Bool("swim", key.swim))
}

// Teleport moves the character, zeroes its velocity and forces Normal
func (c *Controller) Teleport(pos mgl64.Vec3) {
	c.motor.SetBaseVelocity(mgl64.Vec3{})
	c.motor.SetPosition(pos)
	c.char.Position = pos
	c.char.Velocity = mgl64.Vec3{}
	c.SetMovementState(entity.MovementNormal)
	c.logger.Debug("teleported", zap.Float64s("position", pos[:]))
}

// SetMovementState runs the exit hook of the current state and the enter
// hook of the new one. Switching to the current state does nothing.
func (c *Controller) SetMovementState(s entity.MovementState) {
	old := c.char.Movement
	if s == old {
		return
	}

	switch old {
	case entity.MovementDash:
		c.char.Dash.Timer = 0
		c.motor.SetAllowSteppingWithoutStableGrounding(false)
	}

	c.char.Movement = s

	switch s {
	case entity.MovementDash:
		c.char.Dash.Timer = 0
		if c.move.Len() > dashDirectionMinInput {
			c.char.Dash.Direction = projectOnPlane(normalizeSafe(c.move), c.char.Up())
		} else {
			c.char.Dash.Direction = c.char.Forward()
		}
		c.char.Dash.Ready = false
		c.motor.SetAllowSteppingWithoutStableGrounding(true)
		c.jump.Cancel(&c.char.Jump)
	}

	c.logger.Debug("movement state changed",
		zap.Stringer("from", old),
		zap.Stringer("to", s))
}

// BeforeUpdate classifies zones, handles respawn, samples input and runs
// state transitions
func (c *Controller) BeforeUpdate(dt float64) {
	ch := c.char
	ch.Position = c.motor.Position()
	ch.Velocity = c.motor.BaseVelocity()

	var core []Collider
	if c.probe != nil {
		core = c.probe.OverlapSphere(ch.HeadPosition(), c.cfg.Camera.CoreProbeRadius)
	}
	ch.Zones = c.zones.Classify(core)
	c.refreshParams()

	g := c.motor.GroundingStatus()
	if c.respawn.Update(ch, g, dt) {
		c.logger.Info("hazard exposure respawn")
		c.Teleport(ch.RespawnPos)
	}

	c.in = c.input.Snapshot()
	local := clampMagnitude(mgl64.Vec3{c.in.Move.X(), 0, c.in.Move.Y()}, 1)
	c.move = ch.Orientation.Rotate(local)

	jumpPressed := c.in.Jump && !ch.Jump.Held
	ch.Jump.Held = c.in.Jump
	if ch.Upgrades.Glide && !ch.Jump.Released && !c.in.Jump {
		ch.Jump.Released = true
	}
	ch.Crouch.WantsCrouch = c.in.Crouch

	switch ch.Movement {
	case entity.MovementNormal, entity.MovementClimb:
		c.updateGrounded(dt, jumpPressed, g)
	case entity.MovementDash:
		ch.Dash.Timer += dt
		if ch.Dash.Timer > c.cfg.Dash.Length || sqrMagnitude(c.motor.BaseVelocity()) < dashStallSqrSpeed {
			c.SetMovementState(entity.MovementNormal)
		}
	}

	if c.in.Interact {
		if kind, ok := c.interact.Interact(ch); ok {
			c.logger.Debug("broke obstacle", zap.Stringer("kind", kind))
		}
	}
}

// updateGrounded runs the Normal and Climb transitions and speed selection
func (c *Controller) updateGrounded(dt float64, jumpPressed bool, g GroundingStatus) {
	ch := c.char

	if jumpPressed {
		c.jump.Request(&ch.Jump)
	}

	if ch.Movement == entity.MovementNormal && ch.Upgrades.Dash && c.in.Dash && ch.Dash.Ready {
		c.SetMovementState(entity.MovementDash)
		return
	}
	if !ch.Dash.Ready {
		ch.Dash.Timer += dt
		if ch.Dash.Timer > c.cfg.Dash.CooldownLength {
			ch.Dash.Ready = true
		}
	}

	if c.cfg.Climb.EnableState {
		inClimb := ch.Zones.Get(entity.ZoneClimb).Inside()
		inWater := ch.Zones.Get(entity.ZoneWater).Inside()
		switch {
		case ch.Movement == entity.MovementNormal && inClimb && !inWater:
			c.SetMovementState(entity.MovementClimb)
		case ch.Movement == entity.MovementClimb && (!inClimb || inWater):
			c.SetMovementState(entity.MovementNormal)
		}
	}

	stable := g.IsStableOnGround
	c.crouch.Press(ch, c.motor, stable)

	if c.in.Sprint {
		if stable {
			ch.Sprinting = !ch.Crouch.IsCrouching
		}
	} else {
		ch.Sprinting = false
	}

	switch {
	case ch.Sprinting:
		ch.FinalSpeed = ch.Params.BaseSpeed * c.cfg.Sprint.Multiplier
	case ch.Crouch.IsCrouching:
		ch.FinalSpeed = ch.Params.BaseSpeed * c.cfg.Crouch.Multiplier
	default:
		ch.FinalSpeed = ch.Params.BaseSpeed
	}

	ch.JumpUpMul = 1
	if ch.Upgrades.Jump && ch.Crouch.IsCrouching {
		ch.JumpUpMul = c.cfg.Jump.SuperJumpMultiplier
	}
}

// UpdateRotation applies look input and returns the yaw-only orientation
func (c *Controller) UpdateRotation(dt float64) mgl64.Quat {
	ch := c.char
	turn := c.look.Apply(ch, c.in.Look, c.in.PointerLook, dt)
	c.targetYaw = c.targetYaw.Mul(turn).Normalize()
	c.crouch.UpdateCamera(ch, dt)

	ch.Orientation = c.targetYaw
	return ch.Orientation
}

// UpdateVelocity returns the velocity the motor should move with this tick
func (c *Controller) UpdateVelocity(dt float64) mgl64.Vec3 {
	ch := c.char

	ascend := 0.0
	if c.in.Jump {
		ascend = 1
	}
	if ch.Movement == entity.MovementClimb {
		ascend = max(ascend, mgl64.Clamp(c.in.Move.Y(), 0, 1))
	}

	v := c.velocity.Solve(ch, c.motor, Frame{
		Move:      c.move,
		Ascend:    ascend,
		JumpHeld:  c.in.Jump,
		Grounding: c.motor.GroundingStatus(),
		Up:        ch.Up(),
		DT:        dt,
	})
	ch.Velocity = v
	return v
}

// AfterUpdate runs jump bookkeeping and the uncrouch attempt after the
// motor resolved movement
func (c *Controller) AfterUpdate(dt float64) {
	ch := c.char
	c.jump.AfterMove(&ch.Jump, c.motor.GroundingStatus(), dt)
	c.crouch.TryStand(ch, c.motor)

	ch.Position = c.motor.Position()
	ch.Velocity = c.motor.BaseVelocity()
}
