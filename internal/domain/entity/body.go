package entity

import "github.com/go-gl/mathgl/mgl64"

var (
	// WorldUp is the character up axis. Gravity always points against it.
	WorldUp = mgl64.Vec3{0, 1, 0}
	// LocalForward is the facing direction of an unrotated character
	LocalForward = mgl64.Vec3{0, 0, 1}
	localRight   = mgl64.Vec3{1, 0, 0}
)

// JumpState carries jump arbitration across frames
type JumpState struct {
	Requested bool
	Consumed  bool
	// JumpedThisFrame is set by the velocity phase and read by the post-move phase
	JumpedThisFrame bool
	// Released is set once jump is let go after a jump; it re-arms gliding
	Released bool
	// Held is last frame's jump input, for edge detection
	Held bool

	TimeSinceRequested    float64
	TimeSinceLastGrounded float64
}

// DashState is valid while dashing or cooling down.
// Timer is shared between the dash duration and the cooldown that follows it.
type DashState struct {
	Timer     float64
	Ready     bool
	Direction mgl64.Vec3
}

// CrouchState tracks capsule height transitions
type CrouchState struct {
	IsCrouching bool
	WantsCrouch bool
	// LerpTime runs 0..1 toward the crouched camera height
	LerpTime float64
}

// Character is the simulation state of one player character.
// It is created once at spawn and mutated once per frame.
type Character struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	Orientation mgl64.Quat

	Movement MovementState
	Upgrades UpgradeSet
	Zones    ZoneStates
	Params   MovementParams

	Jump   JumpState
	Dash   DashState
	Crouch CrouchState

	Sprinting  bool
	FinalSpeed float64
	JumpUpMul  float64

	// PendingVelocity is a one-shot impulse added on the next Normal velocity update
	PendingVelocity mgl64.Vec3

	// Pitch is the look pitch in degrees, positive looks up
	Pitch        float64
	CameraHeight float64

	RespawnPos   mgl64.Vec3
	RespawnTimer float64
}

// NewCharacter creates a character at rest
func NewCharacter(position mgl64.Vec3, orientation mgl64.Quat) *Character {
	return &Character{
		Position:    position,
		Orientation: orientation.Normalize(),
		Movement:    MovementNormal,
		Dash:        DashState{Ready: true},
		JumpUpMul:   1,
		RespawnPos:  position,
	}
}

// Up returns the character up axis
func (c *Character) Up() mgl64.Vec3 {
	return c.Orientation.Rotate(WorldUp)
}

// Forward returns the facing direction on the up plane
func (c *Character) Forward() mgl64.Vec3 {
	return c.Orientation.Rotate(LocalForward)
}

// Right returns the character right axis
func (c *Character) Right() mgl64.Vec3 {
	return c.Orientation.Rotate(localRight)
}

// HeadPosition returns the camera reference point used for core zone
// probing and interaction rays
func (c *Character) HeadPosition() mgl64.Vec3 {
	return c.Position.Add(c.Up().Mul(c.CameraHeight))
}

// ViewDirection returns the look direction including pitch
func (c *Character) ViewDirection() mgl64.Vec3 {
	pitch := mgl64.QuatRotate(-mgl64.DegToRad(c.Pitch), localRight)
	return c.Orientation.Mul(pitch).Rotate(LocalForward)
}

// Dashing reports whether the dash impulse lock is active
func (c *Character) Dashing() bool {
	return c.Movement == MovementDash
}
