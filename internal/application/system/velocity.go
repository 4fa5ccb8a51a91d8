package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// Frame is the per-tick context the velocity solver reads
type Frame struct {
	// Move is the world-space move intent, magnitude at most 1
	Move mgl64.Vec3
	// Ascend is the vertical intent in [0, 1] used by swim and climb
	Ascend    float64
	JumpHeld  bool
	Grounding GroundingStatus
	Up        mgl64.Vec3
	DT        float64
}

// VelocitySolver computes the character velocity for one frame
type VelocitySolver struct {
	config *config.CharacterConfig
	jump   *JumpArbiter
}

// NewVelocitySolver creates a new velocity solver
func NewVelocitySolver(cfg *config.CharacterConfig, jump *JumpArbiter) *VelocitySolver {
	return &VelocitySolver{
		config: cfg,
		jump:   jump,
	}
}

// Solve returns the new velocity starting from the motor's current one
func (s *VelocitySolver) Solve(c *entity.Character, m Motor, f Frame) mgl64.Vec3 {
	if c.Movement == entity.MovementDash {
		// Impulse-locked: no gravity, drag or jump
		return c.Dash.Direction.Mul(s.config.Dash.Speed)
	}

	v := m.BaseVelocity()
	grounded := f.Grounding.IsStableOnGround
	if grounded && c.Movement == entity.MovementClimb && f.Ascend > 0 {
		// Climbing lifts off the ground
		m.ForceUnground()
		grounded = false
	}

	if grounded {
		v = s.ground(c, m, f, v)
	} else {
		v = s.air(c, f, v)
	}

	v = s.applyJump(c, m, f, v)

	if sqrMagnitude(c.PendingVelocity) > 0 {
		v = v.Add(c.PendingVelocity)
		c.PendingVelocity = mgl64.Vec3{}
	}
	return v
}

// ground reorients velocity onto the slope and eases toward the input target
func (s *VelocitySolver) ground(c *entity.Character, m Motor, f Frame, v mgl64.Vec3) mgl64.Vec3 {
	normal := f.Grounding.GroundNormal
	speed := v.Len()
	v = m.DirectionTangentToSurface(v, normal).Mul(speed)

	inputRight := f.Move.Cross(f.Up)
	reoriented := normalizeSafe(normal.Cross(inputRight)).Mul(f.Move.Len())
	target := reoriented.Mul(c.FinalSpeed)

	return lerpVec(v, target, smoothingFactor(c.Params.MoveSharpness, f.DT))
}

// air integrates input acceleration, ascend, gravity and drag
func (s *VelocitySolver) air(c *entity.Character, f Frame, v mgl64.Vec3) mgl64.Vec3 {
	p := &c.Params

	if sqrMagnitude(f.Move) > 0 {
		added := f.Move.Mul(p.AirSpeed * p.AirAccel * f.DT)
		planar := projectOnPlane(v, f.Up)

		if planar.Len() < p.AirSpeed {
			// Limit the planar speed gained from input
			total := clampMagnitude(planar.Add(added), p.AirSpeed)
			added = total.Sub(planar)
		} else if planar.Dot(added) > 0 {
			// Already over the limit: never push further along the excess
			added = projectOnPlane(added, normalizeSafe(planar))
		}

		// Prevent air-climbing sloped walls
		if f.Grounding.FoundAnyGround && v.Add(added).Dot(added) > 0 {
			obstruction := normalizeSafe(f.Up.Cross(f.Grounding.GroundNormal).Cross(f.Up))
			added = projectOnPlane(added, obstruction)
		}

		v = v.Add(added)
	}

	if p.AscendAccel > 0 && f.Ascend > 0 && v.Y() < p.AscendVel {
		v[1] += p.AscendAccel * f.Ascend * f.DT
	}

	terminal := s.terminalVelocity(c, f)
	if v.Y() > -terminal {
		gravity := f.Up.Mul(p.Buoyancy - s.config.Gravity.Strength)
		v = v.Add(gravity.Mul(f.DT))
		if v.Y() < -terminal {
			v[1] = -terminal
		}
	} else {
		v[1] = lerp(v.Y(), -terminal, 0.5)
	}

	return v.Mul(1 / (1 + p.AirDrag*f.DT))
}

// terminalVelocity returns the fall speed cap, lowered while gliding
func (s *VelocitySolver) terminalVelocity(c *entity.Character, f Frame) float64 {
	gliding := c.Upgrades.Glide &&
		!c.Zones.Get(entity.ZoneWater).Inside() &&
		!c.Zones.Get(entity.ZoneClimb).Inside() &&
		f.JumpHeld && c.Jump.Released
	if gliding {
		return s.config.Glide.TerminalVelocity
	}
	return c.Params.TerminalVelocity
}

// applyJump executes a pending jump, replacing the velocity along up
func (s *VelocitySolver) applyJump(c *entity.Character, m Motor, f Frame, v mgl64.Vec3) mgl64.Vec3 {
	s.jump.BeginFrame(&c.Jump, f.DT)
	if !s.jump.Ready(&c.Jump, f.Grounding) {
		return v
	}

	dir := s.jump.Direction(f.Grounding, f.Up)
	m.ForceUnground()

	v = v.Sub(project(v, f.Up)).Add(dir.Mul(c.JumpUpMul * c.Params.JumpUpSpeed))
	s.jump.Commit(&c.Jump)
	return v
}
