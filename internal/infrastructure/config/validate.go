package config

import (
	"errors"
	"fmt"
)

// Validate checks the tuning for values the movement core cannot run with.
// All problems are reported together.
func (c *CharacterConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("ground.baseSpeed", c.Ground.BaseSpeed)
	positive("ground.movementSharpness", c.Ground.MovementSharpness)
	positive("air.speed", c.Air.Speed)
	nonNegative("air.accel", c.Air.Accel)
	nonNegative("air.drag", c.Air.Drag)
	positive("sprint.multiplier", c.Sprint.Multiplier)
	positive("crouch.multiplier", c.Crouch.Multiplier)
	nonNegative("crouch.lerpSpeed", c.Crouch.LerpSpeed)

	positive("capsule.radius", c.Capsule.Radius)
	positive("capsule.height", c.Capsule.Height)
	positive("capsule.crouchedHeight", c.Capsule.CrouchedHeight)
	if c.Capsule.CrouchedHeight > c.Capsule.Height {
		errs = append(errs, fmt.Errorf("capsule.crouchedHeight %v exceeds capsule.height %v",
			c.Capsule.CrouchedHeight, c.Capsule.Height))
	}

	nonNegative("jump.upSpeed", c.Jump.UpSpeed)
	nonNegative("jump.preGroundingGraceTime", c.Jump.PreGroundingGraceTime)
	nonNegative("jump.postGroundingGraceTime", c.Jump.PostGroundingGraceTime)
	positive("jump.superJumpMultiplier", c.Jump.SuperJumpMultiplier)

	positive("water.baseSpeed", c.Water.BaseSpeed)
	positive("water.movementSharpness", c.Water.MovementSharpness)
	positive("water.airSpeed", c.Water.AirSpeed)
	nonNegative("water.airAccel", c.Water.AirAccel)
	nonNegative("water.airDrag", c.Water.AirDrag)
	positive("water.terminalVelocity", c.Water.TerminalVelocity)
	nonNegative("water.buoyancy", c.Water.Buoyancy)
	nonNegative("water.ascendAccel", c.Water.AscendAccel)
	nonNegative("water.ascendVel", c.Water.AscendVel)

	nonNegative("climb.accel", c.Climb.Accel)
	nonNegative("climb.upVel", c.Climb.UpVel)
	positive("climb.downVel", c.Climb.DownVel)
	nonNegative("climb.slowFall", c.Climb.SlowFall)
	nonNegative("climb.airDrag", c.Climb.AirDrag)

	nonNegative("gravity.strength", c.Gravity.Strength)
	positive("gravity.terminalVelocity", c.Gravity.TerminalVelocity)
	nonNegative("respawn.timerLength", c.Respawn.TimerLength)

	positive("dash.length", c.Dash.Length)
	nonNegative("dash.cooldownLength", c.Dash.CooldownLength)
	positive("dash.speed", c.Dash.Speed)
	positive("glide.terminalVelocity", c.Glide.TerminalVelocity)

	nonNegative("camera.baseHeight", c.Camera.BaseHeight)
	nonNegative("camera.rotationSpeed", c.Camera.RotationSpeed)
	positive("camera.coreProbeRadius", c.Camera.CoreProbeRadius)
	nonNegative("interact.range", c.Interact.Range)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid character config: %w", errors.Join(errs...))
}
