package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// JumpArbiter decides when a requested jump may execute
type JumpArbiter struct {
	config *config.JumpConfig
}

// NewJumpArbiter creates a new jump arbiter
func NewJumpArbiter(cfg *config.JumpConfig) *JumpArbiter {
	return &JumpArbiter{config: cfg}
}

// Request registers a jump press
func (a *JumpArbiter) Request(js *entity.JumpState) {
	js.Requested = true
	js.TimeSinceRequested = 0
}

// Cancel drops a pending request
func (a *JumpArbiter) Cancel(js *entity.JumpState) {
	js.Requested = false
}

// grounded reports whether the ground counts for jumping
func (a *JumpArbiter) grounded(g GroundingStatus) bool {
	if a.config.AllowWhenSliding {
		return g.FoundAnyGround
	}
	return g.IsStableOnGround
}

// BeginFrame advances the request age before the jump check
func (a *JumpArbiter) BeginFrame(js *entity.JumpState, dt float64) {
	js.JumpedThisFrame = false
	js.TimeSinceRequested += dt
}

// Ready reports whether a pending request may execute this frame
func (a *JumpArbiter) Ready(js *entity.JumpState, g GroundingStatus) bool {
	if !js.Requested || js.Consumed {
		return false
	}
	return a.grounded(g) || js.TimeSinceLastGrounded <= a.config.PostGroundingGraceTime
}

// Direction returns the jump direction: the slope normal when standing on
// ground too steep to be stable, otherwise up
func (a *JumpArbiter) Direction(g GroundingStatus, up mgl64.Vec3) mgl64.Vec3 {
	if g.FoundAnyGround && !g.IsStableOnGround {
		return g.GroundNormal
	}
	return up
}

// Commit marks the request as executed
func (a *JumpArbiter) Commit(js *entity.JumpState) {
	js.Requested = false
	js.Consumed = true
	js.JumpedThisFrame = true
	js.Released = false
}

// AfterMove expires stale requests and tracks time since the last grounded frame
func (a *JumpArbiter) AfterMove(js *entity.JumpState, g GroundingStatus, dt float64) {
	if js.Requested && js.TimeSinceRequested > a.config.PreGroundingGraceTime {
		js.Requested = false
	}

	if a.grounded(g) {
		if !js.JumpedThisFrame {
			js.Consumed = false
		}
		js.TimeSinceLastGrounded = 0
	} else {
		js.TimeSinceLastGrounded += dt
	}
}
