package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// minLookSqr ignores stick drift and sub-pixel pointer jitter
const minLookSqr = 0.01

// LookHandler turns look input into yaw and pitch
type LookHandler struct {
	config *config.CameraConfig
}

// NewLookHandler creates a new look handler
func NewLookHandler(cfg *config.CameraConfig) *LookHandler {
	return &LookHandler{config: cfg}
}

// Apply updates the character pitch and returns the yaw delta as a rotation
// about the world up axis. Pointer deltas are already per-frame and are not
// scaled by dt.
func (h *LookHandler) Apply(c *entity.Character, look mgl64.Vec2, pointer bool, dt float64) mgl64.Quat {
	if look.Dot(look) < minLookSqr {
		return mgl64.QuatIdent()
	}

	mul := dt
	if pointer {
		mul = 1
	}

	c.Pitch = clampAngle(c.Pitch+look.Y()*h.config.RotationSpeed*mul, -90, 90)
	yaw := look.X() * h.config.RotationSpeed * mul
	// Positive yaw turns forward toward the right axis
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), entity.WorldUp)
}
