package system

import (
	"github.com/tanema/gween/ease"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// CrouchHandler switches capsule heights and eases the camera reference height
type CrouchHandler struct {
	capsule *config.CapsuleConfig
	crouch  *config.CrouchConfig
	camera  *config.CameraConfig
	curve   ease.TweenFunc
}

// NewCrouchHandler creates a new crouch handler
func NewCrouchHandler(cfg *config.CharacterConfig) *CrouchHandler {
	return &CrouchHandler{
		capsule: &cfg.Capsule,
		crouch:  &cfg.Crouch,
		camera:  &cfg.Camera,
		curve:   ease.InOutQuad,
	}
}

// Stand applies the standing capsule
func (h *CrouchHandler) Stand(m Motor) {
	m.SetCapsuleDimensions(h.capsule.Radius, h.capsule.Height, h.capsule.Height*0.5)
}

// Shrink applies the crouched capsule
func (h *CrouchHandler) Shrink(m Motor) {
	m.SetCapsuleDimensions(h.capsule.Radius, h.capsule.CrouchedHeight, h.capsule.CrouchedHeight*0.5)
}

// Press crouches immediately when crouch is wanted while standing.
// Sprint is cancelled only on stable ground.
func (h *CrouchHandler) Press(c *entity.Character, m Motor, stable bool) {
	if c.Crouch.IsCrouching || !c.Crouch.WantsCrouch {
		return
	}
	c.Crouch.IsCrouching = true
	if stable {
		c.Sprinting = false
	}
	h.Shrink(m)
}

// TryStand attempts to uncrouch once crouch is released. When the standing
// capsule overlaps anything the crouched capsule is restored and the attempt
// repeats next frame.
func (h *CrouchHandler) TryStand(c *entity.Character, m Motor) bool {
	if !c.Crouch.IsCrouching || c.Crouch.WantsCrouch {
		return false
	}

	h.Stand(m)
	if len(m.CharacterOverlap(m.Position(), c.Orientation)) > 0 {
		h.Shrink(m)
		return false
	}

	c.Crouch.IsCrouching = false
	return true
}

// UpdateCamera moves the camera reference height toward half of its base
// height while crouching and back while standing
func (h *CrouchHandler) UpdateCamera(c *entity.Character, dt float64) {
	step := dt * h.crouch.LerpSpeed
	switch {
	case c.Crouch.IsCrouching && c.Crouch.LerpTime < 1:
		c.Crouch.LerpTime = min(c.Crouch.LerpTime+step, 1)
	case !c.Crouch.IsCrouching && c.Crouch.LerpTime > 0:
		c.Crouch.LerpTime = max(c.Crouch.LerpTime-step, 0)
	}

	base := h.camera.BaseHeight
	c.CameraHeight = float64(h.curve(float32(c.Crouch.LerpTime), float32(base), float32(-base/2), 1))
}
