package system

import (
	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// RespawnHandler records safe ground and times hazard exposure
type RespawnHandler struct {
	config *config.RespawnConfig
}

// NewRespawnHandler creates a new respawn handler
func NewRespawnHandler(cfg *config.RespawnConfig) *RespawnHandler {
	return &RespawnHandler{config: cfg}
}

// Reset holds the timer at its full length
func (h *RespawnHandler) Reset(c *entity.Character) {
	c.RespawnTimer = h.config.TimerLength
}

// Update records the respawn point and advances the hazard countdown.
// It reports whether the character must be teleported to RespawnPos now.
func (h *RespawnHandler) Update(c *entity.Character, g GroundingStatus, dt float64) bool {
	if g.IsStableOnGround && !h.config.ExcludesGround(g.GroundCollider.Tag) && c.Zones.Safe(c.Upgrades) {
		c.RespawnPos = c.Position
	}

	if !c.Zones.Exposed(c.Upgrades) {
		h.Reset(c)
		return false
	}

	c.RespawnTimer -= dt
	if c.RespawnTimer > 0 {
		return false
	}
	h.Reset(c)
	return true
}
