package system

import (
	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// InteractHandler breaks obstacles in front of the head with Cut or Smash
type InteractHandler struct {
	config *config.InteractConfig
	ray    Interactor
}

// NewInteractHandler creates a new interact handler. A nil Interactor
// disables interaction.
func NewInteractHandler(cfg *config.InteractConfig, ray Interactor) *InteractHandler {
	return &InteractHandler{
		config: cfg,
		ray:    ray,
	}
}

// Interact casts along the view direction and breaks the first hit if an
// owned upgrade allows it
func (h *InteractHandler) Interact(c *entity.Character) (entity.BreakableKind, bool) {
	if h.ray == nil || !(c.Upgrades.Cut || c.Upgrades.Smash) {
		return 0, false
	}

	target, ok := h.ray.Raycast(c.HeadPosition(), c.ViewDirection(), h.config.Range)
	if !ok || !c.Upgrades.CanBreak(target.Kind()) {
		return 0, false
	}

	target.Break()
	return target.Kind(), true
}
