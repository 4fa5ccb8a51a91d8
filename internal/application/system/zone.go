package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// ZoneClassifier reference-counts trigger volume overlaps per zone kind
type ZoneClassifier struct {
	counts [entity.ZoneCount]int
	logger *zap.Logger
}

// NewZoneClassifier creates a classifier with every count at zero
func NewZoneClassifier(logger *zap.Logger) *ZoneClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZoneClassifier{logger: logger}
}

// Enter records one more overlapping volume of the zone kind.
// It reports whether this was the first one.
func (c *ZoneClassifier) Enter(z entity.Zone) bool {
	if z < 0 || z >= entity.ZoneCount {
		return false
	}
	c.counts[z]++
	return c.counts[z] == 1
}

// Exit records one fewer overlapping volume of the zone kind.
// It reports whether that was the last one. An exit without a matching
// enter is clamped at zero and logged.
func (c *ZoneClassifier) Exit(z entity.Zone) bool {
	if z < 0 || z >= entity.ZoneCount {
		return false
	}
	if c.counts[z] == 0 {
		c.logger.Warn("zone exit without matching enter", zap.Stringer("zone", z))
		return false
	}
	c.counts[z]--
	return c.counts[z] == 0
}

// Count returns the number of overlapping volumes of the zone kind
func (c *ZoneClassifier) Count(z entity.Zone) int {
	if z < 0 || z >= entity.ZoneCount {
		return 0
	}
	return c.counts[z]
}

// Reset drops every count
func (c *ZoneClassifier) Reset() {
	c.counts = [entity.ZoneCount]int{}
}

// Classify derives the tri-state membership of every zone from the counts
// and this frame's core probe hits
func (c *ZoneClassifier) Classify(coreHits []Collider) entity.ZoneStates {
	var zs entity.ZoneStates
	for z := entity.Zone(0); z < entity.ZoneCount; z++ {
		if c.counts[z] > 0 {
			zs[z] = entity.ZoneContains
		}
	}
	for _, col := range coreHits {
		if z, ok := entity.ClassifyTag(col.Tag); ok {
			zs[z] = entity.ZoneCore
		}
	}
	return zs
}

// ResolveParams builds the movement tuning for a zone membership.
// Water without Swim combined with climb merges so the more restrictive
// value wins; water with Swim ignores climb entirely.
func ResolveParams(cfg *config.CharacterConfig, inWater, inClimb bool, up entity.UpgradeSet) entity.MovementParams {
	p := entity.MovementParams{
		BaseSpeed:        cfg.Ground.BaseSpeed,
		MoveSharpness:    cfg.Ground.MovementSharpness,
		AirSpeed:         cfg.Air.Speed,
		AirAccel:         cfg.Air.Accel,
		AirDrag:          cfg.Air.Drag,
		JumpUpSpeed:      cfg.Jump.UpSpeed,
		TerminalVelocity: cfg.Gravity.TerminalVelocity,
	}

	if inWater {
		p.BaseSpeed = cfg.Water.BaseSpeed
		p.MoveSharpness = cfg.Water.MovementSharpness
		p.AirSpeed = cfg.Water.AirSpeed
		p.AirAccel = cfg.Water.AirAccel
		p.AirDrag = cfg.Water.AirDrag
		p.JumpUpSpeed = cfg.Water.JumpUpSpeed
		p.Buoyancy = cfg.Water.Buoyancy
		p.TerminalVelocity = cfg.Water.TerminalVelocity
		if up.Swim {
			p.AscendAccel = cfg.Water.AscendAccel
			p.AscendVel = cfg.Water.AscendVel
		}
	}

	if !inClimb {
		return p
	}

	switch {
	case !inWater:
		p.AscendAccel = cfg.Climb.Accel
		p.AscendVel = cfg.Climb.UpVel
		p.Buoyancy = cfg.Climb.SlowFall
		p.TerminalVelocity = cfg.Climb.DownVel
		p.AirDrag = cfg.Climb.AirDrag
	case !up.Swim:
		p.AscendAccel = cfg.Climb.Accel
		p.AscendVel = cfg.Climb.UpVel
		p.Buoyancy = max(cfg.Climb.SlowFall, cfg.Water.Buoyancy)
		p.TerminalVelocity = min(cfg.Climb.DownVel, cfg.Water.TerminalVelocity)
		p.AirDrag = max(cfg.Climb.AirDrag, cfg.Water.AirDrag)
	}
	return p
}
