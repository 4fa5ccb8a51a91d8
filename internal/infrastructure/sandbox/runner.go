package sandbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/application/system"
	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// Runner hosts one character in a World and drives the controller pipeline
type Runner struct {
	world  *World
	motor  *Motor
	ctrl   *system.Controller
	logger *zap.Logger

	zones    map[*Body]struct{}
	triggers map[*Body]struct{}
	frame    int
}

// NewRunner builds the stage world and spawns a controlled character
func NewRunner(stage *config.StageConfig, cfg *config.CharacterConfig, input system.InputSource, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := NewWorld(stage, logger)
	if err != nil {
		return nil, err
	}
	m := NewMotor(w, w.Spawn())

	ctrl, err := system.NewController(cfg, m, input, system.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	r := &Runner{
		world:    w,
		motor:    m,
		ctrl:     ctrl,
		logger:   logger,
		zones:    make(map[*Body]struct{}),
		triggers: make(map[*Body]struct{}),
	}
	// Zones the spawn point already overlaps count as entered
	r.diffZones()
	r.triggers = r.overlappingSet(tagTrigger)
	return r, nil
}

// World returns the collision world
func (r *Runner) World() *World {
	return r.world
}

// Motor returns the character motor
func (r *Runner) Motor() *Motor {
	return r.motor
}

// Controller returns the movement controller
func (r *Runner) Controller() *system.Controller {
	return r.ctrl
}

// Frame returns the number of completed steps
func (r *Runner) Frame() int {
	return r.frame
}

// Step advances the simulation by one tick
func (r *Runner) Step(dt float64) {
	if dy, ok := r.world.Update(dt)[r.motor.GroundBody()]; ok {
		r.motor.Carry(dy)
	}

	r.ctrl.BeforeUpdate(dt)
	r.ctrl.UpdateRotation(dt)
	r.motor.SetBaseVelocity(r.ctrl.UpdateVelocity(dt))
	r.motor.Move(dt)
	r.ctrl.AfterUpdate(dt)

	r.diffZones()
	r.fireTriggers()
	r.frame++
}

// overlappingSet returns the live bodies carrying tag that overlap the
// character box
func (r *Runner) overlappingSet(tag string) map[*Body]struct{} {
	set := make(map[*Body]struct{})
	for _, b := range r.world.overlapping(r.motor.box(), tag) {
		set[b] = struct{}{}
	}
	return set
}

// diffZones reports zone volumes the character started or stopped overlapping
func (r *Runner) diffZones() {
	current := r.overlappingSet(tagZone)
	for b := range r.zones {
		if _, ok := current[b]; !ok {
			r.ctrl.OnZoneExit(b.Tag)
		}
	}
	for b := range current {
		if _, ok := r.zones[b]; !ok {
			r.ctrl.OnZoneEnter(b.Tag)
		}
	}
	r.zones = current
}

// fireTriggers runs each trigger once per entry, in query order
func (r *Runner) fireTriggers() {
	hits := r.world.overlapping(r.motor.box(), tagTrigger)
	current := make(map[*Body]struct{}, len(hits))
	for _, b := range hits {
		current[b] = struct{}{}
		if _, ok := r.triggers[b]; !ok {
			r.fire(b)
		}
	}
	r.triggers = current
}

func (r *Runner) fire(b *Body) {
	tr := b.trigger
	switch tr.Kind {
	case config.TriggerTeleport:
		r.logger.Info("teleporter entered", zap.Float64s("destination", tr.Destination[:]))
		r.ctrl.Teleport(tr.Destination)
	case config.TriggerUpgrade:
		r.ctrl.GrantUpgrade(tr.Upgrade)
		r.world.remove(b)
	}
}

// Snapshot is the observable character state after a step
type Snapshot struct {
	Frame    int               `json:"frame"`
	Position mgl64.Vec3        `json:"position"`
	Velocity mgl64.Vec3        `json:"velocity"`
	State    string            `json:"state"`
	Grounded bool              `json:"grounded"`
	Upgrades entity.UpgradeSet `json:"upgrades"`
	Zones    map[string]string `json:"zones,omitempty"`
}

// Snapshot captures the current character state
func (r *Runner) Snapshot() Snapshot {
	c := r.ctrl.Character()
	s := Snapshot{
		Frame:    r.frame,
		Position: c.Position,
		Velocity: c.Velocity,
		State:    c.Movement.String(),
		Grounded: r.motor.GroundingStatus().IsStableOnGround,
		Upgrades: c.Upgrades,
	}
	for z := entity.Zone(0); z < entity.ZoneCount; z++ {
		if st := c.Zones.Get(z); st.Inside() {
			if s.Zones == nil {
				s.Zones = make(map[string]string)
			}
			s.Zones[z.String()] = st.String()
		}
	}
	return s
}
