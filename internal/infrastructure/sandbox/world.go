// Package sandbox is a side-on reference host for the movement core: a
// resolv collision world built from a stage config, a box motor and the
// per-tick runner.
package sandbox

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"go.uber.org/zap"

	"github.com/younwookim/kinecore/internal/domain/entity"
	"github.com/younwookim/kinecore/internal/infrastructure/config"
)

// resolv tags used for queries
const (
	tagSolid     = "solid"
	tagZone      = "zone"
	tagBreakable = "breakable"
	tagTrigger   = "trigger"
	tagCharacter = "character"
	tagQuery     = "query"
)

// Collider tags reported to the controller for solid bodies
const (
	GroundTag = "Ground"
	MovingTag = "Moving"
	PlantTag  = "Plant"
	RockTag   = "Rock"
)

// BodyType is the role of a stage body
type BodyType int

const (
	BodyWall BodyType = iota
	BodyPlatform
	BodyZone
	BodyBreakable
	BodyTrigger
)

// String returns the body type name
func (t BodyType) String() string {
	switch t {
	case BodyWall:
		return "Wall"
	case BodyPlatform:
		return "Platform"
	case BodyZone:
		return "Zone"
	case BodyBreakable:
		return "Breakable"
	case BodyTrigger:
		return "Trigger"
	default:
		return "Unknown"
	}
}

// Body is one object of the stage. Its rectangle is in stage pixels.
type Body struct {
	Type   BodyType
	Tag    string
	Object *resolv.Object

	obstacle *Obstacle
	trigger  *Trigger
	removed  bool
}

// Removed reports whether the body was taken out of the world
func (b *Body) Removed() bool {
	return b.removed
}

// Trigger returns the trigger data of a trigger body, nil otherwise
func (b *Body) Trigger() *Trigger {
	return b.trigger
}

func (b *Body) rect() rect {
	return objectRect(b.Object)
}

// Trigger is a one-shot-per-entry stage volume
type Trigger struct {
	Kind        string
	Destination mgl64.Vec3
	Upgrade     entity.Upgrade
}

// World is the collision world of one stage
type World struct {
	space    *resolv.Space
	tileSize float64
	width    float64
	height   float64
	spawn    mgl64.Vec3

	bodies    []*Body
	platforms []*platform
	query     *resolv.Object
	logger    *zap.Logger
}

// NewWorld builds the collision world for a stage
func NewWorld(cfg *config.StageConfig, logger *zap.Logger) (*World, error) {
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("failed to build stage %s: tileSize must be positive", cfg.ID)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ts := cfg.Size.TileSize
	w := &World{
		space:    resolv.NewSpace(cfg.Size.Width, cfg.Size.Height, ts, ts),
		tileSize: float64(ts),
		width:    float64(cfg.Size.Width),
		height:   float64(cfg.Size.Height),
		logger:   logger,
	}
	w.spawn = w.ToWorld(float64(cfg.PlayerSpawn.X), float64(cfg.PlayerSpawn.Y))

	w.query = resolv.NewObject(0, 0, 1, 1, tagQuery)
	w.space.Add(w.query)

	tilesX := cfg.Size.Width / ts
	for y, row := range cfg.Layers.Collision {
		w.loadRow(cfg, y, []rune(row), tilesX)
	}

	for i := range cfg.Triggers {
		if err := w.addTrigger(&cfg.Triggers[i]); err != nil {
			return nil, fmt.Errorf("failed to build stage %s: %w", cfg.ID, err)
		}
	}

	logger.Debug("stage built",
		zap.String("stage", cfg.ID),
		zap.Int("bodies", len(w.bodies)),
		zap.Int("platforms", len(w.platforms)))
	return w, nil
}

// loadRow turns one tile row into bodies. Runs of equal wall, platform and
// zone tiles merge into one body; every breakable tile is its own body.
func (w *World) loadRow(cfg *config.StageConfig, y int, row []rune, tilesX int) {
	for x := 0; x < len(row) && x < tilesX; {
		mapping, ok := cfg.TileMapping[string(row[x])]
		if !ok || mapping.Type == config.TileEmpty {
			x++
			continue
		}

		run := 1
		if mapping.Type != config.TileCut && mapping.Type != config.TileSmash {
			for x+run < len(row) && x+run < tilesX && row[x+run] == row[x] {
				run++
			}
		}

		ts := w.tileSize
		r := rect{x: float64(x) * ts, y: float64(y) * ts, w: float64(run) * ts, h: ts}
		w.addTile(mapping, r)
		x += run
	}
}

func (w *World) addTile(mapping config.TileMappingConfig, r rect) {
	switch mapping.Type {
	case config.TileWall:
		if mapping.Solid {
			w.addBody(BodyWall, GroundTag, r, tagSolid)
		}
	case config.TileMoving:
		b := w.addBody(BodyPlatform, MovingTag, r, tagSolid)
		w.platforms = append(w.platforms, newPlatform(b, w.tileSize))
	case config.TileWater:
		w.addBody(BodyZone, entity.TagWater, r, tagZone)
	case config.TileHot:
		w.addBody(BodyZone, entity.TagHot, r, tagZone)
	case config.TileCold:
		w.addBody(BodyZone, entity.TagCold, r, tagZone)
	case config.TileClimb:
		w.addBody(BodyZone, entity.TagClimb, r, tagZone)
	case config.TileCut:
		b := w.addBody(BodyBreakable, PlantTag, r, tagSolid, tagBreakable)
		b.obstacle = &Obstacle{body: b, world: w, kind: entity.BreakableCut}
	case config.TileSmash:
		b := w.addBody(BodyBreakable, RockTag, r, tagSolid, tagBreakable)
		b.obstacle = &Obstacle{body: b, world: w, kind: entity.BreakableSmash}
	default:
		w.logger.Warn("unknown tile type", zap.String("type", mapping.Type))
	}
}

func (w *World) addTrigger(tc *config.TriggerConfig) error {
	tr := &Trigger{Kind: tc.Type}
	switch tc.Type {
	case config.TriggerTeleport:
		if tc.Destination == nil {
			return fmt.Errorf("teleport trigger at (%d, %d) has no destination", tc.Rect.X, tc.Rect.Y)
		}
		tr.Destination = w.ToWorld(float64(tc.Destination.X), float64(tc.Destination.Y))
	case config.TriggerUpgrade:
		u, err := entity.ParseUpgrade(tc.Upgrade)
		if err != nil {
			return err
		}
		tr.Upgrade = u
	default:
		return fmt.Errorf("unknown trigger type %q", tc.Type)
	}

	r := rect{x: float64(tc.Rect.X), y: float64(tc.Rect.Y), w: float64(tc.Rect.W), h: float64(tc.Rect.H)}
	b := w.addBody(BodyTrigger, tc.Type, r, tagTrigger)
	b.trigger = tr
	return nil
}

func (w *World) addBody(t BodyType, tag string, r rect, tags ...string) *Body {
	obj := resolv.NewObject(r.x, r.y, r.w, r.h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, r.w, r.h))
	b := &Body{Type: t, Tag: tag, Object: obj}
	obj.Data = b
	w.space.Add(obj)
	w.bodies = append(w.bodies, b)
	return b
}

// remove takes a body out of collision queries
func (w *World) remove(b *Body) {
	if b.removed {
		return
	}
	b.removed = true
	w.space.Remove(b.Object)
	w.logger.Debug("body removed", zap.Stringer("type", b.Type), zap.String("tag", b.Tag))
}

// Bodies returns every body, including removed ones
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Spawn returns the player spawn in world units
func (w *World) Spawn() mgl64.Vec3 {
	return w.spawn
}

// TileSize returns the pixels per world unit
func (w *World) TileSize() float64 {
	return w.tileSize
}

// Size returns the stage size in pixels
func (w *World) Size() (float64, float64) {
	return w.width, w.height
}

// ToWorld converts stage pixels (origin top-left, y down) to world units
// (y up, z flattened)
func (w *World) ToWorld(px, py float64) mgl64.Vec3 {
	return mgl64.Vec3{px / w.tileSize, (w.height - py) / w.tileSize, 0}
}

// ToPixels converts world units to stage pixels
func (w *World) ToPixels(p mgl64.Vec3) (float64, float64) {
	return p.X() * w.tileSize, w.height - p.Y()*w.tileSize
}

// Update advances moving platforms and returns how far each moved this tick
func (w *World) Update(dt float64) map[*Body]float64 {
	if len(w.platforms) == 0 {
		return nil
	}
	moved := make(map[*Body]float64, len(w.platforms))
	for _, p := range w.platforms {
		if dy := p.update(dt); dy != 0 {
			moved[p.body] = dy
		}
	}
	return moved
}

// overlapping returns the live bodies carrying tag whose rectangles
// intersect r
func (w *World) overlapping(r rect, tag string) []*Body {
	q := w.query
	q.X, q.Y, q.W, q.H = r.x, r.y, r.w, r.h
	q.Update()

	check := q.Check(0, 0, tag)
	if check == nil {
		return nil
	}

	var out []*Body
	for _, obj := range check.Objects {
		b, ok := obj.Data.(*Body)
		if !ok || b.removed || !r.overlaps(b.rect()) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// rect is an axis-aligned rectangle in stage pixels
type rect struct {
	x, y, w, h float64
}

func objectRect(o *resolv.Object) rect {
	return rect{x: o.X, y: o.Y, w: o.W, h: o.H}
}

// overlapEpsilon absorbs rounding after snapping to a contact, in pixels
const overlapEpsilon = 1e-6

// overlaps reports an intersection deeper than overlapEpsilon; touching
// edges do not overlap
func (r rect) overlaps(o rect) bool {
	const e = overlapEpsilon
	return r.x < o.x+o.w-e && o.x < r.x+r.w-e && r.y < o.y+o.h-e && o.y < r.y+r.h-e
}

func (r rect) offset(dx, dy float64) rect {
	r.x += dx
	r.y += dy
	return r
}
