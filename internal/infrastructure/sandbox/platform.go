package sandbox

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/kinecore/internal/domain/entity"
)

const (
	// platformTravel is how far a moving platform rises, in tiles
	platformTravel = 3
	// platformLeg is the duration of one rise or fall in seconds
	platformLeg = 2
)

// platform moves a body up and back down forever
type platform struct {
	body      *Body
	low, high float32
	rising    bool
	tween     *gween.Tween
}

func newPlatform(b *Body, tileSize float64) *platform {
	low := float32(b.Object.Y)
	high := low - float32(platformTravel*tileSize)
	return &platform{
		body:   b,
		low:    low,
		high:   high,
		rising: true,
		tween:  gween.New(low, high, platformLeg, ease.InOutSine),
	}
}

// update advances the tween and returns the pixel delta along y
func (p *platform) update(dt float64) float64 {
	y, done := p.tween.Update(float32(dt))
	if done {
		p.rising = !p.rising
		if p.rising {
			p.tween = gween.New(p.low, p.high, platformLeg, ease.InOutSine)
		} else {
			p.tween = gween.New(p.high, p.low, platformLeg, ease.InOutSine)
		}
	}

	obj := p.body.Object
	dy := float64(y) - obj.Y
	obj.Y = float64(y)
	obj.Update()
	return dy
}

// Obstacle is a stage tile that Cut or Smash destroys
type Obstacle struct {
	body  *Body
	world *World
	kind  entity.BreakableKind
}

// Kind returns the upgrade-gated breakable kind
func (o *Obstacle) Kind() entity.BreakableKind {
	return o.kind
}

// Break removes the obstacle from the world
func (o *Obstacle) Break() {
	o.world.remove(o.body)
}

// Broken reports whether the obstacle is gone
func (o *Obstacle) Broken() bool {
	return o.body.removed
}
