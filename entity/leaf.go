package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Leaf grows in place, makes the first player to touch it slip, then shrinks away and regrows elsewhere
type Leaf struct {
	Body
	spawnTime   float64
	removeTime  float64
	remove      bool
	startRadius float64
}

func NewLeaf(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &Leaf{
		Body:        newBody(TypeLeaf, props, rng),
		spawnTime:   parameter.LeafSpawnMs,
		removeTime:  parameter.LeafRemoveMs,
		startRadius: props.Radius,
	}
	e.Vel = vmath.Vec2{}
	e.Harmless = true
	return e
}

func (e *Leaf) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()

	if e.spawnTime > 0 {
		e.spawnTime -= ctx.Delta
		e.Radius = e.startRadius * 2 * math.Max(0.5, e.spawnTime/parameter.LeafSpawnMs)
		e.Alpha = 1 - e.spawnTime/parameter.LeafSpawnMs
	} else if e.Harmless {
		e.Harmless = false
		e.Radius = e.startRadius
		e.spawnTime = 0
	}

	if e.remove {
		e.removeTime -= ctx.Delta
		e.Harmless = true
		e.Alpha = e.removeTime / parameter.LeafRemoveMs
		e.Radius = e.startRadius * 2 * math.Max(0.5, 1-e.removeTime/parameter.LeafRemoveMs)
		if e.removeTime < 0 {
			e.respawn(ctx.Rng)
		}
	}
}

// Interact slips the player instead of knocking it
func (e *Leaf) Interact(p *hero.Player, ctx *UpdateContext) {
	if e.Harmless || p.Immortal || p.Downed || !e.Touches(p) {
		return
	}
	ctx.Bus.AddEffect(p.ID, effect.KindSlipped, e.ID)
	e.remove = true
}

func (e *Leaf) respawn(rng *vmath.FastRand) {
	b := e.Boundary
	e.Pos = vmath.Vec2{
		X: rng.Range(b.X+e.Radius, b.Right()-e.Radius),
		Y: rng.Range(b.Y+e.Radius, b.Bottom()-e.Radius),
	}
	e.spawnTime = parameter.LeafSpawnMs
	e.removeTime = parameter.LeafRemoveMs
	e.remove = false
}
