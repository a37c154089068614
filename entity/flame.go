package entity

import (
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// trailer drops a FlameTrail every time the owner has moved about one diameter
type trailer struct {
	timer float64
}

func (t *trailer) tick(owner *Body, ctx *UpdateContext) {
	t.timer += ctx.Delta
	if owner.Speed <= 0 {
		return
	}
	if t.timer < 32*(owner.Radius*2/owner.Speed) {
		return
	}
	t.timer = 0

	trail := &FlameTrail{
		Body: newBody(TypeFlameTrail, Props{
			Radius:   owner.Radius,
			Speed:    0,
			Boundary: owner.Boundary,
		}, ctx.Rng),
		ownerSpeed: owner.Speed,
	}
	trail.Pos = owner.Pos
	ctx.Bus.SpawnEntity(ctx.Zone, trail)
}

// Flame moves like a normal and leaves a trail of fading flames
type Flame struct {
	Body
	trail trailer
}

func NewFlame(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Flame{Body: newBody(TypeFlame, props, rng)}
}

func (e *Flame) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()
	e.trail.tick(&e.Body, ctx)
}

// FlameTrail stands still and fades out; faster owners leave shorter trails
type FlameTrail struct {
	Body
	timer      float64
	ownerSpeed float64
}

func (e *FlameTrail) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()

	e.timer += ctx.Delta
	life := parameter.FlameTrailLifeMs / e.ownerSpeed
	e.Alpha = max(0, 1-e.timer/life)
	if e.timer >= life {
		e.ToRemove = true
	}
	if e.timer >= parameter.FlameTrailHarmlessMs {
		e.Harmless = true
	}
}
