package entity

import (
	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// auraBody builds a body that advertises a visible aura ring
func auraBody(typeID uint32, props Props, radius float64, rng *vmath.FastRand) Body {
	b := newBody(typeID, props, rng)
	b.Aura = radius
	b.State = 1
	b.StateMetadata = radius
	return b
}

// castInAura queues an effect on a vulnerable player standing inside the aura
func (b *Body) castInAura(p *hero.Player, ctx *UpdateContext, kind uint32) {
	if p.Downed || p.Immortal {
		return
	}
	if b.Pos.DistanceTo(p.Pos) <= b.Aura+p.Radius {
		ctx.Bus.AddEffect(p.ID, kind, b.ID)
	}
}

// Slower slows every player inside its aura
type Slower struct {
	Body
}

func NewSlower(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Slower{Body: auraBody(TypeSlower, props, parameter.SlowAuraRadius, rng)}
}

func (e *Slower) Interact(p *hero.Player, ctx *UpdateContext) {
	e.Contact(p)
	e.castInAura(p, ctx, effect.KindSlow)
}

// Draining drains energy of every player inside its aura
type Draining struct {
	Body
}

func NewDraining(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Draining{Body: auraBody(TypeDraining, props, parameter.DrainingAuraRadius, rng)}
}

func (e *Draining) Interact(p *hero.Player, ctx *UpdateContext) {
	e.Contact(p)
	e.castInAura(p, ctx, effect.KindDraining)
}

// Pull drags players inside its aura toward its center, harder the farther out they stand
type Pull struct {
	Body
}

func NewPull(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Pull{Body: auraBody(TypePull, props, parameter.PullAuraRadius, rng)}
}

func (e *Pull) Interact(p *hero.Player, ctx *UpdateContext) {
	e.Contact(p)

	if p.Downed || p.Pos.X-p.Radius <= 0 || p.Pos.X+p.Radius >= e.Boundary.W {
		return
	}
	d := p.Pos.Sub(e.Pos)
	dist := d.Magnitude()
	if dist > e.Aura {
		return
	}
	falloff := dist / parameter.PullFalloff
	move := parameter.PullStrength * falloff * falloff
	ctx.Bus.PushPlayer(p.ID, vmath.FromAngle(d.Angle(), -move*ctx.TimeFix))
}
