package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// cloudOffset is the shove a cloud gives a player overlapping it
// Amplitude is 2 XOR the truncated negated falloff, a known quirk of the formula
func (b *Body) cloudOffset(p *hero.Player, tf float64) (vmath.Vec2, bool) {
	if p.Pos.X <= p.Radius || p.Pos.X-p.Radius >= b.Boundary.W {
		return vmath.Vec2{}, false
	}
	d := p.Pos.Sub(b.Pos)
	dist := d.Magnitude()
	if dist > b.Radius+p.Radius {
		return vmath.Vec2{}, false
	}
	amp := 2 ^ int32(-(dist / parameter.CloudFalloff))
	move := parameter.CloudStrength * float64(amp)
	return vmath.FromAngle(math.Atan2(d.Y, d.X), move*tf), true
}

// Cloud is harmless and shoves overlapping players away
type Cloud struct {
	Body
}

func NewCloud(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &Cloud{Body: newBody(TypeCloud, props, rng)}
	e.Alpha = parameter.CloudAlpha
	return e
}

func (e *Cloud) Interact(p *hero.Player, ctx *UpdateContext) {
	if p.Immortal {
		return
	}
	if off, ok := e.cloudOffset(p, ctx.TimeFix); ok {
		ctx.Bus.PushPlayer(p.ID, off)
	}
}

// StormCloud flickers, knocks on contact and shoves like a cloud
type StormCloud struct {
	Body
	timer float64
}

func NewStormCloud(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &StormCloud{Body: newBody(TypeStormCloud, props, rng)}
	e.Alpha = parameter.StormCloudAlpha
	return e
}

func (e *StormCloud) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()
	e.timer = math.Mod(e.timer, parameter.StormPeriodMs) + ctx.Delta
	e.Alpha = math.Abs(math.Sin(e.timer / parameter.StormPulseMs))
}

func (e *StormCloud) Interact(p *hero.Player, ctx *UpdateContext) {
	e.Contact(p)
	if off, ok := e.cloudOffset(p, ctx.TimeFix); ok {
		ctx.Bus.PushPlayer(p.ID, off)
	}
}
