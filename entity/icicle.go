package entity

import (
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Icicle shoots vertically, sticks to the top or bottom wall for a while and shoots back
type Icicle struct {
	Body
	timer   float64
	wallHit bool
}

func NewIcicle(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &Icicle{Body: newBody(TypeIcicle, props, rng)}
	dir := 1.0
	if rng.Intn(2) == 0 {
		dir = -1
	}
	e.Vel = vmath.Vec2{Y: dir * e.Speed}
	e.Collide()
	return e
}

func (e *Icicle) Update(ctx *UpdateContext) {
	if e.wallHit {
		e.timer += ctx.Delta
		e.Friction = 1
		if e.timer > parameter.IcicleStopMs {
			e.timer = 0
			e.wallHit = false
			e.Friction = 0
			e.AngleToVel()
		}
	}
	e.Move(ctx.TimeFix)
	if e.Collide().Has(vmath.EdgeTop | vmath.EdgeBottom) {
		e.wallHit = true
		e.VelToAngle()
	}
}
