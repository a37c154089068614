package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// steerHoming turns the heading a fixed increment toward target
func (b *Body) steerHoming(target *hero.Player, delta float64) {
	toTarget := target.Pos.Sub(b.Pos).Angle()
	diff := toTarget - b.Angle
	angleDiff := math.Atan2(math.Sin(diff), math.Cos(diff))

	b.VelToAngle()
	if math.Abs(angleDiff) < parameter.HomingAngleIncrement {
		return
	}
	step := parameter.HomingAngleIncrement * (delta / parameter.HomingFrameMs)
	if angleDiff < 0 {
		b.Angle -= step
	} else {
		b.Angle += step
	}
	b.AngleToVel()
}

// steerBee turns toward target proportionally to the sine of the heading error
func (b *Body) steerBee(target *hero.Player, delta float64) {
	toTarget := target.Pos.Sub(b.Pos).Angle()
	b.VelToAngle()

	diff := vmath.WrapAngle(toTarget - b.Angle)
	maxTurn := parameter.BeeMaxTurn * (delta / parameter.BeeFrameMs)
	if math.Abs(diff) < maxTurn {
		b.Angle = toTarget
	} else {
		b.Angle += math.Sin(diff) * maxTurn
	}
	b.AngleToVel()
}

// Homing steers toward the nearest player in range
type Homing struct {
	Body
}

func NewHoming(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Homing{Body: newBody(TypeHoming, props, rng)}
}

func (e *Homing) Update(ctx *UpdateContext) {
	if target := e.nearestTarget(ctx.Players, parameter.HomingMaxDist); target != nil {
		e.steerHoming(target, ctx.Delta)
	}
	e.Move(ctx.TimeFix)
	e.Collide()
}

// Bee is a homing variant with smoother turning
type Bee struct {
	Body
}

func NewBee(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Bee{Body: newBody(TypeBee, props, rng)}
}

func (e *Bee) Update(ctx *UpdateContext) {
	if target := e.nearestTarget(ctx.Players, parameter.HomingMaxDist); target != nil {
		e.steerBee(target, ctx.Delta)
	}
	e.Move(ctx.TimeFix)
	e.Collide()
}
