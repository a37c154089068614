package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Drop falls straight down, splashes on the floor, fades out and reappears at the top
type Drop struct {
	Body
	// surfaceTime > 0 dwelling at the top, < 0 fading out on the floor, 0 falling
	surfaceTime float64
	startTime   float64
	speedTime   float64
	spawned     bool
}

func NewDrop(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &Drop{
		Body:      newBody(TypeDrop, props, rng),
		speedTime: parameter.DropAccelerationMs,
		spawned:   true,
	}
	e.Vel = vmath.Vec2{Y: e.Speed}
	return e
}

func (e *Drop) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.collide()

	switch {
	case e.surfaceTime > 0:
		e.surfaceTime -= ctx.Delta
		e.Vel.Y = 0
		e.Alpha = 1 - e.surfaceTime/e.startTime
		e.Harmless = true
		if e.surfaceTime <= 0 {
			e.surfaceTime = 0
			e.Harmless = false
			e.Vel.Y = e.Speed
			e.speedTime = parameter.DropAccelerationMs
		}
	case e.surfaceTime < 0:
		e.Vel.Y = 0
		e.Alpha = -e.surfaceTime / e.startTime
		e.surfaceTime += ctx.Delta
		if e.surfaceTime >= 0 {
			e.respawn(ctx.Rng)
		}
	default:
		e.speedTime -= ctx.Delta
		e.Vel.Y = e.Speed
		if !e.spawned && e.speedTime > 0 {
			e.Vel.Y *= 1 - e.speedTime/parameter.DropAccelerationMs
		}
	}
}

// collide reflects off the sides and top, and lands on the floor
func (e *Drop) collide() {
	b := e.Boundary
	r := e.Radius
	if e.Pos.X-r < b.X {
		e.Pos.X = b.X + r
		e.Vel.X = math.Abs(e.Vel.X)
	}
	if e.Pos.X+r > b.Right() {
		e.Pos.X = b.Right() - r
		e.Vel.X = -math.Abs(e.Vel.X)
	}
	if e.Pos.Y-r < b.Y {
		e.Pos.Y = b.Y + r
		e.Vel.Y = math.Abs(e.Vel.Y)
	}
	if e.Pos.Y+r > b.Bottom() {
		e.Pos.Y -= 1
		e.Vel.Y = 0
		e.surfaceTime = -parameter.DropFadeOutMs
		e.startTime = parameter.DropFadeOutMs
		e.spawned = false
	}
}

func (e *Drop) respawn(rng *vmath.FastRand) {
	b := e.Boundary
	e.Pos = vmath.Vec2{
		X: rng.Range(b.X+e.Radius, b.Right()-e.Radius),
		Y: b.Y + e.Radius + 1,
	}
	e.Vel = vmath.Vec2{}
	e.surfaceTime = rng.Range(parameter.DropDwellMinMs, parameter.DropDwellMaxMs)
	e.startTime = e.surfaceTime
	e.Harmless = true
}
