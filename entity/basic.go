package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Normal bounces around and knocks on contact
type Normal struct {
	Body
}

func NewNormal(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Normal{Body: newBody(TypeNormal, props, rng)}
}

// Immune is a normal that ignores player abilities
type Immune struct {
	Body
}

func NewImmune(props Props, _ Group, rng *vmath.FastRand) Entity {
	e := &Immune{Body: newBody(TypeImmune, props, rng)}
	e.Immune = true
	return e
}

// Changer flips between harmful and harmless every period
// Half the group starts disabled so the group alternates
type Changer struct {
	Body
	timer   float64
	disable bool
}

func NewChanger(props Props, group Group, rng *vmath.FastRand) Entity {
	e := &Changer{
		Body:    newBody(TypeChanger, props, rng),
		disable: group.Num >= group.Count/2,
	}
	e.Harmless = e.disable
	return e
}

func (e *Changer) Update(ctx *UpdateContext) {
	e.timer += ctx.Delta
	if e.timer > parameter.ChangerPeriodMs {
		e.disable = !e.disable
	}
	e.Harmless = e.disable
	e.timer = math.Mod(e.timer, parameter.ChangerPeriodMs)

	e.Move(ctx.TimeFix)
	e.Collide()
}

// Fade pulses its opacity and is harmless while mostly transparent
type Fade struct {
	Body
	timer float64
}

func NewFade(props Props, group Group, rng *vmath.FastRand) Entity {
	e := &Fade{Body: newBody(TypeFade, props, rng)}
	if group.Num > group.Count/2 {
		e.timer = parameter.FadePeriodMs / 2
	}
	return e
}

func (e *Fade) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()

	e.timer += ctx.Delta
	e.Alpha = (math.Cos(e.timer/parameter.FadePeriodMs*vmath.Tau) + 1) / 2
	e.Harmless = e.Alpha < 0.5
}

// Sizer breathes between a small and a large radius
type Sizer struct {
	Body
	minRadius float64
	maxRadius float64
	growing   bool
}

func NewSizer(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Sizer{
		Body:      newBody(TypeSizer, props, rng),
		minRadius: props.Radius / 2.5,
		maxRadius: props.Radius * 2.5,
		growing:   true,
	}
}

func (e *Sizer) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()

	step := ctx.TimeFix * parameter.SizerRate * e.minRadius
	if e.growing {
		e.Radius += step
		if e.Radius > e.maxRadius {
			e.growing = false
		}
	} else {
		e.Radius -= step
		if e.Radius < e.minRadius {
			e.growing = true
		}
	}
}
