package entity

import (
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// shooter is the timer and aim shared by the sniper family
type shooter struct {
	timer     float64
	threshold float64
}

// aim advances the timer and, once it passes the threshold, returns the heading to the nearest target
// The timer resets only when a shot is taken
func (s *shooter) aim(b *Body, ctx *UpdateContext) (float64, bool) {
	s.timer += ctx.Delta
	if s.timer <= s.threshold {
		return 0, false
	}
	target := b.nearestTarget(ctx.Players, parameter.SniperRange)
	if target == nil {
		return 0, false
	}
	s.timer = 0
	return target.Pos.Sub(b.Pos).Angle(), true
}

// projectileBody builds a half-size fast body leaving the shooter at angle
func projectileBody(typeID uint32, owner *Body, angle float64, rng *vmath.FastRand) Body {
	b := newBody(typeID, Props{
		Radius:   owner.Radius / 2,
		Speed:    parameter.BulletSpeed,
		Boundary: owner.Boundary,
	}, rng)
	b.Pos = owner.Pos
	b.Vel = vmath.FromAngle(angle, parameter.BulletSpeed)
	return b
}

// collideRemove reflects like Collide and flags the body for removal on any wall hit
func (b *Body) collideRemove() {
	if b.Collide() != 0 {
		b.ToRemove = true
	}
}

// Sniper fires a bullet at the nearest player every few seconds
type Sniper struct {
	Body
	shooter
}

func NewSniper(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &Sniper{
		Body: newBody(TypeSniper, props, rng),
		shooter: shooter{
			timer:     rng.Range(0, parameter.SniperThresholdMs),
			threshold: parameter.SniperThresholdMs,
		},
	}
}

func (e *Sniper) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()
	if angle, ok := e.aim(&e.Body, ctx); ok {
		ctx.Bus.SpawnEntity(ctx.Zone, &Bullet{Body: projectileBody(TypeBullet, &e.Body, angle, ctx.Rng)})
	}
}

// Bullet flies straight and disappears on the first wall
type Bullet struct {
	Body
}

func (e *Bullet) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.collideRemove()
}

// HomingSniper fires homing bullets
type HomingSniper struct {
	Body
	shooter
}

func NewHomingSniper(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &HomingSniper{
		Body: newBody(TypeHomingSniper, props, rng),
		shooter: shooter{
			timer:     rng.Range(0, parameter.SniperThresholdMs),
			threshold: parameter.SniperThresholdMs,
		},
	}
}

func (e *HomingSniper) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()
	if angle, ok := e.aim(&e.Body, ctx); ok {
		b := &HomingBullet{Body: projectileBody(TypeHomingBullet, &e.Body, angle, ctx.Rng)}
		b.Angle = angle
		ctx.Bus.SpawnEntity(ctx.Zone, b)
	}
}

// HomingBullet steers like Homing and disappears on the first wall
type HomingBullet struct {
	Body
}

func (e *HomingBullet) Update(ctx *UpdateContext) {
	if target := e.nearestTarget(ctx.Players, parameter.HomingMaxDist); target != nil {
		e.steerHoming(target, ctx.Delta)
	}
	e.Move(ctx.TimeFix)
	e.collideRemove()
}

// FlameSniper fires slow-reloading bullets that leave flame trails
type FlameSniper struct {
	Body
	shooter
}

func NewFlameSniper(props Props, _ Group, rng *vmath.FastRand) Entity {
	return &FlameSniper{
		Body: newBody(TypeFlameSniper, props, rng),
		shooter: shooter{
			timer:     rng.Range(parameter.FlameSniperTimerMinMs, parameter.FlameSniperThresholdMs),
			threshold: parameter.FlameSniperThresholdMs,
		},
	}
}

func (e *FlameSniper) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.Collide()
	if angle, ok := e.aim(&e.Body, ctx); ok {
		ctx.Bus.SpawnEntity(ctx.Zone, &FlameBullet{Body: projectileBody(TypeFlameBullet, &e.Body, angle, ctx.Rng)})
	}
}

// FlameBullet flies straight, drops flame trails and disappears on the first wall
type FlameBullet struct {
	Body
	trail trailer
}

func (e *FlameBullet) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.collideRemove()
	e.trail.tick(&e.Body, ctx)
}
