package effect

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/vmath"
)

// Effect kind ids, shared with the wire and the AddEffect event
const (
	KindSlow     uint32 = 0
	KindDraining uint32 = 1
	KindSlipped  uint32 = 2
)

// ErrUnknownEffect is returned for an effect kind without a constructor
var ErrUnknownEffect = errors.New("unknown effect")

// UpdateContext is what an active effect sees each tick
type UpdateContext struct {
	Delta   float64 // milliseconds
	TimeFix float64
	Target  *hero.Player
	// CasterPos is nil when the casting entity no longer exists
	CasterPos *vmath.Vec2
	Boundary  vmath.Boundary
}

// Effect is a status mutation on one player
//
// Lifecycle (driven by Manager):
//  1. Created on an AddEffect event
//  2. Enable(target) once, applies the mutation
//  3. Update(ctx) every tick, may set the removal flag
//  4. Disable(target) once, reverts the mutation
//  5. Dropped
type Effect interface {
	Kind() uint32
	Target() int64
	Caster() uint64
	// Zone is where the caster lives; ids are only unique per area
	Zone() event.Zone
	Enable(p *hero.Player)
	Disable(p *hero.Player)
	Update(ctx *UpdateContext)
	ToRemove() bool
}

// base carries the identity and removal flag every kind shares
type base struct {
	kind     uint32
	target   int64
	caster   uint64
	zone     event.Zone
	toRemove bool
}

func (b *base) Kind() uint32     { return b.kind }
func (b *base) Target() int64    { return b.target }
func (b *base) Caster() uint64   { return b.caster }
func (b *base) Zone() event.Zone { return b.zone }
func (b *base) ToRemove() bool   { return b.toRemove }

// New constructs an effect of the given kind for target, cast by entity caster in the target's current zone
func New(kind uint32, target *hero.Player, caster uint64) (Effect, error) {
	b := base{
		kind:   kind,
		target: target.ID,
		caster: caster,
		zone:   event.Zone{World: target.World, Area: target.Area},
	}
	switch kind {
	case KindSlow:
		return &Slow{base: b}, nil
	case KindDraining:
		return &Draining{base: b}, nil
	case KindSlipped:
		return newSlipped(b), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEffect, kind)
	}
}
