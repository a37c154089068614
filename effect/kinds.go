package effect

import (
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
)

// outOfRange reports whether the target left the caster's reach or the caster is gone
func outOfRange(ctx *UpdateContext, reach float64) bool {
	if ctx.CasterPos == nil {
		return true
	}
	return ctx.Target.Pos.DistanceTo(*ctx.CasterPos) >= reach+ctx.Target.Radius
}

// Slow quarters the target's speed while it stays near the caster
// Speed effects scale rather than overwrite, so they unwind in any order
type Slow struct {
	base
}

func (s *Slow) Enable(p *hero.Player) {
	p.Speed *= parameter.SlowFactor
}

func (s *Slow) Disable(p *hero.Player) {
	p.Speed /= parameter.SlowFactor
}

func (s *Slow) Update(ctx *UpdateContext) {
	if outOfRange(ctx, parameter.SlowRange) {
		s.toRemove = true
	}
}

// Draining burns the target's energy while it stays near the caster
type Draining struct {
	base
}

func (d *Draining) Enable(p *hero.Player)  {}
func (d *Draining) Disable(p *hero.Player) {}

func (d *Draining) Update(ctx *UpdateContext) {
	t := ctx.Target
	t.Energy -= parameter.DrainPerSecond * ctx.Delta / 1000
	if t.Energy < 0 {
		t.Energy = 0
	}
	if outOfRange(ctx, parameter.DrainRange) {
		d.toRemove = true
	}
}

// Slipped doubles the target's speed for a short fixed time
type Slipped struct {
	base
	remaining float64 // ms
}

func newSlipped(b base) *Slipped {
	return &Slipped{base: b, remaining: parameter.SlippedDurationMs}
}

func (s *Slipped) Enable(p *hero.Player) {
	p.Speed *= parameter.SlippedFactor
}

func (s *Slipped) Disable(p *hero.Player) {
	p.Speed /= parameter.SlippedFactor
}

func (s *Slipped) Update(ctx *UpdateContext) {
	s.remaining -= ctx.Delta
	if s.remaining < 0 {
		s.toRemove = true
	}
}
