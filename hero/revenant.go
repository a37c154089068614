package hero

import "github.com/lixenwraith/warpzone/parameter"

const revenantTypeID = 1

// Revenant channels an energy-draining revive aura with a cooldown
type Revenant struct {
	active   bool
	cooldown float64 // ms
}

func (r *Revenant) Name() string   { return "revenant" }
func (r *Revenant) TypeID() uint32 { return revenantTypeID }

// Ability cancels an active channel, then starts a new one if energy and cooldown allow
func (r *Revenant) Ability(p *Player) {
	if r.active {
		r.active = false
		p.State = 0
	}
	if p.Energy > parameter.RevenantMinEnergyToCast && !p.Downed && r.cooldown <= 0 {
		r.active = true
		p.Energy -= parameter.RevenantAbilityCost
		r.cooldown = parameter.RevenantCooldownMs
		p.State = 1
		p.StateMeta = parameter.RevenantAuraRadius
	}
}

func (r *Revenant) Update(p *Player, ctx *UpdateContext) {
	if r.cooldown >= 0 {
		r.cooldown -= ctx.Delta
	}
	if !r.active {
		return
	}

	p.Energy -= ctx.Delta / 1000 * parameter.RevenantDrainPerSecond
	if p.Energy <= 0 {
		p.Energy = 0
		r.cancel(p)
		return
	}
	if p.Downed {
		r.cancel(p)
		return
	}

	for _, other := range ctx.Players {
		if other.ID == p.ID || !other.Downed {
			continue
		}
		if p.Pos.DistanceTo(other.Pos) <= parameter.RevenantAuraRadius+other.Radius {
			ctx.Bus.RespawnPlayerAt(other.ID, p.Pos)
		}
	}
}

func (r *Revenant) cancel(p *Player) {
	r.active = false
	p.State = 0
}
