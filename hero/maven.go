package hero

import "github.com/lixenwraith/warpzone/parameter"

const mavenTypeID = 0

// Maven toggles a revive aura
type Maven struct {
	active bool
}

func (m *Maven) Name() string   { return "maven" }
func (m *Maven) TypeID() uint32 { return mavenTypeID }

func (m *Maven) Ability(p *Player) {
	m.active = !m.active
	if m.active {
		p.State = 1
		p.StateMeta = parameter.MavenAuraRadius
	} else {
		p.State = 0
	}
}

// Update revives downed players inside the aura where they lie
func (m *Maven) Update(p *Player, ctx *UpdateContext) {
	if !m.active || p.Downed {
		return
	}
	for _, other := range ctx.Players {
		if other.ID == p.ID || !other.Downed {
			continue
		}
		if p.Pos.DistanceTo(other.Pos) <= parameter.MavenAuraRadius+other.Radius {
			ctx.Bus.RespawnPlayerAt(other.ID, other.Pos)
		}
	}
}
