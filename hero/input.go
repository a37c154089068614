package hero

import (
	"math"

	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Input is the control state of one client
// Directional and mouse fields are levels, Ability1 is an edge consumed by the tick that reads it
type Input struct {
	Left        bool
	Right       bool
	Up          bool
	Down        bool
	Shift       bool
	MouseEnable bool
	MouseX      float64 // relative to the player, world units
	MouseY      float64
	Ability1    bool
}

// ApplyInput converts the control state into this tick's acceleration
// Mouse mode overrides the axis keys when enabled
func (p *Player) ApplyInput(in *Input) {
	shift := 1.0
	if in.Shift {
		shift = parameter.PlayerShiftFactor
	}

	if in.Left {
		p.acc.X = -p.Speed * shift
	}
	if in.Right {
		p.acc.X = p.Speed * shift
	}
	if in.Up {
		p.acc.Y = -p.Speed * shift
	}
	if in.Down {
		p.acc.Y = p.Speed * shift
	}

	if in.MouseEnable {
		mouse := vmath.Vec2{X: in.MouseX, Y: in.MouseY}
		aim := mouse.ClampMagnitude(parameter.PlayerMouseRange)
		p.angle = aim.Angle()

		dist := math.Min(mouse.Magnitude(), parameter.PlayerMouseRange)
		movement := p.Speed * shift * (dist / parameter.PlayerMouseRange)
		p.acc = vmath.FromAngle(p.angle, movement)
	}

	if in.Ability1 {
		if p.Hero != nil {
			p.Hero.Ability(p)
		}
		in.Ability1 = false
	}
}
