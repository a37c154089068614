package world

import (
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Change is a warp intent recorded during the read-only scan
type Change uint8

const (
	ChangeNone Change = iota
	ChangeNextArea
	ChangePrevArea
	ChangeNextWorld
	ChangePrevWorld
)

var changeNames = [...]string{"none", "next_area", "prev_area", "next_world", "prev_world"}

func (c Change) String() string {
	if int(c) < len(changeNames) {
		return changeNames[c]
	}
	return "unknown"
}

// Detect evaluates the boundary-crossing predicates for one player
// Later predicates take precedence: world changes override area changes
func (a *Atlas) Detect(p *hero.Player) Change {
	w, ok := a.World(p.World)
	if !ok {
		return ChangeNone
	}
	area := w.Area(p.Area)
	if area == nil {
		return ChangeNone
	}

	x, y, r := p.Pos.X, p.Pos.Y, p.Radius
	change := ChangeNone

	if x+r > area.Template.W+parameter.AreaWarpMargin && w.Area(p.Area+1) != nil {
		change = ChangeNextArea
	}
	if p.Area > 0 && x-r < -parameter.AreaWarpMargin {
		change = ChangePrevArea
	}
	if p.Area == 0 && x-r < 0 && y-r < parameter.WorldWarpMargin {
		change = ChangeNextWorld
	}
	if p.Area == 0 && x-r < 0 && y+r > area.Template.H-parameter.WorldWarpMargin {
		change = ChangePrevWorld
	}
	return change
}

// Destination resolves where a change moves the player: world, area index and new position
// ok is false when the target zone does not exist
func (a *Atlas) Destination(p *hero.Player, c Change) (*World, int, vmath.Vec2, bool) {
	pos := p.Pos
	r := p.Radius

	switch c {
	case ChangeNextArea, ChangePrevArea:
		w, ok := a.World(p.World)
		if !ok {
			return nil, 0, pos, false
		}
		if c == ChangeNextArea {
			if w.Area(p.Area+1) == nil {
				return nil, 0, pos, false
			}
			pos.X = -parameter.AreaWarpMargin + r
			return w, p.Area + 1, pos, true
		}
		prev := w.Area(p.Area - 1)
		if prev == nil {
			return nil, 0, pos, false
		}
		pos.X = prev.Template.W + parameter.AreaWarpMargin - r
		return w, p.Area - 1, pos, true

	case ChangeNextWorld:
		w := a.Next(p.World)
		area := w.Area(p.Area)
		if area == nil {
			return nil, 0, pos, false
		}
		pos.Y = area.Template.H - r - parameter.WorldWarpMargin
		return w, p.Area, pos, true

	case ChangePrevWorld:
		w := a.Prev(p.World)
		if w.Area(p.Area) == nil {
			return nil, 0, pos, false
		}
		pos.Y = r + parameter.WorldWarpMargin
		return w, p.Area, pos, true
	}
	return nil, 0, pos, false
}
