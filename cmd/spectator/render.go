package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/vmath"
	"github.com/lixenwraith/warpzone/world"
)

var (
	styleDefault  = tcell.StyleDefault
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAura     = tcell.StyleDefault.Background(tcell.NewRGBColor(40, 30, 60))
	styleEntity   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHarmless = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleDowned   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
)

var heroStyles = map[string]tcell.Style{
	"maven":    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	"revenant": tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
}

// glyph maps an entity wire type to its cell rune
func glyph(typeID uint32) rune {
	switch typeID {
	case entity.TypeNormal:
		return 'o'
	case entity.TypeWall:
		return '#'
	case entity.TypeImmune:
		return 'O'
	case entity.TypeSniper, entity.TypeHomingSniper, entity.TypeFlameSniper:
		return 'S'
	case entity.TypeBullet, entity.TypeHomingBullet:
		return '.'
	case entity.TypeChanger:
		return '%'
	case entity.TypeDrop:
		return ','
	case entity.TypeLeaf:
		return '~'
	case entity.TypeHoming:
		return 'h'
	case entity.TypeSlower:
		return 's'
	case entity.TypeDraining:
		return 'd'
	case entity.TypeBee:
		return 'b'
	case entity.TypeFlame:
		return 'f'
	case entity.TypeFlameTrail:
		return '^'
	case entity.TypeCloud, entity.TypeStormCloud:
		return '&'
	case entity.TypePull:
		return 'p'
	case entity.TypeFade:
		return '?'
	case entity.TypeSizer:
		return 'z'
	case entity.TypeIcicle:
		return '|'
	}
	return '*'
}

// camera addresses the zone being watched by world and area index
type camera struct {
	world int
	area  int
}

func (c *camera) zone(atlas *world.Atlas) *world.Area {
	worlds := atlas.Worlds()
	if c.world < 0 || c.world >= len(worlds) {
		return nil
	}
	return worlds[c.world].Area(c.area)
}

// step moves to the neighbouring area, crossing into the adjacent world past either end
func (c *camera) step(atlas *world.Atlas, dir int) {
	worlds := atlas.Worlds()
	c.area += dir
	switch {
	case c.area < 0:
		c.world = (c.world - 1 + len(worlds)) % len(worlds)
		c.area = len(worlds[c.world].Areas) - 1
	case c.area >= len(worlds[c.world].Areas):
		c.world = (c.world + 1) % len(worlds)
		c.area = 0
	}
}

// jump moves to the first area of the next or previous world
func (c *camera) jump(atlas *world.Atlas, dir int) {
	n := len(atlas.Worlds())
	c.world = ((c.world+dir)%n + n) % n
	c.area = 0
}

// renderer draws one area scaled to the screen with a status line at the bottom
type renderer struct {
	screen tcell.Screen
}

// projection maps area coordinates to cells
type projection struct {
	bound  vmath.Boundary
	sx, sy float64
	w, h   int
}

func (p projection) cell(pos vmath.Vec2) (int, int, bool) {
	x := int((pos.X - p.bound.X) * p.sx)
	y := int((pos.Y - p.bound.Y) * p.sy)
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0, 0, false
	}
	return x, y, true
}

// point is the area coordinate at the centre of a cell
func (p projection) point(x, y int) vmath.Vec2 {
	return vmath.Vec2{
		X: p.bound.X + (float64(x)+0.5)/p.sx,
		Y: p.bound.Y + (float64(y)+0.5)/p.sy,
	}
}

func (r *renderer) draw(eng *engine.Engine, cam *camera, muted bool) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h < 2 {
		r.screen.Show()
		return
	}

	area := cam.zone(eng.Atlas())
	if area == nil {
		r.screen.Show()
		return
	}

	bound := area.PlayerBoundary()
	proj := projection{
		bound: bound,
		sx:    float64(w) / bound.W,
		sy:    float64(h-1) / bound.H,
		w:     w,
		h:     h - 1,
	}

	r.drawBorders(proj, area)
	entities := area.Entities()
	for _, e := range entities {
		if b := e.Base(); b.Aura > 0 {
			r.drawAura(proj, b.Pos, b.Aura)
		}
	}
	for _, e := range entities {
		b := e.Base()
		x, y, ok := proj.cell(b.Pos)
		if !ok {
			continue
		}
		style := styleEntity
		if b.Harmless {
			style = styleHarmless
		}
		r.screen.SetContent(x, y, glyph(b.TypeID), nil, style)
	}

	players := 0
	for _, p := range eng.Players() {
		if p.World != area.World || p.Area != area.Index {
			continue
		}
		players++
		x, y, ok := proj.cell(p.Pos)
		if !ok {
			continue
		}
		if p.Downed {
			r.screen.SetContent(x, y, 'x', nil, styleDowned)
			continue
		}
		style, ok := heroStyles[p.Hero.Name()]
		if !ok {
			style = styleDefault
		}
		r.screen.SetContent(x, y, '@', nil, style)
	}

	status := fmt.Sprintf(" %s [%d] players:%d entities:%d frame:%d  arrows:move q:quit m:mute",
		area.World, area.Index+1, players, len(entities), eng.Frame())
	if muted {
		status += " (muted)"
	}
	r.drawText(0, h-1, w, status, styleStatus)
	r.screen.Show()
}

// drawBorders marks the warp edges of the area inside the player overhang
func (r *renderer) drawBorders(proj projection, area *world.Area) {
	for _, edge := range []float64{0, area.Template.W} {
		x, _, ok := proj.cell(vmath.Vec2{X: edge, Y: proj.bound.Y})
		if !ok {
			continue
		}
		for y := 0; y < proj.h; y++ {
			r.screen.SetContent(x, y, '│', nil, styleBorder)
		}
	}
}

func (r *renderer) drawAura(proj projection, center vmath.Vec2, radius float64) {
	x0, y0 := int(math.Floor((center.X-radius-proj.bound.X)*proj.sx)), int(math.Floor((center.Y-radius-proj.bound.Y)*proj.sy))
	x1, y1 := int(math.Ceil((center.X+radius-proj.bound.X)*proj.sx)), int(math.Ceil((center.Y+radius-proj.bound.Y)*proj.sy))
	for y := max(y0, 0); y <= min(y1, proj.h-1); y++ {
		for x := max(x0, 0); x <= min(x1, proj.w-1); x++ {
			if proj.point(x, y).DistanceTo(center) <= radius {
				r.screen.SetContent(x, y, ' ', nil, styleAura)
			}
		}
	}
}

func (r *renderer) drawText(x, y, maxW int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= maxW {
			return
		}
		r.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
	for ; col < maxW; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
