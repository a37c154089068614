package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/vmath"
)

// Wall circles the area along its edges, clockwise or counter-clockwise
// Group members are spread evenly along the perimeter
type Wall struct {
	Body
	dir float64 // 1 clockwise, -1 inverse
}

func NewWall(props Props, group Group, rng *vmath.FastRand) Entity {
	e := &Wall{Body: newBody(TypeWall, props, rng), dir: 1}
	if group.Inverse {
		e.dir = -1
	}
	e.Immune = true
	e.VelToAngle()

	inner := props.Boundary.Inset(props.Radius)
	count := group.Count
	if count < 1 {
		count = 1
	}
	length := inner.Perimeter()/float64(count)*float64(group.Num) + props.Boundary.W/2

	pos, side := warpAround(inner, length)
	e.Pos = pos
	switch side {
	case 0:
		e.Vel = vmath.Vec2{X: e.Speed * e.dir}
	case 1:
		e.Vel = vmath.Vec2{Y: e.Speed * e.dir}
	case 2:
		e.Vel = vmath.Vec2{X: -e.Speed * e.dir}
	case 3:
		e.Vel = vmath.Vec2{Y: -e.Speed * e.dir}
	}
	return e
}

// warpAround maps a distance along the perimeter of b to a point and the side it lies on
// Sides run clockwise from the top-left corner: 0 top, 1 right, 2 bottom, 3 left
func warpAround(b vmath.Boundary, length float64) (vmath.Vec2, int) {
	length = math.Mod(length, b.Perimeter())
	switch {
	case length < b.W:
		return vmath.Vec2{X: b.X + length, Y: b.Y}, 0
	case length < b.W+b.H:
		return vmath.Vec2{X: b.Right(), Y: b.Y + (length - b.W)}, 1
	case length < 2*b.W+b.H:
		return vmath.Vec2{X: b.Right() - (length - (b.W + b.H)), Y: b.Bottom()}, 2
	default:
		return vmath.Vec2{X: b.X, Y: b.Bottom() - (length - (2*b.W + b.H))}, 3
	}
}

func (e *Wall) Update(ctx *UpdateContext) {
	e.Move(ctx.TimeFix)
	e.turn()
}

// turn puts the wall onto the next side when it runs into a corner
func (e *Wall) turn() {
	b := e.Boundary
	r := e.Radius
	if e.Pos.X-r < b.X {
		e.Pos.X = b.X + r + 1
		e.Vel = vmath.Vec2{Y: -e.Speed * e.dir}
	}
	if e.Pos.X+r > b.Right() {
		e.Pos.X = b.Right() - r
		e.Vel = vmath.Vec2{Y: e.Speed * e.dir}
	}
	if e.Pos.Y-r < b.Y {
		e.Pos.Y = b.Y + r + 1
		e.Vel = vmath.Vec2{X: e.Speed * e.dir}
	}
	if e.Pos.Y+r > b.Bottom() {
		e.Pos.Y = b.Bottom() - r
		e.Vel = vmath.Vec2{X: -e.Speed * e.dir}
	}
}
