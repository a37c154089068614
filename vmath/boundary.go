package vmath

import "math"

// Boundary is an axis-aligned rectangle with origin at its top-left corner
type Boundary struct {
	X float64
	Y float64
	W float64
	H float64
}

// Corners builds a boundary spanning two opposite corners given in any order
func Corners(x1, y1, x2, y2 float64) Boundary {
	return Boundary{
		X: min(x1, x2),
		Y: min(y1, y2),
		W: math.Abs(x2 - x1),
		H: math.Abs(y2 - y1),
	}
}

// Right returns the x coordinate of the right edge
func (b Boundary) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge
func (b Boundary) Bottom() float64 { return b.Y + b.H }

// Contains checks if point is within the boundary, edges inclusive
func (b Boundary) Contains(p Vec2) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

// Inset shrinks the boundary by d on every side
func (b Boundary) Inset(d float64) Boundary {
	return Boundary{X: b.X + d, Y: b.Y + d, W: b.W - 2*d, H: b.H - 2*d}
}

// Perimeter returns 2w+2h
func (b Boundary) Perimeter() float64 {
	return 2*b.W + 2*b.H
}

// RandomPoint returns a uniformly distributed point inside the boundary
func (b Boundary) RandomPoint(rng *FastRand) Vec2 {
	return Vec2{
		X: rng.Range(b.X, b.Right()),
		Y: rng.Range(b.Y, b.Bottom()),
	}
}

// ClampCircle moves a circle of radius r so it lies inside the boundary
// Reports which edges were violated
func (b Boundary) ClampCircle(p Vec2, r float64) (Vec2, Edges) {
	var e Edges
	if p.X-r < b.X {
		p.X = b.X + r
		e |= EdgeLeft
	}
	if p.X+r > b.Right() {
		p.X = b.Right() - r
		e |= EdgeRight
	}
	if p.Y-r < b.Y {
		p.Y = b.Y + r
		e |= EdgeTop
	}
	if p.Y+r > b.Bottom() {
		p.Y = b.Bottom() - r
		e |= EdgeBottom
	}
	return p, e
}

// Edges is a bitmask of boundary sides
type Edges uint8

const (
	EdgeLeft Edges = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has reports whether any of the given edges are set
func (e Edges) Has(mask Edges) bool { return e&mask != 0 }
