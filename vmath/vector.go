package vmath

import "math"

// Vec2 is a 2D position or velocity in world units
type Vec2 struct {
	X float64
	Y float64
}

// FromAngle returns a vector of the given magnitude pointing along angle (radians)
func FromAngle(angle, magnitude float64) Vec2 {
	return Vec2{X: math.Cos(angle) * magnitude, Y: math.Sin(angle) * magnitude}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Magnitude returns the Euclidean length
func (v Vec2) Magnitude() float64 {
	return Distance(v.X, v.Y)
}

// Angle returns the heading in radians, atan2(y, x)
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// DistanceTo returns the Euclidean distance between two points
func (v Vec2) DistanceTo(o Vec2) float64 {
	return Distance(o.X-v.X, o.Y-v.Y)
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func (v Vec2) ClampMagnitude(maxMag float64) Vec2 {
	mag := v.Magnitude()
	if mag <= maxMag || mag == 0 {
		return v
	}
	return v.Scale(maxMag / mag)
}

// Round returns the vector with both components rounded to the given decimal places
func (v Vec2) Round(places int) Vec2 {
	return Vec2{X: RoundTo(v.X, places), Y: RoundTo(v.Y, places)}
}
