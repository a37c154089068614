package entity

import (
	"math"

	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/vmath"
)

// Props are the per-group construction parameters from the world template
type Props struct {
	Radius   float64
	Speed    float64
	Boundary vmath.Boundary
}

// Group identifies an entity's slot inside its spawn group
type Group struct {
	Count   int
	Num     int
	Inverse bool
}

// UpdateContext is the view an entity sees during a tick
// Entities never mutate players directly except through Knock; everything else goes through Bus
type UpdateContext struct {
	Delta   float64 // milliseconds
	TimeFix float64
	// Players in the same area, read-only
	Players []*hero.Player
	Bus     *event.Bus
	Zone    event.Zone
	Rng     *vmath.FastRand
}

// Entity is a non-player object owned by an area
type Entity interface {
	Base() *Body
	// Update integrates motion, applies boundary collision and runs kind logic
	Update(ctx *UpdateContext)
	// Interact applies contact logic against one player
	Interact(p *hero.Player, ctx *UpdateContext)
	Pack() snapshot.PackedEntity
}

// Body is the state every entity kind shares
// Kinds embed it and override Update/Interact where they differ
type Body struct {
	ID       uint64
	TypeID   uint32
	Pos      vmath.Vec2
	Vel      vmath.Vec2
	Angle    float64 // radians
	Speed    float64
	Radius   float64
	Friction float64
	Boundary vmath.Boundary

	Harmless bool
	Immune   bool
	ToRemove bool

	Aura          float64
	State         uint32
	StateMetadata float64
	Alpha         float64
}

// newBody places a body at a random point with a random heading
func newBody(typeID uint32, props Props, rng *vmath.FastRand) Body {
	angle := rng.Float64() * vmath.Tau
	return Body{
		TypeID:   typeID,
		Pos:      props.Boundary.RandomPoint(rng),
		Vel:      vmath.FromAngle(angle, props.Speed),
		Angle:    angle,
		Speed:    props.Speed,
		Radius:   props.Radius,
		Boundary: props.Boundary,
		Alpha:    1,
	}
}

func (b *Body) Base() *Body { return b }

// Move integrates position and applies friction
func (b *Body) Move(tf float64) {
	b.Pos = b.Pos.Add(b.Vel.Scale(tf))
	b.Vel = b.Vel.Scale(1 - b.Friction*tf)
}

// Collide reflects velocity off violated edges and clamps the body inside
func (b *Body) Collide() vmath.Edges {
	pos, edges := b.Boundary.ClampCircle(b.Pos, b.Radius)
	b.Pos = pos
	if edges.Has(vmath.EdgeLeft) {
		b.Vel.X = math.Abs(b.Vel.X)
	}
	if edges.Has(vmath.EdgeRight) {
		b.Vel.X = -math.Abs(b.Vel.X)
	}
	if edges.Has(vmath.EdgeTop) {
		b.Vel.Y = math.Abs(b.Vel.Y)
	}
	if edges.Has(vmath.EdgeBottom) {
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}
	return edges
}

// VelToAngle derives heading and speed from the current velocity
func (b *Body) VelToAngle() {
	b.Angle = b.Vel.Angle()
	b.Speed = b.Vel.Magnitude()
}

// AngleToVel rebuilds velocity from heading and speed
func (b *Body) AngleToVel() {
	b.Vel = vmath.FromAngle(b.Angle, b.Speed)
}

func (b *Body) Update(ctx *UpdateContext) {
	b.Move(ctx.TimeFix)
	b.Collide()
}

// Interact knocks the player on contact
func (b *Body) Interact(p *hero.Player, ctx *UpdateContext) {
	b.Contact(p)
}

// Touches reports whether the player overlaps the body and is inside the area's x extent
func (b *Body) Touches(p *hero.Player) bool {
	return b.inside(p) && b.Pos.DistanceTo(p.Pos) <= b.Radius+p.Radius
}

// Contact knocks a vulnerable player overlapping a harmful body
func (b *Body) Contact(p *hero.Player) bool {
	if b.Harmless || p.Immortal || p.Downed || !b.Touches(p) {
		return false
	}
	p.Knock()
	return true
}

// inside excludes players standing in the warp margins
func (b *Body) inside(p *hero.Player) bool {
	return p.Pos.X > -p.Radius && p.Pos.X-p.Radius < b.Boundary.W
}

func (b *Body) Pack() snapshot.PackedEntity {
	return snapshot.PackedEntity{
		TypeID:        b.TypeID,
		X:             snapshot.Coord(b.Pos.X),
		Y:             snapshot.Coord(b.Pos.Y),
		Radius:        snapshot.Scalar(b.Radius),
		Harmless:      b.Harmless,
		Aura:          snapshot.Scalar(b.Aura),
		State:         b.State,
		StateMetadata: snapshot.Scalar(b.StateMetadata),
		Alpha:         snapshot.Alpha(b.Alpha),
	}
}

// nearestTarget picks the closest standing player inside the x extent, strictly closer than maxDist
func (b *Body) nearestTarget(players []*hero.Player, maxDist float64) *hero.Player {
	var target *hero.Player
	last := maxDist
	for _, p := range players {
		if p.Downed || !b.inside(p) {
			continue
		}
		dist := b.Pos.DistanceTo(p.Pos)
		if dist <= maxDist && dist < last {
			last = dist
			target = p
		}
	}
	return target
}
