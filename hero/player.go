package hero

import (
	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/vmath"
)

// Spawn holds the parameters a player is created with
type Spawn struct {
	Radius       float64
	Speed        float64
	Regeneration float64
	Energy       float64
	MaxEnergy    float64
	DiedTimer    float64 // seconds a downed player survives
	World        string
	Area         int
	Region       vmath.Boundary // spawn rectangle inside the area
}

// DefaultSpawn returns the stock spawn parameters for the given world
func DefaultSpawn(world string) Spawn {
	return Spawn{
		Radius:       parameter.PlayerRadius,
		Speed:        parameter.PlayerSpeed,
		Regeneration: parameter.PlayerRegeneration,
		Energy:       parameter.PlayerEnergy,
		MaxEnergy:    parameter.PlayerMaxEnergy,
		DiedTimer:    parameter.PlayerDiedTimer,
		World:        world,
		Area:         0,
		Region: vmath.Corners(
			parameter.PlayerSpawnStartX, parameter.PlayerSpawnStartY,
			parameter.PlayerSpawnEndX, parameter.PlayerSpawnEndY,
		),
	}
}

// UpdateContext is the read-only view a player sees during its update
type UpdateContext struct {
	Delta   float64 // milliseconds
	TimeFix float64
	// Players present in the same area, including the updating player; must not be mutated
	Players []*Player
	Bus     *event.Bus
}

// Player is a connected participant's avatar
// Owned by the engine registry; areas reference it by ID
type Player struct {
	ID   int64
	Name string

	Pos   vmath.Vec2
	Vel   vmath.Vec2
	acc   vmath.Vec2
	slide vmath.Vec2
	angle float64

	Radius       float64
	Speed        float64
	Energy       float64
	MaxEnergy    float64
	Regeneration float64

	Downed     bool
	DeathTimer float64
	diedTimer  float64
	Immortal   bool
	ToDelete   bool

	World string
	Area  int

	State     uint32
	StateMeta float64

	Hero Hero
}

// NewPlayer creates a player at a random point of the spawn region
func NewPlayer(id int64, name string, h Hero, spawn Spawn, rng *vmath.FastRand) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		Pos:          spawn.Region.RandomPoint(rng),
		Radius:       spawn.Radius,
		Speed:        spawn.Speed,
		Energy:       spawn.Energy,
		MaxEnergy:    spawn.MaxEnergy,
		Regeneration: spawn.Regeneration,
		DeathTimer:   spawn.DiedTimer,
		diedTimer:    spawn.DiedTimer,
		World:        spawn.World,
		Area:         spawn.Area,
		Hero:         h,
	}
}

// Update integrates movement, regenerates energy, runs the death timer and then the hero logic
func (p *Player) Update(ctx *UpdateContext) {
	tf := ctx.TimeFix

	slide := p.slide.Scale(1 - (1-parameter.PlayerSlideRetain)*tf)

	p.acc = p.acc.Scale(tf).Add(slide)
	p.Vel = p.acc
	if p.Downed {
		p.Vel = vmath.Vec2{}
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(tf)).Round(parameter.PlayerPositionPrecision)

	p.slide = p.acc
	p.acc = vmath.Vec2{}

	p.Energy += p.Regeneration * (ctx.Delta / 1000)
	if p.Energy > p.MaxEnergy {
		p.Energy = p.MaxEnergy
	}

	if p.Downed {
		p.DeathTimer -= ctx.Delta / 1000
		if p.DeathTimer < 0 {
			p.ToDelete = true
		}
	}

	if p.Hero != nil {
		p.Hero.Update(p, ctx)
	}
}

// Collide clamps the player into the boundary
func (p *Player) Collide(b vmath.Boundary) {
	p.Pos, _ = b.ClampCircle(p.Pos, p.Radius)
}

// Knock downs the player and restarts its death timer
func (p *Player) Knock() {
	p.Downed = true
	p.DeathTimer = p.diedTimer
}

// Res clears the downed state
func (p *Player) Res() {
	p.Downed = false
}

// Pack returns the quantized snapshot
func (p *Player) Pack() snapshot.PackedPlayer {
	var heroID uint32
	if p.Hero != nil {
		heroID = p.Hero.TypeID()
	}
	return snapshot.PackedPlayer{
		ID:         p.ID,
		Name:       p.Name,
		X:          snapshot.Coord(p.Pos.X),
		Y:          snapshot.Coord(p.Pos.Y),
		Radius:     snapshot.Scalar(p.Radius),
		Speed:      snapshot.Scalar(p.Speed),
		Energy:     snapshot.Scalar(p.Energy),
		MaxEnergy:  snapshot.Scalar(p.MaxEnergy),
		DeathTimer: snapshot.Scalar(p.DeathTimer),
		State:      p.State,
		StateMeta:  snapshot.Scalar(p.StateMeta),
		Area:       uint32(p.Area),
		World:      p.World,
		Died:       p.Downed,
		Hero:       heroID,
	}
}
