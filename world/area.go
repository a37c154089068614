package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lixenwraith/warpzone/config"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/vmath"
)

// Area owns the entities of one zone and references the players present in it
// Entities exist only while at least one player is present
type Area struct {
	World    string
	Index    int
	Template config.AreaTemplate

	// entities is kept in ascending id order so updates are deterministic
	entities []entity.Entity
	byID     map[uint64]entity.Entity
	nextID   uint64
	players  []int64
}

func NewArea(world string, index int, tpl config.AreaTemplate) *Area {
	return &Area{
		World:    world,
		Index:    index,
		Template: tpl,
		byID:     make(map[uint64]entity.Entity),
	}
}

// Boundary is the rectangle entities are confined to
func (a *Area) Boundary() vmath.Boundary {
	return vmath.Boundary{W: a.Template.W, H: a.Template.H}
}

// PlayerBoundary extends the area horizontally by the warp overhang on both sides
func (a *Area) PlayerBoundary() vmath.Boundary {
	return vmath.Boundary{
		X: -parameter.PlayerBoundaryOverhang,
		W: a.Template.W + 2*parameter.PlayerBoundaryOverhang,
		H: a.Template.H,
	}
}

// Join adds a player to the roster; the first player populates the spawn table
// Returns whether population happened and any spawn entries that were skipped
func (a *Area) Join(id int64, rng *vmath.FastRand) (bool, error) {
	if slices.Contains(a.players, id) {
		return false, nil
	}
	a.players = append(a.players, id)
	if len(a.players) != 1 {
		return false, nil
	}
	return true, a.populate(rng)
}

// Leave removes a player; the last player out clears all entities and resets the id counter
// Returns whether the area was cleared
func (a *Area) Leave(id int64) bool {
	i := slices.Index(a.players, id)
	if i < 0 {
		return false
	}
	a.players = slices.Delete(a.players, i, i+1)
	if len(a.players) > 0 {
		return false
	}
	a.clear()
	return true
}

func (a *Area) populate(rng *vmath.FastRand) error {
	var errs []error
	bound := a.Boundary()
	for _, g := range a.Template.Enemies {
		props := entity.Props{Radius: g.Radius, Speed: g.Speed, Boundary: bound}
		for num := 0; num < g.Count; num++ {
			kind := g.Types[rng.Intn(len(g.Types))]
			e, err := entity.New(kind, props, entity.Group{Count: g.Count, Num: num, Inverse: g.Inverse}, rng)
			if err != nil {
				errs = append(errs, fmt.Errorf("area %d: %w", a.Index, err))
				continue
			}
			a.Add(e)
		}
	}
	return errors.Join(errs...)
}

func (a *Area) clear() {
	clear(a.byID)
	a.entities = a.entities[:0]
	a.nextID = 0
}

// Add assigns the next id to e and takes ownership of it
func (a *Area) Add(e entity.Entity) uint64 {
	id := a.nextID
	a.nextID++
	e.Base().ID = id
	a.entities = append(a.entities, e)
	a.byID[id] = e
	return id
}

// Entity looks up an entity by id
func (a *Area) Entity(id uint64) (entity.Entity, bool) {
	e, ok := a.byID[id]
	return e, ok
}

// Entities returns the live entities in id order; callers must not retain the slice
func (a *Area) Entities() []entity.Entity {
	return a.entities
}

func (a *Area) EntityCount() int {
	return len(a.entities)
}

// RemoveFlagged drops every entity flagged ToRemove and returns their ids
func (a *Area) RemoveFlagged() []uint64 {
	var removed []uint64
	kept := a.entities[:0]
	for _, e := range a.entities {
		b := e.Base()
		if b.ToRemove {
			removed = append(removed, b.ID)
			delete(a.byID, b.ID)
			continue
		}
		kept = append(kept, e)
	}
	clear(a.entities[len(kept):])
	a.entities = kept
	return removed
}

// Players returns the roster; callers must not modify it
func (a *Area) Players() []int64 {
	return a.players
}

func (a *Area) HasPlayer(id int64) bool {
	return slices.Contains(a.players, id)
}

// PackEntities returns the quantized snapshot of every entity
func (a *Area) PackEntities() map[uint64]snapshot.PackedEntity {
	out := make(map[uint64]snapshot.PackedEntity, len(a.entities))
	for _, e := range a.entities {
		out[e.Base().ID] = e.Pack()
	}
	return out
}

// Pack returns the full zone context sent on join and warp
func (a *Area) Pack() snapshot.PackedArea {
	return snapshot.PackedArea{
		W:        snapshot.Scalar(a.Template.W),
		H:        snapshot.Scalar(a.Template.H),
		Area:     uint32(a.Index),
		World:    a.World,
		Entities: a.PackEntities(),
	}
}
