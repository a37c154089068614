package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/vmath"
	"github.com/lixenwraith/warpzone/world"
)

var maxTickDeltaMs = float64(parameter.MaxTickDelta) / float64(time.Millisecond)

// Tick measures the delta since the previous tick on the engine clock and runs one step
// The first tick after construction runs with a zero delta
func (e *Engine) Tick() map[int64][]snapshot.Package {
	now := e.clock.Now()
	var delta float64
	if !e.lastTick.IsZero() {
		delta = float64(now.Sub(e.lastTick)) / float64(time.Millisecond)
	}
	e.lastTick = now
	return e.Step(delta)
}

// Step advances the simulation by delta milliseconds and returns the packages for each client
//
// Phases, in order:
//  1. Start snapshot of players and populated areas
//  2. Players: input, movement, boundary, hero logic; then effects
//  3. Entities per area
//  4. Entity/player interactions
//  5. Rescue by contact
//  6. Event drain
//  7. Expired players and flagged entities removed
//  8. Warps
//  9. End snapshot, diff and package routing
func (e *Engine) Step(delta float64) map[int64][]snapshot.Package {
	started := time.Now()

	if delta < 0 {
		delta = 0
	}
	if delta > maxTickDeltaMs {
		delta = maxTickDeltaMs
	}
	tf := delta / parameter.TargetFrameMs

	e.frame++
	e.bus.SetFrame(e.frame)
	clear(e.spawned)

	// 1
	areas := e.activeAreas()
	startPlayers := e.packPlayers()
	startEntities := make(map[*world.Area]map[uint64]snapshot.PackedEntity, len(areas))
	for _, a := range areas {
		startEntities[a] = a.PackEntities()
	}

	rosters := make(map[*world.Area][]*hero.Player, len(areas))
	for _, a := range areas {
		rosters[a] = e.areaPlayers(a)
	}

	// 2
	e.updatePlayers(delta, tf, rosters)
	e.effects.Update(delta, tf, e.resolveEffect)

	// 3
	contexts := make(map[*world.Area]*entity.UpdateContext, len(areas))
	for _, a := range areas {
		ctx := &entity.UpdateContext{
			Delta:   delta,
			TimeFix: tf,
			Players: rosters[a],
			Bus:     e.bus,
			Zone:    event.Zone{World: a.World, Area: a.Index},
			Rng:     e.rng,
		}
		contexts[a] = ctx
		for _, ent := range a.Entities() {
			ent.Update(ctx)
		}
	}

	// 4
	for _, a := range areas {
		ctx := contexts[a]
		for _, ent := range a.Entities() {
			if ent.Base().ToRemove {
				continue
			}
			for _, p := range rosters[a] {
				ent.Interact(p, ctx)
			}
		}
	}

	// 5
	for _, a := range areas {
		rescue(rosters[a])
	}

	// 6
	dispatched := e.router.DispatchAll(e, parameter.EventDrainMaxRounds)
	if dispatched > 0 {
		e.statEvents.Add(int64(dispatched))
	}

	// 7
	e.expirePlayers()
	closed := make(map[*world.Area][]uint64, len(areas))
	for _, a := range areas {
		if ids := a.RemoveFlagged(); len(ids) > 0 {
			closed[a] = ids
		}
	}

	// 8
	warped := e.applyWarps()

	// 9
	endPlayers := e.packPlayers()
	if patches := snapshot.DiffPlayers(startPlayers, endPlayers); len(patches) > 0 {
		e.out.global(e.clients, snapshot.UpdatePlayers(patches))
	}

	entityCount := 0
	for _, a := range e.activeAreas() {
		entityCount += a.EntityCount()
		roster := excludeWarped(a.Players(), warped)
		if len(roster) == 0 {
			continue
		}

		end := a.PackEntities()
		if ids := e.spawned[a]; len(ids) > 0 {
			fresh := make(map[uint64]snapshot.PackedEntity, len(ids))
			for _, id := range ids {
				if pe, ok := end[id]; ok {
					fresh[id] = pe
				}
			}
			if len(fresh) > 0 {
				e.out.area(roster, snapshot.NewEntities(fresh))
			}
		}
		if ids := closed[a]; len(ids) > 0 {
			e.out.area(roster, snapshot.CloseEntities(ids))
		}
		if start, ok := startEntities[a]; ok {
			if patches := snapshot.DiffEntities(start, end); len(patches) > 0 {
				e.out.area(roster, snapshot.UpdateEntities(patches))
			}
		}
	}

	e.statTicks.Store(e.frame)
	e.statPlayers.Store(int64(len(e.players)))
	e.statEntities.Store(int64(entityCount))
	e.statTickMs.Set(float64(time.Since(started)) / float64(time.Millisecond))

	return e.out.flush()
}

// activeAreas returns every area with at least one player, in world then area order
func (e *Engine) activeAreas() []*world.Area {
	var out []*world.Area
	for _, w := range e.atlas.Worlds() {
		for _, a := range w.Areas {
			if len(a.Players()) > 0 {
				out = append(out, a)
			}
		}
	}
	return out
}

func (e *Engine) updatePlayers(delta, tf float64, rosters map[*world.Area][]*hero.Player) {
	for _, id := range e.order {
		p := e.players[id]
		area := e.atlas.Zone(p.World, p.Area)
		if area == nil {
			continue
		}

		if in := e.inputs[id]; in != nil {
			p.ApplyInput(in)
		}
		p.Update(&hero.UpdateContext{
			Delta:   delta,
			TimeFix: tf,
			Players: rosters[area],
			Bus:     e.bus,
		})
		p.Collide(area.PlayerBoundary())
	}
}

// resolveEffect finds an effect's target and, when the target is still in the caster's zone, the caster position
// An expiring target ends the effect but is still returned so its stats are restored
func (e *Engine) resolveEffect(fx effect.Effect) (*hero.Player, *vmath.Vec2, vmath.Boundary, bool) {
	p, ok := e.players[fx.Target()]
	if !ok {
		return nil, nil, vmath.Boundary{}, false
	}
	if p.ToDelete {
		return p, nil, vmath.Boundary{}, false
	}
	area := e.atlas.Zone(p.World, p.Area)
	if area == nil {
		return p, nil, vmath.Boundary{}, false
	}

	var casterPos *vmath.Vec2
	zone := fx.Zone()
	if zone.World == p.World && zone.Area == p.Area {
		if ent, ok := area.Entity(fx.Caster()); ok {
			pos := ent.Base().Pos
			casterPos = &pos
		}
	}
	return p, casterPos, area.Boundary(), true
}

// rescue revives downed players touched by a standing one
func rescue(players []*hero.Player) {
	for _, p := range players {
		if p.Downed {
			continue
		}
		for _, q := range players {
			if q == p || !q.Downed {
				continue
			}
			if p.Pos.DistanceTo(q.Pos) <= p.Radius+q.Radius {
				q.Res()
			}
		}
	}
}

// expirePlayers removes players whose death timer ran out; their clients stay connected
func (e *Engine) expirePlayers() {
	var expired []int64
	for _, id := range e.order {
		if e.players[id].ToDelete {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		e.removePlayer(id)
		e.logger.Info("player expired", zap.Int64("id", id))
	}
}

type pendingWarp struct {
	player *hero.Player
	change world.Change
}

// applyWarps detects every zone change first, then moves the players
// Returns the ids of players that changed zone
func (e *Engine) applyWarps() map[int64]struct{} {
	var pending []pendingWarp
	for _, id := range e.order {
		p := e.players[id]
		if c := e.atlas.Detect(p); c != world.ChangeNone {
			pending = append(pending, pendingWarp{player: p, change: c})
		}
	}
	if len(pending) == 0 {
		return nil
	}

	warped := make(map[int64]struct{}, len(pending))
	for _, w := range pending {
		p := w.player
		dest, index, pos, ok := e.atlas.Destination(p, w.change)
		if !ok {
			continue
		}
		from := e.atlas.Zone(p.World, p.Area)
		e.leaveArea(from, p.ID)

		p.World = dest.Name
		p.Area = index
		p.Pos = pos
		to := dest.Area(index)
		e.joinArea(to, p.ID)
		warped[p.ID] = struct{}{}

		e.out.direct(p.ID, snapshot.AreaInit(to.Pack()))
		e.out.direct(p.ID, snapshot.Players(e.packPlayers()))

		e.logger.Debug("player warped",
			zap.Int64("id", p.ID),
			zap.Stringer("change", w.change),
			zap.String("world", p.World),
			zap.Int("area", p.Area),
		)
	}
	return warped
}

func excludeWarped(roster []int64, warped map[int64]struct{}) []int64 {
	if len(warped) == 0 {
		return roster
	}
	out := make([]int64, 0, len(roster))
	for _, id := range roster {
		if _, ok := warped[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
