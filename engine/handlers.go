package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/entity"
	"github.com/lixenwraith/warpzone/event"
)

// effectHandler attaches effects requested by entities
type effectHandler struct{}

func (effectHandler) EventTypes() []event.EventType {
	return []event.EventType{event.EventAddEffect}
}

func (effectHandler) HandleEvent(e *Engine, ev event.GameEvent) {
	payload, ok := ev.Payload.(*event.AddEffectPayload)
	if !ok {
		return
	}
	p, ok := e.players[payload.Target]
	if !ok || p.ToDelete {
		return
	}
	if _, err := e.effects.Add(payload.Effect, p, payload.Caster); err != nil {
		if errors.Is(err, effect.ErrUnknownEffect) {
			e.logger.Warn("dropping effect",
				zap.Uint32("effect", payload.Effect),
				zap.Int64("target", payload.Target),
				zap.Error(err),
			)
		}
	}
}

// spawnHandler inserts entities created mid-tick into their zone
type spawnHandler struct{}

func (spawnHandler) EventTypes() []event.EventType {
	return []event.EventType{event.EventSpawnEntity}
}

func (spawnHandler) HandleEvent(e *Engine, ev event.GameEvent) {
	payload, ok := ev.Payload.(*event.SpawnEntityPayload)
	if !ok {
		return
	}
	ent, ok := payload.Entity.(entity.Entity)
	if !ok {
		e.logger.Warn("spawn payload is not an entity", zap.Any("zone", payload.Zone))
		return
	}
	area := e.atlas.Zone(payload.Zone.World, payload.Zone.Area)
	// An area emptied during this tick has nobody to see the spawn
	if area == nil || len(area.Players()) == 0 {
		return
	}
	id := area.Add(ent)
	e.spawned[area] = append(e.spawned[area], id)
}

// playerHandler applies cross-player mutations requested by heroes and entities
type playerHandler struct{}

func (playerHandler) EventTypes() []event.EventType {
	return []event.EventType{event.EventRespawnPlayer, event.EventPushPlayer}
}

func (playerHandler) HandleEvent(e *Engine, ev event.GameEvent) {
	switch payload := ev.Payload.(type) {
	case *event.RespawnPlayerPayload:
		p, ok := e.players[payload.Player]
		if !ok || p.ToDelete {
			return
		}
		p.Res()
		p.Pos = payload.Pos
	case *event.PushPlayerPayload:
		p, ok := e.players[payload.Player]
		if !ok {
			return
		}
		p.Pos = p.Pos.Add(payload.Offset)
		if area := e.atlas.Zone(p.World, p.Area); area != nil {
			p.Collide(area.PlayerBoundary())
		}
	}
}

func (e *Engine) registerHandlers() {
	e.router.Register(effectHandler{})
	e.router.Register(spawnHandler{})
	e.router.Register(playerHandler{})
}
