package event

import (
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// Bus is the FIFO of deferred events filled during the mutable passes of a tick
// Thread-Safety: none, owned by a single engine and touched only inside Tick
type Bus struct {
	events []GameEvent
	frame  int64
}

func NewBus() *Bus {
	return &Bus{
		events: make([]GameEvent, 0, parameter.EventBusInitialCapacity),
	}
}

// SetFrame stamps subsequently pushed events with the tick number
func (b *Bus) SetFrame(frame int64) {
	b.frame = frame
}

// Push appends an event
func (b *Bus) Push(t EventType, payload any) {
	b.events = append(b.events, GameEvent{Type: t, Payload: payload, Frame: b.frame})
}

// Consume returns all pending events in FIFO order and empties the bus
func (b *Bus) Consume() []GameEvent {
	if len(b.events) == 0 {
		return nil
	}
	out := b.events
	b.events = make([]GameEvent, 0, cap(out))
	return out
}

// Len returns pending event count
func (b *Bus) Len() int {
	return len(b.events)
}

// --- Typed emitters ---

func (b *Bus) AddEffect(target int64, effect uint32, caster uint64) {
	b.Push(EventAddEffect, &AddEffectPayload{Target: target, Effect: effect, Caster: caster})
}

func (b *Bus) SpawnEntity(zone Zone, entity any) {
	b.Push(EventSpawnEntity, &SpawnEntityPayload{Zone: zone, Entity: entity})
}

func (b *Bus) RespawnPlayerAt(player int64, pos vmath.Vec2) {
	b.Push(EventRespawnPlayer, &RespawnPlayerPayload{Player: player, Pos: pos})
}

func (b *Bus) PushPlayer(player int64, offset vmath.Vec2) {
	b.Push(EventPushPlayer, &PushPlayerPayload{Player: player, Offset: offset})
}
