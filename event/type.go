package event

// EventType represents the type of deferred engine event
type EventType int

const (
	// EventAddEffect requests a status effect on a player
	// Trigger: Aura entities (slower, draining), Leaf contact
	// Consumer: effect handler | Payload: *AddEffectPayload
	EventAddEffect EventType = iota

	// EventSpawnEntity requests insertion of a child entity into an area
	// Trigger: Sniper family projectiles, Flame family trails
	// Consumer: area spawn handler | Payload: *SpawnEntityPayload
	EventSpawnEntity

	// EventRespawnPlayer revives a downed player and moves it
	// Trigger: Maven and Revenant revive auras
	// Consumer: player handler | Payload: *RespawnPlayerPayload
	EventRespawnPlayer

	// EventPushPlayer displaces a player
	// Trigger: Pull aura
	// Consumer: player handler | Payload: *PushPlayerPayload
	EventPushPlayer
)

var typeNames = map[EventType]string{
	EventAddEffect:     "add_effect",
	EventSpawnEntity:   "spawn_entity",
	EventRespawnPlayer: "respawn_player",
	EventPushPlayer:    "push_player",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a single deferred cross-aggregate mutation
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
