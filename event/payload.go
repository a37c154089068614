package event

import "github.com/lixenwraith/warpzone/vmath"

// Zone addresses one area of one world
type Zone struct {
	World string
	Area  int
}

// AddEffectPayload asks for effect kind Effect on player Target, cast by entity Caster in the target's area
type AddEffectPayload struct {
	Target int64
	Effect uint32
	Caster uint64
}

// SpawnEntityPayload carries a fully constructed entity
// Entity is an entity.Entity; kept opaque here to keep this package at the bottom of the import graph
type SpawnEntityPayload struct {
	Zone   Zone
	Entity any
}

// RespawnPlayerPayload revives Player and places it at Pos
type RespawnPlayerPayload struct {
	Player int64
	Pos    vmath.Vec2
}

// PushPlayerPayload moves Player by Offset
type PushPlayerPayload struct {
	Player int64
	Offset vmath.Vec2
}
