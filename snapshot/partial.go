package snapshot

// PartialEntity carries only the fields of PackedEntity that changed, nil means unchanged
type PartialEntity struct {
	TypeID        *uint32 `msgpack:"type_id,omitempty"`
	X             *int32  `msgpack:"x,omitempty"`
	Y             *int32  `msgpack:"y,omitempty"`
	Radius        *uint32 `msgpack:"radius,omitempty"`
	Harmless      *bool   `msgpack:"harmless,omitempty"`
	Aura          *uint32 `msgpack:"aura,omitempty"`
	State         *uint32 `msgpack:"state,omitempty"`
	StateMetadata *uint32 `msgpack:"state_metadata,omitempty"`
	Alpha         *uint32 `msgpack:"alpha,omitempty"`
}

// PartialPlayer carries only the fields of PackedPlayer that changed, nil means unchanged
// ID is immutable and never part of a patch
type PartialPlayer struct {
	Name       *string `msgpack:"name,omitempty"`
	X          *int32  `msgpack:"x,omitempty"`
	Y          *int32  `msgpack:"y,omitempty"`
	Radius     *uint32 `msgpack:"radius,omitempty"`
	Speed      *uint32 `msgpack:"speed,omitempty"`
	Energy     *uint32 `msgpack:"energy,omitempty"`
	MaxEnergy  *uint32 `msgpack:"max_energy,omitempty"`
	DeathTimer *uint32 `msgpack:"death_timer,omitempty"`
	State      *uint32 `msgpack:"state,omitempty"`
	StateMeta  *uint32 `msgpack:"state_meta,omitempty"`
	Area       *uint32 `msgpack:"area,omitempty"`
	World      *string `msgpack:"world,omitempty"`
	Died       *bool   `msgpack:"died,omitempty"`
	Hero       *uint32 `msgpack:"hero,omitempty"`
}

// field records b into *dst when it differs from a
func field[T comparable](dst **T, a, b T, changed *bool) {
	if a != b {
		v := b
		*dst = &v
		*changed = true
	}
}

// apply overwrites *dst with *src when present
func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// DiffEntity returns the patch turning a into b; ok is false when nothing changed
func DiffEntity(a, b PackedEntity) (p PartialEntity, ok bool) {
	field(&p.TypeID, a.TypeID, b.TypeID, &ok)
	field(&p.X, a.X, b.X, &ok)
	field(&p.Y, a.Y, b.Y, &ok)
	field(&p.Radius, a.Radius, b.Radius, &ok)
	field(&p.Harmless, a.Harmless, b.Harmless, &ok)
	field(&p.Aura, a.Aura, b.Aura, &ok)
	field(&p.State, a.State, b.State, &ok)
	field(&p.StateMetadata, a.StateMetadata, b.StateMetadata, &ok)
	field(&p.Alpha, a.Alpha, b.Alpha, &ok)
	return p, ok
}

// ApplyEntity returns base with the patch applied
func ApplyEntity(base PackedEntity, p PartialEntity) PackedEntity {
	apply(&base.TypeID, p.TypeID)
	apply(&base.X, p.X)
	apply(&base.Y, p.Y)
	apply(&base.Radius, p.Radius)
	apply(&base.Harmless, p.Harmless)
	apply(&base.Aura, p.Aura)
	apply(&base.State, p.State)
	apply(&base.StateMetadata, p.StateMetadata)
	apply(&base.Alpha, p.Alpha)
	return base
}

// DiffPlayer returns the patch turning a into b; ok is false when nothing changed
func DiffPlayer(a, b PackedPlayer) (p PartialPlayer, ok bool) {
	field(&p.Name, a.Name, b.Name, &ok)
	field(&p.X, a.X, b.X, &ok)
	field(&p.Y, a.Y, b.Y, &ok)
	field(&p.Radius, a.Radius, b.Radius, &ok)
	field(&p.Speed, a.Speed, b.Speed, &ok)
	field(&p.Energy, a.Energy, b.Energy, &ok)
	field(&p.MaxEnergy, a.MaxEnergy, b.MaxEnergy, &ok)
	field(&p.DeathTimer, a.DeathTimer, b.DeathTimer, &ok)
	field(&p.State, a.State, b.State, &ok)
	field(&p.StateMeta, a.StateMeta, b.StateMeta, &ok)
	field(&p.Area, a.Area, b.Area, &ok)
	field(&p.World, a.World, b.World, &ok)
	field(&p.Died, a.Died, b.Died, &ok)
	field(&p.Hero, a.Hero, b.Hero, &ok)
	return p, ok
}

// ApplyPlayer returns base with the patch applied
func ApplyPlayer(base PackedPlayer, p PartialPlayer) PackedPlayer {
	apply(&base.Name, p.Name)
	apply(&base.X, p.X)
	apply(&base.Y, p.Y)
	apply(&base.Radius, p.Radius)
	apply(&base.Speed, p.Speed)
	apply(&base.Energy, p.Energy)
	apply(&base.MaxEnergy, p.MaxEnergy)
	apply(&base.DeathTimer, p.DeathTimer)
	apply(&base.State, p.State)
	apply(&base.StateMeta, p.StateMeta)
	apply(&base.Area, p.Area)
	apply(&base.World, p.World)
	apply(&base.Died, p.Died)
	apply(&base.Hero, p.Hero)
	return base
}

// DiffEntities diffs two id-keyed snapshots, ids missing from either side are skipped
func DiffEntities(start, end map[uint64]PackedEntity) map[uint64]PartialEntity {
	out := make(map[uint64]PartialEntity)
	for id, after := range end {
		before, ok := start[id]
		if !ok {
			continue
		}
		if p, changed := DiffEntity(before, after); changed {
			out[id] = p
		}
	}
	return out
}

// DiffPlayers diffs two id-keyed snapshots, ids missing from either side are skipped
func DiffPlayers(start, end map[int64]PackedPlayer) map[int64]PartialPlayer {
	out := make(map[int64]PartialPlayer)
	for id, after := range end {
		before, ok := start[id]
		if !ok {
			continue
		}
		if p, changed := DiffPlayer(before, after); changed {
			out[id] = p
		}
	}
	return out
}
