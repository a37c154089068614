package snapshot

// Kind tags the payload carried by a Package
type Kind uint8

const (
	// KindNewPlayer announces a joined player to every client
	KindNewPlayer Kind = iota
	// KindClosePlayer announces a removed player to every client
	KindClosePlayer
	// KindPlayers is the full roster, sent directly on join and warp
	KindPlayers
	// KindNewEntities lists entities spawned this tick in the client's area
	KindNewEntities
	// KindCloseEntities lists entity ids removed this tick from the client's area
	KindCloseEntities
	// KindUpdatePlayers is the roster patch of this tick
	KindUpdatePlayers
	// KindUpdateEntities is the area entity patch of this tick
	KindUpdateEntities
	// KindAreaInit is the full zone context, sent directly on join and warp
	KindAreaInit
	// KindMySelf identifies the receiving client's own player
	KindMySelf
)

var kindNames = [...]string{
	KindNewPlayer:      "new_player",
	KindClosePlayer:    "close_player",
	KindPlayers:        "players",
	KindNewEntities:    "new_entities",
	KindCloseEntities:  "close_entities",
	KindUpdatePlayers:  "update_players",
	KindUpdateEntities: "update_entities",
	KindAreaInit:       "area_init",
	KindMySelf:         "myself",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Package is one outgoing message; exactly one payload field is set, matching Kind
type Package struct {
	Kind Kind `msgpack:"kind"`

	Player        *PackedPlayer            `msgpack:"player,omitempty"`
	PlayerID      int64                    `msgpack:"player_id"`
	Players       map[int64]PackedPlayer   `msgpack:"players,omitempty"`
	Entities      map[uint64]PackedEntity  `msgpack:"entities,omitempty"`
	EntityIDs     []uint64                 `msgpack:"entity_ids,omitempty"`
	PlayerPatches map[int64]PartialPlayer  `msgpack:"player_patches,omitempty"`
	EntityPatches map[uint64]PartialEntity `msgpack:"entity_patches,omitempty"`
	Area          *PackedArea              `msgpack:"area,omitempty"`
}

func NewPlayer(p PackedPlayer) Package {
	return Package{Kind: KindNewPlayer, Player: &p}
}

func ClosePlayer(id int64) Package {
	return Package{Kind: KindClosePlayer, PlayerID: id}
}

func Players(players map[int64]PackedPlayer) Package {
	return Package{Kind: KindPlayers, Players: players}
}

func NewEntities(entities map[uint64]PackedEntity) Package {
	return Package{Kind: KindNewEntities, Entities: entities}
}

func CloseEntities(ids []uint64) Package {
	return Package{Kind: KindCloseEntities, EntityIDs: ids}
}

func UpdatePlayers(patches map[int64]PartialPlayer) Package {
	return Package{Kind: KindUpdatePlayers, PlayerPatches: patches}
}

func UpdateEntities(patches map[uint64]PartialEntity) Package {
	return Package{Kind: KindUpdateEntities, EntityPatches: patches}
}

func AreaInit(area PackedArea) Package {
	return Package{Kind: KindAreaInit, Area: &area}
}

func MySelf(p PackedPlayer) Package {
	return Package{Kind: KindMySelf, Player: &p}
}
