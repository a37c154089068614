package snapshot

import (
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/vmath"
)

// PackedEntity is the quantized wire projection of an entity
// Coordinates, radius, aura and state metadata are ×10, alpha ×100
type PackedEntity struct {
	TypeID        uint32 `msgpack:"type_id"`
	X             int32  `msgpack:"x"`
	Y             int32  `msgpack:"y"`
	Radius        uint32 `msgpack:"radius"`
	Harmless      bool   `msgpack:"harmless"`
	Aura          uint32 `msgpack:"aura"`
	State         uint32 `msgpack:"state"`
	StateMetadata uint32 `msgpack:"state_metadata"`
	Alpha         uint32 `msgpack:"alpha"`
}

// PackedPlayer is the quantized wire projection of a player
type PackedPlayer struct {
	ID         int64  `msgpack:"id"`
	Name       string `msgpack:"name"`
	X          int32  `msgpack:"x"`
	Y          int32  `msgpack:"y"`
	Radius     uint32 `msgpack:"radius"`
	Speed      uint32 `msgpack:"speed"`
	Energy     uint32 `msgpack:"energy"`
	MaxEnergy  uint32 `msgpack:"max_energy"`
	DeathTimer uint32 `msgpack:"death_timer"`
	State      uint32 `msgpack:"state"`
	StateMeta  uint32 `msgpack:"state_meta"`
	Area       uint32 `msgpack:"area"`
	World      string `msgpack:"world"`
	Died       bool   `msgpack:"died"`
	Hero       uint32 `msgpack:"hero"`
}

// PackedArea is the full zone context sent on join and warp
type PackedArea struct {
	W        uint32                  `msgpack:"w"`
	H        uint32                  `msgpack:"h"`
	Area     uint32                  `msgpack:"area"`
	World    string                  `msgpack:"world"`
	Entities map[uint64]PackedEntity `msgpack:"entities"`
}

// Coord quantizes a signed world coordinate
func Coord(v float64) int32 {
	return vmath.QuantizeSigned(v, parameter.CoordScale)
}

// Scalar quantizes a magnitude (radius, speed, energy, timers)
func Scalar(v float64) uint32 {
	return vmath.QuantizeUnsigned(v, parameter.CoordScale)
}

// Alpha quantizes an opacity in [0, 1]
func Alpha(v float64) uint32 {
	return vmath.QuantizeUnsigned(v, parameter.AlphaScale)
}
