package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/warpzone/vmath"
)

// Wire type ids
const (
	TypeNormal       uint32 = 0
	TypeWall         uint32 = 1
	TypeImmune       uint32 = 2
	TypeSniper       uint32 = 3
	TypeBullet       uint32 = 4
	TypeChanger      uint32 = 5
	TypeDrop         uint32 = 7
	TypeLeaf         uint32 = 8
	TypeHoming       uint32 = 9
	TypeSlower       uint32 = 11
	TypeDraining     uint32 = 12
	TypeBee          uint32 = 15
	TypeHomingSniper uint32 = 16
	TypeHomingBullet uint32 = 17
	TypeFlame        uint32 = 18
	TypeFlameTrail   uint32 = 19
	TypeFlameSniper  uint32 = 20
	TypeFlameBullet  uint32 = 20
	TypeCloud        uint32 = 21
	TypePull         uint32 = 22
	TypeFade         uint32 = 23
	TypeSizer        uint32 = 24
	TypeIcicle       uint32 = 25
	TypeStormCloud   uint32 = 27
)

// ErrUnknownKind is returned for a kind name with no constructor
var ErrUnknownKind = errors.New("unknown entity kind")

// Constructor builds one member of a spawn group
type Constructor func(props Props, group Group, rng *vmath.FastRand) Entity

// kinds is populated at init and read-only afterwards
var kinds = map[string]Constructor{
	"normal":        NewNormal,
	"wall":          NewWall,
	"immune":        NewImmune,
	"sniper":        NewSniper,
	"changer":       NewChanger,
	"drop":          NewDrop,
	"leaf":          NewLeaf,
	"homing":        NewHoming,
	"slower":        NewSlower,
	"draining":      NewDraining,
	"bee":           NewBee,
	"homing_sniper": NewHomingSniper,
	"flame":         NewFlame,
	"flame_sniper":  NewFlameSniper,
	"cloud":         NewCloud,
	"pull":          NewPull,
	"fade":          NewFade,
	"sizer":         NewSizer,
	"icicle":        NewIcicle,
	"storm_cloud":   NewStormCloud,
}

// New constructs an entity of the named kind
func New(kind string, props Props, group Group, rng *vmath.FastRand) (Entity, error) {
	ctor, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return ctor(props, group, rng), nil
}

// Exists reports whether kind names a spawnable entity
func Exists(kind string) bool {
	_, ok := kinds[kind]
	return ok
}

// Names returns all spawnable kind names, sorted
func Names() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
