package world

import (
	"github.com/lixenwraith/warpzone/config"
)

// World is an ordered sequence of areas; area i borders i-1 and i+1
type World struct {
	Name  string
	Areas []*Area
}

func NewWorld(tpl *config.WorldTemplate) *World {
	w := &World{Name: tpl.Name, Areas: make([]*Area, len(tpl.Areas))}
	for i, a := range tpl.Areas {
		w.Areas[i] = NewArea(tpl.Name, i, a)
	}
	return w
}

// Area returns the area at index, nil when out of range
func (w *World) Area(index int) *Area {
	if index < 0 || index >= len(w.Areas) {
		return nil
	}
	return w.Areas[index]
}

// Atlas holds every world in warp order; the order wraps around
type Atlas struct {
	worlds []*World
	index  map[string]int
}

// NewAtlas builds worlds from templates already in warp order
func NewAtlas(templates []*config.WorldTemplate) *Atlas {
	a := &Atlas{
		worlds: make([]*World, len(templates)),
		index:  make(map[string]int, len(templates)),
	}
	for i, t := range templates {
		a.worlds[i] = NewWorld(t)
		a.index[t.Name] = i
	}
	return a
}

// World looks up a world by name
func (a *Atlas) World(name string) (*World, bool) {
	i, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return a.worlds[i], true
}

// Worlds returns all worlds in warp order
func (a *Atlas) Worlds() []*World {
	return a.worlds
}

// Next returns the world after name, wrapping to the first
func (a *Atlas) Next(name string) *World {
	i, ok := a.index[name]
	if !ok || i+1 >= len(a.worlds) {
		return a.worlds[0]
	}
	return a.worlds[i+1]
}

// Prev returns the world before name, wrapping to the last
func (a *Atlas) Prev(name string) *World {
	i, ok := a.index[name]
	if !ok || i == 0 {
		return a.worlds[len(a.worlds)-1]
	}
	return a.worlds[i-1]
}

// Zone returns the area a world/index pair addresses, nil when either is unknown
func (a *Atlas) Zone(world string, area int) *Area {
	w, ok := a.World(world)
	if !ok {
		return nil
	}
	return w.Area(area)
}
