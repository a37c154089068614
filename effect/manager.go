package effect

import (
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/vmath"
)

// ResolveFunc looks up what an effect needs each tick
// ok is false when the effect must end; target is still returned when the player exists, so it can be disabled
// casterPos is nil when the caster is gone
type ResolveFunc func(e Effect) (target *hero.Player, casterPos *vmath.Vec2, bound vmath.Boundary, ok bool)

type key struct {
	target int64
	kind   uint32
}

// Manager owns every active effect of one engine
// At most one effect per (target, kind); Enable runs on add and Disable always precedes removal
type Manager struct {
	effects []Effect
	active  map[key]struct{}
}

func NewManager() *Manager {
	return &Manager{active: make(map[key]struct{})}
}

// Add creates and enables an effect unless the target already carries one of that kind
// Returns false for duplicates
func (m *Manager) Add(kind uint32, target *hero.Player, caster uint64) (bool, error) {
	k := key{target: target.ID, kind: kind}
	if _, ok := m.active[k]; ok {
		return false, nil
	}
	e, err := New(kind, target, caster)
	if err != nil {
		return false, err
	}
	e.Enable(target)
	m.effects = append(m.effects, e)
	m.active[k] = struct{}{}
	return true, nil
}

// Update advances all effects and retires the ones flagged for removal
func (m *Manager) Update(delta, timeFix float64, resolve ResolveFunc) {
	kept := m.effects[:0]
	for _, e := range m.effects {
		target, casterPos, bound, ok := resolve(e)
		if !ok {
			if target != nil {
				e.Disable(target)
			}
			delete(m.active, key{target: e.Target(), kind: e.Kind()})
			continue
		}

		e.Update(&UpdateContext{
			Delta:     delta,
			TimeFix:   timeFix,
			Target:    target,
			CasterPos: casterPos,
			Boundary:  bound,
		})

		if e.ToRemove() {
			e.Disable(target)
			delete(m.active, key{target: e.Target(), kind: e.Kind()})
			continue
		}
		kept = append(kept, e)
	}
	clear(m.effects[len(kept):])
	m.effects = kept
}

// RemoveTarget disables and drops every effect on p
func (m *Manager) RemoveTarget(p *hero.Player) {
	kept := m.effects[:0]
	for _, e := range m.effects {
		if e.Target() == p.ID {
			e.Disable(p)
			delete(m.active, key{target: e.Target(), kind: e.Kind()})
			continue
		}
		kept = append(kept, e)
	}
	clear(m.effects[len(kept):])
	m.effects = kept
}

// Has reports whether target carries an effect of the given kind
func (m *Manager) Has(target int64, kind uint32) bool {
	_, ok := m.active[key{target: target, kind: kind}]
	return ok
}

func (m *Manager) Len() int {
	return len(m.effects)
}
