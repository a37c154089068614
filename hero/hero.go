package hero

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownHero is returned when a hero name has no registered factory
var ErrUnknownHero = errors.New("unknown hero")

// Hero is the ability layer on top of a Player
type Hero interface {
	// Name returns the registry name
	Name() string
	// TypeID returns the wire identifier
	TypeID() uint32
	// Ability handles a first-ability press
	Ability(p *Player)
	// Update runs after the player's base update in the same tick
	Update(p *Player, ctx *UpdateContext)
}

// Factory creates a fresh hero state
type Factory func() Hero

var (
	heroesMu sync.RWMutex
	heroes   = make(map[string]Factory)
)

// Register adds a hero factory by name
func Register(name string, factory Factory) {
	heroesMu.Lock()
	defer heroesMu.Unlock()
	heroes[name] = factory
}

// New creates the named hero
func New(name string) (Hero, error) {
	heroesMu.RLock()
	f, ok := heroes[name]
	heroesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHero, name)
	}
	return f(), nil
}

// Exists reports whether name is registered
func Exists(name string) bool {
	heroesMu.RLock()
	defer heroesMu.RUnlock()
	_, ok := heroes[name]
	return ok
}

// Names returns all registered hero names, sorted
func Names() []string {
	heroesMu.RLock()
	defer heroesMu.RUnlock()
	names := make([]string, 0, len(heroes))
	for name := range heroes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("maven", func() Hero { return &Maven{} })
	Register("revenant", func() Hero { return &Revenant{} })
}
