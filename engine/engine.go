package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/config"
	"github.com/lixenwraith/warpzone/effect"
	"github.com/lixenwraith/warpzone/event"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/parameter"
	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/status"
	"github.com/lixenwraith/warpzone/vmath"
	"github.com/lixenwraith/warpzone/world"
)

// Engine owns the simulation state and advances it one tick at a time
// Not safe for concurrent use; callers serialize Join, Leave, Input and Tick
type Engine struct {
	cfg    *config.EngineConfig
	spawn  hero.Spawn
	logger *zap.Logger
	clock  Clock
	rng    *vmath.FastRand

	atlas *world.Atlas

	players map[int64]*hero.Player
	order   []int64 // join order, drives deterministic player iteration
	inputs  map[int64]*hero.Input
	clients map[int64]struct{}

	effects *effect.Manager
	bus     *event.Bus
	router  *event.Router[*Engine]
	out     *outbox

	frame    int64
	lastTick time.Time

	// Per-tick scratch filled by handlers during the drain phase
	spawned map[*world.Area][]uint64

	statusReg    *status.Registry
	statTicks    *atomic.Int64
	statPlayers  *atomic.Int64
	statEntities *atomic.Int64
	statEvents   *atomic.Int64
	statTickMs   *status.AtomicFloat
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger; defaults to a no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces the system clock used by Tick
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithStatus publishes engine counters into the given registry
func WithStatus(r *status.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.statusReg = r
		}
	}
}

// New builds an engine over the given world templates
// The config is resolved against the templates, which fixes world order and the spawn world
func New(cfg *config.EngineConfig, templates []*config.WorldTemplate, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ordered, err := cfg.Resolve(templates)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	e := &Engine{
		cfg:     cfg,
		logger:  zap.NewNop(),
		clock:   NewTimeProvider(),
		rng:     vmath.NewFastRand(cfg.Seed),
		atlas:   world.NewAtlas(ordered),
		players: make(map[int64]*hero.Player),
		inputs:  make(map[int64]*hero.Input),
		clients: make(map[int64]struct{}),
		effects: effect.NewManager(),
		bus:     bus,
		router:  event.NewRouter[*Engine](bus),
		out:     newOutbox(),
		spawned: make(map[*world.Area][]uint64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.statusReg == nil {
		e.statusReg = status.NewRegistry()
	}

	e.spawn = spawnFromConfig(cfg.Spawn)

	e.statTicks = e.statusReg.Ints.Get("engine.ticks")
	e.statPlayers = e.statusReg.Ints.Get("engine.players")
	e.statEntities = e.statusReg.Ints.Get("engine.entities")
	e.statEvents = e.statusReg.Ints.Get("engine.events")
	e.statTickMs = e.statusReg.Floats.Get("engine.tick_ms")

	e.registerHandlers()

	e.logger.Info("engine ready",
		zap.Int("worlds", len(ordered)),
		zap.String("spawn_world", cfg.Spawn.World),
		zap.Int("spawn_area", cfg.Spawn.Area),
		zap.Uint64("seed", cfg.Seed),
	)
	return e, nil
}

func spawnFromConfig(s config.SpawnConfig) hero.Spawn {
	return hero.Spawn{
		Radius:       s.Radius,
		Speed:        s.Speed,
		Regeneration: s.Regeneration,
		Energy:       s.Energy,
		MaxEnergy:    s.MaxEnergy,
		DiedTimer:    s.DiedTimer,
		World:        s.World,
		Area:         s.Area,
		Region:       vmath.Corners(s.SX, s.SY, s.EX, s.EY),
	}
}

// Join creates a player for client id in the spawn zone
// An empty heroName selects the configured default hero
func (e *Engine) Join(id int64, name, heroName string) error {
	if _, ok := e.players[id]; ok {
		return fmt.Errorf("%w: %d", ErrPlayerExists, id)
	}
	if heroName == "" {
		heroName = e.cfg.Spawn.Hero
	}
	h, err := hero.New(heroName)
	if err != nil {
		return err
	}

	w, ok := e.atlas.World(e.spawn.World)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWorld, e.spawn.World)
	}
	area := w.Area(e.spawn.Area)
	if area == nil {
		return fmt.Errorf("%w: %s/%d", ErrUnknownArea, e.spawn.World, e.spawn.Area)
	}

	p := hero.NewPlayer(id, name, h, e.spawn, e.rng)
	e.players[id] = p
	e.order = append(e.order, id)
	e.inputs[id] = &hero.Input{}
	e.clients[id] = struct{}{}

	e.joinArea(area, id)

	e.out.global(e.clients, snapshot.NewPlayer(p.Pack()))
	e.out.direct(id, snapshot.AreaInit(area.Pack()))
	e.out.direct(id, snapshot.Players(e.packPlayers()))
	e.out.direct(id, snapshot.MySelf(p.Pack()))

	e.logger.Info("player joined",
		zap.Int64("id", id),
		zap.String("name", name),
		zap.String("hero", heroName),
		zap.String("world", p.World),
		zap.Int("area", p.Area),
	)
	return nil
}

// Leave disconnects client id and removes its player if it still exists
func (e *Engine) Leave(id int64) error {
	if _, ok := e.clients[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	if _, ok := e.players[id]; ok {
		e.removePlayer(id)
	}
	delete(e.clients, id)
	e.out.drop(id)
	e.logger.Info("player left", zap.Int64("id", id))
	return nil
}

// Input stages control state for the next tick
// Levels replace the previous state; a pending ability press survives until consumed
func (e *Engine) Input(id int64, in hero.Input) error {
	staged, ok := e.inputs[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	pending := staged.Ability1
	*staged = in
	staged.Ability1 = in.Ability1 || pending
	return nil
}

// Player returns the live player for id
func (e *Engine) Player(id int64) (*hero.Player, bool) {
	p, ok := e.players[id]
	return p, ok
}

// Players returns live players in join order
func (e *Engine) Players() []*hero.Player {
	out := make([]*hero.Player, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.players[id])
	}
	return out
}

// Connected reports whether client id is attached, with or without a live player
func (e *Engine) Connected(id int64) bool {
	_, ok := e.clients[id]
	return ok
}

func (e *Engine) Atlas() *world.Atlas { return e.atlas }
func (e *Engine) Frame() int64        { return e.frame }
func (e *Engine) Effects() int        { return e.effects.Len() }

// HasEffect reports whether player id carries the given effect kind
func (e *Engine) HasEffect(id int64, kind uint32) bool {
	return e.effects.Has(id, kind)
}

// Status returns the registry the engine publishes into
func (e *Engine) Status() *status.Registry { return e.statusReg }

func (e *Engine) joinArea(area *world.Area, id int64) {
	populated, err := area.Join(id, e.rng)
	if err != nil {
		e.logger.Warn("area template has unknown entity kinds",
			zap.String("world", area.World),
			zap.Int("area", area.Index),
			zap.Error(err),
		)
	}
	if populated {
		e.logger.Debug("area populated",
			zap.String("world", area.World),
			zap.Int("area", area.Index),
			zap.Int("entities", area.EntityCount()),
		)
	}
}

func (e *Engine) leaveArea(area *world.Area, id int64) {
	if area == nil {
		return
	}
	if area.Leave(id) {
		e.logger.Debug("area cleared",
			zap.String("world", area.World),
			zap.Int("area", area.Index),
		)
	}
}

// removePlayer drops the player from its area and registry and announces it
func (e *Engine) removePlayer(id int64) {
	p := e.players[id]
	e.leaveArea(e.atlas.Zone(p.World, p.Area), id)
	e.effects.RemoveTarget(p)
	delete(e.players, id)
	delete(e.inputs, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	e.out.global(e.clients, snapshot.ClosePlayer(id))
}

func (e *Engine) packPlayers() map[int64]snapshot.PackedPlayer {
	out := make(map[int64]snapshot.PackedPlayer, len(e.players))
	for id, p := range e.players {
		out[id] = p.Pack()
	}
	return out
}

// areaPlayers resolves the live players of an area in roster order
func (e *Engine) areaPlayers(area *world.Area) []*hero.Player {
	ids := area.Players()
	out := make([]*hero.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := e.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// TickInterval returns the configured scheduling interval
func (e *Engine) TickInterval() time.Duration {
	rate := e.cfg.TickRate
	if rate <= 0 {
		rate = parameter.DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
