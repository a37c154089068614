package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/warpzone/parameter"
)

var (
	// ErrInvalidConfig wraps every engine config validation failure
	ErrInvalidConfig = errors.New("invalid engine config")
	// ErrInvalidTemplate wraps every world template validation failure
	ErrInvalidTemplate = errors.New("invalid world template")
)

// SpawnConfig holds the parameters new players are created with
// sx/sy and ex/ey are opposite corners of the spawn rectangle in area 0 coordinates
type SpawnConfig struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	Regeneration float64 `yaml:"regeneration"`
	Energy       float64 `yaml:"energy"`
	MaxEnergy    float64 `yaml:"max_energy"`
	World        string  `yaml:"world"`
	Area         int     `yaml:"area"`
	SX           float64 `yaml:"sx"`
	SY           float64 `yaml:"sy"`
	EX           float64 `yaml:"ex"`
	EY           float64 `yaml:"ey"`
	DiedTimer    float64 `yaml:"died_timer"`
	Hero         string  `yaml:"hero"`
}

// EngineConfig is the root engine configuration document
type EngineConfig struct {
	Spawn SpawnConfig `yaml:"spawn"`
	// Worlds orders world names for inter-world warps; empty means template load order
	Worlds   []string `yaml:"worlds"`
	Seed     uint64   `yaml:"seed"`
	TickRate int      `yaml:"tick_rate"`
}

// Default returns the stock configuration
func Default() *EngineConfig {
	return &EngineConfig{
		Spawn: SpawnConfig{
			Radius:       parameter.PlayerRadius,
			Speed:        parameter.PlayerSpeed,
			Regeneration: parameter.PlayerRegeneration,
			Energy:       parameter.PlayerEnergy,
			MaxEnergy:    parameter.PlayerMaxEnergy,
			SX:           parameter.PlayerSpawnStartX,
			SY:           parameter.PlayerSpawnStartY,
			EX:           parameter.PlayerSpawnEndX,
			EY:           parameter.PlayerSpawnEndY,
			DiedTimer:    parameter.PlayerDiedTimer,
			Hero:         "maven",
		},
		TickRate: parameter.DefaultTickRate,
	}
}

// ParseEngine decodes YAML or JSON over the defaults, so omitted keys keep their stock value
func ParseEngine(data []byte) (*EngineConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEngine reads an engine config file; an empty path yields the defaults
func LoadEngine(path string) (*EngineConfig, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseEngine(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges that do not depend on loaded worlds
func (c *EngineConfig) Validate() error {
	s := c.Spawn
	switch {
	case s.Radius <= 0:
		return fmt.Errorf("%w: spawn radius must be positive, got %v", ErrInvalidConfig, s.Radius)
	case s.Speed < 0:
		return fmt.Errorf("%w: spawn speed must not be negative, got %v", ErrInvalidConfig, s.Speed)
	case s.MaxEnergy < 0 || s.Energy < 0:
		return fmt.Errorf("%w: spawn energy must not be negative", ErrInvalidConfig)
	case s.DiedTimer <= 0:
		return fmt.Errorf("%w: died_timer must be positive, got %v", ErrInvalidConfig, s.DiedTimer)
	case s.Area < 0:
		return fmt.Errorf("%w: spawn area must not be negative, got %d", ErrInvalidConfig, s.Area)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}

	seen := make(map[string]bool, len(c.Worlds))
	for _, name := range c.Worlds {
		if seen[name] {
			return fmt.Errorf("%w: world %q listed twice", ErrInvalidConfig, name)
		}
		seen[name] = true
	}
	return nil
}

// Resolve orders templates by the worlds list and fills the default spawn world
// Worlds missing from the list are appended in load order
func (c *EngineConfig) Resolve(templates []*WorldTemplate) ([]*WorldTemplate, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("%w: no worlds loaded", ErrInvalidConfig)
	}

	byName := make(map[string]*WorldTemplate, len(templates))
	for _, t := range templates {
		if _, dup := byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate world %q", ErrInvalidTemplate, t.Name)
		}
		byName[t.Name] = t
	}

	ordered := make([]*WorldTemplate, 0, len(templates))
	used := make(map[string]bool, len(templates))
	for _, name := range c.Worlds {
		t, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: world %q listed but not loaded", ErrInvalidConfig, name)
		}
		ordered = append(ordered, t)
		used[name] = true
	}
	for _, t := range templates {
		if !used[t.Name] {
			ordered = append(ordered, t)
		}
	}

	if c.Spawn.World == "" {
		c.Spawn.World = ordered[0].Name
	}
	spawnWorld, ok := byName[c.Spawn.World]
	if !ok {
		return nil, fmt.Errorf("%w: spawn world %q not loaded", ErrInvalidConfig, c.Spawn.World)
	}
	if c.Spawn.Area >= len(spawnWorld.Areas) {
		return nil, fmt.Errorf("%w: spawn area %d out of range for world %q", ErrInvalidConfig, c.Spawn.Area, c.Spawn.World)
	}
	c.Spawn.fitArea(spawnWorld.Areas[c.Spawn.Area])
	return ordered, nil
}

// fitArea clamps the spawn rectangle's vertical span clear of the inter-world warp bands
// An area too short for the band spawns on its centre line
func (s *SpawnConfig) fitArea(a AreaTemplate) {
	lo := parameter.WorldWarpMargin + s.Radius
	hi := a.H - parameter.WorldWarpMargin - s.Radius
	if hi < lo {
		s.SY, s.EY = a.H/2, a.H/2
		return
	}
	s.SY = max(lo, min(hi, s.SY))
	s.EY = max(lo, min(hi, s.EY))
}
