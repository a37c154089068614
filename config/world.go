package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnemyGroup is one spawn table row; each member picks a kind from Types at random
type EnemyGroup struct {
	Types  []string `yaml:"types"`
	Radius float64  `yaml:"radius"`
	Speed  float64  `yaml:"speed"`
	Count  int      `yaml:"count"`
	// Inverse reverses the travel direction of perimeter-bound kinds
	Inverse bool `yaml:"inverse"`
}

// AreaTemplate is the static definition of one area
type AreaTemplate struct {
	W       float64      `yaml:"w"`
	H       float64      `yaml:"h"`
	Enemies []EnemyGroup `yaml:"enemies"`
}

// WorldTemplate is the static definition of one world
type WorldTemplate struct {
	Name  string         `yaml:"name"`
	Areas []AreaTemplate `yaml:"areas"`
}

// KindChecker reports whether an entity kind name can be spawned
type KindChecker func(kind string) bool

// ParseWorld decodes a YAML or JSON world template and validates it
func ParseWorld(data []byte, known KindChecker) (*WorldTemplate, error) {
	var w WorldTemplate
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world template: %w", err)
	}
	if err := w.Validate(known); err != nil {
		return nil, err
	}
	return &w, nil
}

// LoadWorld reads a single world template file
func LoadWorld(path string, known KindChecker) (*WorldTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	w, err := ParseWorld(data, known)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// LoadWorlds loads templates from a file or from every .yaml/.yml/.json file in a directory, sorted by file name
func LoadWorlds(path string, known KindChecker) ([]*WorldTemplate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		w, err := LoadWorld(path, known)
		if err != nil {
			return nil, err
		}
		return []*WorldTemplate{w}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)

	worlds := make([]*WorldTemplate, 0, len(files))
	for _, f := range files {
		w, err := LoadWorld(f, known)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}
	if len(worlds) == 0 {
		return nil, fmt.Errorf("%w: no world files in %s", ErrInvalidTemplate, path)
	}
	return worlds, nil
}

// Validate checks structure and, when known is non-nil, that every kind name is spawnable
func (w *WorldTemplate) Validate(known KindChecker) error {
	if w.Name == "" {
		return fmt.Errorf("%w: world name is empty", ErrInvalidTemplate)
	}
	if len(w.Areas) == 0 {
		return fmt.Errorf("%w: world %q has no areas", ErrInvalidTemplate, w.Name)
	}
	for i, a := range w.Areas {
		if a.W <= 0 || a.H <= 0 {
			return fmt.Errorf("%w: world %q area %d has non-positive size %vx%v", ErrInvalidTemplate, w.Name, i, a.W, a.H)
		}
		for j, g := range a.Enemies {
			if len(g.Types) == 0 {
				return fmt.Errorf("%w: world %q area %d group %d has no types", ErrInvalidTemplate, w.Name, i, j)
			}
			if g.Count < 0 || g.Radius < 0 || g.Speed < 0 {
				return fmt.Errorf("%w: world %q area %d group %d has negative count, radius or speed", ErrInvalidTemplate, w.Name, i, j)
			}
			if known == nil {
				continue
			}
			for _, kind := range g.Types {
				if !known(kind) {
					return fmt.Errorf("%w: world %q area %d group %d: unknown kind %q", ErrInvalidTemplate, w.Name, i, j, kind)
				}
			}
		}
	}
	return nil
}

// EntityCount returns how many entities the area's spawn table produces
func (a *AreaTemplate) EntityCount() int {
	n := 0
	for _, g := range a.Enemies {
		n += g.Count
	}
	return n
}
