package service

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrDuplicateService = errors.New("service already registered")
	ErrMissingService   = errors.New("service depends on unregistered service")
	ErrCircularService  = errors.New("circular dependency detected in services")
)

type phase uint8

const (
	phaseRegistered phase = iota
	phaseInitialized
	phaseStarted
)

// Hub owns the host services and drives their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	services map[string]Service
	phases   map[string]phase
	order    []string // dependencies first; nil until resolved
}

// NewHub creates an empty service hub
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:   logger.Named("hub"),
		services: make(map[string]Service),
		phases:   make(map[string]phase),
	}
}

// Register adds a service; the lifecycle order is re-resolved on the next InitAll
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateService, name)
	}
	h.services[name] = svc
	h.phases[name] = phaseRegistered
	h.order = nil
	return nil
}

func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// MustGet returns the named service as T and panics when it is absent or of another type
func MustGet[T any](h *Hub, name string) T {
	svc, ok := h.Get(name)
	if !ok {
		panic(fmt.Sprintf("service not found: %s", name))
	}
	typed, ok := svc.(T)
	if !ok {
		panic(fmt.Sprintf("service %s: type mismatch, got %T", name, svc))
	}
	return typed
}

// InitAll resolves the order and initializes every service with the same args
// A failure stops the services initialized so far, newest first
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.resolve()
		if err != nil {
			return err
		}
		h.order = order
	}

	for i, name := range h.order {
		if err := h.services[name].Init(args...); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.phases[name] = phaseInitialized
	}
	return nil
}

// StartAll starts every initialized service in dependency order
// A failure stops the services started so far, newest first
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, name := range h.order {
		if err := h.services[name].Start(); err != nil {
			h.stopReverse(h.order[:i])
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.phases[name] = phaseStarted
		h.logger.Debug("service started", zap.String("service", name))
	}
	return nil
}

// StopAll stops started services in reverse dependency order
// Stop errors are logged and do not prevent the remaining services from stopping
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopReverse(h.order)
}

// stopReverse stops every service in names that is past registration, last first
func (h *Hub) stopReverse(names []string) {
	for _, name := range slices.Backward(names) {
		if h.phases[name] == phaseRegistered {
			continue
		}
		h.phases[name] = phaseRegistered
		if err := h.services[name].Stop(); err != nil {
			h.logger.Warn("service stop failed", zap.String("service", name), zap.Error(err))
			continue
		}
		h.logger.Debug("service stopped", zap.String("service", name))
	}
}

// resolve orders services so each follows its dependencies
// Services are visited by name, which keeps the order stable across runs
func (h *Hub) resolve() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	order := make([]string, 0, len(h.services))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := slices.Index(path, name)
			cycle := append(slices.Clone(path[start:]), name)
			return fmt.Errorf("%w: %s", ErrCircularService, strings.Join(cycle, " -> "))
		}

		state[name] = visiting
		path = append(path, name)
		deps := slices.Sorted(slices.Values(h.services[name].Dependencies()))
		for _, dep := range deps {
			if _, ok := h.services[dep]; !ok {
				return fmt.Errorf("%w: %s needs %s", ErrMissingService, name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(h.services)) {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Names returns all registered service names, sorted
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.services))
}
