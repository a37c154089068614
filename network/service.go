package network

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/status"
)

// Listener receives peer lifecycle and message callbacks
// Callbacks run on peer goroutines
type Listener interface {
	OnConnect(id PeerID)
	OnDisconnect(id PeerID)
	OnMessage(id PeerID, msg *ClientMessage)
}

// Service wraps Transport as a hub-managed service
type Service struct {
	config    *Config
	logger    *zap.Logger
	registry  *status.Registry
	listener  Listener
	transport *Transport
}

// NewService creates a network service delivering peer events to listener
func NewService(listener Listener, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		config:   DefaultConfig(),
		logger:   logger.Named("network"),
		listener: listener,
	}
}

func (s *Service) Name() string           { return "network" }
func (s *Service) Dependencies() []string { return []string{"status"} }

// Init picks up a *Config and a *status.Registry from args when present
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Config:
			if v != nil {
				s.config = v
			}
		case *status.Registry:
			s.registry = v
		}
	}

	s.transport = NewTransport(s.config, s.registry, s.logger)
	s.transport.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	return nil
}

func (s *Service) Start() error {
	if s.transport == nil {
		return nil
	}
	return s.transport.Start()
}

func (s *Service) Stop() error {
	if s.transport == nil {
		return nil
	}
	return s.transport.Stop()
}

// Transport returns the underlying transport, nil before Init
func (s *Service) Transport() *Transport {
	return s.transport
}

func (s *Service) onConnect(p *Peer) {
	if s.listener != nil {
		s.listener.OnConnect(p.ID)
	}
}

func (s *Service) onDisconnect(p *Peer) {
	if s.listener != nil {
		s.listener.OnDisconnect(p.ID)
	}
}

func (s *Service) onMessage(p *Peer, msg *ClientMessage) {
	if s.listener != nil {
		s.listener.OnMessage(p.ID, msg)
	}
}

// SendPackages encodes and queues one tick's packages for a peer
func (s *Service) SendPackages(id PeerID, pkgs []snapshot.Package) bool {
	if s.transport == nil || len(pkgs) == 0 {
		return false
	}
	frame, err := EncodePackages(pkgs)
	if err != nil {
		s.logger.Error("encode failed", zap.Uint32("peer", uint32(id)), zap.Error(err))
		return false
	}
	return s.transport.Send(id, frame)
}

// PeerCount returns connected peer count
func (s *Service) PeerCount() int {
	if s.transport == nil {
		return 0
	}
	return s.transport.PeerCount()
}
