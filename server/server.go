package server

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/network"
	"github.com/lixenwraith/warpzone/snapshot"
)

// Sender delivers one tick's packages to a peer
type Sender interface {
	SendPackages(id network.PeerID, pkgs []snapshot.Package) bool
}

// Server drives the engine from the scheduler and feeds it network events
// Implements network.Listener and service.Service
type Server struct {
	mu     EngineMutex
	engine *engine.Engine
	inputs map[int64]*hero.Input // per-client control state, folded from key messages

	sender    Sender
	scheduler *Scheduler
	logger    *zap.Logger

	statDropped *atomic.Int64
}

// New creates a server around eng; sender may be attached later with SetSender
func New(eng *engine.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine:      eng,
		inputs:      make(map[int64]*hero.Input),
		logger:      logger.Named("server"),
		statDropped: eng.Status().Ints.Get("server.dropped_sends"),
	}
}

// SetSender attaches the outbound transport
func (s *Server) SetSender(sender Sender) {
	s.sender = sender
}

func (s *Server) Name() string           { return "server" }
func (s *Server) Dependencies() []string { return []string{"network", "status"} }

// Init builds the scheduler; an engine.Clock in args replaces the system clock
func (s *Server) Init(args ...any) error {
	var clock engine.Clock
	for _, arg := range args {
		if c, ok := arg.(engine.Clock); ok {
			clock = c
		}
	}
	s.scheduler = NewScheduler(s.engine.TickInterval(), clock, s.engine.Status(), s.Tick)
	return nil
}

func (s *Server) Start() error {
	if s.scheduler != nil {
		s.scheduler.Start()
	}
	s.logger.Info("ticking", zap.Duration("interval", s.engine.TickInterval()))
	return nil
}

func (s *Server) Stop() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

// Tick advances the engine once and ships the packages
func (s *Server) Tick() {
	s.mu.Lock()
	out := s.engine.Tick()
	s.mu.Unlock()

	if s.sender == nil {
		return
	}
	for id, pkgs := range out {
		if len(pkgs) == 0 {
			continue
		}
		if !s.sender.SendPackages(network.PeerID(id), pkgs) {
			s.statDropped.Add(1)
		}
	}
}

func (s *Server) OnConnect(id network.PeerID) {
	s.logger.Debug("client connected", zap.Uint32("peer", uint32(id)))
}

// OnDisconnect detaches the client and removes its player
func (s *Server) OnDisconnect(id network.PeerID) {
	cid := int64(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inputs, cid)
	if !s.engine.Connected(cid) {
		return
	}
	if err := s.engine.Leave(cid); err != nil {
		s.logger.Warn("leave failed", zap.Uint32("peer", uint32(id)), zap.Error(err))
	}
}

// OnMessage joins on init and stages input for everything else
func (s *Server) OnMessage(id network.PeerID, msg *network.ClientMessage) {
	cid := int64(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.Type == network.MsgInit {
		if err := s.engine.Join(cid, msg.Name, msg.Hero); err != nil {
			s.logger.Warn("join failed",
				zap.Uint32("peer", uint32(id)),
				zap.String("name", msg.Name),
				zap.String("hero", msg.Hero),
				zap.Error(err),
			)
			return
		}
		s.inputs[cid] = &hero.Input{}
		return
	}

	in, ok := s.inputs[cid]
	if !ok {
		return
	}
	if !msg.ApplyTo(in) {
		return
	}
	// Stale after death expiry until the client re-inits
	if err := s.engine.Input(cid, *in); err != nil {
		s.logger.Debug("input dropped", zap.Uint32("peer", uint32(id)), zap.Error(err))
	}
	in.Ability1 = false
}
