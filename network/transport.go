package network

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/status"
)

// Transport serves the websocket endpoint and the operational HTTP routes
//
// Routes:
//   - /ws      websocket upgrade, one Peer per connection
//   - /healthz liveness, always 200 while serving
//   - /status  metrics registry as JSON
type Transport struct {
	config   *Config
	logger   *zap.Logger
	registry *status.Registry
	peers    *PeerManager
	upgrader websocket.Upgrader
	router   *mux.Router

	server   *http.Server
	listener net.Listener

	running atomic.Bool
	wg      sync.WaitGroup

	statPeers    *atomic.Int64
	statRejected *atomic.Int64
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config, registry *status.Registry, logger *zap.Logger) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = status.NewRegistry()
	}
	t := &Transport{
		config:   cfg,
		logger:   logger,
		registry: registry,
		peers:    NewPeerManager(cfg, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		statPeers:    registry.Ints.Get("network.peers"),
		statRejected: registry.Ints.Get("network.rejected"),
	}

	t.router = mux.NewRouter()
	t.router.HandleFunc("/ws", t.handleWS).Methods(http.MethodGet)
	t.router.HandleFunc("/healthz", t.handleHealth).Methods(http.MethodGet)
	t.router.HandleFunc("/status", t.handleStatus).Methods(http.MethodGet)
	return t
}

// SetHandlers configures peer callbacks
func (t *Transport) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, *ClientMessage),
) {
	t.peers.SetHandlers(
		func(p *Peer) {
			t.statPeers.Add(1)
			if onConnect != nil {
				onConnect(p)
			}
		},
		func(p *Peer) {
			t.statPeers.Add(-1)
			if onDisconnect != nil {
				onDisconnect(p)
			}
		},
		onMessage,
	)
}

// Handler exposes the routes without binding a listener
func (t *Transport) Handler() http.Handler {
	return t.router
}

// Start binds the configured address and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln
	t.server = &http.Server{Handler: t.router}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("http server failed", zap.Error(err))
		}
	}()

	t.logger.Info("listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the HTTP server down and disconnects every peer
func (t *Transport) Stop() error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.config.ShutdownTimeout)
	defer cancel()
	err := t.server.Shutdown(ctx)

	// Hijacked websocket connections are not tracked by Shutdown
	t.peers.Close()
	t.wg.Wait()
	return err
}

// Addr returns the bound address, or nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *Transport) Send(id PeerID, frame []byte) bool {
	return t.peers.Send(id, frame)
}

func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

func (t *Transport) IsRunning() bool {
	return t.running.Load()
}

func (t *Transport) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.logger.Debug("upgrade failed", zap.String("addr", r.RemoteAddr), zap.Error(err))
		return
	}
	if _, err := t.peers.AddConnection(conn); err != nil {
		t.statRejected.Add(1)
		t.logger.Warn("connection rejected", zap.String("addr", r.RemoteAddr), zap.Error(err))
	}
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (t *Transport) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(t.registry.Snapshot()); err != nil {
		t.logger.Warn("status encode failed", zap.Error(err))
	}
}
