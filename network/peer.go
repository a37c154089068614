package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PeerID uniquely identifies a connected peer for the lifetime of the process
type PeerID uint32

var ErrMaxPeers = errors.New("max peers reached")

// Peer is one websocket client
type Peer struct {
	ID       PeerID
	Session  uuid.UUID
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn   *websocket.Conn
	config *Config
	logger *zap.Logger

	sendCh chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config, logger *zap.Logger) *Peer {
	session := uuid.New()
	p := &Peer{
		ID:      id,
		Session: session,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		logger:  logger.With(zap.Uint32("peer", uint32(id)), zap.String("session", session.String())),
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues a binary frame
// Returns false if the peer is closed; a full queue closes the peer
func (p *Peer) Send(frame []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- frame:
		return true
	default:
		p.logger.Warn("send queue full, dropping peer")
		p.Close()
		return false
	}
}

// Close initiates shutdown; safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		_ = p.conn.Close()
	})
}

// Done is closed once the peer is closed
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

// readLoop decodes client frames until the connection fails or a frame is malformed
func (p *Peer) readLoop(handler func(*Peer, *ClientMessage)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.ReadLimit)
	_ = p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	})

	for {
		kind, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Debug("read failed", zap.Error(err))
			}
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		_ = p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))

		if kind != websocket.TextMessage {
			p.logger.Warn("unexpected binary frame, closing")
			return
		}
		msg, err := ParseClientMessage(data)
		if err != nil {
			p.logger.Warn("bad client message, closing", zap.Error(err))
			return
		}
		handler(p, msg)
	}
}

// writeLoop sends queued frames and keeps the connection alive with pings
func (p *Peer) writeLoop() {
	ticker := time.NewTicker(p.config.PingInterval)
	defer func() {
		ticker.Stop()
		p.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(p.config.WriteTimeout))
			return
		case frame := <-p.sendCh:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				p.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager tracks connected peers
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[PeerID]*Peer
	nextID atomic.Uint32
	config *Config
	logger *zap.Logger

	// Callbacks
	onConnect    func(*Peer)
	onDisconnect func(*Peer)
	onMessage    func(*Peer, *ClientMessage)
}

func NewPeerManager(cfg *Config, logger *zap.Logger) *PeerManager {
	return &PeerManager{
		peers:  make(map[PeerID]*Peer),
		config: cfg,
		logger: logger,
	}
}

// SetHandlers configures event callbacks; must be called before the first connection
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, *ClientMessage),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers a peer for an upgraded connection and starts its loops
func (pm *PeerManager) AddConnection(conn *websocket.Conn) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.config.MaxPeers {
		pm.mu.Unlock()
		_ = conn.Close()
		return nil, ErrMaxPeers
	}
	peer := newPeer(PeerID(pm.nextID.Add(1)), conn, pm.config, pm.logger)
	pm.peers[peer.ID] = peer
	pm.mu.Unlock()

	peer.logger.Info("peer connected", zap.String("addr", peer.Addr))
	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	go peer.readLoop(pm.handleMessage)
	go peer.writeLoop()
	go pm.monitorPeer(peer)

	return peer, nil
}

func (pm *PeerManager) handleMessage(p *Peer, msg *ClientMessage) {
	if pm.onMessage != nil {
		pm.onMessage(p, msg)
	}
}

// monitorPeer unregisters a peer once it closes
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	peer.logger.Info("peer disconnected")
	if pm.onDisconnect != nil {
		pm.onDisconnect(peer)
	}
}

// Send queues a frame for a specific peer
func (pm *PeerManager) Send(id PeerID, frame []byte) bool {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()
	if !ok {
		return false
	}
	return peer.Send(frame)
}

func (pm *PeerManager) GetPeer(id PeerID) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
}

func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		p.Close()
	}
}
