package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/warpzone/snapshot"
	"github.com/lixenwraith/warpzone/status"
)

type recordingListener struct {
	connects    chan PeerID
	disconnects chan PeerID
	messages    chan *ClientMessage
}

func newRecordingListener() *recordingListener {
	return &recordingListener{
		connects:    make(chan PeerID, 8),
		disconnects: make(chan PeerID, 8),
		messages:    make(chan *ClientMessage, 8),
	}
}

func (l *recordingListener) OnConnect(id PeerID)                    { l.connects <- id }
func (l *recordingListener) OnDisconnect(id PeerID)                 { l.disconnects <- id }
func (l *recordingListener) OnMessage(_ PeerID, msg *ClientMessage) { l.messages <- msg }

func newTestService(t *testing.T) (*Service, *recordingListener, *httptest.Server, *status.Registry) {
	t.Helper()
	l := newRecordingListener()
	reg := status.NewRegistry()
	svc := NewService(l, nil)
	if err := svc.Init(DefaultConfig(), reg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	srv := httptest.NewServer(svc.Transport().Handler())
	t.Cleanup(srv.Close)
	return svc, l, srv, reg
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("Timed out waiting for %s", what)
	}
	var zero T
	return zero
}

func TestWebsocketMessageFlow(t *testing.T) {
	svc, l, srv, _ := newTestService(t)
	conn := dialWS(t, srv)

	id := waitFor(t, l.connects, "connect")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"init","name":"alice","hero":"maven"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	msg := waitFor(t, l.messages, "init message")
	if msg.Type != MsgInit || msg.Name != "alice" || msg.Hero != "maven" {
		t.Errorf("Expected init alice/maven, got %+v", msg)
	}

	pkgs := []snapshot.Package{snapshot.ClosePlayer(42)}
	if !svc.SendPackages(id, pkgs) {
		t.Fatal("Expected SendPackages to queue")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Errorf("Expected binary frame, got %d", kind)
	}
	got, err := DecodePackages(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got) != 1 || got[0].Kind != snapshot.KindClosePlayer || got[0].PlayerID != 42 {
		t.Errorf("Expected ClosePlayer 42, got %+v", got)
	}

	conn.Close()
	if gone := waitFor(t, l.disconnects, "disconnect"); gone != id {
		t.Errorf("Expected disconnect of %d, got %d", id, gone)
	}
}

func TestMalformedMessageClosesOnlyThatPeer(t *testing.T) {
	svc, l, srv, _ := newTestService(t)
	bad := dialWS(t, srv)
	badID := waitFor(t, l.connects, "bad connect")
	good := dialWS(t, srv)
	waitFor(t, l.connects, "good connect")

	_ = bad.WriteMessage(websocket.TextMessage, []byte(`{"type":"keyDown","key":"warp"}`))
	if gone := waitFor(t, l.disconnects, "disconnect"); gone != badID {
		t.Errorf("Expected peer %d dropped, got %d", badID, gone)
	}

	if err := good.WriteMessage(websocket.TextMessage, []byte(`{"type":"keyDown","key":"up"}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	msg := waitFor(t, l.messages, "good message")
	if msg.Key != KeyUp {
		t.Errorf("Expected up, got %s", msg.Key)
	}
	if svc.PeerCount() != 1 {
		t.Errorf("Expected 1 peer left, got %d", svc.PeerCount())
	}
}

func TestHealthAndStatusRoutes(t *testing.T) {
	_, _, srv, reg := newTestService(t)
	reg.Ints.Get("engine.ticks").Store(12)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status failed: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body["engine.ticks"] != float64(12) {
		t.Errorf("Expected engine.ticks 12, got %v", body["engine.ticks"])
	}
}

func TestMaxPeers(t *testing.T) {
	l := newRecordingListener()
	cfg := DefaultConfig()
	cfg.MaxPeers = 1
	svc := NewService(l, nil)
	_ = svc.Init(cfg)
	srv := httptest.NewServer(svc.Transport().Handler())
	defer srv.Close()

	dialWS(t, srv)
	waitFor(t, l.connects, "first connect")

	second := dialWS(t, srv)
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := second.ReadMessage(); err == nil {
		t.Error("Expected second connection closed")
	}
}
