package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/golf"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/middleware"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testLevel() *level.Level {
	return &level.Level{
		ID:      "flat",
		Name:    "Flat",
		Par:     3,
		Balls:   3,
		Terrain: []level.Point{{X: 0, Y: 400}, {X: 600, Y: 400}},
		Hole:    level.Point{X: 560, Y: 400},
		Start:   level.Point{X: 100, Y: 380},
		Bounds:  level.Bounds{MaxX: 600, MaxY: 500},
	}
}

func newRoomClient(h *Hub, roundID string) *Client {
	c := &Client{hub: h, clientID: roundID + "-c", roundID: roundID, send: make(chan []byte, 4)}
	h.register <- c
	return c
}

func TestHubBroadcastToRound(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := newRoomClient(h, "round_a")
	b := newRoomClient(h, "round_b")

	h.BroadcastToRound("round_a", map[string]string{"type": "ping"})

	select {
	case msg := <-a.send:
		if !strings.Contains(string(msg), `"ping"`) {
			t.Errorf("unexpected message %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("client in round_a got nothing")
	}
	select {
	case msg := <-b.send:
		t.Errorf("client in round_b received %s", msg)
	default:
	}

	h.unregister <- a
	deadline := time.Now().Add(time.Second)
	for h.RoomSize("round_a") != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if h.RoomSize("round_a") != 0 {
		t.Error("room not removed after last client left")
	}
	if _, ok := <-a.send; ok {
		t.Error("send channel should be closed on unregister")
	}
}

func TestRelayEvent(t *testing.T) {
	h := NewHub()
	go h.Run()
	c := newRoomClient(h, "round_x")

	relayEvent(h, `not json`)
	relayEvent(h, `{"type":"round_events"}`)
	relayEvent(h, `{"type":"something_else","round_id":"round_x"}`)
	select {
	case msg := <-c.send:
		t.Fatalf("unexpected relay %s", msg)
	default:
	}

	payload := `{"type":"round_events","round_id":"round_x","events":[]}`
	relayEvent(h, payload)
	select {
	case msg := <-c.send:
		if string(msg) != payload {
			t.Errorf("relayed %s, want %s", msg, payload)
		}
	case <-time.After(time.Second):
		t.Fatal("event not relayed")
	}
}

type frame struct {
	Type    string         `json:"type"`
	RoundID string         `json:"round_id"`
	Message string         `json:"message"`
	State   *golf.Snapshot `json:"state"`
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(frame) bool) frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("bad frame %s: %v", data, err)
		}
		if match(f) {
			return f
		}
	}
}

func TestRoundWebSocket(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret, RoundIdleSeconds: 60, Tuning: golf.DefaultTuning()}
	m := game.NewRoundManager(context.Background(), nil, nil, cfg, level.NewCatalog([]*level.Level{testLevel()}))
	defer m.Shutdown()
	prev := game.Manager
	game.Manager = m
	defer func() { game.Manager = prev }()
	AttachManager(m)

	s, err := m.CreateRound("flat", "ada")
	if err != nil {
		t.Fatalf("CreateRound: %v", err)
	}

	r := gin.New()
	r.GET("/rounds/:id/ws", HandleWebSocket(cfg))
	srv := httptest.NewServer(r)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rounds/" + s.ID + "/ws"

	// wrong round in the token
	other, _ := middleware.IssueRoundToken(testSecret, "round_other", time.Minute)
	_, resp, err := websocket.DefaultDialer.Dial(base+"?token="+other, nil)
	if err == nil {
		t.Fatal("dial with another round's token succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", resp)
	}

	token, _ := middleware.IssueRoundToken(testSecret, s.ID, time.Minute)
	conn, _, err := websocket.DefaultDialer.Dial(base+"?token="+token, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readUntil(t, conn, func(f frame) bool { return f.Type == "round_state" })
	if first.State == nil || first.State.Phase != golf.PhasePlaying {
		t.Fatalf("first frame = %+v", first)
	}
	ball := first.State.Ball.Position

	conn.WriteJSON(map[string]interface{}{"type": "bogus"})
	errFrame := readUntil(t, conn, func(f frame) bool { return f.Type == "error" })
	if !strings.Contains(errFrame.Message, "unknown message type") {
		t.Errorf("error message = %q", errFrame.Message)
	}

	conn.WriteJSON(map[string]interface{}{"type": "begin_aim", "data": ball})
	aiming := readUntil(t, conn, func(f frame) bool {
		return f.Type == "round_state" && f.State != nil && f.State.Phase == golf.PhaseAiming
	})
	if aiming.RoundID != s.ID {
		t.Errorf("round_id = %s, want %s", aiming.RoundID, s.ID)
	}

	conn.WriteJSON(map[string]interface{}{"type": "end_aim"})
	readUntil(t, conn, func(f frame) bool {
		return f.Type == "round_state" && f.State != nil && f.State.Phase == golf.PhasePlaying
	})

	conn.WriteJSON(map[string]interface{}{"type": "end_aim"})
	rejected := readUntil(t, conn, func(f frame) bool { return f.Type == "error" })
	if rejected.Message != "aim rejected" {
		t.Errorf("error message = %q, want aim rejected", rejected.Message)
	}
}
