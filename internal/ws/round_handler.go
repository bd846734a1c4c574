package ws

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/golf"
	"github.com/slinggolf/backend/internal/middleware"
)

// RoundHub is the single hub for all rounds.
var RoundHub *Hub

func init() {
	RoundHub = NewHub()
	go RoundHub.Run()
}

// AttachManager routes the manager's round_state frames (and, without Redis,
// its events) through RoundHub.
func AttachManager(m *game.RoundManager) {
	m.SetBroadcaster(RoundHub.BroadcastToRound)
}

func newClientID() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func stateMessage(roundID string, snap golf.Snapshot, preview []golf.Vec2) map[string]interface{} {
	msg := map[string]interface{}{
		"type":     "round_state",
		"round_id": roundID,
		"state":    snap,
	}
	if len(preview) > 0 {
		msg["preview"] = preview
	}
	return msg
}

// HandleWebSocket upgrades GET /rounds/:id/ws?token=... for the holder of a
// round token.
func HandleWebSocket(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		roundID := c.Param("id")
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}

		claimed, err := middleware.ParseRoundToken(cfg.JWTSecret, token)
		if err != nil || claimed != roundID {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid round token"})
			return
		}

		if game.Manager == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rounds unavailable"})
			return
		}
		session, err := game.Manager.GetRound(roundID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:      RoundHub,
			conn:     conn,
			clientID: newClientID(),
			roundID:  roundID,
			send:     make(chan []byte, sendBuffer),
		}
		client.hub.register <- client
		client.sendJSON(stateMessage(roundID, session.Snapshot(), nil))
		game.Manager.Touch(roundID)

		go client.writePump()
		go client.readPump()
	}
}

// readPump reads player input until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error for client %s: %v", c.clientID, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	session, err := game.Manager.GetRound(c.roundID)
	if err != nil {
		c.sendError("round is over")
		return
	}

	var u game.Update
	switch msg.Type {
	case "begin_aim", "update_aim":
		var p golf.Vec2
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			c.sendError("invalid point")
			return
		}
		if msg.Type == "begin_aim" {
			u, err = session.BeginAim(p)
		} else {
			u, err = session.UpdateAim(p)
		}
	case "end_aim":
		u, err = session.EndAim()
	case "get_state":
		c.sendJSON(stateMessage(c.roundID, session.Snapshot(), nil))
		return
	default:
		c.sendError("unknown message type: " + msg.Type)
		return
	}

	switch {
	case errors.Is(err, game.ErrAimRejected):
		c.sendError("aim rejected")
		return
	case errors.Is(err, game.ErrRoundOver):
		c.sendError("round is over")
		return
	case err != nil:
		c.sendError(err.Error())
		return
	}

	game.Manager.Touch(c.roundID)
	c.sendJSON(stateMessage(c.roundID, u.State, u.Preview))
}
