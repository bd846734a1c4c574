package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are checked by middleware.WebSocketCORSCheck
	},
}

// Client is one WebSocket connection watching (and possibly driving) a round.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	clientID string
	roundID  string
	send     chan []byte
}

// Hub maintains the set of active clients, grouped by round.
type Hub struct {
	rooms      map[string]map[*Client]bool // roundID -> clients
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			room, exists := h.rooms[client.roundID]
			if !exists {
				room = make(map[*Client]bool)
				h.rooms[client.roundID] = room
			}
			room[client] = true
			size := len(room)
			h.mu.Unlock()
			log.Printf("[WS] Client %s joined round %s (room_size=%d)", client.clientID, client.roundID, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.roundID]; exists && room[client] {
				delete(room, client)
				close(client.send)
				if len(room) == 0 {
					delete(h.rooms, client.roundID)
				}
				log.Printf("[WS] Client %s left round %s", client.clientID, client.roundID)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRound sends a message to every client in a round
func (h *Hub) BroadcastToRound(roundID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	h.broadcastRaw(roundID, data)
}

func (h *Hub) broadcastRaw(roundID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roundID] {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Client %s send buffer full in round %s, dropping message", client.clientID, roundID)
		}
	}
}

// RoomSize returns how many clients are watching roundID.
func (h *Hub) RoomSize(roundID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roundID])
}

// WSMessage is the client -> server envelope.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for client %s: %v", c.clientID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for client %s: %v", c.clientID, err)
				return
			}
		}
	}
}

// sendJSON queues a message for this client only
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Client %s send buffer full, dropping reply", c.clientID)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
