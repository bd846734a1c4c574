package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/slinggolf/backend/internal/game"
)

var rdbClient *redis.Client

func SetRedisClient(r *redis.Client) {
	rdbClient = r
}

// StartEventSubscriber relays round_events published by any server instance
// to the clients connected here.
func StartEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; round event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, game.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", game.EventsChannel)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				relayEvent(RoundHub, msg.Payload)
			}
		}
	}()
}

// relayEvent forwards one published payload to its round's room.
func relayEvent(h *Hub, payload string) {
	var envelope struct {
		Type    string `json:"type"`
		RoundID string `json:"round_id"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}
	if envelope.RoundID == "" {
		log.Printf("[WS] event %s without round_id dropped", envelope.Type)
		return
	}

	if h.RoomSize(envelope.RoundID) == 0 {
		return
	}
	switch envelope.Type {
	case "round_events", "round_abandoned":
		h.broadcastRaw(envelope.RoundID, []byte(payload))
	default:
		log.Printf("[WS] unknown event type: %s", envelope.Type)
	}
}
