package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/ws"
)

// HandleRoundWebSocket handles real-time round communication
func HandleRoundWebSocket(cfg *config.Config) gin.HandlerFunc {
	return ws.HandleWebSocket(cfg)
}
