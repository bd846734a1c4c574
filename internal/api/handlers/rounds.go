package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/middleware"
)

// CreateRound starts a round on a level and hands back the token that
// authorises its WebSocket.
func CreateRound(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			LevelID    string `json:"level_id" binding:"required"`
			PlayerName string `json:"player_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level_id and player_name are required"})
			return
		}

		session, err := game.Manager.CreateRound(req.LevelID, req.PlayerName)
		if errors.Is(err, level.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Level not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token, err := middleware.IssueRoundToken(cfg.JWTSecret, session.ID, roundTokenTTL(cfg))
		if err != nil {
			log.Printf("[ROUND] Failed to sign token for %s: %v", session.ID, err)
			game.Manager.AbandonRound(session.ID, "token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("X-Round-ID", session.ID)
		c.JSON(http.StatusCreated, gin.H{
			"round_id": session.ID,
			"level_id": session.LevelID,
			"token":    token,
			"ws_path":  "/api/v1/rounds/" + session.ID + "/ws",
			"snapshot": session.Snapshot(),
		})
	}
}

// GetRound returns the latest snapshot of a round, live or finished
func GetRound() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		snap, err := game.Manager.GetSnapshot(id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
			return
		}

		status := ""
		if s, err := game.Manager.GetRound(id); err == nil {
			status = string(s.Status())
		}
		c.JSON(http.StatusOK, gin.H{"round_id": id, "status": status, "snapshot": snap})
	}
}

// AbandonRound lets the token holder give up a live round
func AbandonRound(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		claimed, err := middleware.ParseRoundToken(cfg.JWTSecret, roundToken(c))
		if err != nil || claimed != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid round token"})
			return
		}
		if !game.Manager.AbandonRound(id, "player") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GetPlayerResults lists a player's recent rounds
func GetPlayerResults() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		results, err := game.Manager.RecentResults(name, queryInt(c, "limit", 20, 100))
		if err != nil {
			log.Printf("[DB] Results for %q failed: %v", name, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Results unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player_name": name, "results": results})
	}
}
