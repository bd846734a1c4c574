package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/level"
)

// ListLevels returns the level catalogue in play order
func ListLevels(src level.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		levels, err := src.List()
		if err != nil {
			log.Printf("[LEVEL] Failed to list levels: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch levels"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"levels": levels})
	}
}

// GetLevel returns the full definition of one level
func GetLevel(src level.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		lvl, err := src.Get(c.Param("id"))
		if errors.Is(err, level.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Level not found"})
			return
		}
		if err != nil {
			log.Printf("[LEVEL] Failed to fetch level %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch level"})
			return
		}
		c.JSON(http.StatusOK, lvl)
	}
}

// GetLeaderboard returns the best completed rounds on a level
func GetLeaderboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		levelID := c.Param("id")
		limit := queryInt(c, "limit", 20, 100)

		entries, err := game.Manager.Leaderboard(levelID, limit)
		if err != nil {
			log.Printf("[DB] Leaderboard for %s failed: %v", levelID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Leaderboard unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"level_id": levelID, "entries": entries})
	}
}
