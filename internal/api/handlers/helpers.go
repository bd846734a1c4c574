package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/config"
)

// queryInt reads a positive integer query parameter, clamped to max.
func queryInt(c *gin.Context, name string, def, max int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}

func roundTokenTTL(cfg *config.Config) time.Duration {
	if cfg.RoundTokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(cfg.RoundTokenTTLMinutes) * time.Minute
}

// roundToken reads the round token from the X-Round-Token header or ?token=.
func roundToken(c *gin.Context) string {
	if t := c.GetHeader("X-Round-Token"); t != "" {
		return t
	}
	return c.Query("token")
}
