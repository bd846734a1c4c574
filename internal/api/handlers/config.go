package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/game"
	"github.com/slinggolf/backend/internal/golf"
)

// GetConfig returns the values a client needs to mirror the simulation:
// fixed step, aim limits and the active tuning.
func GetConfig() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := game.Manager.Tuning()
		c.JSON(http.StatusOK, gin.H{
			"tick_rate":     game.TickRate,
			"preview_steps": game.PreviewSteps,
			"ball_radius":   golf.BallRadius,
			"tuning":        t,
		})
	}
}
