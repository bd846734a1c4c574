package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/slinggolf/backend/internal/api/handlers"
	"github.com/slinggolf/backend/internal/config"
	"github.com/slinggolf/backend/internal/level"
	"github.com/slinggolf/backend/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, levels level.Source, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/config", handlers.GetConfig())

		lv := v1.Group("/levels")
		{
			lv.GET("", handlers.ListLevels(levels))
			lv.GET("/:id", handlers.GetLevel(levels))
			lv.GET("/:id/leaderboard", handlers.GetLeaderboard())
		}

		rounds := v1.Group("/rounds")
		{
			rounds.POST("", handlers.CreateRound(cfg))
			rounds.GET("/:id", handlers.GetRound())
			rounds.DELETE("/:id", handlers.AbandonRound(cfg))
			rounds.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleRoundWebSocket(cfg))
		}

		v1.GET("/players/:name/results", handlers.GetPlayerResults())

		adm := v1.Group("/admin", middleware.AdminAuth(db, cfg))
		{
			adm.GET("/tuning", handlers.GetAdminTuning(db))
			adm.PUT("/tuning/:key", handlers.UpdateAdminTuning(db))
			adm.GET("/audit", handlers.GetAdminAuditLogs(db))
		}
	}
}
