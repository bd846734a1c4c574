package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/slinggolf/backend/internal/config"
)

// devOrigins are accepted in development on top of FRONTEND_URL.
var devOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"http://localhost:8080",
}

// AllowedOrigins lists the browser origins permitted for cfg's environment.
func AllowedOrigins(cfg *config.Config) []string {
	var origins []string
	if cfg.Environment == "development" {
		origins = append(origins, devOrigins...)
	}
	if cfg.FrontendURL != "" {
		origins = append(origins, strings.TrimRight(cfg.FrontendURL, "/"))
	}
	return origins
}

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	origins := AllowedOrigins(cfg)
	log.Printf("[CORS] Environment: %s, allowed origins: %v", cfg.Environment, origins)

	corsConfig := cors.Config{
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"X-Admin-Token", "X-Admin-Actor", "X-Round-Token", "Accept",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders: []string{
			"Content-Length", "X-Round-ID",
		},
		MaxAge: 12 * time.Hour,
	}

	if len(origins) == 0 {
		// No frontend configured: the API is only reachable from same-origin pages and tools.
		corsConfig.AllowOrigins = []string{"http://localhost"}
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowCredentials = true

	return cors.New(corsConfig)
}

// OriginAllowed reports whether a WebSocket upgrade from origin may proceed.
func OriginAllowed(cfg *config.Config, origin string) bool {
	if cfg.Environment == "development" {
		if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
			return true
		}
	}
	for _, allowed := range AllowedOrigins(cfg) {
		if origin == allowed {
			return true
		}
	}
	return false
}

// WebSocketCORSCheck validates WebSocket upgrade origins
func WebSocketCORSCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.ToLower(c.GetHeader("Connection")) != "upgrade" ||
			strings.ToLower(c.GetHeader("Upgrade")) != "websocket" {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			// Native clients send no Origin; the round token still gates the socket.
			c.Next()
			return
		}

		if !OriginAllowed(cfg, origin) {
			log.Printf("[WS] rejected upgrade from origin %s", origin)
			c.JSON(403, gin.H{"error": "WebSocket origin not allowed"})
			c.Abort()
			return
		}

		c.Next()
	}
}
