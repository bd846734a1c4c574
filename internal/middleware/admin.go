package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/slinggolf/backend/internal/admin"
	"github.com/slinggolf/backend/internal/config"
)

const AdminTokenHeader = "X-Admin-Token"

// AdminAuth guards admin routes with the bcrypt-hashed ADMIN_TOKEN_HASH.
// Failed attempts are written to the audit log.
func AdminAuth(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminTokenHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
			return
		}

		token := strings.TrimSpace(c.GetHeader(AdminTokenHeader))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing admin token"})
			return
		}

		if !admin.VerifyAdminToken(cfg.AdminTokenHash, token) {
			log.Printf("[ADMIN] rejected token from %s on %s", c.ClientIP(), c.FullPath())
			admin.LogAdminAction(db, "unknown", c.ClientIP(), c.FullPath(), "auth", nil, false)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}

		actor := strings.TrimSpace(c.GetHeader("X-Admin-Actor"))
		if actor == "" {
			actor = "admin"
		}
		c.Set("admin_actor", actor)
		c.Next()
	}
}
