package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/slinggolf/backend/internal/admin"
	"github.com/slinggolf/backend/internal/game"
)

// GetAdminTuning returns the live tuning plus any stored overrides
func GetAdminTuning(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{
			"tuning": game.Manager.Tuning(),
			"keys":   admin.TuningKeys(),
		}
		if db != nil {
			configs, err := admin.GetAllRuntimeConfig(db)
			if err != nil {
				log.Printf("[ADMIN] Failed to fetch runtime config: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch config"})
				return
			}
			resp["overrides"] = configs
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateAdminTuning overrides one tuning value. Rounds created afterwards use
// the new value; live rounds keep the tuning they started with.
func UpdateAdminTuning(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetString("admin_actor")
		key := c.Param("key")
		route := "/api/v1/admin/tuning/" + key

		var req struct {
			Value string `json:"value" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Value is required"})
			return
		}
		details := map[string]interface{}{"key": key, "value": req.Value}

		tuning := game.Manager.Tuning()
		if err := admin.SetTuningValue(&tuning, key, req.Value); err != nil {
			admin.LogAdminAction(db, actor, c.ClientIP(), route, "update_tuning", details, false)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if db != nil {
			if err := admin.UpdateTuningValue(db, key, req.Value, actor); err != nil {
				log.Printf("[ADMIN] Failed to store tuning %s: %v", key, err)
				admin.LogAdminAction(db, actor, c.ClientIP(), route, "update_tuning", details, false)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store tuning"})
				return
			}
		}

		game.Manager.SetTuning(tuning)
		log.Printf("[ADMIN] %s set tuning %s=%s", actor, key, req.Value)
		admin.LogAdminAction(db, actor, c.ClientIP(), route, "update_tuning", details, true)
		c.JSON(http.StatusOK, gin.H{"ok": true, "tuning": tuning})
	}
}
