package controllers

import (
	"net/http"
	"time"

	"github.com/spywithcode/ReStro/configs"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewHealthController(db *gorm.DB, cfg *configs.Config) *HealthController {
	return &HealthController{DB: db, Cfg: cfg}
}

// GET /health — store connectivity + config presence
func (hc *HealthController) Check(c *gin.Context) {
	connected := false
	if sqlDB, err := hc.DB.DB(); err == nil {
		if err := sqlDB.PingContext(c.Request.Context()); err == nil {
			connected = true
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !connected {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database": gin.H{
			"driver":    hc.Cfg.DBDriver,
			"connected": connected,
		},
		"services": gin.H{
			"authentication": configured(hc.Cfg.JWTSecret != "" && hc.Cfg.JWTSecret != "changeme"),
			"mail":           configured(hc.Cfg.SMTPHost != ""),
			"redisBridge":    configured(hc.Cfg.RedisAddr != ""),
		},
	})
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
