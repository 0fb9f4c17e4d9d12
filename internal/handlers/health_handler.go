package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Pinger is an optional dependency probed by the health check.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	db     *gorm.DB
	probes map[string]Pinger
}

func NewHealthHandler(db *gorm.DB, probes map[string]Pinger) *HealthHandler {
	return &HealthHandler{db: db, probes: probes}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = "down"
	} else {
		checks["database"] = "up"
	}

	for name, ping := range h.probes {
		if err := ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = "down"
			continue
		}
		checks[name] = "up"
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
