// internal/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store       Pinger
	subscribers func() int
	version     string
}

func NewHealthHandler(store Pinger, subscribers func() int, version string) *HealthHandler {
	return &HealthHandler{
		store:       store,
		subscribers: subscribers,
		version:     version,
	}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{
		"status":      "ok",
		"version":     h.version,
		"subscribers": h.subscribers(),
		"database":    "ok",
	}
	if err := h.store.Ping(ctx); err != nil {
		body["status"] = "degraded"
		body["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
