package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health is the public health endpoint consumed by the frontend.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Healthz is the liveness probe. It never checks dependencies, only that
// the process is serving.
func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready is the readiness probe: the content mirror must answer queries
// before traffic is routed here.
func (h *Handlers) Ready(c *gin.Context) {
	if err := h.db.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	counts, err := h.db.Counts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"uptime":   time.Since(h.started).Round(time.Second).String(),
		"content":  counts,
	})
}
