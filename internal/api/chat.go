package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aimldept/deptbot-go/internal/agent"
	domerrors "github.com/aimldept/deptbot-go/internal/errors"
	"github.com/aimldept/deptbot-go/internal/sentry"
)

// ChatRequest is the POST /api/ai/chat body.
type ChatRequest struct {
	Message   string       `json:"message"`
	History   []agent.Turn `json:"history"`
	SessionID string       `json:"sessionId"`
}

// HandleChat answers one chat message. Provider failures are degraded
// inside the agent and never surface here; the only client errors are a
// missing message and a rate-limited session.
func (h *Handlers) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.ClientIP()
	}

	if h.sessionLimiter != nil && !h.sessionLimiter.Allow(sessionID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
		return
	}

	result, err := h.chat.Chat(c.Request.Context(), sessionID, req.Message, req.History)
	if err != nil {
		if errors.Is(err, domerrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		h.log.WithSession(sessionID).WithError(err).Error("Chat turn failed")
		sentry.CaptureException(c.Request.Context(), err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
