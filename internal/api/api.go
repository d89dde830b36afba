// Package api implements the REST surface: the chat endpoint, the four
// content domains and the health probes.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimldept/deptbot-go/internal/agent"
	"github.com/aimldept/deptbot-go/internal/logger"
	"github.com/aimldept/deptbot-go/internal/metrics"
	"github.com/aimldept/deptbot-go/internal/ratelimit"
	"github.com/aimldept/deptbot-go/internal/search"
	"github.com/aimldept/deptbot-go/internal/storage"
)

// Handlers bundles the dependencies of the HTTP handlers.
type Handlers struct {
	chat           *agent.Service
	db             *storage.DB
	index          *search.Index
	sessionLimiter *ratelimit.KeyedLimiter
	metrics        *metrics.Metrics
	log            *logger.Logger
	started        time.Time
}

// NewHandlers creates the handler set. The search index, session limiter
// and metrics are optional.
func NewHandlers(chat *agent.Service, db *storage.DB, index *search.Index, sessionLimiter *ratelimit.KeyedLimiter, m *metrics.Metrics, log *logger.Logger) *Handlers {
	return &Handlers{
		chat:           chat,
		db:             db,
		index:          index,
		sessionLimiter: sessionLimiter,
		metrics:        m,
		log:            log.WithModule("api"),
		started:        time.Now(),
	}
}

// Register mounts all public routes on the router group.
func (h *Handlers) Register(r gin.IRouter) {
	r.POST("/api/ai/chat", h.HandleChat)

	r.GET("/api/faculty", h.ListFaculty)
	r.GET("/api/faculty/:id", h.GetFaculty)
	r.GET("/api/courses", h.ListCourses)
	r.GET("/api/courses/:id", h.GetCourse)
	r.GET("/api/calendar", h.ListCalendar)
	r.GET("/api/calendar/:year", h.GetCalendar)
	r.GET("/api/infrastructure", h.ListInfrastructure)
	r.GET("/api/infrastructure/:department", h.GetInfrastructure)

	r.GET("/health", h.Health)
}

func (h *Handlers) recordRead(domain, result string) {
	if h.metrics != nil {
		h.metrics.RecordContentRead(domain, result)
	}
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
