package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aimldept/deptbot-go/internal/api"
	"github.com/aimldept/deptbot-go/internal/config"
)

// setupRoutes configures all HTTP routes.
func setupRoutes(router *gin.Engine, handlers *api.Handlers, registry *prometheus.Registry, cfg *config.Config) {
	// Public API surface, including GET /health for the frontend.
	handlers.Register(router)

	// Liveness probe: process is up, nothing more.
	router.GET("/healthz", handlers.Healthz)
	router.HEAD("/healthz", handlers.Healthz)

	// Readiness probe: content mirror must answer queries.
	router.GET("/ready", handlers.Ready)
	router.HEAD("/ready", handlers.Ready)

	// Prometheus metrics, behind basic auth when a password is set.
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})),
	)
}
