package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aimldept/deptbot-go/internal/agent"
	"github.com/aimldept/deptbot-go/internal/api"
	"github.com/aimldept/deptbot-go/internal/archive"
	"github.com/aimldept/deptbot-go/internal/buildinfo"
	"github.com/aimldept/deptbot-go/internal/config"
	"github.com/aimldept/deptbot-go/internal/content"
	"github.com/aimldept/deptbot-go/internal/llm"
	"github.com/aimldept/deptbot-go/internal/logger"
	"github.com/aimldept/deptbot-go/internal/metrics"
	"github.com/aimldept/deptbot-go/internal/ratelimit"
	"github.com/aimldept/deptbot-go/internal/search"
	"github.com/aimldept/deptbot-go/internal/seed"
	"github.com/aimldept/deptbot-go/internal/sentry"
	"github.com/aimldept/deptbot-go/internal/storage"
)

func main() {
	// Load configuration. A missing completion API key is fatal here.
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{
		Level:               cfg.LogLevel,
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting AIML department server")

	// Error tracking is optional; an empty token disables it.
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.Environment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking initialized")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the content fixtures into the immutable snapshot the agent
	// reads on every request.
	snap, err := content.Load(cfg.FixturesDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to load content fixtures")
	}
	log.WithFields(map[string]any{
		"faculty": len(snap.Faculty),
		"courses": len(snap.Courses),
	}).Info("Content fixtures loaded")

	// Mirror the snapshot into SQLite for the REST endpoints' filtering.
	db, err := storage.New(ctx, cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open content store")
	}
	log.WithField("path", cfg.SQLitePath()).Info("Content store opened")

	if _, err := seed.Run(ctx, db, snap, log); err != nil {
		log.WithError(err).Fatal("Failed to seed content store")
	}

	// Prometheus registry with runtime collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	// BM25 index backing the search query parameter.
	index, err := search.NewIndex(snap, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build search index")
	}

	// Completion chain: Gemini models first, Groq models as fallback.
	chain, err := llm.NewChainFromConfig(ctx, llm.Config{
		GeminiAPIKey: cfg.GeminiAPIKey,
		GroqAPIKey:   cfg.GroqAPIKey,
		GeminiModels: cfg.GeminiModels,
		GroqModels:   cfg.GroqModels,
	}, m, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create completion chain")
	}
	defer func() { _ = chain.Close() }()

	// Transcript archival is optional and requires full S3 configuration.
	var sink agent.TranscriptSink
	if cfg.ArchiveEnabled() {
		archiver, err := archive.New(ctx, archive.Config{
			Endpoint:    cfg.ArchiveEndpoint,
			AccessKeyID: cfg.ArchiveAccessKey,
			SecretKey:   cfg.ArchiveSecretKey,
			Bucket:      cfg.ArchiveBucket,
			Prefix:      cfg.ArchivePrefix,
		}, log)
		if err != nil {
			log.WithError(err).Warn("Failed to create transcript archiver, archival disabled")
		} else {
			sink = archiver
			log.WithField("bucket", cfg.ArchiveBucket).Info("Transcript archival enabled")
		}
	}

	chatService, err := agent.NewService(agent.ServiceOptions{
		Snapshot:  snap,
		Completer: chain,
		Sink:      sink,
		Metrics:   m,
		Timeout:   cfg.LLMTimeout,
		Logger:    log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create chat service")
	}

	sessionLimiter := ratelimit.NewKeyedLimiter(
		cfg.SessionRateBurst,
		cfg.SessionRateRefill,
		10*time.Minute,
		m,
	)
	globalLimiter := ratelimit.NewLimiter(cfg.GlobalRateRPS, cfg.GlobalRateRPS)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(globalRateLimitMiddleware(globalLimiter, m))

	handlers := api.NewHandlers(chatService, db, index, sessionLimiter, m, log)
	setupRoutes(router, handlers, registry, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.LLMTimeout + 10*time.Second, // chat responses wait on the provider
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close content store")
	}

	log.Info("Server stopped")
}
