package main

import (
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/dongkyukim1/confession-backend/internal/apps"
	"github.com/dongkyukim1/confession-backend/internal/apps/achievements"
	"github.com/dongkyukim1/confession-backend/internal/apps/drafts"
	"github.com/dongkyukim1/confession-backend/internal/apps/entries"
	"github.com/dongkyukim1/confession-backend/internal/apps/missions"
	"github.com/dongkyukim1/confession-backend/internal/apps/streaks"
	"github.com/dongkyukim1/confession-backend/internal/cache"
	"github.com/dongkyukim1/confession-backend/internal/config"
	"github.com/dongkyukim1/confession-backend/internal/database"
	"github.com/dongkyukim1/confession-backend/internal/handlers"
	"github.com/dongkyukim1/confession-backend/internal/logging"
	"github.com/dongkyukim1/confession-backend/internal/match"
	"github.com/dongkyukim1/confession-backend/internal/metrics"
	"github.com/dongkyukim1/confession-backend/internal/middleware"
	"github.com/dongkyukim1/confession-backend/internal/ratelimit"
	"github.com/dongkyukim1/confession-backend/internal/routes"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.TokenSecret == "" {
		slog.Error("TOKEN_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// KV layer: Redis for drafts and rate-limit counters, memory
	// fallback when Redis is unreachable. Both consumers fail open or
	// degrade gracefully, so the server still comes up without it.
	var kv cache.KV
	redisKV, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		kv = cache.NewMemory()
	} else {
		kv = redisKV
	}

	limiter := ratelimit.New(kv)

	// Services
	achievementSvc := achievements.NewService(database.DB)
	streakSvc := streaks.NewService(database.DB, achievementSvc)
	missionSvc := missions.NewService(database.DB, achievementSvc,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	matcher := match.New(match.DefaultWeights,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	entrySvc := entries.NewService(database.DB, cfg, matcher, streakSvc, missionSvc, achievementSvc)
	streakSvc.SetHistorySource(entrySvc)

	draftStore := drafts.NewStore(kv, cfg.DraftTTL)

	// Feature plugins
	plugins := []apps.Plugin{
		entries.New(entrySvc, limiter),
		streaks.New(streakSvc),
		missions.New(missionSvc),
		achievements.New(achievementSvc),
		drafts.New(draftStore),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Seed achievement definitions
	if err := achievementSvc.Seed(); err != nil {
		slog.Error("achievement seed failed", "error", err)
		os.Exit(1)
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(kv)
	deviceHandler := handlers.NewDeviceHandler(database.DB, cfg)

	// Prometheus metrics
	metrics.Register()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, healthHandler, deviceHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if redisKV != nil {
		if err := redisKV.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "서버 오류가 발생했습니다."
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "서버 오류가 발생했습니다."
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
