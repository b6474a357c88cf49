package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatboard/api/routes"
	"seatboard/internal/seats"
	"seatboard/internal/shared/config"
	"seatboard/internal/shared/database"
	"seatboard/internal/shared/middleware"
	"seatboard/pkg/logger"
	"seatboard/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Connect the configured backend
	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Build the seat repository for the configured backend
	repo, err := buildRepository(cfg, db)
	if err != nil {
		appLogger.Error("failed to initialize seat repository", slog.Any("error", err))
		os.Exit(1)
	}

	// Seat store: initial load plus snapshot feed where the backend
	// supports one. A failed initial load degrades to an empty set
	// rather than refusing to start.
	store := seats.NewStore(repo, cfg.Store.NearExitWindowDays)
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.Start(startCtx); err != nil {
		appLogger.LogBackendDegraded(cfg.Store.Backend, err)
	}
	startCancel()
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			appLogger.Error("Error closing seat store", slog.Any("error", err))
		}
	}()

	editor := seats.NewEditor(store)

	// Rate limiter needs Redis; without it requests pass unchecked
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedisClient() != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			WriteRequests:   cfg.RateLimit.WriteRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Setup router
	router := setupRouter(cfg, db, store, editor, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("store_backend", cfg.Store.Backend),
			slog.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func buildRepository(cfg *config.Config, db *database.DB) (seats.Repository, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return seats.NewRedisRepository(db.GetRedisClient()), nil
	case config.BackendMongo:
		return seats.NewMongoRepository(db.GetMongoDatabase()), nil
	case config.BackendPostgres:
		return seats.NewPostgresRepository(db.GetPostgreSQL(), cfg.Store.RefreshInterval)
	case config.BackendFile:
		return seats.NewFileRepository(cfg.Store.SnapshotPath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func setupRouter(cfg *config.Config, db *database.DB, store seats.Store, editor *seats.Editor, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: request ids, request logging, panic recovery
	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, db, store, editor)
	appRouter.SetupRoutes(engine)

	return engine
}
