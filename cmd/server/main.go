package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/pp-platform/exercise-engine/internal/config"
	"github.com/pp-platform/exercise-engine/internal/events"
	"github.com/pp-platform/exercise-engine/internal/handlers"
	"github.com/pp-platform/exercise-engine/internal/repositories/postgres"
	"github.com/pp-platform/exercise-engine/internal/services"
	"github.com/pp-platform/exercise-engine/internal/store"
	"github.com/pp-platform/exercise-engine/internal/utils"
	"github.com/pp-platform/exercise-engine/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var slogger *slog.Logger
	if cfg.Environment == "production" {
		slogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		gin.SetMode(gin.ReleaseMode)
	} else {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	logger := utils.NewSlogLogger(slogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		slogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := postgres.Migrate(db); err != nil {
		slogger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	exerciseRepo := postgres.NewExercisePostgreSQL(db)

	// Sessions survive a restart only when Redis is reachable. Falling back
	// to the in-memory store keeps the service usable for local development.
	var snapshots store.SnapshotStore
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		slogger.Warn("Redis unavailable, using in-memory session store", "error", err)
		snapshots = store.NewMemoryStore()
	} else {
		defer redisClient.Close()
		snapshots = store.NewRedisStore(redisClient, logger)
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		slogger.Warn("Failed to create event publisher, using mock", "error", err)
		eventPublisher = events.NewMockEventPublisher(slogger)
	}
	defer eventPublisher.Close()

	validator := utils.NewValidator()
	validationService := services.NewValidationService(slogger, validator)
	exerciseService := services.NewExerciseService(exerciseRepo, validationService, eventPublisher, slogger)
	sessionService := services.NewSessionService(exerciseRepo, snapshots, eventPublisher, slogger, cfg.SessionTTL)
	exportService := services.NewExportService(slogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager := handlers.NewHandlerManager(exerciseService, sessionService, exportService, logger)
	handlerManager.SetupRoutes(router)

	slogger.Info("Starting exercise engine",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"events_enabled", cfg.Events.Enabled)

	if err := router.Run(":" + cfg.Port); err != nil {
		slogger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
