package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail/internal/api/routes"
	"jobtrail/internal/background"
	"jobtrail/internal/calendar"
	"jobtrail/internal/config"
	"jobtrail/internal/llm"
	"jobtrail/internal/logging"
	"jobtrail/internal/mail"
	"jobtrail/internal/mailscan"
	"jobtrail/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.Info().Msg("Starting jobtrail")

	ctx := context.Background()

	// Database
	db, err := storage.NewDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	apps := storage.NewApplicationStore(db)
	events := storage.NewEventStore(db)

	// Redis: scan dedup cache and background task store
	redisClient, err := storage.NewRedisClient(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure Redis")
	}
	var cache mailscan.ScanCache
	var taskStore background.TaskStore
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Msg("Redis unreachable, scans will not dedup messages")
		taskStore = background.NewInMemoryTaskStore()
	} else {
		cache = storage.NewScanCache(redisClient)
		taskStore = background.NewRedisTaskStore(redisClient)
	}

	// Mail source
	mailSource, err := mail.NewGmailSource(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize Gmail source")
	}

	// Calendar sink
	var sink mailscan.CalendarSink = calendar.NoopSink{}
	if cfg.Calendar.Enabled {
		googleCal, err := calendar.NewGoogleCalendar(ctx, cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Calendar unavailable, interview scheduling disabled")
		} else {
			sink = googleCal
		}
	}

	// Chance scorer
	scorer := llm.NewScorer(cfg)

	// Scan pipeline
	scanner := mailscan.NewScanner(mailSource, apps, events, sink, scorer, cache, mailscan.ScannerOptions{
		MaxMessages:       cfg.Scan.MaxMessages,
		PerMessageTimeout: cfg.Scan.PerMessageTimeout,
		MinEmailYear:      cfg.Scan.MinEmailYear,
		FetchesPerSecond:  cfg.Scan.FetchesPerSecond,
	})

	// Background task manager
	taskManager := background.NewManager(taskStore, 10, 5*time.Minute)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, scanner, apps, taskManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logging.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := taskManager.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error stopping task manager")
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down server")
		}

		if err := redisClient.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing Redis client")
		}

		logging.Info().Msg("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logging.Info().Str("address", address).Msg("Server starting")

	if err := e.Start(address); err != nil {
		logging.Fatal().Err(err).Msg("Server failed to start")
	}
}
