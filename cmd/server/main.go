package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasb/storyquest/internal/analytics"
	"github.com/lucasb/storyquest/internal/api"
	"github.com/lucasb/storyquest/internal/config"
	"github.com/lucasb/storyquest/internal/content"
	"github.com/lucasb/storyquest/internal/db"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/repository/sqlite"
	"github.com/lucasb/storyquest/internal/services"
	"github.com/lucasb/storyquest/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("StoryQuest Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("content_path=%s", cfg.ContentPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("max_attempts=%d", cfg.MaxAttempts)
	log.Debug("analytics_worker_count=%d", cfg.AnalyticsWorkers)
	log.Debug("analytics_queue_size=%d", cfg.AnalyticsQueueSize)
	log.Debug("stats_refresh_worker_count=%d", cfg.StatsRefreshWorkers)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	catalog, err := content.LoadFile(cfg.ContentPath)
	if err != nil {
		log.Error("failed to load content pack: %v", err)
		os.Exit(1)
	}
	log.Info("content pack loaded: %s (%d puzzles)", catalog.Title, catalog.PuzzleCount())

	// Repositories
	profileRepo := sqlite.NewProfileRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	badgeRepo := sqlite.NewBadgeRepository(database.DB)
	eventRepo := sqlite.NewEventRepository(database.DB)

	// Worker pools
	analyticsPool := worker.NewPool(cfg.AnalyticsWorkers, cfg.AnalyticsQueueSize)
	statsPool := worker.NewPool(cfg.StatsRefreshWorkers, 0)

	// Services
	recorder := analytics.NewRecorder(analyticsPool, eventRepo)
	profileService := services.NewProfileService(profileRepo)
	progressService := services.NewProgressService(progressRepo, catalog.StartScene)
	badgeService := services.NewBadgeService(badgeRepo, progressRepo)
	statsService := services.NewStatsService(profileRepo, progressRepo, badgeRepo, eventRepo)
	puzzleService := services.NewPuzzleService(services.PuzzleServiceDeps{
		Catalog:     catalog,
		Progress:    progressService,
		Badges:      badgeService,
		Recorder:    recorder,
		Pool:        statsPool,
		Stats:       statsService,
		MaxAttempts: cfg.MaxAttempts,
	})
	storyService := services.NewStoryService(catalog, progressService, puzzleService, recorder)

	srv := &api.Server{
		Profiles: profileService,
		Story:    storyService,
		Puzzles:  puzzleService,
		Progress: progressService,
		Badges:   badgeService,
		Stats:    statsService,
		DB:       database,
	}

	ctx, cancel := context.WithCancel(context.Background())
	analyticsPool.Start(ctx)
	statsPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pools")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	analyticsPool.Stop()
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("StoryQuest Server Stopped")
	log.Info("===========================================")
}
