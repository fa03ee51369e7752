package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lchou/hoopstats/config"
	"github.com/lchou/hoopstats/handlers"
	"github.com/lchou/hoopstats/repositories"
	api "github.com/lchou/hoopstats/routes"
	"github.com/lchou/hoopstats/services"
	"github.com/lchou/hoopstats/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("data_dir", cfg.DataDir))

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data directory", slog.Any("error", err))
		os.Exit(1)
	}

	// Flat-file stores; opening backfills missing columns from older
	// file revisions.
	recordRepo, err := repositories.NewCSVRecordRepository(cfg.RecordFilePath)
	if err != nil {
		logger.Error("failed to open record store", slog.Any("error", err))
		os.Exit(1)
	}
	playerRepo, err := repositories.NewCSVPlayerRepository(cfg.RosterFilePath)
	if err != nil {
		logger.Error("failed to open roster store", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("stores opened",
		slog.String("records", cfg.RecordFilePath),
		slog.String("roster", cfg.RosterFilePath),
	)

	var photoStore storage.PhotoStore
	switch cfg.PhotoBackend {
	case "r2":
		photoStore, err = storage.NewCloudflareR2PhotoStore(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
	default:
		photoStore, err = storage.NewLocalPhotoStore(cfg.PhotoDir)
	}
	if err != nil {
		logger.Error("failed to initialize photo store", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("photo store initialized", slog.String("backend", cfg.PhotoBackend))

	recordService := services.NewRecordService(recordRepo, playerRepo)
	playerService := services.NewPlayerService(playerRepo, photoStore)
	statsService := services.NewStatsService(recordRepo, playerRepo, photoStore)
	logger.Info("services initialized")

	recordHandler := handlers.NewRecordHandler(recordService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	statsHandler := handlers.NewStatsHandler(statsService)

	router := chi.NewRouter()
	api.SetupRoutes(router, logger, recordHandler, playerHandler, statsHandler)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
