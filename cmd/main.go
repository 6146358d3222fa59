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

	"github.com/Dosada05/fencing-tournament/config"
	"github.com/Dosada05/fencing-tournament/db"
	"github.com/Dosada05/fencing-tournament/handlers"
	"github.com/Dosada05/fencing-tournament/live"
	"github.com/Dosada05/fencing-tournament/repositories"
	api "github.com/Dosada05/fencing-tournament/routes"
	"github.com/Dosada05/fencing-tournament/services"
	"github.com/Dosada05/fencing-tournament/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
	logger.Info("application exited")
}

// run serves until ctx is cancelled or the server fails. Every resource it
// opens is released before it returns.
func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("driver", cfg.DatabaseDriver))

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := database.Migrate(); err != nil {
		return err
	}
	logger.Info("database ready")

	var uploader storage.FileUploader
	if cfg.StorageEnabled() {
		uploader, err = storage.NewR2Uploader(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("object storage not configured, player photo uploads are disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("live rankings hub started")

	tournamentRepo := repositories.NewTournamentRepository(database.SQL)
	eventRepo := repositories.NewEventRepository(database.SQL)
	stageRepo := repositories.NewKnockoutStageRepository(database.SQL)
	rankRepo := repositories.NewPlayerRankRepository(database.SQL)
	playerRepo := repositories.NewPlayerRepository(database.SQL)
	userRepo := repositories.NewUserRepository(database.SQL)
	transactor := repositories.NewTransactor(database.SQL)

	authService := services.NewAuthService(userRepo, []byte(cfg.JWTSecretKey), cfg.TokenTTL)
	userService := services.NewUserService(userRepo, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, logger)
	eventService := services.NewEventService(
		transactor,
		eventRepo,
		tournamentRepo,
		playerRepo,
		rankRepo,
		stageRepo,
		hub,
		logger,
	)
	stageService := services.NewKnockoutStageService(stageRepo, eventRepo, logger)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Tournament:    handlers.NewTournamentHandler(tournamentService),
		Event:         handlers.NewEventHandler(eventService),
		KnockoutStage: handlers.NewKnockoutStageHandler(stageService),
		Player:        handlers.NewPlayerHandler(playerService),
		User:          handlers.NewUserHandler(userService),
		WebSocket:     handlers.NewWebSocketHandler(hub, eventService),
	}, api.Options{
		Authenticator:  authService,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped")
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}
