// Command seed creates the first ADMIN account, or promotes an existing user
// and resets its password.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dosada05/fencing-tournament/config"
	"github.com/Dosada05/fencing-tournament/db"
	"github.com/Dosada05/fencing-tournament/repositories"
	"github.com/Dosada05/fencing-tournament/services"
)

type adminAccount struct {
	username string
	password string
	email    string
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var account adminAccount
	flag.StringVar(&account.username, "username", os.Getenv("ADMIN_USERNAME"), "admin username (ADMIN_USERNAME)")
	flag.StringVar(&account.password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password (ADMIN_PASSWORD)")
	flag.StringVar(&account.email, "email", os.Getenv("ADMIN_EMAIL"), "admin email (ADMIN_EMAIL)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, logger, account); err != nil {
		logger.Error("seed failed", slog.Any("error", err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, account adminAccount) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()

	if err := database.Migrate(); err != nil {
		return err
	}

	userService := services.NewUserService(repositories.NewUserRepository(database.SQL), logger)

	user, created, err := userService.EnsureAdmin(ctx, account.username, account.password, account.email)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		logger.Info("admin created", slog.Int("user_id", user.ID), slog.String("username", user.Username))
	} else {
		logger.Info("admin promoted", slog.Int("user_id", user.ID), slog.String("username", user.Username))
	}
	return nil
}
