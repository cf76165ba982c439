package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmynk/planboard/internal/auth"
	"github.com/mmynk/planboard/internal/config"
	"github.com/mmynk/planboard/internal/server"
	"github.com/mmynk/planboard/internal/service"
	"github.com/mmynk/planboard/internal/storage"
	"github.com/mmynk/planboard/internal/storage/sqlite"
	"github.com/mmynk/planboard/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)
	logger := slog.Default()
	logger.Info("Starting planboard")

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DatabasePath)

	authenticator := auth.NewPasswordAuthenticator(store, auth.NewLockout(store))
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	if err := bootstrapAdmin(context.Background(), store, authenticator, cfg, logger); err != nil {
		logger.Error("Failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	srv := server.New(server.Config{
		Port:   cfg.Port,
		Logger: logger,
		Auth:   service.NewAuthService(authenticator, jwtManager, store, logger),
		Plan:   service.NewPlanService(store, logger),
		JWT:    jwtManager,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("Server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// bootstrapAdmin creates the first admin account from the configured
// credentials when the user table is empty. Existing installs are left
// untouched.
func bootstrapAdmin(ctx context.Context, store storage.Store, authenticator auth.Authenticator, cfg *config.Config, logger *slog.Logger) error {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}

	if _, err := authenticator.Register(ctx, cfg.AdminUsername, cfg.AdminName, cfg.AdminPassword, true); err != nil {
		return err
	}
	logger.Info("Bootstrapped admin account", "username", cfg.AdminUsername)
	return nil
}
