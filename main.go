// Package main is the entry point for the expense tracker API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/yelinaung/expense-api/internal/auth"
	"gitlab.com/yelinaung/expense-api/internal/config"
	"gitlab.com/yelinaung/expense-api/internal/database"
	"gitlab.com/yelinaung/expense-api/internal/gemini"
	"gitlab.com/yelinaung/expense-api/internal/logger"
	"gitlab.com/yelinaung/expense-api/internal/repository"
	"gitlab.com/yelinaung/expense-api/internal/server"
	"gitlab.com/yelinaung/expense-api/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("expense-api %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Configure(cfg.LogLevel, cfg.LogFormat)
	logger.InitHashSalt()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Options{
		Exporter:    cfg.OTelExporter,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.SeedCategories(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed categories")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	deps := server.Deps{
		Users:    repository.NewUserRepository(pool),
		Expenses: repository.NewExpenseRepository(pool),
		Budgets:  repository.NewBudgetRepository(pool),
		Tokens:   auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		DB:       pool,
	}

	if cfg.GeminiEnabled() {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Gemini unavailable, category suggestions disabled")
		} else {
			deps.Suggester = gemini.NewCachedSuggester(client, cfg.SuggestTTL)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	api := server.New(deps, server.Options{
		AllowOrigin: cfg.AllowsOrigin,
		ServiceName: cfg.ServiceName,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("version", version).
			Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info().Msg("Shutting down...")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Telemetry shutdown failed")
	}
}
