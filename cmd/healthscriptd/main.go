package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthscript/healthscript-backend/internal/api"
	"github.com/healthscript/healthscript-backend/internal/app"
	"github.com/healthscript/healthscript-backend/internal/auth"
	"github.com/healthscript/healthscript-backend/internal/store"
)

func main() {
	if err := app.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(2)
	}
	cfg := app.LoadConfigFromEnv()
	logger := app.NewLogger(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	build := app.CurrentBuild()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Error("open repository failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if cfg.SeedDemoData {
		if err := seed(ctx, repo); err != nil {
			logger.Error("seed demo data failed", "error", err)
			os.Exit(1)
		}
		logger.Info("demo data ready", "email", store.DemoEmail)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(cfg, logger, repo).Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		logger.Info(
			"healthscript-backend starting",
			"addr", cfg.HTTPAddr,
			"environment", cfg.Environment,
			"database", cfg.DatabaseDriver,
			"build", build,
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openRepository(ctx context.Context, cfg app.Config) (store.Repository, error) {
	if cfg.DatabaseDriver == "memory" {
		return store.NewMemory(), nil
	}
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return store.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseURL)
}

func seed(ctx context.Context, repo store.Repository) error {
	hash, err := auth.HashPassword(store.DemoPassword)
	if err != nil {
		return err
	}
	return store.SeedDemoData(ctx, repo, hash, time.Now())
}
