package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/catalog"
	"github.com/neo0222/ftf-backoffice/internal/config"
	"github.com/neo0222/ftf-backoffice/internal/database"
	"github.com/neo0222/ftf-backoffice/internal/database/memory"
	"github.com/neo0222/ftf-backoffice/internal/database/postgres"
	"github.com/neo0222/ftf-backoffice/internal/database/schema"
	"github.com/neo0222/ftf-backoffice/internal/handler"
	"github.com/neo0222/ftf-backoffice/internal/logger"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
	"github.com/neo0222/ftf-backoffice/internal/repository"
	"github.com/neo0222/ftf-backoffice/internal/server"
	"github.com/neo0222/ftf-backoffice/internal/stock"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Setup(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "ftf-backoffice",
		Environment: cfg.Environment,
	})
	slog.Info("Configuration loaded", "environment", cfg.Environment, "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		store  repository.Store
		pinger handler.Pinger
	)
	if cfg.IsDev() {
		slog.Info("Using in-memory store")
		m := memory.NewStore()
		store, pinger = m, m
	} else {
		pool, err := database.NewPool(cfg.GetDBConnString(),
			database.DefaultMaxConnections, database.DefaultMaxIdleTime, database.DefaultMaxLifetime)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := schema.Migrate(ctx, pool); err != nil {
			return err
		}
		p := postgres.NewStore(pool)
		store, pinger = p, p
	}

	foods := repository.NewFoods(store)
	reconciler := backref.NewReconciler(store)
	propagator := propagation.NewService(foods)
	stocks := stock.NewService(foods)
	catalogService := catalog.NewService(foods, reconciler, propagator, stocks)

	foodHandler := handler.NewFoodHandler(catalogService)
	stockHandler := handler.NewStockHandler(stocks)

	srv := server.NewServer(cfg.Port, pinger, foodHandler, stockHandler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}
	slog.Info("Server stopped")
	return nil
}
