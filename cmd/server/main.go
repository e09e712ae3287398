// Package main is the entry point for the stock ledger API server.
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

	"stockledger/internal/config"
	v1 "stockledger/internal/infrastructure/http/v1"
	"stockledger/internal/infrastructure/storage"
	"stockledger/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: !cfg.Server.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Errorw("server exited with error", "error", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled or the listener fails.
// The record store is closed before it returns.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	log.Infow("starting stock ledger server", "env", cfg.Server.Env, "store", cfg.Store.Driver)

	// --- Record store ---
	store, err := storage.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	// --- Router ---
	threshold := cfg.Reports.LowStockThreshold
	handler := v1.NewHandler(v1.RouterConfig{
		Repo:              store.Repo,
		Ping:              store.Ping,
		StoreDriver:       cfg.Store.Driver,
		Logger:            log,
		Production:        cfg.Server.IsProduction(),
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		StaticDir:         cfg.Server.StaticDir,
		LowStockThreshold: &threshold,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	// --- Graceful shutdown ---
	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
