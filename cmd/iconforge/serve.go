// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

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

	"github.com/spf13/cobra"

	"iconforge/internal/cache"
	"iconforge/internal/config"
	"iconforge/internal/database"
	"iconforge/internal/handlers"
	"iconforge/internal/middleware"
	"iconforge/internal/router"
	"iconforge/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and serve the web client",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	// History is optional; without PostgreSQL the endpoints answer 404.
	var history handlers.HistoryStore
	if cfg.HistoryEnabled() {
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		history = store.NewGenerationStore(db)
		slog.Info("generation history enabled")
	}

	limiter, stop, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer stop()

	api := handlers.NewAPI(p.generator, p.registry, history, p.downloads(cfg.DownloadHosts), cfg.IsDev())
	r := router.New(api, router.Options{
		Limiter:    limiter,
		RetryAfter: cfg.RateWindow,
		ClientDir:  cfg.ClientDir,
	})

	// WriteTimeout must outlast a full generation: every image call may
	// take up to GenerationTimeout, plus publishing.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newLimiter picks the shared Valkey counter when VALKEY_HOST is set and
// the in-process sliding window otherwise. A RATE_LIMIT of 0 disables
// limiting. The returned stop func releases the limiter's resources.
func newLimiter(cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.RateLimit <= 0 {
		slog.Warn("rate limiting disabled")
		return nil, func() {}, nil
	}

	if cfg.SharedRateLimit() {
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to valkey: %w", err)
		}
		counter := cache.NewRateCounter(client, cfg.RateLimit, cfg.RateWindow)
		return counter, func() { client.Close() }, nil
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	return rl, rl.Stop, nil
}
