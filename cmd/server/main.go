package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/httpserver"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/metrics"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/adapter/websocket"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/broadcast"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/generator"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/config"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/logging"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/platform/version"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/workspace"
)

func runGracefulShutdown(srv *httpserver.Server, broadcaster *broadcast.Broadcaster) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		// Closes every live subscription with a normal closure frame
		broadcaster.Stop()

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func healthChecks(broadcaster *broadcast.Broadcaster) []httpserver.HealthCheck {
	return []httpserver.HealthCheck{
		{
			Name: "catalog",
			Check: func(_ context.Context) error {
				if broadcaster.Snapshot() == nil {
					return errors.New("catalog snapshot not loaded")
				}
				return nil
			},
		},
		{
			Name: "broadcaster",
			Check: func(_ context.Context) error {
				if broadcaster.SubscriberCount() < 0 {
					return broadcast.ErrStopped
				}
				return nil
			},
		},
	}
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "addr", cfg.Addr(), "version", version.Version)

	registry := metrics.NewRegistry()

	catalog := generator.Generate(cfg.CatalogSize, clock.Now())
	slog.Info("Catalog generated", "suppliers", len(catalog))

	broadcaster := broadcast.NewBroadcaster(catalog, clock,
		broadcast.WithTickInterval(cfg.TickInterval),
		broadcast.WithMaxSubscribers(cfg.MaxSubscribers),
		broadcast.WithMetrics(metrics.NewBroadcasterMetrics(registry)),
	)

	store := workspace.New(clock)

	wsHandler := websocket.NewHandler(
		broadcaster,
		clock,
		websocket.NewCheckOrigin(cfg.CORSOrigin, cfg.IsDevelopment()),
		metrics.NewWebSocketMetrics(registry),
	)

	srv := httpserver.NewServer(cfg, clock, broadcaster, store, wsHandler.Serve, registry, healthChecks(broadcaster))

	done := runGracefulShutdown(srv, broadcaster)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
