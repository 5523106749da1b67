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

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	"github.com/rezkam/todos/internal/env"
	httpserver "github.com/rezkam/todos/internal/infrastructure/http"
	"github.com/rezkam/todos/internal/infrastructure/http/handler"
	"github.com/rezkam/todos/internal/infrastructure/observability"
)

// telemetryFlushTimeout bounds the final OTLP flush so an unreachable collector cannot hang exit.
const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be configured if config loading failed
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := env.LoadDotenv(); err != nil {
		return err
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	// Root context, cancelled on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	telemetry, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
		Protocol:    cfg.Observability.OTLPProtocol,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	slog.SetDefault(telemetry.Logger)

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		flushTelemetry(telemetry)
		return err
	}
	cleanup := newCleanup(store, telemetry)
	defer cleanup()

	slog.InfoContext(ctx, "storage initialized", "url", maskPassword(cfg.Database.URL))

	apiHandler, err := handler.NewRouter(todo.NewService(store))
	if err != nil {
		return fmt.Errorf("failed to create API router: %w", err)
	}

	server := httpserver.NewAPIServer(apiHandler, store, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		ServiceName:       cfg.Observability.ServiceName,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	slog.InfoContext(ctx, "todos service started", "addr", server.Addr())

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		// ctx is already cancelled; shutdown needs its own deadline.
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown incomplete", "error", err)
		}
		return nil
	case err := <-errResult:
		return err
	}
}

func flushTelemetry(t *observability.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	if err := t.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to shut down telemetry: %v\n", err)
	}
}
