package main

import (
	"context"
	"io"
	"log/slog"
)

// shutdowner abstracts the telemetry providers so tests can verify cleanup
// order without a collector.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup builds the exit hook: close the store first so its final log
// lines are still exported, then flush telemetry under its own deadline.
func newCleanup(store io.Closer, telemetry shutdowner) func() {
	return func() {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			}
		}

		if telemetry != nil {
			ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down telemetry", slog.String("error", err.Error()))
			}
		}
	}
}
