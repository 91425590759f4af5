// Package app hosts the process lifecycle runner shared by entrypoints.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightbolt/backend/internal/log"
)

type Runner func(ctx context.Context) error

// Run executes the given runner under a signal-aware context and returns the
// process exit code. SIGINT/SIGTERM cancel the context; the runner is expected
// to drain and return.
func Run(serviceName string, run Runner) int {
	logger := log.WithComponent("app")
	logger.Info().Str("name", serviceName).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx) }()

	select {
	case <-ctx.Done():
		logger.Info().Str("name", serviceName).Msg("shutting down")
		select {
		case err := <-errCh:
			if err != nil {
				logger.Error().Err(err).Str("name", serviceName).Msg("shutdown failed")
				return 1
			}
		case <-time.After(15 * time.Second):
			logger.Error().Str("name", serviceName).Msg("shutdown timed out")
			return 1
		}
		return 0
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Str("name", serviceName).Msg("failed")
			return 1
		}
		logger.Info().Str("name", serviceName).Msg("stopped")
		return 0
	}
}
