package commands

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper enforces the session inactivity timeout: orders nobody has
// touched for the configured idle window are cancelled and their stock
// holds released.
type Sweeper struct {
	coordinator *TransactionCoordinator
	idleTimeout time.Duration
	interval    time.Duration
	logger      *slog.Logger
}

func NewSweeper(coordinator *TransactionCoordinator, idleTimeout, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		coordinator: coordinator,
		idleTimeout: idleTimeout,
		interval:    interval,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := s.coordinator.CancelIdle(s.idleTimeout)
			if err != nil {
				s.logger.Error("idle sweep failed", "error", err)
				continue
			}
			if swept > 0 {
				s.logger.Info("cancelled idle orders", "count", swept)
			}
		}
	}
}
