package store

import (
	"context"
	"log/slog"
	"time"

	"tillpoint/internal/inventory"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/pkg/clock"
)

// Quiescer pauses command processing while a snapshot is taken, so the
// exported state matches the journal position exactly.
type Quiescer interface {
	Quiesce(fn func() error) error
}

// Snapshotter periodically persists the full in-memory state and compacts
// the journal up to the snapshot position. The whole save runs quiesced;
// a single-terminal workload never produces state large enough for the
// pause to be noticeable.
type Snapshotter struct {
	st       *Store
	ledger   *inventory.Ledger
	log      *wal.Log
	quiescer Quiescer
	path     string
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

func NewSnapshotter(
	st *Store,
	ledger *inventory.Ledger,
	log *wal.Log,
	quiescer Quiescer,
	path string,
	interval time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *Snapshotter {
	return &Snapshotter{
		st:       st,
		ledger:   ledger,
		log:      log,
		quiescer: quiescer,
		path:     path,
		interval: interval,
		clock:    clk,
		logger:   logger,
	}
}

func (s *Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Save(); err != nil {
				s.logger.Error("Periodic snapshot failed", "error", err)
			}
		}
	}
}

// Save writes a snapshot and drops journal records it covers. A compaction
// failure is logged but not fatal: the snapshot is already durable and the
// extra records replay as no-ops.
func (s *Snapshotter) Save() error {
	return s.quiescer.Quiesce(func() error {
		lastSeq := s.log.LastSeq()
		snap := s.st.Export(lastSeq, s.ledger.Snapshot(), s.clock.Now())
		if err := WriteSnapshot(s.path, snap); err != nil {
			return err
		}
		if err := s.log.Compact(lastSeq); err != nil {
			s.logger.Warn("Journal compaction failed", "error", err, "last_seq", lastSeq)
			return nil
		}
		s.logger.Info("Snapshot saved", "last_seq", lastSeq, "path", s.path)
		return nil
	})
}
