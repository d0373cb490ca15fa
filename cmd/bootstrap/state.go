package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"tillpoint/internal/infra/store"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/config"

	"go.uber.org/fx"
)

var StateModule = fx.Module("state",
	fx.Provide(
		NewState,
	),
)

// NewState opens the journal, loads the latest snapshot and replays the
// journal tail over it. Everything the process serves comes from the pair
// returned here.
func NewState(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*wal.Log, *store.Store, *inventory.Ledger, error) {
	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		return nil, nil, nil, err
	}

	log, err := wal.Open(filepath.Join(cfg.Store.DataDir, cfg.Store.WALFile))
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.New()
	ledger := inventory.NewLedger(st, log)

	snapPath := filepath.Join(cfg.Store.DataDir, cfg.Store.SnapshotFile)
	snap, ok, err := store.ReadSnapshot(snapPath)
	if err != nil {
		_ = log.Close()
		return nil, nil, nil, err
	}
	if ok {
		st.Import(snap)
		ledger.Restore(snap.Reservations)
		logger.Info("Snapshot loaded", "path", snapPath, "last_seq", snap.LastSeq)
	}

	replayed, err := store.Recover(st, ledger, log)
	if err != nil {
		_ = log.Close()
		return nil, nil, nil, err
	}
	logger.Info("Journal recovery complete", "replayed_records", replayed, "last_seq", log.LastSeq())

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return log.Close()
		},
	})

	return log, st, ledger, nil
}
