package bootstrap

import (
	"log/slog"
	"path/filepath"

	"tillpoint/internal/infra/store"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/clock"
	"tillpoint/internal/pkg/config"

	"go.uber.org/fx"
)

var SnapshotModule = fx.Module("snapshot",
	fx.Provide(
		NewSnapshotter,
	),
)

func NewSnapshotter(
	st *store.Store,
	ledger *inventory.Ledger,
	log *wal.Log,
	quiescer store.Quiescer,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *store.Snapshotter {
	return store.NewSnapshotter(
		st,
		ledger,
		log,
		quiescer,
		filepath.Join(cfg.Store.DataDir, cfg.Store.SnapshotFile),
		cfg.Store.SnapshotInterval,
		clk,
		logger,
	)
}
