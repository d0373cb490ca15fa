package components

import (
	"log/slog"

	"tillpoint/internal/infra/store"
	"tillpoint/internal/infra/wal"
	"tillpoint/internal/inventory"
	"tillpoint/internal/pkg/clock"
	"tillpoint/internal/pkg/config"
	"tillpoint/internal/pkg/jwt"
	"tillpoint/internal/usecase"
	"tillpoint/internal/usecase/commands"
	"tillpoint/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(l *inventory.Ledger) commands.StockLedger { return l },
	func(log *wal.Log) commands.Journal { return log },
	func(s *jwt.Service) commands.TokenIssuer { return s },
	func(c *commands.TransactionCoordinator) store.Quiescer { return c },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTransactionCoordinator,
		commands.NewAuthenticator,
		NewSweeper,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQuery,
		queries.NewProductQuery,
		queries.NewReceiptQuery,
		queries.NewSalesReportQuery,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewSweeper(coordinator *commands.TransactionCoordinator, cfg config.Config, logger *slog.Logger) *commands.Sweeper {
	return commands.NewSweeper(coordinator, cfg.Session.IdleTimeout, cfg.Session.SweepInterval, logger)
}
