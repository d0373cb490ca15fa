package components

import (
	repo_impl "tillpoint/internal/infra/repository"
	"tillpoint/internal/usecase/commands"
	"tillpoint/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			repo_impl.NewProductRepository,
			fx.As(new(commands.ProductReader)),
			fx.As(new(queries.ProductViewReader)),
		),
		fx.Annotate(
			repo_impl.NewCustomerRepository,
			fx.As(new(commands.CustomerRepository)),
		),
		fx.Annotate(
			repo_impl.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		fx.Annotate(
			repo_impl.NewReceiptRepository,
			fx.As(new(commands.ReceiptRepository)),
			fx.As(new(queries.ReceiptViewReader)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserReader)),
		),
		fx.Annotate(
			repo_impl.NewOrderQueryRepository,
			fx.As(new(queries.OrderViewReader)),
		),
	),
)
