package bootstrap

import (
	"tillpoint/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StateModule,
	JWTModule,
	SnapshotModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
