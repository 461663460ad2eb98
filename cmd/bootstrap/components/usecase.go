package components

import (
	"bookstand/internal/domain/rental"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/usecase"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	rental.NewFactory,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookQueries,
		queries.NewRentalQueries,
		queries.NewPurchaseQueries,
		queries.NewNotificationQueries,
		queries.NewUserQueries,
		queries.NewReportQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCheckoutCommands,
		commands.NewCatalogCommands,
		commands.NewRentalAdminCommands,
		commands.NewNotificationCommands,
	),
)
