package components

import (
	"groupbook/internal/domain/groupreservation"
	"groupbook/internal/pkg/clock"
	"groupbook/internal/usecase"
	"groupbook/internal/usecase/commands"
	"groupbook/internal/usecase/queries"

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
	groupreservation.NewCodeGenerator,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewGroupReservationQueries,
		queries.NewBookingQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewGroupReservationCommands,
		commands.NewBookingCommands,
		commands.NewExpirationSweeper,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
