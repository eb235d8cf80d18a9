package components

import (
	"pousada-pms/internal/domain/availability"
	"pousada-pms/internal/domain/cancellation"
	"pousada-pms/internal/domain/pricing"
	"pousada-pms/internal/domain/reservation"
	"pousada-pms/internal/pkg/clock"
	"pousada-pms/internal/usecase"
	"pousada-pms/internal/usecase/commands"
	"pousada-pms/internal/usecase/queries"

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
	pricing.NewResolver,
	reservation.NewFactory,
	availability.NewChecker,
	cancellation.NewEngine,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewBlockCommands,
		commands.NewMinibarCommands,
		commands.NewPolicyCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewCancellationQueries,
		queries.NewReservationQueries,
		queries.NewBlockQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewAuthUseCase,
		usecase.NewTokenValidator,
	),
)
