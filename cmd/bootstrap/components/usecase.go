package components

import (
	"log/slog"

	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/usecase"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"
	"rx-exchange/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	shared.NewNotifier,
	shared.NewExpirer,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewListingUseCase,
		commands.NewExchangeUseCase,
		commands.NewMessageUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewListingQueries,
		queries.NewExchangeQueries,
		queries.NewConversationQueries,
		NewMatchQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewMatchQueries(inv shared.InventoryIndex, ranker *matching.Ranker, cfg config.Config, clk clock.Clock, logger *slog.Logger) queries.MatchQueries {
	return queries.NewMatchQueries(inv, ranker, cfg.Match.DefaultLimit, clk, logger)
}
