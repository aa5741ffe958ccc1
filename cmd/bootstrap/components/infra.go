package components

import (
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/infra/exchangestore"
	"rx-exchange/internal/infra/idempotency"
	"rx-exchange/internal/infra/inventory"
	"rx-exchange/internal/infra/journal"
	"rx-exchange/internal/infra/thread"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/pkg/idgen"
	"rx-exchange/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewSystemClock,
		idgen.NewULIDGenerator,
		NewRanker,
		fx.Annotate(
			inventory.NewIndex,
			fx.As(new(shared.InventoryIndex)),
		),
		fx.Annotate(
			exchangestore.NewStore,
			fx.As(new(shared.ExchangeStore)),
		),
		fx.Annotate(
			idempotency.NewStore,
			fx.As(new(shared.IdempotencyStore)),
		),
		fx.Annotate(
			NewThreadStore,
			fx.As(new(shared.ThreadStore)),
		),
		NewEventJournal,
	),
)

func NewThreadStore(j journal.Journal, ids *idgen.ULIDGenerator, clk clock.Clock) *thread.Store {
	return thread.NewStore(j, ids, clk)
}

func NewEventJournal(j journal.Journal) shared.EventJournal {
	return j
}

func NewRanker(cfg config.Config, clk clock.Clock) (*matching.Ranker, error) {
	return matching.NewRanker(matching.Config{
		Weights: matching.Weights{
			Name:     cfg.Match.NameWeight,
			Dosage:   cfg.Match.DosageWeight,
			Distance: cfg.Match.DistanceWeight,
			Quantity: cfg.Match.QuantityWeight,
		},
		DosageTolerance:   cfg.Match.DosageTolerance,
		DistanceHorizonKm: cfg.Match.DistanceHorizonKm,
	}, matching.NewTokenEditMatcher(), clk)
}
