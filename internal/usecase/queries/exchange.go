package queries

import (
	"context"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExchangeQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*exchange.Exchange, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*exchange.Exchange, error)
	History(ctx context.Context, actorID, id uuid.UUID) ([]exchange.Event, error)
}

type exchangeQueriesImpl struct {
	exchanges shared.ExchangeStore
	journal   shared.EventJournal
	expirer   *shared.Expirer
}

func NewExchangeQueries(exchanges shared.ExchangeStore, journal shared.EventJournal, expirer *shared.Expirer) ExchangeQueries {
	return &exchangeQueriesImpl{exchanges: exchanges, journal: journal, expirer: expirer}
}

// GetByID expires the exchange first if its deadline has passed.
func (q *exchangeQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*exchange.Exchange, error) {
	ex, err := q.exchanges.Get(id)
	if err != nil {
		return nil, err
	}
	if !ex.IsParty(actorID) {
		return nil, errs.Wrapf(errs.ErrForbiddenActor, "hospital %s on exchange %s", actorID, id)
	}
	ex, _, err = q.expirer.ExpireIfOverdue(ctx, id)
	return ex, err
}

func (q *exchangeQueriesImpl) ListByHospital(ctx context.Context, hospitalID uuid.UUID) ([]*exchange.Exchange, error) {
	list := q.exchanges.ListByHospital(hospitalID)
	for i, ex := range list {
		if ex.State() != exchange.StateAccepted {
			continue
		}
		fresh, _, err := q.expirer.ExpireIfOverdue(ctx, ex.ID())
		if err != nil {
			return nil, err
		}
		list[i] = fresh
	}
	return list, nil
}

func (q *exchangeQueriesImpl) History(ctx context.Context, actorID, id uuid.UUID) ([]exchange.Event, error) {
	if _, err := q.GetByID(ctx, actorID, id); err != nil {
		return nil, err
	}
	events, err := q.journal.ExchangeHistory(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrJournalFailure)
	}
	return events, nil
}
