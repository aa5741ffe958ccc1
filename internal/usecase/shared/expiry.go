package shared

import (
	"context"
	"fmt"
	"log/slog"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
)

// Expirer moves overdue Accepted exchanges to Expired and frees their stock.
// Commands run it before a transition and queries before a read, so a reader
// never sees an Accepted exchange past its deadline.
type Expirer struct {
	exchanges ExchangeStore
	inventory InventoryIndex
	journal   EventJournal
	notifier  *Notifier
	clock     clock.Clock
	logger    *slog.Logger
}

func NewExpirer(
	exchanges ExchangeStore,
	inventory InventoryIndex,
	journal EventJournal,
	notifier *Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) *Expirer {
	return &Expirer{
		exchanges: exchanges,
		inventory: inventory,
		journal:   journal,
		notifier:  notifier,
		clock:     clk,
		logger:    logger,
	}
}

// ExpireIfOverdue returns the current exchange and whether this call expired it.
func (x *Expirer) ExpireIfOverdue(ctx context.Context, id uuid.UUID) (*exchange.Exchange, bool, error) {
	now := x.clock.Now()
	expired := false
	ex, err := x.exchanges.Update(id, func(e *exchange.Exchange) error {
		t := e.Expire(now)
		if !t.Applied() {
			return nil
		}
		token := e.Reservation()
		if err := x.journal.AppendExchangeEvent(ctx, exchange.NewEvent(e, t.From, conversation.SystemSenderID, now)); err != nil {
			return errs.Mark(err, errs.ErrJournalFailure)
		}
		x.inventory.Release(token)
		expired = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if expired {
		x.logger.Info("exchange expired",
			slog.String("exchange_id", id.String()),
			slog.String("listing_id", ex.ListingID().String()))
		x.notifier.Post(ctx, id, fmt.Sprintf("Exchange expired: the completion deadline passed and %s was returned to inventory.", ex.DrugName()))
	}
	return ex, expired, nil
}
