package exchange

import (
	"time"

	"github.com/google/uuid"
)

// Event is one journaled state change. The first event of an exchange has an
// empty From.
type Event struct {
	ExchangeID       uuid.UUID
	ListingID        uuid.UUID
	From             State
	To               State
	ActorID          uuid.UUID
	ReservedQuantity int
	OccurredAt       time.Time
}

func NewEvent(e *Exchange, from State, actor uuid.UUID, at time.Time) Event {
	return Event{
		ExchangeID:       e.ID(),
		ListingID:        e.ListingID(),
		From:             from,
		To:               e.State(),
		ActorID:          actor,
		ReservedQuantity: e.ReservedQuantity(),
		OccurredAt:       at,
	}
}
