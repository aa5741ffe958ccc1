package response

import (
	"time"

	"rx-exchange/internal/domain/exchange"

	"github.com/google/uuid"
)

type ExchangeResponse struct {
	ID                 uuid.UUID  `json:"id"`
	RequestID          uuid.UUID  `json:"request_id"`
	ListingID          uuid.UUID  `json:"listing_id"`
	SeekerID           uuid.UUID  `json:"seeker_id"`
	ProviderID         uuid.UUID  `json:"provider_id"`
	DrugName           string     `json:"drug_name"`
	QuantityRequested  int        `json:"quantity_requested"`
	ReservedQuantity   int        `json:"reserved_quantity"`
	State              string     `json:"state"`
	CreatedAt          time.Time  `json:"created_at"`
	DecidedAt          *time.Time `json:"decided_at,omitempty"`
	CompletionDeadline *time.Time `json:"completion_deadline,omitempty"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
}

func FromExchange(e *exchange.Exchange) *ExchangeResponse {
	return &ExchangeResponse{
		ID:                 e.ID(),
		RequestID:          e.RequestID(),
		ListingID:          e.ListingID(),
		SeekerID:           e.SeekerID(),
		ProviderID:         e.ProviderID(),
		DrugName:           e.DrugName(),
		QuantityRequested:  e.QuantityRequested(),
		ReservedQuantity:   e.ReservedQuantity(),
		State:              e.State().String(),
		CreatedAt:          e.CreatedAt(),
		DecidedAt:          e.DecidedAt(),
		CompletionDeadline: e.CompletionDeadline(),
		ClosedAt:           e.ClosedAt(),
	}
}

func FromExchanges(items []*exchange.Exchange) []*ExchangeResponse {
	res := make([]*ExchangeResponse, len(items))
	for i, e := range items {
		res[i] = FromExchange(e)
	}
	return res
}

type ExchangeEventResponse struct {
	From             string    `json:"from,omitempty"`
	To               string    `json:"to"`
	ActorID          uuid.UUID `json:"actor_id"`
	ReservedQuantity int       `json:"reserved_quantity"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func FromEvents(events []exchange.Event) []*ExchangeEventResponse {
	res := make([]*ExchangeEventResponse, len(events))
	for i, ev := range events {
		res[i] = &ExchangeEventResponse{
			From:             ev.From.String(),
			To:               ev.To.String(),
			ActorID:          ev.ActorID,
			ReservedQuantity: ev.ReservedQuantity,
			OccurredAt:       ev.OccurredAt,
		}
	}
	return res
}
