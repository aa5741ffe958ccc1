package request

import (
	"strings"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProposeExchangeRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	// RequestID links the proposal to the search that found the listing.
	RequestID uuid.UUID `json:"request_id"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
	Message   string    `json:"message" binding:"max=2000"`
}

func (r ProposeExchangeRequest) ToParams(seekerID, idempotencyKey uuid.UUID) commands.ProposeParams {
	return commands.ProposeParams{
		IdempotencyKey: idempotencyKey,
		SeekerID:       seekerID,
		ListingID:      r.ListingID,
		RequestID:      r.RequestID,
		Quantity:       r.Quantity,
		Message:        strings.TrimSpace(r.Message),
	}
}

type RespondExchangeRequest struct {
	Decision string `json:"decision" binding:"required,decision"`
}

func (r RespondExchangeRequest) ToDomain() (exchange.Decision, error) {
	return exchange.ParseDecision(r.Decision)
}
