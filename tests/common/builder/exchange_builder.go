//go:build unit || e2e

package builder

import (
	"time"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"

	"github.com/google/uuid"
)

type ExchangeBuilder struct {
	SeekerID   uuid.UUID
	ProviderID uuid.UUID
	ListingID  uuid.UUID
	RequestID  uuid.UUID
	DrugName   string
	Quantity   int
	CreatedAt  time.Time
}

func NewExchangeBuilder() *ExchangeBuilder {
	return &ExchangeBuilder{
		SeekerID:   uuid.New(),
		ProviderID: uuid.New(),
		ListingID:  uuid.New(),
		RequestID:  uuid.New(),
		DrugName:   "Amoxicillin",
		Quantity:   20,
		CreatedAt:  time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ExchangeBuilder) With(mutate func(*ExchangeBuilder)) *ExchangeBuilder {
	mutate(b)
	return b
}

func (b *ExchangeBuilder) Token() listing.ReservationToken {
	return listing.ReservationToken{ID: uuid.New(), ListingID: b.ListingID, Quantity: b.Quantity}
}

func (b *ExchangeBuilder) BuildDomain() (*exchange.Exchange, error) {
	return exchange.NewExchange(exchange.Params{
		RequestID:         b.RequestID,
		ListingID:         b.ListingID,
		SeekerID:          b.SeekerID,
		ProviderID:        b.ProviderID,
		DrugName:          b.DrugName,
		QuantityRequested: b.Quantity,
	}, b.Token(), b.CreatedAt)
}

func (b *ExchangeBuilder) MustBuild() *exchange.Exchange {
	e, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return e
}

// MustBuildAccepted returns the exchange after the provider accepted it.
func (b *ExchangeBuilder) MustBuildAccepted(window time.Duration) *exchange.Exchange {
	e := b.MustBuild()
	if t := e.Accept(b.CreatedAt.Add(time.Hour), window); !t.Applied() {
		panic(t.Err())
	}
	return e
}

func (b *ExchangeBuilder) WithSeekerID(id uuid.UUID) *ExchangeBuilder {
	b.SeekerID = id
	return b
}

func (b *ExchangeBuilder) WithProviderID(id uuid.UUID) *ExchangeBuilder {
	b.ProviderID = id
	return b
}

func (b *ExchangeBuilder) WithQuantity(qty int) *ExchangeBuilder {
	b.Quantity = qty
	return b
}
