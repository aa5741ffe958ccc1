package shared

import (
	"context"
	"iter"
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/infra/idempotency"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type InventoryIndex interface {
	Upsert(l *listing.Listing) error
	Remove(id uuid.UUID) error
	Get(id uuid.UUID) (listing.Snapshot, error)
	Reserve(id uuid.UUID, qty int) (listing.ReservationToken, error)
	Release(token listing.ReservationToken)
	Consume(token listing.ReservationToken) (listing.Snapshot, error)
	Query(f listing.Filter) iter.Seq[listing.Snapshot]
}

type ExchangeStore interface {
	Insert(e *exchange.Exchange) error
	Get(id uuid.UUID) (*exchange.Exchange, error)
	Update(id uuid.UUID, fn func(e *exchange.Exchange) error) (*exchange.Exchange, error)
	ListByHospital(hospitalID uuid.UUID) []*exchange.Exchange
	Overdue(now time.Time) []uuid.UUID
}

type ThreadStore interface {
	Open(ctx context.Context, c *conversation.Conversation) error
	Append(ctx context.Context, conversationID, senderID uuid.UUID, content string) (conversation.Message, error)
	MarkDelivered(ctx context.Context, conversationID, readerID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID, upTo ulid.ULID) (int, error)
	Messages(conversationID, readerID uuid.UUID) ([]conversation.Message, error)
	Conversation(conversationID uuid.UUID) (*conversation.Conversation, error)
	ListByHospital(hospitalID uuid.UUID) []conversation.Summary
}

type EventJournal interface {
	AppendExchangeEvent(ctx context.Context, ev exchange.Event) error
	ExchangeHistory(ctx context.Context, exchangeID uuid.UUID) ([]exchange.Event, error)
}

type IdempotencyStore interface {
	TryInsert(ctx context.Context, key, hospitalID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key, hospitalID uuid.UUID) (*idempotency.Record, error)
	Complete(ctx context.Context, key, hospitalID, resultID uuid.UUID) error
	Abandon(ctx context.Context, key, hospitalID uuid.UUID)
	DeleteExpired(ctx context.Context) int
}
