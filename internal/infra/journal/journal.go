package journal

import (
	"context"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
)

// DBTX is the subset of pgxpool.Pool / pgx.Tx the journal needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Journal is the durable audit log of exchange transitions and conversation
// threads. Writes happen while the caller holds the exchange or thread lock,
// so the log order per exchange and per thread matches the in-memory order.
type Journal interface {
	AppendExchangeEvent(ctx context.Context, ev exchange.Event) error
	ExchangeHistory(ctx context.Context, exchangeID uuid.UUID) ([]exchange.Event, error)
	OpenConversation(ctx context.Context, c *conversation.Conversation) error
	AppendMessage(ctx context.Context, m conversation.Message) error
	UpdateMessageStatus(ctx context.Context, conversationID uuid.UUID, ids []ulid.ULID, status conversation.Status) error
}
