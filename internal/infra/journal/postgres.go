package journal

import (
	"context"
	"log/slog"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/infra"
	"rx-exchange/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
)

type Postgres struct {
	db     DBTX
	logger *slog.Logger
	sb     sq.StatementBuilderType
}

func NewPostgres(db DBTX, logger *slog.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: logger,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (p *Postgres) exec(ctx context.Context, b sq.Sqlizer, msg string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return infra.WrapRepoErr(p.logger, infra.KindDBFailure, "failed to build query: "+msg, err)
	}
	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr(p.logger, infra.ClassifyPgError(err), msg, err)
	}
	return nil
}

func (p *Postgres) AppendExchangeEvent(ctx context.Context, ev exchange.Event) error {
	b := p.sb.Insert("exchange_events").
		Columns("exchange_id", "listing_id", "from_state", "to_state", "actor_hospital_id", "reserved_quantity", "occurred_at").
		Values(ev.ExchangeID, ev.ListingID, string(ev.From), string(ev.To), ev.ActorID, ev.ReservedQuantity, ev.OccurredAt)
	return p.exec(ctx, b, "failed to append exchange event")
}

type eventRow struct {
	ExchangeID       pgtype.UUID
	ListingID        pgtype.UUID
	FromState        string
	ToState          string
	ActorHospitalID  pgtype.UUID
	ReservedQuantity int32
	OccurredAt       pgtype.Timestamptz
}

func (p *Postgres) ExchangeHistory(ctx context.Context, exchangeID uuid.UUID) ([]exchange.Event, error) {
	query, args, err := p.sb.
		Select("exchange_id", "listing_id", "from_state", "to_state", "actor_hospital_id", "reserved_quantity", "occurred_at").
		From("exchange_events").
		Where(sq.Eq{"exchange_id": exchangeID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(p.logger, infra.KindDBFailure, "failed to build history query", err)
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(p.logger, infra.ClassifyPgError(err), "failed to query exchange history", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventRow])
	if err != nil {
		return nil, infra.WrapRepoErr(p.logger, infra.KindDBFailure, "failed to scan exchange history", err)
	}

	events := make([]exchange.Event, 0, len(records))
	for _, r := range records {
		events = append(events, exchange.Event{
			ExchangeID:       pgconv.UUIDFromPgtype(r.ExchangeID),
			ListingID:        pgconv.UUIDFromPgtype(r.ListingID),
			From:             exchange.State(r.FromState),
			To:               exchange.State(r.ToState),
			ActorID:          pgconv.UUIDFromPgtype(r.ActorHospitalID),
			ReservedQuantity: int(r.ReservedQuantity),
			OccurredAt:       pgconv.TimeFromPgtype(r.OccurredAt),
		})
	}
	return events, nil
}

func (p *Postgres) OpenConversation(ctx context.Context, c *conversation.Conversation) error {
	b := p.sb.Insert("conversations").
		Columns("id", "seeker_hospital_id", "provider_hospital_id", "drug_name", "created_at").
		Values(c.ID(), c.SeekerID(), c.ProviderID(), c.DrugName(), c.CreatedAt()).
		Suffix("ON CONFLICT (id) DO NOTHING")
	return p.exec(ctx, b, "failed to open conversation")
}

func (p *Postgres) AppendMessage(ctx context.Context, m conversation.Message) error {
	b := p.sb.Insert("messages").
		Columns("id", "conversation_id", "sender_hospital_id", "content", "status", "seq", "sent_at").
		Values(m.ID().String(), m.ConversationID(), m.SenderID(), m.Content(), string(m.Status()), m.Seq(), m.SentAt())
	return p.exec(ctx, b, "failed to append message")
}

func (p *Postgres) UpdateMessageStatus(ctx context.Context, conversationID uuid.UUID, ids []ulid.ULID, status conversation.Status) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	b := p.sb.Update("messages").
		Set("status", string(status)).
		Where(sq.Eq{"conversation_id": conversationID, "id": keys})
	return p.exec(ctx, b, "failed to update message status")
}
