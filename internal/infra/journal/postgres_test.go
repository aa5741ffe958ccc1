//go:build unit

package journal_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/infra"
	"rx-exchange/internal/infra/journal"
	journalmock "rx-exchange/tests/mock/journal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var at = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPostgres_AppendExchangeEvent(t *testing.T) {
	ctx := context.Background()
	ev := exchange.Event{
		ExchangeID:       uuid.New(),
		ListingID:        uuid.New(),
		From:             exchange.StateProposed,
		To:               exchange.StateAccepted,
		ActorID:          uuid.New(),
		ReservedQuantity: 20,
		OccurredAt:       at,
	}

	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: event appended"},
		{
			name:       "error: database failure",
			execErr:    errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "error: duplicate key",
			execErr:    &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := journalmock.NewMockDBTX(ctrl)
			j := journal.NewPostgres(db, discardLogger())

			db.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
					assert.Contains(t, sql, "INSERT INTO exchange_events")
					assert.Contains(t, sql, "$7")
					require.Len(t, args, 7)
					assert.Equal(t, ev.ExchangeID, args[0])
					assert.Equal(t, "proposed", args[2])
					assert.Equal(t, "accepted", args[3])
					return pgconn.NewCommandTag("INSERT 0 1"), tc.execErr
				})

			err := j.AppendExchangeEvent(ctx, ev)
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostgres_Messages(t *testing.T) {
	ctx := context.Background()
	seeker, provider := uuid.New(), uuid.New()
	conv, err := conversation.NewConversation(uuid.New(), seeker, provider, "Amoxicillin", at)
	require.NoError(t, err)

	t.Run("open conversation is idempotent in sql", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := journalmock.NewMockDBTX(ctrl)
		j := journal.NewPostgres(db, discardLogger())

		db.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				assert.Contains(t, sql, "INSERT INTO conversations")
				assert.Contains(t, sql, "ON CONFLICT (id) DO NOTHING")
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			})

		require.NoError(t, j.OpenConversation(ctx, conv))
	})

	t.Run("append message stores ulid text", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := journalmock.NewMockDBTX(ctrl)
		j := journal.NewPostgres(db, discardLogger())

		msg, err := conversation.NewMessage(ulid.Make(), conv.ID(), seeker, "hello", at, 1)
		require.NoError(t, err)

		db.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				assert.Contains(t, sql, "INSERT INTO messages")
				require.Len(t, args, 7)
				assert.Equal(t, msg.ID().String(), args[0])
				assert.Equal(t, "sent", args[4])
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			})

		require.NoError(t, j.AppendMessage(ctx, msg))
	})

	t.Run("status update targets listed ids only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := journalmock.NewMockDBTX(ctrl)
		j := journal.NewPostgres(db, discardLogger())
		ids := []ulid.ULID{ulid.Make(), ulid.Make()}

		db.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				assert.Contains(t, sql, "UPDATE messages SET status = $1")
				assert.Contains(t, sql, "id IN (")
				assert.Equal(t, "read", args[0])
				return pgconn.NewCommandTag("UPDATE 2"), nil
			})

		require.NoError(t, j.UpdateMessageStatus(ctx, conv.ID(), ids, conversation.StatusRead))
	})

	t.Run("empty status update skips the database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := journalmock.NewMockDBTX(ctrl)
		j := journal.NewPostgres(db, discardLogger())

		require.NoError(t, j.UpdateMessageStatus(ctx, conv.ID(), nil, conversation.StatusRead))
	})

	t.Run("foreign key violation is classified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := journalmock.NewMockDBTX(ctrl)
		j := journal.NewPostgres(db, discardLogger())

		msg, err := conversation.NewMessage(ulid.Make(), uuid.New(), seeker, "orphan", at, 1)
		require.NoError(t, err)

		db.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23503"})

		err = j.AppendMessage(ctx, msg)
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	j := journal.NewMemory()
	exchangeID := uuid.New()

	require.NoError(t, j.AppendExchangeEvent(ctx, exchange.Event{ExchangeID: exchangeID, To: exchange.StateProposed}))
	require.NoError(t, j.AppendExchangeEvent(ctx, exchange.Event{ExchangeID: exchangeID, From: exchange.StateProposed, To: exchange.StateCancelled}))

	history, err := j.ExchangeHistory(ctx, exchangeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, exchange.StateCancelled, history[1].To)

	msg, err := conversation.NewMessage(ulid.Make(), uuid.New(), uuid.New(), "hi", at, 1)
	require.NoError(t, err)
	require.NoError(t, j.AppendMessage(ctx, msg))
	require.NoError(t, j.UpdateMessageStatus(ctx, msg.ConversationID(), []ulid.ULID{msg.ID()}, conversation.StatusRead))
	require.NoError(t, j.UpdateMessageStatus(ctx, msg.ConversationID(), []ulid.ULID{msg.ID()}, conversation.StatusDelivered))

	stored, ok := j.Message(msg.ID())
	require.True(t, ok)
	assert.Equal(t, conversation.StatusRead, stored.Status())
}
