package queries

import (
	"context"
	"log/slog"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
)

type Thread struct {
	Conversation *conversation.Conversation
	Messages     []conversation.Message
}

type ConversationQueries interface {
	ListByHospital(ctx context.Context, hospitalID uuid.UUID) []conversation.Summary
	Thread(ctx context.Context, readerID, conversationID uuid.UUID) (*Thread, error)
}

type conversationQueriesImpl struct {
	threads shared.ThreadStore
	logger  *slog.Logger
}

func NewConversationQueries(threads shared.ThreadStore, logger *slog.Logger) ConversationQueries {
	return &conversationQueriesImpl{threads: threads, logger: logger}
}

func (q *conversationQueriesImpl) ListByHospital(_ context.Context, hospitalID uuid.UUID) []conversation.Summary {
	return q.threads.ListByHospital(hospitalID)
}

// Thread returns the messages of a conversation and acknowledges delivery of
// everything the reader has not seen yet.
func (q *conversationQueriesImpl) Thread(ctx context.Context, readerID, conversationID uuid.UUID) (*Thread, error) {
	conv, err := q.threads.Conversation(conversationID)
	if err != nil {
		return nil, err
	}
	if n, err := q.threads.MarkDelivered(ctx, conversationID, readerID); err != nil {
		return nil, err
	} else if n > 0 {
		q.logger.Debug("messages delivered",
			slog.String("conversation_id", conversationID.String()),
			slog.Int("count", n))
	}
	msgs, err := q.threads.Messages(conversationID, readerID)
	if err != nil {
		return nil, err
	}
	return &Thread{Conversation: conv, Messages: msgs}, nil
}
