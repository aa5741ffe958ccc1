package commands

import (
	"context"
	"log/slog"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type MessageCommands interface {
	Send(ctx context.Context, actorID, conversationID uuid.UUID, content string) (conversation.Message, error)
	MarkRead(ctx context.Context, actorID, conversationID uuid.UUID, upTo ulid.ULID) (int, error)
}

type messageUseCaseImpl struct {
	threads shared.ThreadStore
	logger  *slog.Logger
}

func NewMessageUseCase(threads shared.ThreadStore, logger *slog.Logger) MessageCommands {
	return &messageUseCaseImpl{threads: threads, logger: logger}
}

func (uc *messageUseCaseImpl) Send(ctx context.Context, actorID, conversationID uuid.UUID, content string) (conversation.Message, error) {
	if actorID == conversation.SystemSenderID {
		return conversation.Message{}, errs.Wrap(errs.ErrForbiddenActor, "system sender is reserved")
	}
	msg, err := uc.threads.Append(ctx, conversationID, actorID, content)
	if err != nil {
		return conversation.Message{}, err
	}
	uc.logger.Debug("message sent",
		slog.String("conversation_id", conversationID.String()),
		slog.String("message_id", msg.ID().String()))
	return msg, nil
}

func (uc *messageUseCaseImpl) MarkRead(ctx context.Context, actorID, conversationID uuid.UUID, upTo ulid.ULID) (int, error) {
	return uc.threads.MarkRead(ctx, conversationID, actorID, upTo)
}
