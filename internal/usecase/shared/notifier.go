package shared

import (
	"context"
	"log/slog"

	"rx-exchange/internal/domain/conversation"

	"github.com/google/uuid"
)

// Notifier posts system messages into exchange threads. A failed post is
// logged and does not undo the transition that triggered it.
type Notifier struct {
	threads ThreadStore
	logger  *slog.Logger
}

func NewNotifier(threads ThreadStore, logger *slog.Logger) *Notifier {
	return &Notifier{threads: threads, logger: logger}
}

func (n *Notifier) Post(ctx context.Context, conversationID uuid.UUID, content string) {
	if _, err := n.threads.Append(ctx, conversationID, conversation.SystemSenderID, content); err != nil {
		n.logger.Error("failed to post system message",
			slog.String("conversation_id", conversationID.String()),
			slog.String("error", err.Error()))
	}
}
