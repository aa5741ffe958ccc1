package response

import (
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/usecase/queries"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID       string    `json:"id"`
	SenderID uuid.UUID `json:"sender_id"`
	IsSystem bool      `json:"is_system"`
	Content  string    `json:"content"`
	Status   string    `json:"status"`
	SentAt   time.Time `json:"sent_at"`
}

func FromMessage(m conversation.Message) *MessageResponse {
	return &MessageResponse{
		ID:       m.ID().String(),
		SenderID: m.SenderID(),
		IsSystem: m.IsSystem(),
		Content:  m.Content(),
		Status:   m.Status().String(),
		SentAt:   m.SentAt(),
	}
}

type ConversationSummaryResponse struct {
	ID            uuid.UUID        `json:"id"`
	ExchangeID    uuid.UUID        `json:"exchange_id"`
	CounterpartID uuid.UUID        `json:"counterpart_id"`
	DrugName      string           `json:"drug_name"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	UnreadCount   int              `json:"unread_count"`
	CreatedAt     time.Time        `json:"created_at"`
}

func FromSummaries(items []conversation.Summary, reader uuid.UUID) []*ConversationSummaryResponse {
	res := make([]*ConversationSummaryResponse, len(items))
	for i, s := range items {
		c := s.Conversation
		item := &ConversationSummaryResponse{
			ID:            c.ID(),
			ExchangeID:    c.ID(),
			CounterpartID: c.Counterpart(reader),
			DrugName:      c.DrugName(),
			UnreadCount:   s.Unread,
			CreatedAt:     c.CreatedAt(),
		}
		if s.LastMessage != nil {
			item.LastMessage = FromMessage(*s.LastMessage)
		}
		res[i] = item
	}
	return res
}

type ThreadResponse struct {
	ID            uuid.UUID          `json:"id"`
	CounterpartID uuid.UUID          `json:"counterpart_id"`
	DrugName      string             `json:"drug_name"`
	Messages      []*MessageResponse `json:"messages"`
}

func FromThread(t *queries.Thread, reader uuid.UUID) *ThreadResponse {
	res := &ThreadResponse{
		ID:            t.Conversation.ID(),
		CounterpartID: t.Conversation.Counterpart(reader),
		DrugName:      t.Conversation.DrugName(),
		Messages:      make([]*MessageResponse, len(t.Messages)),
	}
	for i, m := range t.Messages {
		res.Messages[i] = FromMessage(m)
	}
	return res
}

type MarkReadResponse struct {
	Updated int `json:"updated"`
}
