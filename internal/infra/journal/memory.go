package journal

import (
	"context"
	"slices"
	"sync"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Memory keeps the journal in process. It backs local runs with DB_ENABLED=false
// and tests; nothing survives a restart.
type Memory struct {
	mu            sync.RWMutex
	events        map[uuid.UUID][]exchange.Event
	conversations map[uuid.UUID]*conversation.Conversation
	messages      map[ulid.ULID]conversation.Message
}

func NewMemory() *Memory {
	return &Memory{
		events:        make(map[uuid.UUID][]exchange.Event),
		conversations: make(map[uuid.UUID]*conversation.Conversation),
		messages:      make(map[ulid.ULID]conversation.Message),
	}
}

func (m *Memory) AppendExchangeEvent(_ context.Context, ev exchange.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[ev.ExchangeID] = append(m.events[ev.ExchangeID], ev)
	return nil
}

func (m *Memory) ExchangeHistory(_ context.Context, exchangeID uuid.UUID) ([]exchange.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events[exchangeID]), nil
}

func (m *Memory) OpenConversation(_ context.Context, c *conversation.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[c.ID()]; !ok {
		m.conversations[c.ID()] = c
	}
	return nil
}

func (m *Memory) AppendMessage(_ context.Context, msg conversation.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID()] = msg
	return nil
}

func (m *Memory) UpdateMessageStatus(_ context.Context, _ uuid.UUID, ids []ulid.ULID, status conversation.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if msg, ok := m.messages[id]; ok {
			m.messages[id], _ = msg.WithStatus(status)
		}
	}
	return nil
}

// Message returns the journaled copy of a message.
func (m *Memory) Message(id ulid.ULID) (conversation.Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.messages[id]
	return msg, ok
}
