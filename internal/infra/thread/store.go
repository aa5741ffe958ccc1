package thread

import (
	"context"
	"slices"
	"sync"
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/pkg/idgen"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Journal receives every thread mutation before it becomes visible.
type Journal interface {
	OpenConversation(ctx context.Context, c *conversation.Conversation) error
	AppendMessage(ctx context.Context, m conversation.Message) error
	UpdateMessageStatus(ctx context.Context, conversationID uuid.UUID, ids []ulid.ULID, status conversation.Status) error
}

// postgres timestamptz keeps microseconds
const tick = time.Microsecond

type thread struct {
	mu       sync.Mutex
	conv     *conversation.Conversation
	messages []conversation.Message
}

type Store struct {
	mu         sync.RWMutex
	threads    map[uuid.UUID]*thread
	byHospital map[uuid.UUID][]uuid.UUID
	journal    Journal
	ids        *idgen.ULIDGenerator
	clock      clock.Clock
}

func NewStore(journal Journal, ids *idgen.ULIDGenerator, clk clock.Clock) *Store {
	return &Store{
		threads:    make(map[uuid.UUID]*thread),
		byHospital: make(map[uuid.UUID][]uuid.UUID),
		journal:    journal,
		ids:        ids,
		clock:      clk,
	}
}

// Open registers the conversation of an exchange. Opening an existing
// conversation is a no-op.
func (s *Store) Open(ctx context.Context, c *conversation.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.threads[c.ID()]; ok {
		return nil
	}
	if err := s.journal.OpenConversation(ctx, c); err != nil {
		return errs.Mark(err, errs.ErrJournalFailure)
	}
	s.threads[c.ID()] = &thread{conv: c}
	s.byHospital[c.SeekerID()] = append(s.byHospital[c.SeekerID()], c.ID())
	s.byHospital[c.ProviderID()] = append(s.byHospital[c.ProviderID()], c.ID())
	return nil
}

func (s *Store) lookup(id uuid.UUID) (*thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.threads[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrConversationNotFound, "conversation %s", id)
	}
	return t, nil
}

// Append adds a message from a participant, or from the system sender.
// sentAt is strictly increasing within a conversation even if the clock is not.
func (s *Store) Append(ctx context.Context, conversationID, senderID uuid.UUID, content string) (conversation.Message, error) {
	t, err := s.lookup(conversationID)
	if err != nil {
		return conversation.Message{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if senderID != conversation.SystemSenderID && !t.conv.IsParticipant(senderID) {
		return conversation.Message{}, errs.Wrapf(errs.ErrForbiddenActor, "hospital %s in conversation %s", senderID, conversationID)
	}

	sentAt := s.clock.Now().UTC().Truncate(tick)
	if n := len(t.messages); n > 0 {
		if last := t.messages[n-1].SentAt(); !sentAt.After(last) {
			sentAt = last.Add(tick)
		}
	}

	msg, err := conversation.NewMessage(s.ids.New(sentAt), conversationID, senderID, content, sentAt, len(t.messages)+1)
	if err != nil {
		return conversation.Message{}, errs.Mark(err, errs.ErrInvalidRequest)
	}
	if err := s.journal.AppendMessage(ctx, msg); err != nil {
		return conversation.Message{}, errs.Mark(err, errs.ErrJournalFailure)
	}
	t.messages = append(t.messages, msg)
	return msg, nil
}

// MarkDelivered moves every incoming "sent" message for reader to "delivered".
func (s *Store) MarkDelivered(ctx context.Context, conversationID, readerID uuid.UUID) (int, error) {
	return s.advance(ctx, conversationID, readerID, conversation.StatusDelivered, func([]conversation.Message) (int, error) {
		return -1, nil
	})
}

// MarkRead marks incoming messages up to and including upTo as read. Status
// only moves forward, so replays and out-of-order calls are harmless.
func (s *Store) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID, upTo ulid.ULID) (int, error) {
	return s.advance(ctx, conversationID, readerID, conversation.StatusRead, func(msgs []conversation.Message) (int, error) {
		idx := slices.IndexFunc(msgs, func(m conversation.Message) bool { return m.ID() == upTo })
		if idx < 0 {
			return 0, errs.Wrapf(errs.ErrMessageNotFound, "message %s in conversation %s", upTo, conversationID)
		}
		return idx, nil
	})
}

// advance applies status to incoming messages up to the index returned by
// bound (-1 means all). It returns how many messages changed.
func (s *Store) advance(
	ctx context.Context,
	conversationID, readerID uuid.UUID,
	status conversation.Status,
	bound func([]conversation.Message) (int, error),
) (int, error) {
	t, err := s.lookup(conversationID)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.conv.IsParticipant(readerID) {
		return 0, errs.Wrapf(errs.ErrForbiddenActor, "hospital %s in conversation %s", readerID, conversationID)
	}
	last, err := bound(t.messages)
	if err != nil {
		return 0, err
	}
	if last < 0 {
		last = len(t.messages) - 1
	}

	next := slices.Clone(t.messages)
	var changed []ulid.ULID
	for i := 0; i <= last; i++ {
		if !t.conv.IsIncoming(next[i], readerID) {
			continue
		}
		if m, ok := next[i].WithStatus(status); ok {
			next[i] = m
			changed = append(changed, m.ID())
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}
	if err := s.journal.UpdateMessageStatus(ctx, conversationID, changed, status); err != nil {
		return 0, errs.Mark(err, errs.ErrJournalFailure)
	}
	t.messages = next
	return len(changed), nil
}

// Messages returns the thread in sentAt order.
func (s *Store) Messages(conversationID, readerID uuid.UUID) ([]conversation.Message, error) {
	t, err := s.lookup(conversationID)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.conv.IsParticipant(readerID) {
		return nil, errs.Wrapf(errs.ErrForbiddenActor, "hospital %s in conversation %s", readerID, conversationID)
	}
	return slices.Clone(t.messages), nil
}

func (s *Store) Conversation(conversationID uuid.UUID) (*conversation.Conversation, error) {
	t, err := s.lookup(conversationID)
	if err != nil {
		return nil, err
	}
	return t.conv, nil
}

// ListByHospital summarises the hospital's conversations, most recent activity first.
func (s *Store) ListByHospital(hospitalID uuid.UUID) []conversation.Summary {
	s.mu.RLock()
	threads := make([]*thread, 0, len(s.byHospital[hospitalID]))
	for _, id := range s.byHospital[hospitalID] {
		threads = append(threads, s.threads[id])
	}
	s.mu.RUnlock()

	summaries := make([]conversation.Summary, 0, len(threads))
	for _, t := range threads {
		t.mu.Lock()
		sum := conversation.Summary{Conversation: t.conv}
		if n := len(t.messages); n > 0 {
			last := t.messages[n-1]
			sum.LastMessage = &last
		}
		for _, m := range t.messages {
			if t.conv.IsIncoming(m, hospitalID) && m.Status() != conversation.StatusRead {
				sum.Unread++
			}
		}
		t.mu.Unlock()
		summaries = append(summaries, sum)
	}

	slices.SortFunc(summaries, func(a, b conversation.Summary) int {
		return lastActivity(b).Compare(lastActivity(a))
	})
	return summaries
}

func lastActivity(s conversation.Summary) time.Time {
	if s.LastMessage != nil {
		return s.LastMessage.SentAt()
	}
	return s.Conversation.CreatedAt()
}
