package conversation

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const MaxContentLength = 2000

var (
	ErrEmptyContent   = errors.New("message content is required")
	ErrContentTooLong = errors.New("message content too long")
	ErrInvalidStatus  = errors.New("invalid message status")
)

// SystemSenderID marks messages posted by the service on exchange transitions.
var SystemSenderID = uuid.Nil

type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st.rank() == 0 {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) rank() int {
	switch s {
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	default:
		return 0
	}
}

// Advance returns the later of s and to. Status never moves backward.
func (s Status) Advance(to Status) (Status, bool) {
	if to.rank() > s.rank() {
		return to, true
	}
	return s, false
}

// Message is immutable; a status change yields a new value.
type Message struct {
	id             ulid.ULID
	conversationID uuid.UUID
	senderID       uuid.UUID
	content        string
	sentAt         time.Time
	status         Status
	seq            int
}

func NewMessage(id ulid.ULID, conversationID, senderID uuid.UUID, content string, sentAt time.Time, seq int) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return Message{}, ErrContentTooLong
	}
	return Message{
		id:             id,
		conversationID: conversationID,
		senderID:       senderID,
		content:        content,
		sentAt:         sentAt,
		status:         StatusSent,
		seq:            seq,
	}, nil
}

func ReconstructMessage(id ulid.ULID, conversationID, senderID uuid.UUID, content string, sentAt time.Time, status Status, seq int) Message {
	return Message{
		id:             id,
		conversationID: conversationID,
		senderID:       senderID,
		content:        content,
		sentAt:         sentAt,
		status:         status,
		seq:            seq,
	}
}

func (m Message) WithStatus(s Status) (Message, bool) {
	next, changed := m.status.Advance(s)
	m.status = next
	return m, changed
}

func (m Message) IsSystem() bool {
	return m.senderID == SystemSenderID
}

func (m Message) ID() ulid.ULID             { return m.id }
func (m Message) ConversationID() uuid.UUID { return m.conversationID }
func (m Message) SenderID() uuid.UUID       { return m.senderID }
func (m Message) Content() string           { return m.content }
func (m Message) SentAt() time.Time         { return m.sentAt }
func (m Message) Status() Status            { return m.status }
func (m Message) Seq() int                  { return m.seq }
