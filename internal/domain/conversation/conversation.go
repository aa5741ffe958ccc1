package conversation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingParticipant = errors.New("conversation needs two distinct participants")

// Conversation is the thread of one exchange and shares its id.
type Conversation struct {
	id         uuid.UUID
	seekerID   uuid.UUID
	providerID uuid.UUID
	drugName   string
	createdAt  time.Time
}

func NewConversation(exchangeID, seekerID, providerID uuid.UUID, drugName string, now time.Time) (*Conversation, error) {
	if seekerID == uuid.Nil || providerID == uuid.Nil || seekerID == providerID {
		return nil, ErrMissingParticipant
	}
	return &Conversation{
		id:         exchangeID,
		seekerID:   seekerID,
		providerID: providerID,
		drugName:   drugName,
		createdAt:  now,
	}, nil
}

func (c *Conversation) IsParticipant(hospitalID uuid.UUID) bool {
	return hospitalID == c.seekerID || hospitalID == c.providerID
}

// Counterpart returns the other participant.
func (c *Conversation) Counterpart(hospitalID uuid.UUID) uuid.UUID {
	if hospitalID == c.seekerID {
		return c.providerID
	}
	return c.seekerID
}

// IsIncoming reports whether m was written by someone other than reader.
func (c *Conversation) IsIncoming(m Message, reader uuid.UUID) bool {
	return m.SenderID() != reader
}

func (c *Conversation) ID() uuid.UUID         { return c.id }
func (c *Conversation) SeekerID() uuid.UUID   { return c.seekerID }
func (c *Conversation) ProviderID() uuid.UUID { return c.providerID }
func (c *Conversation) DrugName() string      { return c.drugName }
func (c *Conversation) CreatedAt() time.Time  { return c.createdAt }

// Summary is a conversation list row as seen by one hospital.
type Summary struct {
	Conversation *Conversation
	LastMessage  *Message
	Unread       int
}
