package search

import (
	"errors"
	"strings"
	"time"

	"rx-exchange/internal/domain/drug"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("search name is required")
	ErrInvalidQuantity  = errors.New("quantity needed must be positive")
	ErrInvalidDistance  = errors.New("max distance cannot be negative")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrMissingRequester = errors.New("seeker hospital id is required")
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityMedium, nil
	}
	if !p.IsValid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// IsUrgent reports whether ranking should favour fast-expiring, larger stock on ties.
func (p Priority) IsUrgent() bool {
	return p == PriorityHigh || p == PriorityCritical
}

func (p Priority) String() string {
	return string(p)
}

// Request is an immutable drug search. Re-submitting creates a new Request.
type Request struct {
	id             uuid.UUID
	seekerID       uuid.UUID
	rawName        string
	name           drug.Name
	rawDosage      string
	dosage         drug.Dosage
	quantityNeeded int
	priority       Priority
	maxDistanceKm  float64
	createdAt      time.Time
}

type Params struct {
	SeekerID       uuid.UUID
	Name           string
	Dosage         string
	QuantityNeeded int
	Priority       Priority
	MaxDistanceKm  float64
}

func NewRequest(p Params, now time.Time) (*Request, error) {
	rawName := strings.TrimSpace(p.Name)
	switch {
	case p.SeekerID == uuid.Nil:
		return nil, ErrMissingRequester
	case rawName == "":
		return nil, ErrEmptyName
	case p.QuantityNeeded <= 0:
		return nil, ErrInvalidQuantity
	case p.MaxDistanceKm < 0:
		return nil, ErrInvalidDistance
	}

	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	name, dosage := drug.Normalize(rawName, p.Dosage)

	return &Request{
		id:             uuid.New(),
		seekerID:       p.SeekerID,
		rawName:        rawName,
		name:           name,
		rawDosage:      strings.TrimSpace(p.Dosage),
		dosage:         dosage,
		quantityNeeded: p.QuantityNeeded,
		priority:       priority,
		maxDistanceKm:  p.MaxDistanceKm,
		createdAt:      now,
	}, nil
}

// HasDistanceLimit is false when MaxDistanceKm is zero (unbounded search).
func (r *Request) HasDistanceLimit() bool {
	return r.maxDistanceKm > 0
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) SeekerID() uuid.UUID    { return r.seekerID }
func (r *Request) RawName() string        { return r.rawName }
func (r *Request) Name() drug.Name        { return r.name }
func (r *Request) RawDosage() string      { return r.rawDosage }
func (r *Request) Dosage() drug.Dosage    { return r.dosage }
func (r *Request) QuantityNeeded() int    { return r.quantityNeeded }
func (r *Request) Priority() Priority     { return r.priority }
func (r *Request) MaxDistanceKm() float64 { return r.maxDistanceKm }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
