package exchange

import (
	"errors"
	"slices"
	"time"

	"rx-exchange/internal/domain/listing"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("quantity requested must be positive")
	ErrSelfExchange      = errors.New("cannot request stock from your own hospital")
	ErrMissingToken      = errors.New("reservation token is required")
	ErrTokenMismatch     = errors.New("reservation token does not match the listing")
	ErrMissingSeeker     = errors.New("seeker hospital id is required")
	ErrMissingProvider   = errors.New("provider hospital id is required")
	ErrNonPositiveWindow = errors.New("completion window must be positive")
)

type Params struct {
	RequestID         uuid.UUID
	ListingID         uuid.UUID
	SeekerID          uuid.UUID
	ProviderID        uuid.UUID
	DrugName          string
	QuantityRequested int
}

// Validate checks params before any stock is reserved.
func (p Params) Validate() error {
	switch {
	case p.QuantityRequested <= 0:
		return ErrInvalidQuantity
	case p.SeekerID == uuid.Nil:
		return ErrMissingSeeker
	case p.ProviderID == uuid.Nil:
		return ErrMissingProvider
	case p.SeekerID == p.ProviderID:
		return ErrSelfExchange
	}
	return nil
}

type Exchange struct {
	id                 uuid.UUID
	requestID          uuid.UUID
	listingID          uuid.UUID
	seekerID           uuid.UUID
	providerID         uuid.UUID
	drugName           string
	quantityRequested  int
	state              State
	reservation        listing.ReservationToken
	reservedQuantity   int
	createdAt          time.Time
	decidedAt          *time.Time
	completionDeadline *time.Time
	closedAt           *time.Time
}

// NewExchange creates a Proposed exchange holding the given reservation.
func NewExchange(p Params, token listing.ReservationToken, now time.Time) (*Exchange, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if token.IsZero() {
		return nil, ErrMissingToken
	}
	if token.ListingID != p.ListingID || token.Quantity != p.QuantityRequested {
		return nil, ErrTokenMismatch
	}
	requestID := p.RequestID
	if requestID == uuid.Nil {
		requestID = uuid.New()
	}
	return &Exchange{
		id:                uuid.New(),
		requestID:         requestID,
		listingID:         p.ListingID,
		seekerID:          p.SeekerID,
		providerID:        p.ProviderID,
		drugName:          p.DrugName,
		quantityRequested: p.QuantityRequested,
		state:             StateProposed,
		reservation:       token,
		reservedQuantity:  token.Quantity,
		createdAt:         now,
	}, nil
}

// Clone returns a deep copy so a transition can be tried without touching the original.
func (e *Exchange) Clone() *Exchange {
	c := *e
	c.decidedAt = cloneTime(e.decidedAt)
	c.completionDeadline = cloneTime(e.completionDeadline)
	c.closedAt = cloneTime(e.closedAt)
	return &c
}

func (e *Exchange) Respond(d Decision, now time.Time, window time.Duration) (Transition, error) {
	switch d {
	case DecisionAccept:
		if window <= 0 {
			return Transition{}, ErrNonPositiveWindow
		}
		return e.Accept(now, window), nil
	case DecisionDecline:
		return e.Decline(now), nil
	default:
		return Transition{}, ErrInvalidDecision
	}
}

// Accept keeps the reservation and starts the completion window, measured from creation.
func (e *Exchange) Accept(now time.Time, window time.Duration) Transition {
	t := e.move(StateAccepted, now, StateProposed)
	if t.Applied() {
		deadline := e.createdAt.Add(window)
		e.decidedAt = &now
		e.completionDeadline = &deadline
	}
	return t
}

func (e *Exchange) Decline(now time.Time) Transition {
	t := e.move(StateDeclined, now, StateProposed)
	if t.Applied() {
		e.decidedAt = &now
	}
	return t
}

func (e *Exchange) Complete(now time.Time) Transition {
	return e.move(StateCompleted, now, StateAccepted)
}

func (e *Exchange) Cancel(now time.Time) Transition {
	return e.move(StateCancelled, now, StateProposed, StateAccepted)
}

// Expire moves an overdue Accepted exchange to Expired.
func (e *Exchange) Expire(now time.Time) Transition {
	if !e.state.IsTerminal() && !e.IsOverdue(now) {
		return Transition{From: e.state, To: StateExpired, Outcome: OutcomeNotAllowed}
	}
	return e.move(StateExpired, now, StateAccepted)
}

func (e *Exchange) IsOverdue(now time.Time) bool {
	return e.state == StateAccepted && e.completionDeadline != nil && !now.Before(*e.completionDeadline)
}

func (e *Exchange) IsParty(hospitalID uuid.UUID) bool {
	return hospitalID == e.seekerID || hospitalID == e.providerID
}

func (e *Exchange) move(to State, now time.Time, allowedFrom ...State) Transition {
	t := Transition{From: e.state, To: to}
	switch {
	case e.state.IsTerminal():
		t.Outcome = OutcomeAlreadyTerminal
	case !slices.Contains(allowedFrom, e.state):
		t.Outcome = OutcomeNotAllowed
	default:
		e.state = to
		if to.IsTerminal() {
			e.closedAt = &now
			e.reservedQuantity = 0
		}
		t.Outcome = OutcomeApplied
	}
	return t
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (e *Exchange) ID() uuid.UUID                         { return e.id }
func (e *Exchange) RequestID() uuid.UUID                  { return e.requestID }
func (e *Exchange) ListingID() uuid.UUID                  { return e.listingID }
func (e *Exchange) SeekerID() uuid.UUID                   { return e.seekerID }
func (e *Exchange) ProviderID() uuid.UUID                 { return e.providerID }
func (e *Exchange) DrugName() string                      { return e.drugName }
func (e *Exchange) QuantityRequested() int                { return e.quantityRequested }
func (e *Exchange) State() State                          { return e.state }
func (e *Exchange) Reservation() listing.ReservationToken { return e.reservation }
func (e *Exchange) ReservedQuantity() int                 { return e.reservedQuantity }
func (e *Exchange) CreatedAt() time.Time                  { return e.createdAt }
func (e *Exchange) DecidedAt() *time.Time                 { return e.decidedAt }
func (e *Exchange) CompletionDeadline() *time.Time        { return e.completionDeadline }
func (e *Exchange) ClosedAt() *time.Time                  { return e.closedAt }
