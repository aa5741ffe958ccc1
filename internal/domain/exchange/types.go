package exchange

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid exchange transition")
	ErrInvalidDecision   = errors.New("decision must be accept or decline")
)

type State string

const (
	StateProposed  State = "proposed"
	StateAccepted  State = "accepted"
	StateDeclined  State = "declined"
	StateCompleted State = "completed"
	StateExpired   State = "expired"
	StateCancelled State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateProposed, StateAccepted, StateDeclined, StateCompleted, StateExpired, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	switch s {
	case StateDeclined, StateCompleted, StateExpired, StateCancelled:
		return true
	default:
		return false
	}
}

// HoldsReservation is true while stock is set aside for the exchange.
func (s State) HoldsReservation() bool {
	return s == StateProposed || s == StateAccepted
}

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

func ParseDecision(s string) (Decision, error) {
	d := Decision(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DecisionAccept, DecisionDecline:
		return d, nil
	default:
		return "", ErrInvalidDecision
	}
}

type Outcome int

const (
	OutcomeNotAllowed Outcome = iota
	OutcomeApplied
	OutcomeAlreadyTerminal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeAlreadyTerminal:
		return "already_terminal"
	default:
		return "not_allowed"
	}
}

// Transition is the result of a state-machine step. A rejected step leaves the
// exchange untouched; AlreadyTerminal separates "someone else finished this"
// from a plainly illegal move.
type Transition struct {
	From    State
	To      State
	Outcome Outcome
}

func (t Transition) Applied() bool {
	return t.Outcome == OutcomeApplied
}

func (t Transition) Err() error {
	switch t.Outcome {
	case OutcomeApplied:
		return nil
	case OutcomeAlreadyTerminal:
		return fmt.Errorf("%w: exchange is already %s", ErrInvalidTransition, t.From)
	default:
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, t.From, t.To)
	}
}
