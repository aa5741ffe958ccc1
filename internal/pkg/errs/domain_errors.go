package errs

import "errors"

// Domain-specific sentinel errors shared by the usecase and handler layers
var (
	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrForbiddenActor = errors.New("actor is not a party to this resource")

	// Inventory errors
	ErrListingNotFound      = errors.New("listing not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrListingInUse         = errors.New("listing has live reservations")

	// Exchange errors
	ErrExchangeNotFound       = errors.New("exchange not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Messaging errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with a different request")

	// Operation errors
	ErrJournalFailure = errors.New("journal operation failed")
)
