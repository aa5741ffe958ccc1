package httperr

import (
	"log/slog"
	"net/http"

	"rx-exchange/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type mapping struct {
	target error
	status int
	msg    string
}

// ordered: the first matching sentinel wins
var domainMappings = []mapping{
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header required"},
	{errs.ErrInvalidRequest, http.StatusBadRequest, "Invalid request"},
	{errs.ErrForbiddenActor, http.StatusForbidden, "Not a party to this resource"},
	{errs.ErrListingNotFound, http.StatusNotFound, "Listing not found"},
	{errs.ErrExchangeNotFound, http.StatusNotFound, "Exchange not found"},
	{errs.ErrConversationNotFound, http.StatusNotFound, "Conversation not found"},
	{errs.ErrMessageNotFound, http.StatusNotFound, "Message not found"},
	{errs.ErrInsufficientQuantity, http.StatusConflict, "Insufficient quantity"},
	{errs.ErrListingInUse, http.StatusConflict, "Listing has active exchanges"},
	{errs.ErrInvalidStateTransition, http.StatusConflict, "Exchange already handled"},
	{errs.ErrIdempotencyConflict, http.StatusConflict, "Idempotency key reused with a different request"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Request is currently being processed"},
	{errs.ErrJournalFailure, http.StatusInternalServerError, "Internal server error"},
}

// Status resolves err to an HTTP status and client message.
func Status(err error) (int, string) {
	for _, m := range domainMappings {
		if errs.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// AbortWithDomainError aborts with the status mapped from err. Client errors
// carry the error text as detail; server errors never do.
func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := Status(err)
	if errs.Is(err, errs.ErrConversationNotFound) {
		// a thread must exist for every exchange; a miss is a data error
		slog.Error("conversation lookup failed", "error", err.Error(), "path", c.Request.URL.Path)
	}

	var detail any
	if status < http.StatusInternalServerError && status != http.StatusNotFound {
		detail = err.Error()
	}
	AbortWithError(c, status, err, msg, detail)
}
