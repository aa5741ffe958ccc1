//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rx-exchange/internal/handler/httperr"
	"rx-exchange/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"wrapped not found", errs.Wrapf(errs.ErrListingNotFound, "listing %d", 7), http.StatusNotFound, "Listing not found"},
		{"marked invalid", errs.Mark(errors.New("quantity must be positive"), errs.ErrInvalidRequest), http.StatusBadRequest, "Invalid request"},
		{"missing key before invalid", errs.Mark(errs.ErrIdempotencyKeyRequired, errs.ErrInvalidRequest), http.StatusBadRequest, "Idempotency-Key header required"},
		{"forbidden", errs.ErrForbiddenActor, http.StatusForbidden, "Not a party to this resource"},
		{"stale transition", errs.Wrap(errs.ErrInvalidStateTransition, "respond"), http.StatusConflict, "Exchange already handled"},
		{"in use", errs.ErrListingInUse, http.StatusConflict, "Listing has active exchanges"},
		{"journal", errs.ErrJournalFailure, http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := httperr.Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestAbortWithDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		status     int
		wantDetail bool
	}{
		{"conflict carries detail", errs.Wrap(errs.ErrInsufficientQuantity, "reserve 40 of 30"), http.StatusConflict, true},
		{"not found hides detail", errs.ErrExchangeNotFound, http.StatusNotFound, false},
		{"server error hides detail", errors.New("pool closed"), http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			httperr.AbortWithDomainError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.True(t, c.IsAborted())
			require.Len(t, c.Errors, 1)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			_, hasDetail := body["detail"]
			assert.Equal(t, tt.wantDetail, hasDetail)
		})
	}
}
