//go:build unit

package exchange_test

import (
	"testing"
	"time"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 7 * 24 * time.Hour

var created = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func newProposed(t *testing.T) *exchange.Exchange {
	t.Helper()
	listingID := uuid.New()
	e, err := exchange.NewExchange(exchange.Params{
		ListingID:         listingID,
		SeekerID:          uuid.New(),
		ProviderID:        uuid.New(),
		DrugName:          "Amoxicillin",
		QuantityRequested: 20,
	}, listing.ReservationToken{ID: uuid.New(), ListingID: listingID, Quantity: 20}, created)
	require.NoError(t, err)
	return e
}

func terminal(t *testing.T, state exchange.State) *exchange.Exchange {
	t.Helper()
	e := newProposed(t)
	switch state {
	case exchange.StateDeclined:
		e.Decline(created)
	case exchange.StateCancelled:
		e.Cancel(created)
	case exchange.StateCompleted:
		e.Accept(created, window)
		e.Complete(created)
	case exchange.StateExpired:
		e.Accept(created, window)
		e.Expire(created.Add(window))
	}
	require.Equal(t, state, e.State())
	return e
}

func TestNewExchange(t *testing.T) {
	t.Run("starts proposed holding the reservation", func(t *testing.T) {
		e := newProposed(t)
		assert.Equal(t, exchange.StateProposed, e.State())
		assert.Equal(t, 20, e.ReservedQuantity())
		assert.NotEqual(t, uuid.Nil, e.RequestID())
		assert.Nil(t, e.CompletionDeadline())
	})

	t.Run("validation", func(t *testing.T) {
		same := uuid.New()
		listingID := uuid.New()
		token := listing.ReservationToken{ID: uuid.New(), ListingID: listingID, Quantity: 5}

		tests := []struct {
			name   string
			params exchange.Params
			token  listing.ReservationToken
			errIs  error
		}{
			{"zero quantity", exchange.Params{ListingID: listingID, SeekerID: uuid.New(), ProviderID: uuid.New()}, token, exchange.ErrInvalidQuantity},
			{"self exchange", exchange.Params{ListingID: listingID, SeekerID: same, ProviderID: same, QuantityRequested: 5}, token, exchange.ErrSelfExchange},
			{"missing token", exchange.Params{ListingID: listingID, SeekerID: uuid.New(), ProviderID: uuid.New(), QuantityRequested: 5}, listing.ReservationToken{}, exchange.ErrMissingToken},
			{"token for other quantity", exchange.Params{ListingID: listingID, SeekerID: uuid.New(), ProviderID: uuid.New(), QuantityRequested: 6}, token, exchange.ErrTokenMismatch},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				e, err := exchange.NewExchange(tt.params, tt.token, created)
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, e)
			})
		}
	})
}

func TestStateMachine(t *testing.T) {
	t.Run("accept sets deadline from creation", func(t *testing.T) {
		e := newProposed(t)
		decided := created.Add(2 * time.Hour)

		tr := e.Accept(decided, window)

		require.True(t, tr.Applied())
		assert.NoError(t, tr.Err())
		assert.Equal(t, exchange.StateAccepted, e.State())
		assert.Equal(t, created.Add(window), *e.CompletionDeadline())
		assert.Equal(t, decided, *e.DecidedAt())
		assert.Equal(t, 20, e.ReservedQuantity())
	})

	t.Run("decline releases reservation", func(t *testing.T) {
		e := newProposed(t)
		tr, err := e.Respond(exchange.DecisionDecline, created, window)
		require.NoError(t, err)
		assert.True(t, tr.Applied())
		assert.Equal(t, exchange.StateDeclined, e.State())
		assert.Zero(t, e.ReservedQuantity())
		assert.NotNil(t, e.ClosedAt())
	})

	t.Run("proposed cannot complete or expire", func(t *testing.T) {
		e := newProposed(t)

		tr := e.Complete(created)
		assert.Equal(t, exchange.OutcomeNotAllowed, tr.Outcome)
		assert.ErrorIs(t, tr.Err(), exchange.ErrInvalidTransition)

		tr = e.Expire(created.Add(30 * window))
		assert.False(t, tr.Applied())
		assert.Equal(t, exchange.StateProposed, e.State())
	})

	t.Run("accepted exchange expires only once overdue", func(t *testing.T) {
		e := newProposed(t)
		e.Accept(created, window)

		assert.False(t, e.IsOverdue(created.Add(window-time.Second)))
		assert.False(t, e.Expire(created.Add(window-time.Second)).Applied())

		assert.True(t, e.IsOverdue(created.Add(window)))
		assert.True(t, e.Expire(created.Add(window)).Applied())
		assert.Equal(t, exchange.StateExpired, e.State())
		assert.Zero(t, e.ReservedQuantity())
	})

	t.Run("cancel from proposed and accepted", func(t *testing.T) {
		e := newProposed(t)
		assert.True(t, e.Cancel(created).Applied())

		e = newProposed(t)
		e.Accept(created, window)
		assert.True(t, e.Cancel(created).Applied())
		assert.Equal(t, exchange.StateCancelled, e.State())
	})

	t.Run("terminal states reject every transition without change", func(t *testing.T) {
		for _, state := range []exchange.State{
			exchange.StateDeclined, exchange.StateCompleted, exchange.StateExpired, exchange.StateCancelled,
		} {
			t.Run(state.String(), func(t *testing.T) {
				e := terminal(t, state)
				closedAt := *e.ClosedAt()
				later := created.Add(100 * window)

				steps := []func() exchange.Transition{
					func() exchange.Transition { return e.Accept(later, window) },
					func() exchange.Transition { return e.Decline(later) },
					func() exchange.Transition { return e.Complete(later) },
					func() exchange.Transition { return e.Cancel(later) },
					func() exchange.Transition { return e.Expire(later) },
				}
				for _, step := range steps {
					tr := step()
					assert.Equal(t, exchange.OutcomeAlreadyTerminal, tr.Outcome)
					assert.ErrorIs(t, tr.Err(), exchange.ErrInvalidTransition)
				}

				assert.Equal(t, state, e.State())
				assert.Zero(t, e.ReservedQuantity())
				assert.Equal(t, closedAt, *e.ClosedAt())
			})
		}
	})

	t.Run("clone isolates trial transitions", func(t *testing.T) {
		e := newProposed(t)
		c := e.Clone()
		c.Accept(created, window)

		assert.Equal(t, exchange.StateProposed, e.State())
		assert.Nil(t, e.CompletionDeadline())
		assert.Equal(t, exchange.StateAccepted, c.State())
	})

	t.Run("invalid decision", func(t *testing.T) {
		_, err := exchange.ParseDecision("maybe")
		assert.ErrorIs(t, err, exchange.ErrInvalidDecision)

		d, err := exchange.ParseDecision(" ACCEPT ")
		require.NoError(t, err)
		assert.Equal(t, exchange.DecisionAccept, d)
	})
}

func TestParties(t *testing.T) {
	e := newProposed(t)
	assert.True(t, e.IsParty(e.SeekerID()))
	assert.True(t, e.IsParty(e.ProviderID()))
	assert.False(t, e.IsParty(uuid.New()))
}
