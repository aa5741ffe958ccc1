//go:build unit

package exchangestore_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/infra/exchangestore"
	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func newExchange(t *testing.T, seeker, provider uuid.UUID) *exchange.Exchange {
	t.Helper()
	listingID := uuid.New()
	e, err := exchange.NewExchange(exchange.Params{
		ListingID:         listingID,
		SeekerID:          seeker,
		ProviderID:        provider,
		QuantityRequested: 5,
	}, listing.ReservationToken{ID: uuid.New(), ListingID: listingID, Quantity: 5}, now)
	require.NoError(t, err)
	return e
}

func TestStore(t *testing.T) {
	t.Run("insert and get return copies", func(t *testing.T) {
		store := exchangestore.NewStore()
		e := newExchange(t, uuid.New(), uuid.New())
		require.NoError(t, store.Insert(e))
		assert.Error(t, store.Insert(e))

		e.Cancel(now)
		got, err := store.Get(e.ID())
		require.NoError(t, err)
		assert.Equal(t, exchange.StateProposed, got.State())

		_, err = store.Get(uuid.New())
		assert.True(t, errs.Is(err, errs.ErrExchangeNotFound))
	})

	t.Run("failed update leaves exchange untouched", func(t *testing.T) {
		store := exchangestore.NewStore()
		e := newExchange(t, uuid.New(), uuid.New())
		require.NoError(t, store.Insert(e))

		boom := errors.New("journal down")
		_, err := store.Update(e.ID(), func(d *exchange.Exchange) error {
			d.Accept(now, time.Hour)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := store.Get(e.ID())
		require.NoError(t, err)
		assert.Equal(t, exchange.StateProposed, got.State())
	})

	t.Run("concurrent conflicting transitions have one winner", func(t *testing.T) {
		store := exchangestore.NewStore()
		e := newExchange(t, uuid.New(), uuid.New())
		require.NoError(t, store.Insert(e))

		var applied atomic.Int32
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Update(e.ID(), func(d *exchange.Exchange) error {
					var tr exchange.Transition
					if i%2 == 0 {
						tr = d.Accept(now, time.Hour)
					} else {
						tr = d.Decline(now)
					}
					if tr.Applied() {
						applied.Add(1)
					}
					return tr.Err()
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), applied.Load())
	})

	t.Run("list by hospital and overdue", func(t *testing.T) {
		store := exchangestore.NewStore()
		hospital := uuid.New()
		mine := newExchange(t, hospital, uuid.New())
		theirs := newExchange(t, uuid.New(), hospital)
		other := newExchange(t, uuid.New(), uuid.New())
		for _, e := range []*exchange.Exchange{mine, theirs, other} {
			require.NoError(t, store.Insert(e))
		}

		assert.Len(t, store.ListByHospital(hospital), 2)

		_, err := store.Update(theirs.ID(), func(d *exchange.Exchange) error {
			return d.Accept(now, time.Hour).Err()
		})
		require.NoError(t, err)

		assert.Empty(t, store.Overdue(now.Add(59*time.Minute)))
		assert.Equal(t, []uuid.UUID{theirs.ID()}, store.Overdue(now.Add(time.Hour)))
	})
}
