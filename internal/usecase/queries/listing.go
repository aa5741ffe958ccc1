package queries

import (
	"bytes"
	"context"
	"time"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (listing.Snapshot, error)
	ListOwn(ctx context.Context, hospitalID uuid.UUID, cursor *Cursor, limit int) ([]listing.Snapshot, *Cursor, error)
}

type listingQueriesImpl struct {
	inventory shared.InventoryIndex
}

func NewListingQueries(inventory shared.InventoryIndex) ListingQueries {
	return &listingQueriesImpl{inventory: inventory}
}

func (q *listingQueriesImpl) GetByID(_ context.Context, id uuid.UUID) (listing.Snapshot, error) {
	return q.inventory.Get(id)
}

// ListOwn pages through the hospital's listings, oldest first.
func (q *listingQueriesImpl) ListOwn(_ context.Context, hospitalID uuid.UUID, cursor *Cursor, limit int) ([]listing.Snapshot, *Cursor, error) {
	limit = clampLimit(limit)

	var (
		afterAt  time.Time
		afterID  uuid.UUID
		keyset   bool
		snapshot []listing.Snapshot
	)
	if cursor != nil && cursor.After != "" {
		at, id, err := cursor.position()
		if err != nil {
			return nil, nil, err
		}
		afterAt, afterID, keyset = at, id, true
	}

	for s := range q.inventory.Query(listing.Filter{HospitalID: hospitalID}) {
		if keyset && !isAfter(s.Listing, afterAt, afterID) {
			continue
		}
		snapshot = append(snapshot, s)
		if len(snapshot) > limit {
			break
		}
	}

	var next *Cursor
	if len(snapshot) > limit {
		last := snapshot[limit-1].Listing
		next = cursorAfter(last.CreatedAt(), last.ID())
		snapshot = snapshot[:limit]
	}
	return snapshot, next, nil
}

func isAfter(l *listing.Listing, at time.Time, id uuid.UUID) bool {
	created := l.CreatedAt().Truncate(time.Microsecond)
	if c := created.Compare(at); c != 0 {
		return c > 0
	}
	lid := l.ID()
	return bytes.Compare(lid[:], id[:]) > 0
}
