package inventory

import (
	"bytes"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
)

// row is one listing plus its live reservations. Every field is guarded by mu.
type row struct {
	mu       sync.Mutex
	listing  *listing.Listing
	reserved int
	tokens   map[uuid.UUID]int
	removed  bool
}

func (r *row) snapshot() listing.Snapshot {
	return listing.Snapshot{Listing: r.listing, Reserved: r.reserved}
}

// Index is the arena of active listings. The table lock only covers row
// insertion and removal; quantities are guarded per row, so reservations on
// different listings never contend.
type Index struct {
	mu     sync.RWMutex
	rows   map[uuid.UUID]*row
	clock  clock.Clock
	logger *slog.Logger
}

func NewIndex(clk clock.Clock, logger *slog.Logger) *Index {
	return &Index{
		rows:   make(map[uuid.UUID]*row),
		clock:  clk,
		logger: logger,
	}
}

func (ix *Index) lookup(id uuid.UUID) (*row, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	r, ok := ix.rows[id]
	return r, ok
}

// Upsert inserts a listing or replaces an existing one. A replacement may not
// drop total quantity below what is currently reserved.
func (ix *Index) Upsert(l *listing.Listing) error {
	ix.mu.Lock()
	r, ok := ix.rows[l.ID()]
	if !ok {
		ix.rows[l.ID()] = &row{listing: l, tokens: make(map[uuid.UUID]int)}
		ix.mu.Unlock()
		return nil
	}
	ix.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removed {
		return errs.Wrapf(errs.ErrListingNotFound, "listing %s", l.ID())
	}
	if l.Quantity() < r.reserved {
		return errs.Wrapf(errs.ErrInsufficientQuantity,
			"listing %s: quantity %d is below reserved %d", l.ID(), l.Quantity(), r.reserved)
	}
	r.listing = l
	return nil
}

// Remove deletes a listing that has no live reservations.
func (ix *Index) Remove(id uuid.UUID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	r, ok := ix.rows[id]
	if !ok {
		return errs.Wrapf(errs.ErrListingNotFound, "listing %s", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reserved > 0 {
		return errs.Wrapf(errs.ErrListingInUse, "listing %s has %d units reserved", id, r.reserved)
	}
	r.removed = true
	delete(ix.rows, id)
	return nil
}

func (ix *Index) Get(id uuid.UUID) (listing.Snapshot, error) {
	r, ok := ix.lookup(id)
	if !ok {
		return listing.Snapshot{}, errs.Wrapf(errs.ErrListingNotFound, "listing %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removed {
		return listing.Snapshot{}, errs.Wrapf(errs.ErrListingNotFound, "listing %s", id)
	}
	return r.snapshot(), nil
}

// Reserve sets qty units aside. It never waits for stock: when the listing
// cannot cover qty right now it fails with ErrInsufficientQuantity.
func (ix *Index) Reserve(id uuid.UUID, qty int) (listing.ReservationToken, error) {
	if qty <= 0 {
		return listing.ReservationToken{}, errs.Wrapf(errs.ErrInvalidRequest, "reserve quantity %d", qty)
	}
	r, ok := ix.lookup(id)
	if !ok {
		return listing.ReservationToken{}, errs.Wrapf(errs.ErrListingNotFound, "listing %s", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removed {
		return listing.ReservationToken{}, errs.Wrapf(errs.ErrListingNotFound, "listing %s", id)
	}
	if available := r.listing.Quantity() - r.reserved; available < qty {
		return listing.ReservationToken{}, errs.Wrapf(errs.ErrInsufficientQuantity,
			"listing %s: %d available, %d requested", id, available, qty)
	}

	token := listing.ReservationToken{ID: uuid.New(), ListingID: id, Quantity: qty}
	r.tokens[token.ID] = qty
	r.reserved += qty
	return token, nil
}

// Release returns reserved units to the listing. Unknown or already released
// tokens are ignored.
func (ix *Index) Release(token listing.ReservationToken) {
	if token.IsZero() {
		return
	}
	r, ok := ix.lookup(token.ListingID)
	if !ok {
		ix.logger.Debug("release for unknown listing ignored", "listing_id", token.ListingID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	qty, held := r.tokens[token.ID]
	if !held {
		return
	}
	delete(r.tokens, token.ID)
	r.reserved -= qty
}

// Consume turns a reservation into a permanent stock decrement. Consuming a
// token that is no longer held changes nothing.
func (ix *Index) Consume(token listing.ReservationToken) (listing.Snapshot, error) {
	r, ok := ix.lookup(token.ListingID)
	if !ok {
		return listing.Snapshot{}, errs.Wrapf(errs.ErrListingNotFound, "listing %s", token.ListingID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	qty, held := r.tokens[token.ID]
	if !held {
		return r.snapshot(), nil
	}

	next, err := r.listing.ConsumeStock(qty, ix.clock.Now())
	if err != nil {
		return listing.Snapshot{}, errs.Wrap(err, "consume reservation")
	}
	delete(r.tokens, token.ID)
	r.reserved -= qty
	r.listing = next
	return r.snapshot(), nil
}

// Query yields snapshots matching f, oldest listing first. Each iteration takes
// fresh snapshots; rows are read one at a time, so the result is not a single
// consistent cut across listings.
func (ix *Index) Query(f listing.Filter) iter.Seq[listing.Snapshot] {
	return func(yield func(listing.Snapshot) bool) {
		ix.mu.RLock()
		rows := make([]*row, 0, len(ix.rows))
		for _, r := range ix.rows {
			rows = append(rows, r)
		}
		ix.mu.RUnlock()

		snaps := make([]listing.Snapshot, 0, len(rows))
		for _, r := range rows {
			r.mu.Lock()
			removed, s := r.removed, r.snapshot()
			r.mu.Unlock()
			if !removed && f.Matches(s) {
				snaps = append(snaps, s)
			}
		}

		slices.SortFunc(snaps, func(a, b listing.Snapshot) int {
			if c := a.Listing.CreatedAt().Compare(b.Listing.CreatedAt()); c != 0 {
				return c
			}
			ida, idb := a.Listing.ID(), b.Listing.ID()
			return bytes.Compare(ida[:], idb[:])
		})

		for _, s := range snaps {
			if !yield(s) {
				return
			}
		}
	}
}
