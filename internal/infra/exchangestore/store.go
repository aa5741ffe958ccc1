package exchangestore

import (
	"slices"
	"sync"
	"time"

	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
)

type entry struct {
	mu sync.Mutex
	ex *exchange.Exchange
}

// Store keeps exchanges in memory with one lock per exchange, so transitions
// on the same exchange are serialized and the first committer wins.
type Store struct {
	mu         sync.RWMutex
	entries    map[uuid.UUID]*entry
	byHospital map[uuid.UUID][]uuid.UUID
}

func NewStore() *Store {
	return &Store{
		entries:    make(map[uuid.UUID]*entry),
		byHospital: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *Store) Insert(e *exchange.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[e.ID()]; exists {
		return errs.Newf("exchange %s already stored", e.ID())
	}
	s.entries[e.ID()] = &entry{ex: e.Clone()}
	s.byHospital[e.SeekerID()] = append(s.byHospital[e.SeekerID()], e.ID())
	s.byHospital[e.ProviderID()] = append(s.byHospital[e.ProviderID()], e.ID())
	return nil
}

func (s *Store) lookup(id uuid.UUID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	en, ok := s.entries[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrExchangeNotFound, "exchange %s", id)
	}
	return en, nil
}

func (s *Store) Get(id uuid.UUID) (*exchange.Exchange, error) {
	en, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	en.mu.Lock()
	defer en.mu.Unlock()
	return en.ex.Clone(), nil
}

// Update runs fn on a copy of the exchange while holding its lock and keeps
// the copy only if fn succeeds. Side effects inside fn are ordered with
// respect to other updates of the same exchange.
func (s *Store) Update(id uuid.UUID, fn func(e *exchange.Exchange) error) (*exchange.Exchange, error) {
	en, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	en.mu.Lock()
	defer en.mu.Unlock()

	draft := en.ex.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	en.ex = draft
	return draft.Clone(), nil
}

// ListByHospital returns exchanges where the hospital is seeker or provider, newest first.
func (s *Store) ListByHospital(hospitalID uuid.UUID) []*exchange.Exchange {
	s.mu.RLock()
	ids := slices.Clone(s.byHospital[hospitalID])
	s.mu.RUnlock()

	out := make([]*exchange.Exchange, 0, len(ids))
	for _, id := range ids {
		if e, err := s.Get(id); err == nil {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *exchange.Exchange) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return out
}

// Overdue lists ids of Accepted exchanges whose deadline has passed at now.
func (s *Store) Overdue(now time.Time) []uuid.UUID {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, en := range s.entries {
		entries = append(entries, en)
	}
	s.mu.RUnlock()

	var ids []uuid.UUID
	for _, en := range entries {
		en.mu.Lock()
		if en.ex.IsOverdue(now) {
			ids = append(ids, en.ex.ID())
		}
		en.mu.Unlock()
	}
	return ids
}
