package idempotency

import (
	"context"
	"sync"
	"time"

	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"

	"github.com/google/uuid"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

type Record struct {
	Key         uuid.UUID
	HospitalID  uuid.UUID
	Endpoint    string
	RequestHash string
	Status      Status
	ResultID    *uuid.UUID
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

type recordKey struct {
	key      uuid.UUID
	hospital uuid.UUID
}

// Store keeps idempotency keys per hospital. Keys are scoped by hospital so two
// hospitals reusing the same key never see each other's results.
type Store struct {
	mu      sync.Mutex
	records map[recordKey]*Record
	clock   clock.Clock
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		records: make(map[recordKey]*Record),
		clock:   clk,
	}
}

// TryInsert claims the key in processing state and reports whether this call
// won. When an unexpired record already exists nothing changes and callers
// read the existing record back with Get.
func (s *Store) TryInsert(_ context.Context, key, hospitalID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{key, hospitalID}
	if existing, ok := s.records[k]; ok && s.clock.Now().Before(existing.ExpiresAt) {
		return false, nil
	}
	s.records[k] = &Record{
		Key:         key,
		HospitalID:  hospitalID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		Status:      StatusProcessing,
		ExpiresAt:   expiresAt,
		CreatedAt:   s.clock.Now(),
	}
	return true, nil
}

func (s *Store) Get(_ context.Context, key, hospitalID uuid.UUID) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[recordKey{key, hospitalID}]
	if !ok || !s.clock.Now().Before(r.ExpiresAt) {
		return nil, errs.Newf("idempotency key %s not found", key)
	}
	out := *r
	return &out, nil
}

func (s *Store) Complete(_ context.Context, key, hospitalID, resultID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[recordKey{key, hospitalID}]
	if !ok {
		return errs.Newf("idempotency key %s not found", key)
	}
	r.Status = StatusCompleted
	r.ResultID = &resultID
	return nil
}

// Abandon drops a processing record after a failed attempt so the client may retry.
func (s *Store) Abandon(_ context.Context, key, hospitalID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := recordKey{key, hospitalID}
	if r, ok := s.records[k]; ok && r.Status == StatusProcessing {
		delete(s.records, k)
	}
}

func (s *Store) DeleteExpired(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	n := 0
	for k, r := range s.records {
		if !now.Before(r.ExpiresAt) {
			delete(s.records, k)
			n++
		}
	}
	return n
}
