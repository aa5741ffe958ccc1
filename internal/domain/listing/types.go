package listing

import "github.com/google/uuid"

// Snapshot is a point-in-time view of a listing with its reserved quantity.
type Snapshot struct {
	Listing  *Listing
	Reserved int
}

func (s Snapshot) Available() int {
	return s.Listing.Quantity() - s.Reserved
}

// ReservationToken identifies one hold against a listing. Releasing or
// consuming a token more than once has no effect.
type ReservationToken struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	Quantity  int
}

func (t ReservationToken) IsZero() bool {
	return t.ID == uuid.Nil
}

type Filter struct {
	HospitalID        uuid.UUID
	ExcludeHospitalID uuid.UUID
	ShareableOnly     bool
	AvailableOnly     bool
}

func (f Filter) Matches(s Snapshot) bool {
	l := s.Listing
	if f.HospitalID != uuid.Nil && l.HospitalID() != f.HospitalID {
		return false
	}
	if f.ExcludeHospitalID != uuid.Nil && l.HospitalID() == f.ExcludeHospitalID {
		return false
	}
	if f.ShareableOnly && !l.Shareable() {
		return false
	}
	if f.AvailableOnly && s.Available() <= 0 {
		return false
	}
	return true
}
