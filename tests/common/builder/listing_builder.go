//go:build unit || e2e

package builder

import (
	"time"

	"rx-exchange/internal/domain/listing"
	reqdto "rx-exchange/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	HospitalID uuid.UUID
	DrugName   string
	DIN        string
	Dosage     string
	Quantity   int
	Expiry     *time.Time
	Shareable  bool
	Notes      string
	DistanceKm float64
	CreatedAt  time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		HospitalID: uuid.New(),
		DrugName:   "Amoxicillin",
		Dosage:     "500mg",
		Quantity:   100,
		Shareable:  true,
		DistanceKm: 5,
		CreatedAt:  time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) Params() listing.Params {
	return listing.Params{
		HospitalID: b.HospitalID,
		DrugName:   b.DrugName,
		DIN:        b.DIN,
		Dosage:     b.Dosage,
		Quantity:   b.Quantity,
		Expiry:     b.Expiry,
		Shareable:  b.Shareable,
		Notes:      b.Notes,
		DistanceKm: b.DistanceKm,
	}
}

// Build methods
func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.NewListing(b.Params(), b.CreatedAt)
}

func (b *ListingBuilder) MustBuild() *listing.Listing {
	l, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return l
}

func (b *ListingBuilder) BuildRequestDTO() reqdto.ListingRequest {
	req := reqdto.ListingRequest{
		DrugName:    b.DrugName,
		DIN:         b.DIN,
		Dosage:      b.Dosage,
		Quantity:    b.Quantity,
		Notes:       b.Notes,
		IsShareable: &b.Shareable,
		DistanceKm:  b.DistanceKm,
	}
	if b.Expiry != nil {
		req.ExpiryDate = b.Expiry.Format(time.DateOnly)
	}
	return req
}

// Fluent builder methods
func (b *ListingBuilder) WithHospitalID(id uuid.UUID) *ListingBuilder {
	b.HospitalID = id
	return b
}

func (b *ListingBuilder) WithDrugName(name string) *ListingBuilder {
	b.DrugName = name
	return b
}

func (b *ListingBuilder) WithDIN(din string) *ListingBuilder {
	b.DIN = din
	return b
}

func (b *ListingBuilder) WithDosage(dosage string) *ListingBuilder {
	b.Dosage = dosage
	return b
}

func (b *ListingBuilder) WithQuantity(qty int) *ListingBuilder {
	b.Quantity = qty
	return b
}

func (b *ListingBuilder) WithExpiry(expiry time.Time) *ListingBuilder {
	b.Expiry = &expiry
	return b
}

func (b *ListingBuilder) WithShareable(shareable bool) *ListingBuilder {
	b.Shareable = shareable
	return b
}

func (b *ListingBuilder) WithNotes(notes string) *ListingBuilder {
	b.Notes = notes
	return b
}

func (b *ListingBuilder) WithDistanceKm(km float64) *ListingBuilder {
	b.DistanceKm = km
	return b
}

func (b *ListingBuilder) WithCreatedAt(at time.Time) *ListingBuilder {
	b.CreatedAt = at
	return b
}
