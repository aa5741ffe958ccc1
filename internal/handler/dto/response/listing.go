package response

import (
	"time"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
	ID               uuid.UUID `json:"id"`
	HospitalID       uuid.UUID `json:"hospital_id"`
	DrugName         string    `json:"drug_name"`
	NormalizedName   string    `json:"normalized_name"`
	DIN              string    `json:"din,omitempty"`
	Dosage           string    `json:"dosage,omitempty"`
	NormalizedDosage string    `json:"normalized_dosage,omitempty"`
	Quantity         int       `json:"quantity"`
	Reserved         int       `json:"reserved"`
	Available        int       `json:"available"`
	ExpiryDate       *string   `json:"expiry_date,omitempty"`
	IsShareable      bool      `json:"is_shareable"`
	Notes            string    `json:"notes,omitempty"`
	DistanceKm       float64   `json:"distance_km"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromListing(l *listing.Listing, reserved int) *ListingResponse {
	res := &ListingResponse{
		ID:             l.ID(),
		HospitalID:     l.HospitalID(),
		DrugName:       l.RawName(),
		NormalizedName: l.Name().Canonical(),
		DIN:            l.DIN(),
		Dosage:         l.RawDosage(),
		Quantity:       l.Quantity(),
		Reserved:       reserved,
		Available:      max(l.Quantity()-reserved, 0),
		IsShareable:    l.Shareable(),
		Notes:          l.Notes(),
		DistanceKm:     l.DistanceKm(),
		CreatedAt:      l.CreatedAt(),
		UpdatedAt:      l.UpdatedAt(),
	}
	if d := l.Dosage(); d.IsValid() {
		res.NormalizedDosage = d.String()
	}
	if exp := l.Expiry(); exp != nil {
		s := exp.Format(time.DateOnly)
		res.ExpiryDate = &s
	}
	return res
}

func FromSnapshot(s listing.Snapshot) *ListingResponse {
	return FromListing(s.Listing, s.Reserved)
}

type ListingListResponse struct {
	Items  []*ListingResponse `json:"items"`
	Cursor *queries.Cursor    `json:"cursor,omitempty"`
}

func FromSnapshots(items []listing.Snapshot, next *queries.Cursor) *ListingListResponse {
	res := &ListingListResponse{Items: make([]*ListingResponse, len(items)), Cursor: next}
	for i, s := range items {
		res.Items[i] = FromSnapshot(s)
	}
	return res
}

type ImportRowResponse struct {
	Row       int        `json:"row"`
	ListingID *uuid.UUID `json:"listing_id,omitempty"`
	Error     string     `json:"error,omitempty"`
}

type ImportResponse struct {
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
	Rows    []*ImportRowResponse `json:"rows"`
}

func FromImportResults(results []commands.ImportResult) *ImportResponse {
	res := &ImportResponse{Rows: make([]*ImportRowResponse, len(results))}
	for i, r := range results {
		row := &ImportRowResponse{Row: r.Row}
		if r.Err != nil {
			row.Error = r.Err.Error()
			res.Failed++
		} else {
			id := r.Listing.ID()
			row.ListingID = &id
			res.Created++
		}
		res.Rows[i] = row
	}
	return res
}
