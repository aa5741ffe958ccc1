package request

import (
	"strings"
	"time"

	"rx-exchange/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const expiryDateLayout = "2006-01-02"

type ListingRequest struct {
	DrugName    string  `json:"drug_name" binding:"required,max=200"`
	DIN         string  `json:"din" binding:"omitempty,len=8,numeric"`
	Dosage      string  `json:"dosage" binding:"omitempty,dosage"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	ExpiryDate  string  `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes" binding:"max=1000"`
	IsShareable *bool   `json:"is_shareable"`
	DistanceKm  float64 `json:"distance_km" binding:"gte=0"`
}

// ToParams converts the request into listing params. Listings are shareable
// unless the caller opts out.
func (r ListingRequest) ToParams(hospitalID uuid.UUID) (listing.Params, error) {
	var p listing.Params
	if err := copier.Copy(&p, &r); err != nil {
		return listing.Params{}, err
	}
	p.HospitalID = hospitalID
	p.DrugName = strings.TrimSpace(r.DrugName)
	p.Notes = strings.TrimSpace(r.Notes)
	p.Shareable = r.IsShareable == nil || *r.IsShareable

	if r.ExpiryDate != "" {
		expiry, err := time.Parse(expiryDateLayout, r.ExpiryDate)
		if err != nil {
			return listing.Params{}, err
		}
		p.Expiry = &expiry
	}
	return p, nil
}
