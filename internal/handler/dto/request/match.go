package request

import (
	"strings"

	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"

	"github.com/google/uuid"
)

type MatchRequest struct {
	DrugName       string  `json:"drug_name" binding:"required,max=200"`
	Dosage         string  `json:"dosage" binding:"omitempty,dosage"`
	QuantityNeeded int     `json:"quantity_needed" binding:"required,gt=0"`
	Priority       string  `json:"priority" binding:"omitempty,priority"`
	MaxDistanceKm  float64 `json:"max_distance_km" binding:"gte=0"`
	Sort           string  `json:"sort" binding:"omitempty,sort_order"`
	Limit          int     `json:"limit" binding:"gte=0,lte=100"`
}

func (r MatchRequest) ToParams(seekerID uuid.UUID) (search.Params, matching.Options) {
	return search.Params{
			SeekerID:       seekerID,
			Name:           r.DrugName,
			Dosage:         r.Dosage,
			QuantityNeeded: r.QuantityNeeded,
			Priority:       search.Priority(strings.ToLower(strings.TrimSpace(r.Priority))),
			MaxDistanceKm:  r.MaxDistanceKm,
		}, matching.Options{
			Sort:  matching.SortOrder(r.Sort),
			Limit: r.Limit,
		}
}
