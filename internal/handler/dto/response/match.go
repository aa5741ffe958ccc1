package response

import (
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CandidateResponse struct {
	Rank           int              `json:"rank"`
	ListingID      uuid.UUID        `json:"listing_id"`
	NameSimilarity float64          `json:"name_similarity"`
	DosageMatch    bool             `json:"dosage_match"`
	DistanceKm     float64          `json:"distance_km"`
	Available      int              `json:"available"`
	CompositeScore float64          `json:"composite_score"`
	Listing        *ListingResponse `json:"listing"`
}

type MatchResponse struct {
	RequestID        uuid.UUID            `json:"request_id"`
	NormalizedName   string               `json:"normalized_name"`
	NormalizedDosage string               `json:"normalized_dosage,omitempty"`
	Priority         string               `json:"priority"`
	Candidates       []*CandidateResponse `json:"candidates"`
}

func FromMatch(req *search.Request, candidates []matching.Candidate) (*MatchResponse, error) {
	res := &MatchResponse{
		RequestID:      req.ID(),
		NormalizedName: req.Name().Canonical(),
		Priority:       req.Priority().String(),
		Candidates:     make([]*CandidateResponse, 0, len(candidates)),
	}
	if d := req.Dosage(); d.IsValid() {
		res.NormalizedDosage = d.String()
	}
	for _, c := range candidates {
		item := &CandidateResponse{}
		if err := copier.Copy(item, &c); err != nil {
			return nil, err
		}
		item.Listing = FromSnapshot(c.Snapshot)
		res.Candidates = append(res.Candidates, item)
	}
	return res, nil
}
