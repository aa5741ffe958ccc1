//go:build unit

package api_test

import (
	"net/http"
	"slices"
	"testing"
	"time"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"
	"rx-exchange/internal/handler/api"
	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/internal/usecase/queries"
	"rx-exchange/tests/common/builder"
	"rx-exchange/tests/common/httptest"
	queriesmock "rx-exchange/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MatchHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockMatchQueries
	hospitalID  uuid.UUID
}

func (s *MatchHandlerTestSuite) SetupTest() {
	s.hospitalID = uuid.New()
	router, auth := newTestEngine(s.hospitalID)
	s.router = router

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockMatchQueries(s.mockCtrl)
	h := api.NewMatchHandler(s.mockQueries)
	s.router.POST("/matches", auth, h.Match)
}

func (s *MatchHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMatchHandlerSuite(t *testing.T) {
	suite.Run(t, new(MatchHandlerTestSuite))
}

func (s *MatchHandlerTestSuite) TestMatch() {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	params := search.Params{
		SeekerID:       s.hospitalID,
		Name:           "Amoxicillin",
		Dosage:         "500 mg",
		QuantityNeeded: 30,
		Priority:       search.PriorityHigh,
		MaxDistanceKm:  50,
	}
	req, err := search.NewRequest(params, now)
	s.Require().NoError(err)

	near := builder.NewListingBuilder().WithDistanceKm(4.5).WithQuantity(40).MustBuild()
	far := builder.NewListingBuilder().WithDrugName("Amoxicilin").WithDistanceKm(30).MustBuild()
	candidates := []matching.Candidate{
		{ListingID: near.ID(), RequestID: req.ID(), NameSimilarity: 1, DosageMatch: true, DistanceKm: 4.5, Available: 30, CompositeScore: 0.93, Rank: 1,
			Snapshot: listing.Snapshot{Listing: near, Reserved: 10}},
		{ListingID: far.ID(), RequestID: req.ID(), NameSimilarity: 0.91, DosageMatch: true, DistanceKm: 30, Available: 20, CompositeScore: 0.71, Rank: 2,
			Snapshot: listing.Snapshot{Listing: far}},
	}

	s.Run("ranked candidates", func() {
		s.mockQueries.EXPECT().
			Match(gomock.Any(), params, matching.Options{Sort: matching.SortDistance, Limit: 5}).
			Return(&queries.MatchResult{Request: req, Candidates: slices.Values(candidates)}, nil).Times(1)

		body := reqdto.MatchRequest{DrugName: "Amoxicillin", Dosage: "500 mg", QuantityNeeded: 30, Priority: " HIGH ", MaxDistanceKm: 50, Sort: "distance", Limit: 5}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/matches", body, testToken)

		var res resdto.MatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(req.ID(), res.RequestID)
		s.Equal("amoxicillin", res.NormalizedName)
		s.Equal("500mg", res.NormalizedDosage)
		s.Equal("high", res.Priority)
		s.Require().Len(res.Candidates, 2)
		s.Equal(1, res.Candidates[0].Rank)
		s.Equal(near.ID(), res.Candidates[0].ListingID)
		s.Equal(30, res.Candidates[0].Available)
		s.InDelta(0.93, res.Candidates[0].CompositeScore, 1e-9)
		s.Equal(10, res.Candidates[0].Listing.Reserved)
		s.Equal(far.ID(), res.Candidates[1].ListingID)
	})

	s.Run("no candidates", func() {
		s.mockQueries.EXPECT().Match(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&queries.MatchResult{Request: req, Candidates: slices.Values([]matching.Candidate(nil))}, nil).Times(1)

		body := reqdto.MatchRequest{DrugName: "Amoxicillin", QuantityNeeded: 1}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/matches", body, testToken)

		var res resdto.MatchResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Empty(res.Candidates)
	})

	s.Run("validation", func() {
		cases := []struct {
			name  string
			body  reqdto.MatchRequest
			field string
		}{
			{"missing name", reqdto.MatchRequest{QuantityNeeded: 1}, "drug_name"},
			{"zero quantity", reqdto.MatchRequest{DrugName: "Amoxicillin"}, "quantity_needed"},
			{"bad priority", reqdto.MatchRequest{DrugName: "Amoxicillin", QuantityNeeded: 1, Priority: "whenever"}, "priority"},
			{"bad sort", reqdto.MatchRequest{DrugName: "Amoxicillin", QuantityNeeded: 1, Sort: "price"}, "sort"},
			{"limit too large", reqdto.MatchRequest{DrugName: "Amoxicillin", QuantityNeeded: 1, Limit: 1000}, "limit"},
			{"negative distance", reqdto.MatchRequest{DrugName: "Amoxicillin", QuantityNeeded: 1, MaxDistanceKm: -1}, "max_distance_km"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/matches", tc.body, testToken)
				httptest.AssertFieldErrors(s.T(), rec, tc.field)
			})
		}
	})
}
