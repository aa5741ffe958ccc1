//go:build e2e

package exchange_test

import (
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	reqdto "rx-exchange/internal/handler/dto/request"
	resdto "rx-exchange/internal/handler/dto/response"
	"rx-exchange/tests/common/authtest"
	"rx-exchange/tests/common/builder"
	"rx-exchange/tests/common/dbtest"
	"rx-exchange/tests/common/httptest"
	"rx-exchange/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	listingsURL      = "/api/listings"
	listingURL       = "/api/listings/%s"
	matchesURL       = "/api/matches"
	exchangesURL     = "/api/exchanges"
	exchangeStepURL  = "/api/exchanges/%s/%s"
	conversationsURL = "/api/conversations"
	messagesURL      = "/api/conversations/%s/messages"
	readURL          = "/api/conversations/%s/read"
)

type ExchangeSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ExchangeSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *ExchangeSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestExchangeSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ExchangeSuite))
}

// listings stay in the in-memory inventory for the whole suite; callers pick
// distinct drug names when a search must only see their own stock
func (s *ExchangeSuite) createListing(token, drugName string, qty int) resdto.ListingResponse {
	t := s.T()
	body := builder.NewListingBuilder().WithDrugName(drugName).WithQuantity(qty).BuildRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, listingsURL, body, token)

	var res resdto.ListingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	require.NotEqual(t, uuid.Nil, res.ID)
	return res
}

func (s *ExchangeSuite) propose(token string, key, listingID uuid.UUID, qty int, msg string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, exchangesURL,
		reqdto.ProposeExchangeRequest{ListingID: listingID, Quantity: qty, Message: msg}, token,
		map[string]string{"Idempotency-Key": key.String()})
}

func (s *ExchangeSuite) step(token string, exchangeID uuid.UUID, step string, body any) resdto.ExchangeResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(exchangeStepURL, exchangeID, step), body, token)

	var res resdto.ExchangeResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res
}

func (s *ExchangeSuite) listing(token string, id uuid.UUID) resdto.ListingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(listingURL, id), nil, token)

	var res resdto.ListingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res
}

func (s *ExchangeSuite) TestExchangeLifecycle() {
	s.Run("match, propose, accept and complete", func() {
		t := s.T()
		providerID, seekerID := uuid.New(), uuid.New()
		providerToken := s.jwt.GenerateToken(t, providerID)
		seekerToken := s.jwt.GenerateToken(t, seekerID)

		listing := s.createListing(providerToken, "Vancomycin", 50)

		// a misspelled search still finds the listing
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, matchesURL, reqdto.MatchRequest{
			DrugName: "vancomicin", Dosage: "500 mg", QuantityNeeded: 20, Priority: "high",
		}, seekerToken)
		var match resdto.MatchResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &match)
		require.Len(t, match.Candidates, 1)
		require.Equal(t, listing.ID, match.Candidates[0].ListingID)
		require.Equal(t, 50, match.Candidates[0].Available)

		key := uuid.New()
		first := s.propose(seekerToken, key, listing.ID, 20, "Needed for ward 4")
		var proposed resdto.ExchangeResponse
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &proposed)
		require.Equal(t, "proposed", proposed.State)
		require.Equal(t, providerID, proposed.ProviderID)

		// same key, same body: replayed without a second reservation
		replay := s.propose(seekerToken, key, listing.ID, 20, "Needed for ward 4")
		var replayed resdto.ExchangeResponse
		httptest.AssertSuccessResponse(t, replay, http.StatusOK, &replayed)
		httptest.AssertHeaders(t, replay, map[string]string{"Idempotent-Replayed": "true"})
		require.Equal(t, proposed.ID, replayed.ID)

		require.Equal(t, 1, dbtest.CountExchangeEvents(t, s.DB, proposed.ID))
		require.Equal(t, 2, dbtest.CountMessages(t, s.DB, proposed.ID), "system notice plus the opening message")

		held := s.listing(providerToken, listing.ID)
		require.Equal(t, 20, held.Reserved)
		require.Equal(t, 30, held.Available)

		accepted := s.step(providerToken, proposed.ID, "respond", reqdto.RespondExchangeRequest{Decision: "accept"})
		require.Equal(t, "accepted", accepted.State)
		require.NotNil(t, accepted.CompletionDeadline)

		completed := s.step(seekerToken, proposed.ID, "complete", nil)
		require.Equal(t, "completed", completed.State)
		require.Equal(t, 0, completed.ReservedQuantity)

		want := []string{"proposed", "accepted", "completed"}
		if diff := cmp.Diff(want, dbtest.ExchangeStates(t, s.DB, proposed.ID)); diff != "" {
			t.Errorf("journaled states mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, 4, dbtest.CountMessages(t, s.DB, proposed.ID))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(exchangeStepURL, proposed.ID, "history"), nil, providerToken)
		var history []resdto.ExchangeEventResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &history)
		require.Len(t, history, 3)
		require.Equal(t, seekerID, history[2].ActorID)

		settled := s.listing(providerToken, listing.ID)
		require.Equal(t, 30, settled.Quantity)
		require.Equal(t, 0, settled.Reserved)
	})

	s.Run("second hospital cannot over-reserve", func() {
		t := s.T()
		providerToken := s.jwt.GenerateToken(t, uuid.New())
		listing := s.createListing(providerToken, "Amoxicillin", 10)

		ok := s.propose(s.jwt.GenerateToken(t, uuid.New()), uuid.New(), listing.ID, 8, "")
		httptest.AssertSuccessResponse(t, ok, http.StatusCreated, nil)

		short := s.propose(s.jwt.GenerateToken(t, uuid.New()), uuid.New(), listing.ID, 5, "")
		httptest.AssertErrorResponse(t, short, http.StatusConflict, "Insufficient quantity")
	})

	s.Run("cancel releases stock and blocks further steps", func() {
		t := s.T()
		providerToken := s.jwt.GenerateToken(t, uuid.New())
		seekerToken := s.jwt.GenerateToken(t, uuid.New())
		listing := s.createListing(providerToken, "Amoxicillin", 10)

		res := s.propose(seekerToken, uuid.New(), listing.ID, 10, "")
		var ex resdto.ExchangeResponse
		httptest.AssertSuccessResponse(t, res, http.StatusCreated, &ex)
		require.Equal(t, 0, s.listing(providerToken, listing.ID).Available)

		cancelled := s.step(seekerToken, ex.ID, "cancel", nil)
		require.Equal(t, "cancelled", cancelled.State)
		require.Equal(t, 10, s.listing(providerToken, listing.ID).Available)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(exchangeStepURL, ex.ID, "respond"),
			reqdto.RespondExchangeRequest{Decision: "accept"}, providerToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already handled")

		if diff := cmp.Diff([]string{"proposed", "cancelled"}, dbtest.ExchangeStates(t, s.DB, ex.ID)); diff != "" {
			t.Errorf("journaled states mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("outsiders are rejected", func() {
		t := s.T()
		providerToken := s.jwt.GenerateToken(t, uuid.New())
		listing := s.createListing(providerToken, "Amoxicillin", 10)

		res := s.propose(s.jwt.GenerateToken(t, uuid.New()), uuid.New(), listing.ID, 2, "")
		var ex resdto.ExchangeResponse
		httptest.AssertSuccessResponse(t, res, http.StatusCreated, &ex)

		outsider := s.jwt.GenerateToken(t, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, exchangesURL+"/"+ex.ID.String(), nil, outsider)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, ex.ID), nil, outsider)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

func (s *ExchangeSuite) TestConversation() {
	s.Run("provider reads the seeker's messages", func() {
		t := s.T()
		providerID := uuid.New()
		providerToken := s.jwt.GenerateToken(t, providerID)
		seekerToken := s.jwt.GenerateToken(t, uuid.New())
		listing := s.createListing(providerToken, "Amoxicillin", 10)

		res := s.propose(seekerToken, uuid.New(), listing.ID, 3, "Can you ship today?")
		var ex resdto.ExchangeResponse
		httptest.AssertSuccessResponse(t, res, http.StatusCreated, &ex)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(messagesURL, ex.ID),
			reqdto.SendMessageRequest{Content: "Also need gloves"}, seekerToken)
		var sent resdto.MessageResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &sent)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, conversationsURL, nil, providerToken)
		var convs []resdto.ConversationSummaryResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &convs)
		require.Len(t, convs, 1)
		require.Equal(t, ex.ID, convs[0].ExchangeID)
		require.Positive(t, convs[0].UnreadCount)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, ex.ID), nil, providerToken)
		var thread resdto.ThreadResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &thread)
		require.Len(t, thread.Messages, 3)
		require.True(t, thread.Messages[0].IsSystem)
		require.Equal(t, sent.ID, thread.Messages[2].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(readURL, ex.ID),
			reqdto.MarkReadRequest{UpToMessageID: sent.ID}, providerToken)
		var marked resdto.MarkReadResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &marked)
		require.Positive(t, marked.Updated)
		require.Equal(t, "read", dbtest.MessageStatus(t, s.DB, sent.ID))
	})
}
