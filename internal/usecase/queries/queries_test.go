//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"rx-exchange/internal/domain/conversation"
	"rx-exchange/internal/domain/exchange"
	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"
	"rx-exchange/internal/infra/exchangestore"
	"rx-exchange/internal/infra/idempotency"
	"rx-exchange/internal/infra/inventory"
	"rx-exchange/internal/infra/journal"
	"rx-exchange/internal/infra/thread"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/pkg/idgen"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/queries"
	"rx-exchange/internal/usecase/shared"
	"rx-exchange/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	clock     *clock.FakeClock
	cfg       config.Config
	inventory *inventory.Index
	threads   *thread.Store
	journal   *journal.Memory

	exchangeCmds  commands.ExchangeCommands
	matches       queries.MatchQueries
	listings      queries.ListingQueries
	exchanges     queries.ExchangeQueries
	conversations queries.ConversationQueries

	seeker   uuid.UUID
	provider uuid.UUID
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFakeClock(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC))
	s.cfg = config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.inventory = inventory.NewIndex(s.clock, logger)
	store := exchangestore.NewStore()
	s.journal = journal.NewMemory()
	s.threads = thread.NewStore(s.journal, idgen.NewULIDGenerator(), s.clock)
	notifier := shared.NewNotifier(s.threads, logger)
	expirer := shared.NewExpirer(store, s.inventory, s.journal, notifier, s.clock, logger)

	ranker, err := matching.NewRanker(matching.DefaultConfig(), matching.NewTokenEditMatcher(), s.clock)
	s.Require().NoError(err)

	s.exchangeCmds = commands.NewExchangeUseCase(store, s.inventory, s.threads, s.journal,
		idempotency.NewStore(s.clock), expirer, notifier, s.cfg.Exchange, s.clock, logger)
	s.matches = queries.NewMatchQueries(s.inventory, ranker, 2, s.clock, logger)
	s.listings = queries.NewListingQueries(s.inventory)
	s.exchanges = queries.NewExchangeQueries(store, s.journal, expirer)
	s.conversations = queries.NewConversationQueries(s.threads, logger)

	s.seeker, s.provider = uuid.New(), uuid.New()
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) add(b *builder.ListingBuilder) *listing.Listing {
	l := b.MustBuild()
	s.Require().NoError(s.inventory.Upsert(l))
	return l
}

func (s *QueriesTestSuite) propose(l *listing.Listing, qty int) *exchange.Exchange {
	res, err := s.exchangeCmds.Propose(s.ctx, commands.ProposeParams{
		IdempotencyKey: uuid.New(),
		SeekerID:       s.seeker,
		ListingID:      l.ID(),
		Quantity:       qty,
	})
	s.Require().NoError(err)
	return res.Exchange
}

func (s *QueriesTestSuite) TestMatch() {
	exact := s.add(builder.NewListingBuilder().WithHospitalID(s.provider).WithDrugName("Amoxicillin 500mg").WithDosage("").WithDistanceKm(5))
	synonym := s.add(builder.NewListingBuilder().WithHospitalID(uuid.New()).WithDrugName("Amoxil 500mg").WithDosage("").WithQuantity(75).WithDistanceKm(25))
	weaker := s.add(builder.NewListingBuilder().WithHospitalID(uuid.New()).WithDrugName("Amoxicillin 250mg").WithDosage("").WithQuantity(50).WithDistanceKm(12))
	s.add(builder.NewListingBuilder().WithHospitalID(s.seeker).WithDrugName("Amoxicillin 500mg").WithDosage(""))
	s.add(builder.NewListingBuilder().WithHospitalID(uuid.New()).WithDrugName("Amoxicillin 500mg").WithShareable(false))

	p := search.Params{SeekerID: s.seeker, Name: "Amoxicillin", Dosage: "500mg", QuantityNeeded: 50, MaxDistanceKm: 30}

	res, err := s.matches.Match(s.ctx, p, matching.Options{Limit: 10})
	s.Require().NoError(err)
	got := slices.Collect(res.Candidates)
	s.Require().Len(got, 3, "own and non-shareable listings are excluded")
	s.Equal([]uuid.UUID{exact.ID(), synonym.ID(), weaker.ID()}, []uuid.UUID{got[0].ListingID, got[1].ListingID, got[2].ListingID})
	s.Equal(res.Request.ID(), got[0].RequestID)

	s.Run("default limit", func() {
		res, err := s.matches.Match(s.ctx, p, matching.Options{})
		s.Require().NoError(err)
		s.Len(slices.Collect(res.Candidates), 2)
	})

	s.Run("reserved stock is reflected on the next iteration", func() {
		res, err := s.matches.Match(s.ctx, p, matching.Options{Limit: 10})
		s.Require().NoError(err)
		_, err = s.inventory.Reserve(exact.ID(), 100)
		s.Require().NoError(err)
		for c := range res.Candidates {
			s.NotEqual(exact.ID(), c.ListingID)
		}
	})

	s.Run("invalid input", func() {
		_, err := s.matches.Match(s.ctx, search.Params{SeekerID: s.seeker, Name: " ", QuantityNeeded: 1}, matching.Options{})
		s.True(errs.Is(err, errs.ErrInvalidRequest))

		_, err = s.matches.Match(s.ctx, p, matching.Options{Sort: "price"})
		s.True(errs.Is(err, errs.ErrInvalidRequest))
	})
}

func (s *QueriesTestSuite) TestListOwnPagination() {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var want []uuid.UUID
	for i := range 5 {
		l := s.add(builder.NewListingBuilder().WithHospitalID(s.provider).WithCreatedAt(base.Add(time.Duration(i) * time.Hour)))
		want = append(want, l.ID())
	}
	s.add(builder.NewListingBuilder())

	var (
		got    []uuid.UUID
		cursor *queries.Cursor
	)
	for {
		page, next, err := s.listings.ListOwn(s.ctx, s.provider, cursor, 2)
		s.Require().NoError(err)
		for _, snap := range page {
			got = append(got, snap.Listing.ID())
		}
		if next == nil {
			break
		}
		cursor = next
	}
	s.Equal(want, got)

	_, _, err := s.listings.ListOwn(s.ctx, s.provider, &queries.Cursor{After: "not-a-cursor"}, 2)
	s.True(errs.Is(err, errs.ErrInvalidRequest))
}

func (s *QueriesTestSuite) TestExchangeLazyExpiryOnRead() {
	l := s.add(builder.NewListingBuilder().WithHospitalID(s.provider).WithQuantity(50))
	ex := s.propose(l, 20)
	_, err := s.exchangeCmds.Respond(s.ctx, ex.ID(), s.provider, exchange.DecisionAccept)
	s.Require().NoError(err)

	got, err := s.exchanges.GetByID(s.ctx, s.seeker, ex.ID())
	s.Require().NoError(err)
	s.Equal(exchange.StateAccepted, got.State())

	s.clock.Add(s.cfg.Exchange.CompletionWindow)
	got, err = s.exchanges.GetByID(s.ctx, s.seeker, ex.ID())
	s.Require().NoError(err)
	s.Equal(exchange.StateExpired, got.State())

	snap, err := s.listings.GetByID(s.ctx, l.ID())
	s.Require().NoError(err)
	s.Equal(50, snap.Available())

	history, err := s.exchanges.History(s.ctx, s.provider, ex.ID())
	s.Require().NoError(err)
	states := make([]exchange.State, 0, len(history))
	for _, ev := range history {
		states = append(states, ev.To)
	}
	s.Equal([]exchange.State{exchange.StateProposed, exchange.StateAccepted, exchange.StateExpired}, states)
	s.Equal(conversation.SystemSenderID, history[2].ActorID)

	_, err = s.exchanges.GetByID(s.ctx, uuid.New(), ex.ID())
	s.True(errs.Is(err, errs.ErrForbiddenActor))
}

func (s *QueriesTestSuite) TestListExchangesExpiresOverdue() {
	l := s.add(builder.NewListingBuilder().WithHospitalID(s.provider).WithQuantity(50))
	first := s.propose(l, 10)
	s.clock.Add(time.Hour)
	second := s.propose(l, 10)
	_, err := s.exchangeCmds.Respond(s.ctx, first.ID(), s.provider, exchange.DecisionAccept)
	s.Require().NoError(err)

	s.clock.Add(s.cfg.Exchange.CompletionWindow)
	list, err := s.exchanges.ListByHospital(s.ctx, s.provider)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID(), list[0].ID())
	s.Equal(exchange.StateProposed, list[0].State())
	s.Equal(exchange.StateExpired, list[1].State())
}

func (s *QueriesTestSuite) TestThreadMarksDelivered() {
	l := s.add(builder.NewListingBuilder().WithHospitalID(s.provider))
	ex := s.propose(l, 5)
	_, err := s.threads.Append(s.ctx, ex.ID(), s.seeker, "hello")
	s.Require().NoError(err)

	summaries := s.conversations.ListByHospital(s.ctx, s.provider)
	s.Require().Len(summaries, 1)
	s.Equal(2, summaries[0].Unread)

	th, err := s.conversations.Thread(s.ctx, s.provider, ex.ID())
	s.Require().NoError(err)
	s.Equal(ex.ID(), th.Conversation.ID())
	s.Require().Len(th.Messages, 2)
	s.Equal(conversation.StatusDelivered, th.Messages[1].Status())

	_, err = s.conversations.Thread(s.ctx, uuid.New(), ex.ID())
	s.True(errs.Is(err, errs.ErrForbiddenActor))
	_, err = s.conversations.Thread(s.ctx, s.provider, uuid.New())
	s.True(errs.Is(err, errs.ErrConversationNotFound))
}
