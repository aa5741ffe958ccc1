package queries

import (
	"context"
	"iter"
	"log/slog"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/domain/matching"
	"rx-exchange/internal/domain/search"
	"rx-exchange/internal/pkg/clock"
	"rx-exchange/internal/pkg/errs"
	"rx-exchange/internal/usecase/shared"
)

type MatchResult struct {
	Request    *search.Request
	Candidates iter.Seq[matching.Candidate]
}

type MatchQueries interface {
	Match(ctx context.Context, p search.Params, opts matching.Options) (*MatchResult, error)
}

type matchQueriesImpl struct {
	inventory    shared.InventoryIndex
	ranker       *matching.Ranker
	defaultLimit int
	clock        clock.Clock
	logger       *slog.Logger
}

func NewMatchQueries(inventory shared.InventoryIndex, ranker *matching.Ranker, defaultLimit int, clk clock.Clock, logger *slog.Logger) MatchQueries {
	return &matchQueriesImpl{
		inventory:    inventory,
		ranker:       ranker,
		defaultLimit: defaultLimit,
		clock:        clk,
		logger:       logger,
	}
}

// Match ranks other hospitals' shareable stock against the request. The
// candidates are computed when iterated, against the live index.
func (q *matchQueriesImpl) Match(_ context.Context, p search.Params, opts matching.Options) (*MatchResult, error) {
	req, err := search.NewRequest(p, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRequest)
	}
	if opts.Sort == "" {
		opts.Sort = matching.SortRelevance
	}
	if !opts.Sort.IsValid() {
		return nil, errs.Wrapf(errs.ErrInvalidRequest, "unknown sort order %q", opts.Sort)
	}
	if opts.Limit <= 0 {
		opts.Limit = q.defaultLimit
	}

	q.logger.Debug("match request",
		slog.String("request_id", req.ID().String()),
		slog.String("name", req.Name().Canonical()),
		slog.String("priority", req.Priority().String()))

	pool := q.inventory.Query(listing.Filter{
		ExcludeHospitalID: req.SeekerID(),
		ShareableOnly:     true,
		AvailableOnly:     true,
	})
	return &MatchResult{Request: req, Candidates: q.ranker.Rank(req, pool, opts)}, nil
}
