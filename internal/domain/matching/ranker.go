package matching

import (
	"bytes"
	"cmp"
	"iter"
	"math"
	"slices"
	"time"

	"rx-exchange/internal/domain/listing"
	"rx-exchange/internal/domain/search"
	"rx-exchange/internal/pkg/clock"

	"github.com/google/uuid"
)

type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortDistance  SortOrder = "distance"
	SortQuantity  SortOrder = "quantity"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortRelevance, SortDistance, SortQuantity:
		return true
	default:
		return false
	}
}

type Options struct {
	Sort  SortOrder
	Limit int
}

// Candidate is a transient scored listing. It is never stored.
type Candidate struct {
	ListingID      uuid.UUID
	RequestID      uuid.UUID
	NameSimilarity float64
	DosageMatch    bool
	DistanceKm     float64
	Available      int
	CompositeScore float64
	Rank           int
	Snapshot       listing.Snapshot
}

// DistanceSource yields the distance between the seeker and a listing's provider.
type DistanceSource interface {
	DistanceKm(req *search.Request, l *listing.Listing) float64
}

// ListingDistance uses the precomputed distance carried on the listing.
type ListingDistance struct{}

func (ListingDistance) DistanceKm(_ *search.Request, l *listing.Listing) float64 {
	return l.DistanceKm()
}

type Config struct {
	Weights Weights
	// relative dosage tolerance for candidate generation
	DosageTolerance float64
	// distance at which the distance score reaches zero when the request is unbounded
	DistanceHorizonKm float64
}

func DefaultConfig() Config {
	return Config{
		Weights:           DefaultWeights(),
		DosageTolerance:   0.05,
		DistanceHorizonKm: 100,
	}
}

type Ranker struct {
	cfg       Config
	matcher   NameMatcher
	distances DistanceSource
	clock     clock.Clock
}

func NewRanker(cfg Config, matcher NameMatcher, clk clock.Clock) (*Ranker, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.DistanceHorizonKm <= 0 {
		cfg.DistanceHorizonKm = DefaultConfig().DistanceHorizonKm
	}
	if matcher == nil {
		matcher = NewTokenEditMatcher()
	}
	return &Ranker{
		cfg:       cfg,
		matcher:   matcher,
		distances: ListingDistance{},
		clock:     clk,
	}, nil
}

// WithDistanceSource returns a copy of the ranker that measures distance with ds.
func (r *Ranker) WithDistanceSource(ds DistanceSource) *Ranker {
	next := *r
	next.distances = ds
	return &next
}

// Rank scores snapshots against req and yields them most relevant first.
// Nothing is computed until the sequence is iterated, and every iteration
// re-reads snapshots from the source.
func (r *Ranker) Rank(req *search.Request, snapshots iter.Seq[listing.Snapshot], opts Options) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		now := r.clock.Now()

		var candidates []Candidate
		for s := range snapshots {
			if c, ok := r.score(req, s, now); ok {
				candidates = append(candidates, c)
			}
		}

		slices.SortFunc(candidates, r.comparator(req, opts.Sort))

		for i := range candidates {
			if opts.Limit > 0 && i >= opts.Limit {
				return
			}
			candidates[i].Rank = i + 1
			if !yield(candidates[i]) {
				return
			}
		}
	}
}

func (r *Ranker) score(req *search.Request, s listing.Snapshot, now time.Time) (Candidate, bool) {
	l := s.Listing
	available := s.Available()
	if !l.Shareable() || available <= 0 || l.IsExpired(now) {
		return Candidate{}, false
	}

	distance := r.distances.DistanceKm(req, l)
	if req.HasDistanceLimit() && distance > req.MaxDistanceKm() {
		return Candidate{}, false
	}

	dinMatch := l.DIN() != "" && l.DIN() == req.RawName()
	dosageNear := req.Dosage().Within(l.Dosage(), r.cfg.DosageTolerance)
	if !dinMatch && !dosageNear && !r.matcher.Overlaps(req.Name(), l.Name()) {
		return Candidate{}, false
	}

	nameSim := r.matcher.Similarity(req.Name(), l.Name())
	if dinMatch {
		nameSim = 100
	}
	dosageMatch := req.Dosage().Equal(l.Dosage())

	horizon := r.cfg.DistanceHorizonKm
	if req.HasDistanceLimit() {
		horizon = req.MaxDistanceKm()
	}
	distanceScore := max(0, 1-distance/horizon)
	quantityScore := min(1, float64(available)/float64(req.QuantityNeeded()))

	composite := r.cfg.Weights.composite(nameSim/100, boolScore(dosageMatch), distanceScore, quantityScore)

	return Candidate{
		ListingID:      l.ID(),
		RequestID:      req.ID(),
		NameSimilarity: round2(nameSim),
		DosageMatch:    dosageMatch,
		DistanceKm:     distance,
		Available:      available,
		CompositeScore: round2(composite),
		Snapshot:       s,
	}, true
}

func (r *Ranker) comparator(req *search.Request, order SortOrder) func(a, b Candidate) int {
	urgent := req.Priority().IsUrgent()

	relevance := func(a, b Candidate) int {
		if c := cmp.Compare(b.CompositeScore, a.CompositeScore); c != 0 {
			return c
		}
		if urgent {
			if c := compareExpiry(a, b); c != 0 {
				return c
			}
			if c := cmp.Compare(b.Available, a.Available); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return stable(a, b)
	}

	switch order {
	case SortDistance:
		return func(a, b Candidate) int {
			if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
				return c
			}
			return relevance(a, b)
		}
	case SortQuantity:
		return func(a, b Candidate) int {
			if c := cmp.Compare(b.Available, a.Available); c != 0 {
				return c
			}
			return relevance(a, b)
		}
	default:
		return relevance
	}
}

// compareExpiry puts earlier expiry first and listings without expiry last.
func compareExpiry(a, b Candidate) int {
	ea, eb := a.Snapshot.Listing.Expiry(), b.Snapshot.Listing.Expiry()
	switch {
	case ea == nil && eb == nil:
		return 0
	case ea == nil:
		return 1
	case eb == nil:
		return -1
	default:
		return ea.Compare(*eb)
	}
}

// stable orders older listings first, then by id, making the order total.
func stable(a, b Candidate) int {
	if c := a.Snapshot.Listing.CreatedAt().Compare(b.Snapshot.Listing.CreatedAt()); c != 0 {
		return c
	}
	return bytes.Compare(a.ListingID[:], b.ListingID[:])
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
