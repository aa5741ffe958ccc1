package matching

import (
	"rx-exchange/internal/domain/drug"

	"github.com/agext/levenshtein"
)

// NameMatcher scores how alike two normalized drug names are.
type NameMatcher interface {
	// Overlaps reports whether the names share at least one token.
	Overlaps(a, b drug.Name) bool
	// Similarity returns a score in [0, 100]; 100 only for identical canonical names.
	Similarity(a, b drug.Name) float64
}

// TokenEditMatcher blends token-set overlap with edit-distance similarity of the
// canonical strings. Tokens long enough to carry a typo ("amoxicilin") count as
// shared when their own edit similarity passes TokenThreshold.
type TokenEditMatcher struct {
	TokenThreshold float64
	MinTokenLength int
	OverlapWeight  float64
}

func NewTokenEditMatcher() *TokenEditMatcher {
	return &TokenEditMatcher{
		TokenThreshold: 0.85,
		MinTokenLength: 5,
		OverlapWeight:  0.6,
	}
}

func (m *TokenEditMatcher) Overlaps(a, b drug.Name) bool {
	return m.sharedTokens(a, b) > 0
}

func (m *TokenEditMatcher) Similarity(a, b drug.Name) float64 {
	if a.IsEmpty() || b.IsEmpty() {
		return 0
	}
	ca, cb := a.Canonical(), b.Canonical()
	if ca == cb {
		return 100
	}

	shared := m.sharedTokens(a, b)
	union := len(a.Tokens()) + len(b.Tokens()) - shared
	overlap := 0.0
	if union > 0 {
		overlap = float64(shared) / float64(union)
	}
	edit := levenshtein.Similarity(ca, cb, nil)

	score := (m.OverlapWeight*overlap + (1-m.OverlapWeight)*edit) * 100
	// reserve 100 for identical names
	return min(score, 99.99)
}

func (m *TokenEditMatcher) sharedTokens(a, b drug.Name) int {
	shared := 0
	bt := b.Tokens()
	for _, ta := range a.Tokens() {
		for _, tb := range bt {
			if m.tokensMatch(ta, tb) {
				shared++
				break
			}
		}
	}
	return shared
}

func (m *TokenEditMatcher) tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < m.MinTokenLength || len(b) < m.MinTokenLength {
		return false
	}
	return levenshtein.Similarity(a, b, nil) >= m.TokenThreshold
}
