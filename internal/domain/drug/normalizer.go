package drug

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// noiseTokens carry no identity for matching: dosage forms, bare units and stopwords.
var noiseTokens = map[string]struct{}{
	"tab": {}, "tabs": {}, "tablet": {}, "tablets": {},
	"cap": {}, "caps": {}, "capsule": {}, "capsules": {},
	"mg": {}, "mcg": {}, "ug": {}, "g": {}, "ml": {}, "iu": {}, "unit": {}, "units": {},
	"and": {}, "with": {}, "of": {},
}

// Name is the canonical token set of a drug name: folded, de-noised,
// synonym-expanded, sorted and de-duplicated.
type Name struct {
	tokens []string
}

func NewName(tokens ...string) Name {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return Name{tokens: slices.Compact(out)}
}

func (n Name) Tokens() []string { return slices.Clone(n.tokens) }
func (n Name) IsEmpty() bool    { return len(n.tokens) == 0 }
func (n Name) Canonical() string {
	return strings.Join(n.tokens, " ")
}

func (n Name) Contains(token string) bool {
	_, found := slices.BinarySearch(n.tokens, token)
	return found
}

// Shared counts tokens present in both names.
func (n Name) Shared(o Name) int {
	shared := 0
	for _, t := range n.tokens {
		if o.Contains(t) {
			shared++
		}
	}
	return shared
}

func (n Name) Jaccard(o Name) float64 {
	shared := n.Shared(o)
	union := len(n.tokens) + len(o.tokens) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// Normalize canonicalizes a free-text drug name and dosage. A strength embedded in
// the name ("Amoxicillin 500mg") is cut out of the name and used when rawDosage is
// empty or unparseable.
func Normalize(rawName, rawDosage string) (Name, Dosage) {
	embedded, rest := extractDosage(fold(rawName))
	dosage := ParseDosage(rawDosage)
	if !dosage.IsValid() {
		dosage = embedded
	}
	return NewName(tokenize(rest)...), dosage
}

func NormalizeName(raw string) Name {
	name, _ := Normalize(raw, "")
	return name
}

func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, noise := noiseTokens[f]; noise || isNumeric(f) {
			continue
		}
		if generic, ok := Generic(f); ok {
			tokens = append(tokens, strings.Fields(generic)...)
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
