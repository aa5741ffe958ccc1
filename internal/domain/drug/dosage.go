package drug

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitMg      Unit = "mg"
	UnitMl      Unit = "ml"
	UnitIU      Unit = "iu"
	UnitPercent Unit = "%"
	UnitMgPerMl Unit = "mg/ml"
	UnitIUPerMl Unit = "iu/ml"
)

type unitAlias struct {
	unit  Unit
	scale decimal.Decimal
}

// Mass units collapse to mg so "0.5 g" and "500 mg" compare equal.
var unitAliases = map[string]unitAlias{
	"mg":    {UnitMg, decimal.NewFromInt(1)},
	"g":     {UnitMg, decimal.NewFromInt(1000)},
	"gm":    {UnitMg, decimal.NewFromInt(1000)},
	"mcg":   {UnitMg, decimal.New(1, -3)},
	"ug":    {UnitMg, decimal.New(1, -3)},
	"μg":    {UnitMg, decimal.New(1, -3)},
	"ml":    {UnitMl, decimal.NewFromInt(1)},
	"iu":    {UnitIU, decimal.NewFromInt(1)},
	"unit":  {UnitIU, decimal.NewFromInt(1)},
	"units": {UnitIU, decimal.NewFromInt(1)},
	"%":     {UnitPercent, decimal.NewFromInt(1)},
}

var dosagePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([a-zμ%]+)(?:\s*/\s*(\d+(?:[.,]\d+)?)?\s*([a-z]+))?`)

// Dosage is a parsed strength: a decimal value in a canonical unit.
// The zero value means "no dosage given".
type Dosage struct {
	value decimal.Decimal
	unit  Unit
}

func NewDosage(value decimal.Decimal, unit Unit) Dosage {
	return Dosage{value: value, unit: unit}
}

// ParseDosage returns the first recognizable strength in raw, or the zero Dosage.
func ParseDosage(raw string) Dosage {
	d, _ := extractDosage(fold(raw))
	return d
}

func (d Dosage) IsValid() bool          { return d.unit != "" }
func (d Dosage) Value() decimal.Decimal { return d.value }
func (d Dosage) Unit() Unit             { return d.unit }

func (d Dosage) String() string {
	if !d.IsValid() {
		return ""
	}
	return d.value.String() + string(d.unit)
}

func (d Dosage) Equal(o Dosage) bool {
	return d.IsValid() && o.IsValid() && d.unit == o.unit && d.value.Equal(o.value)
}

// Within reports whether o is within a relative tolerance of d (0.05 = 5%).
func (d Dosage) Within(o Dosage, tolerance float64) bool {
	if !d.IsValid() || !o.IsValid() || d.unit != o.unit {
		return false
	}
	if d.value.Equal(o.value) {
		return true
	}
	diff := d.value.Sub(o.value).Abs()
	limit := decimal.Max(d.value, o.value).Mul(decimal.NewFromFloat(tolerance))
	return diff.LessThanOrEqual(limit)
}

// extractDosage finds the first valid strength in an already folded string and
// returns it together with the string with that strength cut out.
func extractDosage(s string) (Dosage, string) {
	for _, m := range dosagePattern.FindAllStringSubmatchIndex(s, -1) {
		if m[0] > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:m[0]])
			if unicode.IsLetter(prev) || unicode.IsDigit(prev) || prev == '.' {
				continue
			}
		}
		num := s[m[2]:m[3]]
		alias, ok := unitAliases[s[m[4]:m[5]]]
		if !ok {
			continue
		}
		value, err := decimal.NewFromString(strings.ReplaceAll(num, ",", "."))
		if err != nil {
			continue
		}
		value = value.Mul(alias.scale)
		unit := alias.unit
		end := m[5]

		if m[8] >= 0 && s[m[8]:m[9]] == "ml" && (unit == UnitMg || unit == UnitIU) {
			denom := decimal.NewFromInt(1)
			if m[6] >= 0 {
				if dv, derr := decimal.NewFromString(strings.ReplaceAll(s[m[6]:m[7]], ",", ".")); derr == nil && !dv.IsZero() {
					denom = dv
				}
			}
			value = value.Div(denom)
			if unit == UnitMg {
				unit = UnitMgPerMl
			} else {
				unit = UnitIUPerMl
			}
			end = m[9]
		}

		return Dosage{value: value, unit: unit}, s[:m[0]] + " " + s[end:]
	}
	return Dosage{}, s
}
