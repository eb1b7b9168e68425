package kelly

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// AmericanOdds is a parsed American odds quotation such as "+150" or "-110"
type AmericanOdds struct {
	Text   string // quotation as scraped
	Value  int
	Parsed bool
}

// ParseAmericanOdds reads the leading integer of s.
// Leading whitespace and an optional sign are accepted, trailing text is ignored
// ("150abc" is 150). A string without leading digits is not parsed.
// The |odds| >= 100 rule of real American odds is not enforced.
func ParseAmericanOdds(s string) AmericanOdds {
	odds := AmericanOdds{Text: s}

	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		if rest[0] == '-' {
			sign = "-"
		}
		rest = rest[1:]
	}

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return odds
	}

	v, err := strconv.Atoi(sign + rest[:end])
	if err != nil {
		// out of int range
		return odds
	}

	odds.Value = v
	odds.Parsed = true
	return odds
}

// Decimal converts the quotation to a decimal multiplier (payout per unit staked).
// Positive odds: 1 + o/100. Negative odds: 1 + 100/|o|.
// Zero takes the negative branch and yields +Inf; unparsed odds yield NaN.
func (o AmericanOdds) Decimal() float64 {
	if !o.Parsed {
		return math.NaN()
	}
	v := float64(o.Value)
	if v > 0 {
		return 1 + v/100
	}
	return 1 + 100/math.Abs(v)
}

// DecimalOdds converts an American odds string to decimal odds
func DecimalOdds(odds string) float64 {
	return ParseAmericanOdds(odds).Decimal()
}

// Probability is an implied win probability expressed as a percentage (0-100)
type Probability struct {
	Percent float64 // rounded to two decimals
	Parsed  bool
}

// Fraction returns the probability in [0,1]
func (p Probability) Fraction() float64 {
	return p.Percent / 100
}

// String renders the percentage with exactly two decimals
func (p Probability) String() string {
	return decimal.NewFromFloat(p.Percent).StringFixed(2)
}

// ImpliedProbability returns the probability embedded in the quotation, ignoring margin.
// Positive odds: 100/(o+100). Negative odds: |o|/(|o|+100).
// Unparsed odds report 0, which downstream treats as "no edge".
func (o AmericanOdds) ImpliedProbability() Probability {
	if !o.Parsed {
		return Probability{}
	}

	v := float64(o.Value)
	var pct float64
	if v > 0 {
		pct = 100 / (v + 100) * 100
	} else {
		pct = math.Abs(v) / (math.Abs(v) + 100) * 100
	}

	rounded, _ := decimal.NewFromFloat(pct).Round(2).Float64()
	return Probability{Percent: rounded, Parsed: true}
}

// ImpliedProbability parses odds and returns their implied probability
func ImpliedProbability(odds string) Probability {
	return ParseAmericanOdds(odds).ImpliedProbability()
}
