package kelly

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnparseableOdds is reported when a quotation has no leading integer
	ErrUnparseableOdds = errors.New("unparseable american odds")
	// ErrDegenerateOdds is reported when parseable odds produce a non-finite stake
	ErrDegenerateOdds = errors.New("degenerate odds produced a non-finite stake")
)

// Params holds the per-call sizing inputs. The engine has no defaults of its own.
type Params struct {
	Bankroll        float64 // currency units
	KellyMultiplier float64 // scales the raw Kelly fraction (0.5 = half Kelly)
}

// Outcome classifies a computed stake
type Outcome string

const (
	OutcomeSized       Outcome = "sized"
	OutcomeUnparseable Outcome = "unparseable"
	OutcomeDegenerate  Outcome = "degenerate"
)

// BetSize is a recommended stake.
// Amount keeps the raw arithmetic result, including NaN or Inf, so that legacy
// consumers see the same numbers; Outcome says whether it can be trusted.
type BetSize struct {
	Amount  float64
	Outcome Outcome
}

// Valid reports whether the stake was computed from parseable odds and is finite
func (b BetSize) Valid() bool {
	return b.Outcome == OutcomeSized
}

// Err returns the sentinel matching the outcome, or nil for a sized bet
func (b BetSize) Err() error {
	switch b.Outcome {
	case OutcomeUnparseable:
		return ErrUnparseableOdds
	case OutcomeDegenerate:
		return ErrDegenerateOdds
	default:
		return nil
	}
}

// String renders the amount with two decimals. Non-finite amounts render as
// "NaN" or "Infinity", which is what the page writer has always received.
func (b BetSize) String() string {
	return formatAmount(b.Amount)
}

func formatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Fraction returns the raw Kelly fraction f = (b*p - q) / b for net odds b and win probability p
func Fraction(b, p float64) float64 {
	q := 1.0 - p
	return (b*p - q) / b
}

// KellyBetSize sizes a wager at bookOdds when trueOdds reflect the fair price.
// The win probability is the rounded implied probability of trueOdds.
// The stake is max(0, f * multiplier * bankroll) and is never negative;
// NaN passes through the clamp unchanged.
func KellyBetSize(trueOdds, bookOdds string, params Params) BetSize {
	fair := ParseAmericanOdds(trueOdds)
	book := ParseAmericanOdds(bookOdds)

	b := book.Decimal() - 1
	p := fair.ImpliedProbability().Fraction()

	amount := math.Max(0, Fraction(b, p)*params.KellyMultiplier*params.Bankroll)

	outcome := OutcomeSized
	switch {
	case !fair.Parsed || !book.Parsed:
		outcome = OutcomeUnparseable
	case math.IsNaN(amount) || math.IsInf(amount, 0):
		outcome = OutcomeDegenerate
	}

	return BetSize{Amount: amount, Outcome: outcome}
}
