package kelly

import (
	"github.com/rs/zerolog"
)

// Engine wraps the sizing functions with logging. It keeps no state between calls
// and is safe for concurrent use.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a new sizing engine
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "kelly_engine").Logger(),
	}
}

// SizeTable sizes a scraped table block
func (e *Engine) SizeTable(raw string, params Params) []RowResult {
	e.logger.Debug().
		Float64("bankroll", params.Bankroll).
		Float64("kelly_multiplier", params.KellyMultiplier).
		Msg("sizing table block")

	rows := ParseTableBlock(raw, params)

	unsized := 0
	for _, row := range rows {
		if row.Status == OutcomeSized {
			continue
		}
		unsized++
		e.logger.Warn().
			Int("row", row.Row).
			Str("odds", row.Odds).
			Str("book_price", row.BookPrice).
			Str("status", string(row.Status)).
			Msg("row could not be sized")
	}

	e.logger.Info().
		Int("row_count", len(rows)).
		Int("unsized_count", unsized).
		Msg("table sizing complete")

	return rows
}

// SizeBet sizes a single wager
func (e *Engine) SizeBet(trueOdds, bookOdds string, params Params) BetSize {
	bet := KellyBetSize(trueOdds, bookOdds, params)
	if !bet.Valid() {
		e.logger.Warn().
			Str("true_odds", trueOdds).
			Str("book_odds", bookOdds).
			Str("status", string(bet.Outcome)).
			Msg("bet could not be sized")
	}
	return bet
}
