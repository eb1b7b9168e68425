package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/kelly-sizer-service/pkg/kelly"
)

// DefaultProfile is the settings profile used when a caller names none
const DefaultProfile = "default"

// Settings holds the persisted sizing inputs of one profile
type Settings struct {
	Profile         string          `json:"profile"`
	Bankroll        decimal.Decimal `json:"bankroll"`         // currency units
	KellyMultiplier float64         `json:"kelly_multiplier"` // applied to the raw Kelly fraction
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToParams converts settings to engine parameters
func (s *Settings) ToParams() kelly.Params {
	return kelly.Params{
		Bankroll:        s.Bankroll.InexactFloat64(),
		KellyMultiplier: s.KellyMultiplier,
	}
}

// SettingsUpdate is the body of a settings change from the extension popup
type SettingsUpdate struct {
	Bankroll        float64 `json:"bankroll"`
	KellyMultiplier float64 `json:"kelly_multiplier"`
}

// Overrides are optional per-request replacements for stored settings
type Overrides struct {
	Bankroll        *float64 `json:"bankroll,omitempty"`
	KellyMultiplier *float64 `json:"kelly_multiplier,omitempty"`
}

// Apply returns params with any overrides substituted
func (o Overrides) Apply(params kelly.Params) kelly.Params {
	if o.Bankroll != nil {
		params.Bankroll = *o.Bankroll
	}
	if o.KellyMultiplier != nil {
		params.KellyMultiplier = *o.KellyMultiplier
	}
	return params
}

// ScrapedTable is one scrape of an odds table, as produced by the page scraper
type ScrapedTable struct {
	ScrapeID  string    `json:"scrape_id"`
	PageURL   string    `json:"page_url"`
	Text      string    `json:"text"`
	Profile   string    `json:"profile"`
	ScrapedAt time.Time `json:"scraped_at"`
	Overrides
}

// Sheet is a sized scrape
type Sheet struct {
	ID              string            `json:"id"`
	PageURL         string            `json:"page_url"`
	Profile         string            `json:"profile"`
	Bankroll        float64           `json:"bankroll"`
	KellyMultiplier float64           `json:"kelly_multiplier"`
	Rows            []kelly.RowResult `json:"rows"`
	RowCount        int               `json:"row_count"`
	UnsizedCount    int               `json:"unsized_count"`
	ScrapedAt       time.Time         `json:"scraped_at"`
	ComputedAt      time.Time         `json:"computed_at"`
}

// BetSizes returns the bet size text of every row in order
func (s *Sheet) BetSizes() []string {
	sizes := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		sizes[i] = row.BetSize
	}
	return sizes
}

// PageKey derives a stable, key-safe identifier for a page URL
func PageKey(pageURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(pageURL)).String()
}

// BetRequest asks for the stake on a single wager
type BetRequest struct {
	TrueOdds string `json:"true_odds"`
	BookOdds string `json:"book_odds"`
	Profile  string `json:"profile"`
	Overrides
}

// BetQuote is the sized answer to a BetRequest
type BetQuote struct {
	TrueOdds           string        `json:"true_odds"`
	BookOdds           string        `json:"book_odds"`
	DecimalOdds        *float64      `json:"decimal_odds"` // nil when not finite
	ImpliedProbability string        `json:"implied_probability"`
	BetSize            string        `json:"bet_size"`
	Status             kelly.Outcome `json:"status"`
	Bankroll           float64       `json:"bankroll"`
	KellyMultiplier    float64       `json:"kelly_multiplier"`
}

// OddsQuote describes a single American odds quotation
type OddsQuote struct {
	Odds               string   `json:"odds"`
	Parsed             bool     `json:"parsed"`
	DecimalOdds        *float64 `json:"decimal_odds"` // nil when not finite
	ImpliedProbability string   `json:"implied_probability"`
}

// KafkaScrapedTableMessage is the Kafka envelope carrying a scrape
type KafkaScrapedTableMessage struct {
	Table     ScrapedTable `json:"table"`
	Timestamp time.Time    `json:"timestamp"`
}
