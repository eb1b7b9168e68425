package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/kelly-sizer-service/internal/config"
	"github.com/cypherlabdev/kelly-sizer-service/internal/metrics"
	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
	"github.com/cypherlabdev/kelly-sizer-service/internal/settings"
	"github.com/cypherlabdev/kelly-sizer-service/pkg/kelly"
)

// Settings update bounds
const (
	MinKellyMultiplier = 0.0
	MaxKellyMultiplier = 2.0
)

// ErrInvalidSettings is returned when a settings update is out of range
var ErrInvalidSettings = errors.New("invalid settings")

// SizingService resolves settings, runs the engine and caches sized sheets
type SizingService struct {
	sizer    Sizer
	cache    Cache
	settings SettingsStore
	defaults config.SizingConfig
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSizingService creates a new sizing service
func NewSizingService(
	sizer Sizer,
	cache Cache,
	settingsStore SettingsStore,
	defaults config.SizingConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SizingService {
	if defaults.DefaultProfile == "" {
		defaults.DefaultProfile = models.DefaultProfile
	}

	return &SizingService{
		sizer:    sizer,
		cache:    cache,
		settings: settingsStore,
		defaults: defaults,
		metrics:  m,
		logger:   logger.With().Str("component", "sizing_service").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *SizingService) profileOrDefault(profile string) string {
	if profile == "" {
		return s.defaults.DefaultProfile
	}
	return profile
}

// GetSettings returns the stored settings of a profile, or the configured defaults
// when the profile has never been saved
func (s *SizingService) GetSettings(ctx context.Context, profile string) (*models.Settings, error) {
	profile = s.profileOrDefault(profile)

	stored, err := s.settings.Get(ctx, profile)
	if errors.Is(err, settings.ErrNotFound) {
		defaults := s.defaults.ToSettings(profile)
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for profile %s: %w", profile, err)
	}

	return stored, nil
}

// UpdateSettings validates and stores new settings for a profile
func (s *SizingService) UpdateSettings(ctx context.Context, profile string, update models.SettingsUpdate) (*models.Settings, error) {
	if math.IsNaN(update.Bankroll) || math.IsInf(update.Bankroll, 0) || update.Bankroll <= 0 {
		return nil, fmt.Errorf("%w: bankroll must be positive", ErrInvalidSettings)
	}
	if math.IsNaN(update.KellyMultiplier) ||
		update.KellyMultiplier < MinKellyMultiplier || update.KellyMultiplier > MaxKellyMultiplier {
		return nil, fmt.Errorf("%w: kelly_multiplier must be between %.0f and %.0f",
			ErrInvalidSettings, MinKellyMultiplier, MaxKellyMultiplier)
	}

	updated := &models.Settings{
		Profile:         s.profileOrDefault(profile),
		Bankroll:        decimal.NewFromFloat(update.Bankroll),
		KellyMultiplier: update.KellyMultiplier,
		UpdatedAt:       s.now(),
	}

	if err := s.settings.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return updated, nil
}

// resolveParams builds engine parameters from stored settings and request overrides.
// A settings store failure falls back to the configured defaults.
func (s *SizingService) resolveParams(ctx context.Context, profile string, overrides models.Overrides) kelly.Params {
	current, err := s.GetSettings(ctx, profile)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("profile", profile).
			Msg("settings unavailable, using defaults")
		defaults := s.defaults.ToSettings(s.profileOrDefault(profile))
		current = &defaults
	}

	return overrides.Apply(current.ToParams())
}

// SizeTable sizes a scraped table and caches the resulting sheet
func (s *SizingService) SizeTable(ctx context.Context, table *models.ScrapedTable, source string) (*models.Sheet, error) {
	if table == nil {
		return nil, fmt.Errorf("scraped table is required")
	}

	profile := s.profileOrDefault(table.Profile)
	params := s.resolveParams(ctx, profile, table.Overrides)

	start := time.Now()
	rows := s.sizer.SizeTable(table.Text, params)
	s.metrics.SizingDuration.Observe(time.Since(start).Seconds())

	id := table.ScrapeID
	if id == "" {
		id = uuid.NewString()
	}

	now := s.now()
	scrapedAt := table.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = now
	}

	unsized := 0
	for _, row := range rows {
		if row.Status != kelly.OutcomeSized {
			unsized++
		}
	}

	sheet := &models.Sheet{
		ID:              id,
		PageURL:         table.PageURL,
		Profile:         profile,
		Bankroll:        params.Bankroll,
		KellyMultiplier: params.KellyMultiplier,
		Rows:            rows,
		RowCount:        len(rows),
		UnsizedCount:    unsized,
		ScrapedAt:       scrapedAt,
		ComputedAt:      now,
	}

	s.metrics.TablesSized.WithLabelValues(source).Inc()
	s.metrics.ObserveRows(rows)

	if err := s.cache.Set(ctx, sheet); err != nil {
		s.logger.Warn().
			Err(err).
			Str("sheet_id", sheet.ID).
			Msg("failed to cache sheet")
		// Don't fail the request on cache errors
	}

	s.logger.Info().
		Str("sheet_id", sheet.ID).
		Str("page_url", sheet.PageURL).
		Str("source", source).
		Int("row_count", sheet.RowCount).
		Int("unsized_count", sheet.UnsizedCount).
		Msg("sized and cached sheet")

	return sheet, nil
}

// SizeBet sizes a single wager
func (s *SizingService) SizeBet(ctx context.Context, req models.BetRequest) (*models.BetQuote, error) {
	if req.TrueOdds == "" || req.BookOdds == "" {
		return nil, fmt.Errorf("true_odds and book_odds are required")
	}

	params := s.resolveParams(ctx, req.Profile, req.Overrides)
	bet := s.sizer.SizeBet(req.TrueOdds, req.BookOdds, params)

	s.metrics.BetsSized.WithLabelValues(string(bet.Outcome)).Inc()

	return &models.BetQuote{
		TrueOdds:           req.TrueOdds,
		BookOdds:           req.BookOdds,
		DecimalOdds:        finiteOrNil(kelly.DecimalOdds(req.BookOdds)),
		ImpliedProbability: kelly.ImpliedProbability(req.TrueOdds).String(),
		BetSize:            bet.String(),
		Status:             bet.Outcome,
		Bankroll:           params.Bankroll,
		KellyMultiplier:    params.KellyMultiplier,
	}, nil
}

// QuoteOdds describes a single odds quotation
func (s *SizingService) QuoteOdds(odds string) *models.OddsQuote {
	parsed := kelly.ParseAmericanOdds(odds)

	return &models.OddsQuote{
		Odds:               odds,
		Parsed:             parsed.Parsed,
		DecimalOdds:        finiteOrNil(parsed.Decimal()),
		ImpliedProbability: parsed.ImpliedProbability().String(),
	}
}

// GetSheet retrieves a cached sheet
func (s *SizingService) GetSheet(ctx context.Context, id string) (*models.Sheet, error) {
	sheet, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sheet %s: %w", id, err)
	}
	return sheet, nil
}

// GetSheetsByPage retrieves the recent cached sheets of a page
func (s *SizingService) GetSheetsByPage(ctx context.Context, pageURL string) ([]*models.Sheet, error) {
	sheets, err := s.cache.GetByPage(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sheets for page: %w", err)
	}

	s.logger.Debug().
		Str("page_url", pageURL).
		Int("count", len(sheets)).
		Msg("retrieved sheets by page")

	return sheets, nil
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
