package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/kelly-sizer-service/internal/cache"
	"github.com/cypherlabdev/kelly-sizer-service/internal/metrics"
	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
	"github.com/cypherlabdev/kelly-sizer-service/internal/service"
)

// maxBodyBytes caps request bodies; a scraped table is a few KB
const maxBodyBytes = 1 << 20

// SizingHandler handles HTTP requests for bet sizing
type SizingHandler struct {
	service *service.SizingService
	logger  zerolog.Logger
}

// NewSizingHandler creates a new sizing HTTP handler
func NewSizingHandler(service *service.SizingService, logger zerolog.Logger) *SizingHandler {
	return &SizingHandler{
		service: service,
		logger:  logger.With().Str("component", "sizing_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *SizingHandler) RegisterRoutes(mux *http.ServeMux) {
	// POST /api/v1/sizing/table - Size a scraped odds table
	mux.HandleFunc("/api/v1/sizing/table", h.handleSizeTable)

	// POST /api/v1/sizing/bet - Size a single wager
	mux.HandleFunc("/api/v1/sizing/bet", h.handleSizeBet)

	// GET /api/v1/odds/:odds - Decimal odds and implied probability
	mux.HandleFunc("/api/v1/odds/", h.handleQuoteOdds)

	// GET /api/v1/sheets/:id - Get a cached sheet
	mux.HandleFunc("/api/v1/sheets/", h.handleGetSheet)

	// GET /api/v1/pages/sheets?url= - Recent sheets for a page
	mux.HandleFunc("/api/v1/pages/sheets", h.handleGetPageSheets)

	// GET|PUT /api/v1/settings?profile= - Bankroll and Kelly multiplier
	mux.HandleFunc("/api/v1/settings", h.handleSettings)
}

// handleSizeTable handles POST /api/v1/sizing/table
func (h *SizingHandler) handleSizeTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var table models.ScrapedTable
	if err := h.decode(w, r, &table); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sheet, err := h.service.SizeTable(r.Context(), &table, metrics.SourceHTTP)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("page_url", table.PageURL).
			Msg("failed to size table")
		h.errorResponse(w, http.StatusInternalServerError, "failed to size table")
		return
	}

	h.jsonResponse(w, http.StatusOK, sheet)
}

// handleSizeBet handles POST /api/v1/sizing/bet
func (h *SizingHandler) handleSizeBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BetRequest
	if err := h.decode(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TrueOdds == "" || req.BookOdds == "" {
		h.errorResponse(w, http.StatusBadRequest, "true_odds and book_odds are required")
		return
	}

	quote, err := h.service.SizeBet(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to size bet")
		h.errorResponse(w, http.StatusInternalServerError, "failed to size bet")
		return
	}

	h.jsonResponse(w, http.StatusOK, quote)
}

// handleQuoteOdds handles GET /api/v1/odds/:odds
func (h *SizingHandler) handleQuoteOdds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	odds := strings.TrimPrefix(r.URL.Path, "/api/v1/odds/")
	if odds == "" || strings.Contains(odds, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/odds/:odds")
		return
	}

	h.jsonResponse(w, http.StatusOK, h.service.QuoteOdds(odds))
}

// handleGetSheet handles GET /api/v1/sheets/:id
func (h *SizingHandler) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/sheets/")
	if id == "" || strings.Contains(id, "/") {
		h.errorResponse(w, http.StatusBadRequest, "invalid path: expected /api/v1/sheets/:id")
		return
	}

	sheet, err := h.service.GetSheet(r.Context(), id)
	if errors.Is(err, cache.ErrNotFound) {
		h.errorResponse(w, http.StatusNotFound, "sheet not found")
		return
	}
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("sheet_id", id).
			Msg("failed to retrieve sheet")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve sheet")
		return
	}

	h.jsonResponse(w, http.StatusOK, sheet)
}

// handleGetPageSheets handles GET /api/v1/pages/sheets?url=
func (h *SizingHandler) handleGetPageSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		h.errorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	sheets, err := h.service.GetSheetsByPage(r.Context(), pageURL)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("page_url", pageURL).
			Msg("failed to retrieve page sheets")
		h.errorResponse(w, http.StatusInternalServerError, "failed to retrieve sheets")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"page_url": pageURL,
		"count":    len(sheets),
		"sheets":   sheets,
	})
}

// handleSettings handles GET and PUT /api/v1/settings?profile=
func (h *SizingHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")

	switch r.Method {
	case http.MethodGet:
		current, err := h.service.GetSettings(r.Context(), profile)
		if err != nil {
			h.logger.Error().Err(err).Str("profile", profile).Msg("failed to load settings")
			h.errorResponse(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		h.jsonResponse(w, http.StatusOK, current)

	case http.MethodPut:
		var update models.SettingsUpdate
		if err := h.decode(w, r, &update); err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated, err := h.service.UpdateSettings(r.Context(), profile, update)
		if errors.Is(err, service.ErrInvalidSettings) {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			h.logger.Error().Err(err).Str("profile", profile).Msg("failed to update settings")
			h.errorResponse(w, http.StatusInternalServerError, "failed to update settings")
			return
		}

		h.logger.Info().
			Str("profile", updated.Profile).
			Str("bankroll", updated.Bankroll.StringFixed(2)).
			Float64("kelly_multiplier", updated.KellyMultiplier).
			Msg("settings updated")
		h.jsonResponse(w, http.StatusOK, updated)

	default:
		h.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// decode reads a JSON request body
func (h *SizingHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// jsonResponse writes a JSON response
func (h *SizingHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *SizingHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
