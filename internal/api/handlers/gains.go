package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/validation"
)

// GainsHandler handles HTTP requests for capital gains summaries.
type GainsHandler struct {
	gainsService *service.GainsService
}

// NewGainsHandler creates a new GainsHandler with the provided service dependency.
func NewGainsHandler(gainsService *service.GainsService) *GainsHandler {
	return &GainsHandler{
		gainsService: gainsService,
	}
}

// RecomputeSummary handles POST requests to rebuild a user's per-symbol
// capital gains summaries for a tax year from closed lots.
//
// Endpoint: POST /api/tax/summary/{year}/user/{uuid}
// Response: 200 OK with the rebuilt summary rows, symbol ascending
// Error: 400 Bad Request if the year is invalid
// Error: 500 Internal Server Error if the rebuild fails
func (h *GainsHandler) RecomputeSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	year, err := pathYear(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid tax year", err.Error())
		return
	}

	summaries, err := h.gainsService.RecomputeSummary(r.Context(), userID, year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecomputeSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// GetSummaries handles GET requests to read the stored capital gains
// summaries for a user and tax year. An empty array means no summary has
// been computed (or no lots were closed) for that year.
//
// Endpoint: GET /api/tax/summary/{year}/user/{uuid}
// Response: 200 OK with array of CapitalGainsSummary, symbol ascending
// Error: 400 Bad Request if the year is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *GainsHandler) GetSummaries(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	year, err := pathYear(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid tax year", err.Error())
		return
	}

	summaries, err := h.gainsService.GetSummaries(userID, year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummaries.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// pathYear parses and range-checks the {year} URL parameter.
func pathYear(r *http.Request) (int, error) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, err
	}
	if err := validation.ValidateTaxYear(year); err != nil {
		return 0, err
	}
	return year, nil
}
