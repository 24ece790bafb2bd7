package handlers

import (
	"net/http"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/validation"
)

// HarvestHandler handles HTTP requests for tax-loss harvesting scans.
type HarvestHandler struct {
	harvestService *service.HarvestService
}

// NewHarvestHandler creates a new HarvestHandler with the provided service dependency.
func NewHarvestHandler(harvestService *service.HarvestService) *HarvestHandler {
	return &HarvestHandler{
		harvestService: harvestService,
	}
}

// FindOpportunities handles POST requests to scan a user's open lots for
// tax-loss harvesting opportunities. Optional request fields override the
// user's stored thresholds; prices in the body take precedence over the
// latest stored prices.
//
// Endpoint: POST /api/harvest/opportunities
// Request Body: FindOpportunitiesRequest (userId, thresholdPercent?, minAmount?, prices?)
// Response: 200 OK with one HarvestingOpportunity per losing open lot
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the scan fails
func (h *HarvestHandler) FindOpportunities(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.FindOpportunitiesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateFindOpportunities(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	opportunities, err := h.harvestService.FindOpportunities(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToFindOpportunities.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, opportunities)
}
