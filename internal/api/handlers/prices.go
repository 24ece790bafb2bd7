package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/validation"
)

// PriceHandler handles HTTP requests for symbol prices pushed by the
// market-data collaborator.
type PriceHandler struct {
	marketDataService *service.MarketDataService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(marketDataService *service.MarketDataService) *PriceHandler {
	return &PriceHandler{
		marketDataService: marketDataService,
	}
}

// UpsertPrices handles PUT requests to store the latest prices for a batch
// of symbols. Existing prices are overwritten per symbol.
//
// Endpoint: PUT /api/price
// Request Body: UpsertPricesRequest
// Response: 200 OK with {"updated": n}
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the upsert fails
func (h *PriceHandler) UpsertPrices(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertPricesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertPrices(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	updated, err := h.marketDataService.UpsertPrices(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// SetFeedToken handles PUT requests to store the market-data feed credential.
// The token is encrypted with the configured fernet key before it is stored.
//
// Endpoint: PUT /api/price/feed-token
// Request Body: SetFeedTokenRequest
// Response: 204 No Content
// Error: 400 Bad Request if the token is empty
// Error: 503 Service Unavailable if no encryption key is configured
// Error: 500 Internal Server Error if the store fails
func (h *PriceHandler) SetFeedToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetFeedTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "token is required")
		return
	}

	if err := h.marketDataService.SetFeedToken(r.Context(), req.Token); err != nil {
		if errors.Is(err, service.ErrEncryptionDisabled) {
			response.RespondError(w, http.StatusServiceUnavailable, service.ErrEncryptionDisabled.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store feed token", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
