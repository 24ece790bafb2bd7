package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/validation"
)

// PreferenceHandler handles HTTP requests for per-user tax preferences.
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler with the provided service dependency.
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

// GetPreference handles GET requests for a user's tax preferences.
// Users with no stored row get the defaults.
//
// Endpoint: GET /api/preference/user/{uuid}
// Response: 200 OK with TaxPreference
// Error: 500 Internal Server Error if retrieval fails
func (h *PreferenceHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	pref, err := h.preferenceService.GetPreference(userID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePreferences.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pref)
}

// UpdatePreference handles PUT requests to update a user's tax preferences.
// Absent fields keep their current value; the merged result is returned.
//
// Endpoint: PUT /api/preference/user/{uuid}
// Request Body: UpdatePreferenceRequest (all fields optional)
// Response: 200 OK with the updated TaxPreference
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the update fails
func (h *PreferenceHandler) UpdatePreference(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePreferenceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePreference(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	pref, err := h.preferenceService.UpdatePreference(r.Context(), userID, req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePreferences.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, pref)
}
