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

// TaxEventHandler handles HTTP requests for non-disposition tax events.
type TaxEventHandler struct {
	taxEventService *service.TaxEventService
}

// NewTaxEventHandler creates a new TaxEventHandler with the provided service dependency.
func NewTaxEventHandler(taxEventService *service.TaxEventService) *TaxEventHandler {
	return &TaxEventHandler{
		taxEventService: taxEventService,
	}
}

// RecordEvent handles POST requests to record an external tax event
// (dividend, interest, distribution, corporate action).
//
// Endpoint: POST /api/tax/event
// Request Body: RecordTaxEventRequest
// Response: 201 Created with TaxEvent
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if the insert fails
func (h *TaxEventHandler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RecordTaxEventRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecordTaxEvent(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	event, err := h.taxEventService.RecordEvent(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRecordEvent.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, event)
}

// EventsPerUser handles GET requests to list a user's tax events,
// optionally narrowed to a tax year and event type.
//
// Endpoint: GET /api/tax/event/user/{uuid}?taxYear=&type=
// Response: 200 OK with array of TaxEvent, event date ascending
// Error: 400 Bad Request if query parameters are invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TaxEventHandler) EventsPerUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	taxYear, err := queryInt(r, "taxYear")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}
	if taxYear != 0 {
		if err := validation.ValidateTaxYear(taxYear); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid tax year", err.Error())
			return
		}
	}

	eventType := r.URL.Query().Get("type")
	if eventType != "" && !validation.ValidEventType[eventType] {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidEventType.Error(), eventType)
		return
	}

	events, err := h.taxEventService.ListEvents(userID, taxYear, eventType)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEvents.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, events)
}
