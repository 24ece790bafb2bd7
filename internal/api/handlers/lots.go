package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duyet/finance-hub-sub002/internal/api/request"
	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/repository"
	"github.com/duyet/finance-hub-sub002/internal/service"
	"github.com/duyet/finance-hub-sub002/internal/validation"
)

// LotHandler handles HTTP requests for tax lot endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the ledger service.
type LotHandler struct {
	ledgerService *service.LedgerService
}

// NewLotHandler creates a new LotHandler with the provided service dependency.
func NewLotHandler(ledgerService *service.LedgerService) *LotHandler {
	return &LotHandler{
		ledgerService: ledgerService,
	}
}

// CreateLot handles POST requests to record an acquisition as a new tax lot.
//
// Endpoint: POST /api/lot
// Request Body: CreateLotRequest (userId, symbol, quantity, acquisitionDate, acquisitionPrice, costBasisOverride?)
// Response: 201 Created with TaxLot
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *LotHandler) CreateLot(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateLot(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	lot, err := h.ledgerService.CreateLot(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuantity) || errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateLot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, lot)
}

// LotsPerUser handles GET requests to list a user's tax lots.
// Open lots are always included; includeClosed=true adds closed lots, and
// taxYear narrows closed lots to dispositions within that calendar year.
//
// Endpoint: GET /api/lot/user/{uuid}?includeClosed=&symbol=&taxYear=
// Response: 200 OK with array of TaxLot, acquisition date descending
// Error: 400 Bad Request if user ID or query parameters are invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *LotHandler) LotsPerUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	includeClosed, err := queryBool(r, "includeClosed")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}
	taxYear, err := queryInt(r, "taxYear")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	lots, err := h.ledgerService.ListLots(userID, repository.LotFilter{
		Symbol:        r.URL.Query().Get("symbol"),
		IncludeClosed: includeClosed,
		TaxYear:       taxYear,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, lots)
}

// GetLot handles GET requests to retrieve a single tax lot by ID.
//
// Endpoint: GET /api/lot/{uuid}?userId=
// Response: 200 OK with TaxLot
// Error: 400 Bad Request if the lot or user ID is invalid
// Error: 404 Not Found if the lot does not exist for this user
// Error: 500 Internal Server Error if retrieval fails
func (h *LotHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "uuid")
	userID := r.URL.Query().Get("userId")

	if err := validation.ValidateUUID(userID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid userId", err.Error())
		return
	}

	lot, err := h.ledgerService.GetLot(lotID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrLotNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLotNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, lot)
}

// DisposeLot handles POST requests to dispose all or part of a lot.
// A partial disposition returns both the closed portion and the open remainder.
//
// Endpoint: POST /api/lot/{uuid}/dispose
// Request Body: DisposeLotRequest (userId, quantity, dispositionDate, dispositionPrice)
// Response: 200 OK with DispositionResult
// Error: 400 Bad Request on validation failure, non-positive or excessive quantity
// Error: 404 Not Found if the lot does not exist for this user
// Error: 409 Conflict if a concurrent writer keeps invalidating the update
// Error: 500 Internal Server Error if the disposition fails
func (h *LotHandler) DisposeLot(w http.ResponseWriter, r *http.Request) {
	lotID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.DisposeLotRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDisposeLot(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.ledgerService.DisposeLot(r.Context(), lotID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrLotNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrLotNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrInvalidQuantity),
			errors.Is(err, apperrors.ErrInsufficientQuantity),
			errors.Is(err, apperrors.ErrDispositionBeforeAcquisition):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, apperrors.ErrVersionConflict):
			response.RespondError(w, http.StatusConflict, apperrors.ErrVersionConflict.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDisposeLot.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
