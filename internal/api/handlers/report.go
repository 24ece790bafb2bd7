package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/duyet/finance-hub-sub002/internal/api/response"
	"github.com/duyet/finance-hub-sub002/internal/apperrors"
	"github.com/duyet/finance-hub-sub002/internal/service"
)

// ReportHandler handles HTTP requests for annual tax reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler with the provided service dependency.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetReport handles GET requests to build a user's annual tax report.
// Summaries are recomputed as part of the build so the report always
// reflects current lot data.
//
// Endpoint: GET /api/tax/report/{year}/user/{uuid}
// Response: 200 OK with TaxReport
// Error: 400 Bad Request if the year is invalid
// Error: 500 Internal Server Error if the build fails
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	year, err := pathYear(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid tax year", err.Error())
		return
	}

	report, err := h.reportService.BuildReport(r.Context(), userID, year)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
