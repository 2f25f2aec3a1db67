package handler

import (
	"net/http"

	"campusccms/repository"
)

// ReportHandler handles HTTP requests for admin aggregate reports
type ReportHandler struct {
	repo *repository.ReportRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(repo *repository.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// Categories handles GET /admin/reports/categories
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.repo.CountByCategory()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}

// Volume handles GET /admin/reports/volume?period=weekly|monthly|quarterly
func (h *ReportHandler) Volume(w http.ResponseWriter, r *http.Request) {
	period := repository.ReportPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = repository.PeriodMonthly
	}

	counts, err := h.repo.CountByPeriod(period)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}
