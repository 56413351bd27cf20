// Package handlers contains HTTP request handlers for the API.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ats/lynchboard/internal/render"
	"github.com/ats/lynchboard/internal/report"
	"github.com/ats/lynchboard/pkg/logger"
)

// ReportHandler serves persisted portfolio reports.
type ReportHandler struct {
	repo   *report.Repository
	logger *logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(repo *report.Repository, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		repo:   repo,
		logger: log,
	}
}

// Dashboard renders the latest report as an HTML page.
// GET /
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Report storage is not configured")
		return
	}

	rep, err := h.repo.GetLatest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest report")
		respondError(w, http.StatusInternalServerError, "Failed to load latest report")
		return
	}
	if rep == nil {
		respondError(w, http.StatusNotFound, "No report has been generated yet")
		return
	}

	html, err := render.Dashboard(rep)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render dashboard")
		respondError(w, http.StatusInternalServerError, "Failed to render dashboard")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// GetLatest returns the most recent report.
// GET /api/reports/latest
func (h *ReportHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Report storage is not configured")
		return
	}

	rep, err := h.repo.GetLatest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest report")
		respondError(w, http.StatusInternalServerError, "Failed to load latest report")
		return
	}
	if rep == nil {
		respondError(w, http.StatusNotFound, "No report found")
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// GetByDate returns the report for a specific run date.
// GET /api/reports/{date}
func (h *ReportHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Report storage is not configured")
		return
	}

	vars := mux.Vars(r)
	day, err := time.Parse("2006-01-02", vars["date"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	rep, err := h.repo.GetByDate(r.Context(), day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load report")
		respondError(w, http.StatusInternalServerError, "Failed to load report")
		return
	}
	if rep == nil {
		respondError(w, http.StatusNotFound, "No report found for that date")
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// GetHistory returns run summaries for a date range. Defaults to the
// last 30 days when no range is given.
// GET /api/reports/history?from=2026-08-01&to=2026-08-30
func (h *ReportHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		respondError(w, http.StatusServiceUnavailable, "Report storage is not configured")
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed
	}

	runs, err := h.repo.GetHistory(r.Context(), from, to)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load report history")
		respondError(w, http.StatusInternalServerError, "Failed to load report history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"from":  from.Format("2006-01-02"),
		"to":    to.Format("2006-01-02"),
		"count": len(runs),
		"runs":  runs,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
