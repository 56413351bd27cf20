package handlers

import (
	"net/http"

	"github.com/ats/lynchboard/internal/scheduler"
	"github.com/ats/lynchboard/pkg/logger"
)

// RunHandler triggers analysis runs and reports job statistics.
type RunHandler struct {
	scheduler *scheduler.Scheduler
	jobName   string
	logger    *logger.Logger
}

// NewRunHandler creates a new run handler.
func NewRunHandler(sched *scheduler.Scheduler, jobName string, log *logger.Logger) *RunHandler {
	return &RunHandler{
		scheduler: sched,
		jobName:   jobName,
		logger:    log,
	}
}

// Trigger starts an analysis run outside the schedule. The run executes
// asynchronously; poll /api/runs/stats for the outcome.
// POST /api/runs
func (h *RunHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.RunJob(h.jobName); err != nil {
		h.logger.WithError(err).Error("Failed to trigger analysis run")
		respondError(w, http.StatusInternalServerError, "Failed to trigger analysis run")
		return
	}

	h.logger.WithField("job", h.jobName).Info("Analysis run triggered")
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status": "started",
		"job":    h.jobName,
	})
}

// Stats returns per-job run statistics.
// GET /api/runs/stats
func (h *RunHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.scheduler.GetJobStats())
}
