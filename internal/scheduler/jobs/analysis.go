// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/ats/lynchboard/internal/analysis"
	"github.com/ats/lynchboard/pkg/logger"
)

// AnalysisJob runs the daily portfolio analysis.
type AnalysisJob struct {
	runner   *analysis.Runner
	schedule string
	logger   *logger.Logger
}

// NewAnalysisJob creates the daily analysis job with the configured cron
// schedule.
func NewAnalysisJob(runner *analysis.Runner, schedule string, log *logger.Logger) *AnalysisJob {
	return &AnalysisJob{
		runner:   runner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *AnalysisJob) Name() string {
	return "daily_analysis"
}

// Schedule returns the cron schedule
func (j *AnalysisJob) Schedule() string {
	return j.schedule
}

// Run executes one analysis run
func (j *AnalysisJob) Run(ctx context.Context) error {
	rep, err := j.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"entries": rep.Count(),
		"alerts":  rep.AlertTotal(),
	}).Info("Scheduled analysis finished")
	return nil
}
