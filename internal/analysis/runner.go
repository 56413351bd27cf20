// Package analysis orchestrates one full run: load holdings, collect
// signals, evaluate, persist, render and deliver. The scheduler job, the
// CLI command and the API trigger all call the same runner.
package analysis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ats/lynchboard/internal/collector"
	"github.com/ats/lynchboard/internal/contracts"
	"github.com/ats/lynchboard/internal/delivery"
	"github.com/ats/lynchboard/internal/engine"
	"github.com/ats/lynchboard/internal/portfolio"
	"github.com/ats/lynchboard/internal/render"
	"github.com/ats/lynchboard/internal/report"
	"github.com/ats/lynchboard/pkg/config"
	"github.com/ats/lynchboard/pkg/logger"
)

// Runner executes analysis runs.
type Runner struct {
	cfg        *config.Config
	collector  *collector.Collector
	aggregator *engine.Aggregator
	repo       *report.Repository // nil when no database is configured
	mailer     *delivery.Mailer
	logger     *logger.Logger
}

// NewRunner wires a runner. repo may be nil; persistence is then skipped
// and only the rendered outputs are produced.
func NewRunner(cfg *config.Config, col *collector.Collector, repo *report.Repository, mailer *delivery.Mailer, log *logger.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		collector:  col,
		aggregator: engine.NewAggregator(log),
		repo:       repo,
		mailer:     mailer,
		logger:     log,
	}
}

// Run performs one complete analysis as of now and returns the report.
// Rendering or delivery problems are logged and do not fail the run; the
// report itself is the primary product.
func (r *Runner) Run(ctx context.Context) (*contracts.PortfolioReport, error) {
	asOf := time.Now().UTC()
	r.logger.WithField("as_of", asOf.Format(time.RFC3339)).Info("Starting portfolio analysis")

	positions, err := portfolio.Load(r.cfg.PortfolioFile)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}

	raws, collectSkipped := r.collector.Collect(ctx, positions, asOf)

	engineCfg := engine.ConfigFromAnalysis(r.cfg.Analysis, asOf)
	rep := r.aggregator.Aggregate(raws, engineCfg)

	// Holdings that never produced a signal join the engine's skip list
	rep.Skipped = append(rep.Skipped, collectSkipped...)

	if r.repo != nil {
		if err := r.repo.Save(ctx, rep); err != nil {
			return nil, fmt.Errorf("persist report: %w", err)
		}
	}

	r.writeDashboard(rep)
	r.sendDigest(rep)

	r.logger.WithFields(map[string]interface{}{
		"entries": rep.Count(),
		"skipped": len(rep.Skipped),
		"alerts":  rep.AlertTotal(),
	}).Info("Portfolio analysis completed")

	return rep, nil
}

func (r *Runner) writeDashboard(rep *contracts.PortfolioReport) {
	if r.cfg.DashboardFile == "" {
		return
	}

	html, err := render.Dashboard(rep)
	if err != nil {
		r.logger.WithError(err).Error("Dashboard rendering failed")
		return
	}
	if err := os.WriteFile(r.cfg.DashboardFile, []byte(html), 0o644); err != nil {
		r.logger.WithError(err).Error("Dashboard write failed")
		return
	}
	r.logger.WithField("file", r.cfg.DashboardFile).Info("Dashboard written")
}

func (r *Runner) sendDigest(rep *contracts.PortfolioReport) {
	if r.mailer == nil || !r.mailer.Enabled() {
		return
	}

	html, err := render.DigestHTML(rep)
	if err != nil {
		r.logger.WithError(err).Error("Digest rendering failed")
		return
	}
	if err := r.mailer.SendHTML(r.cfg.Email.Subject, html); err != nil {
		r.logger.WithError(err).Error("Digest delivery failed")
	}
}
