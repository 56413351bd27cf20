// Package report persists analysis runs for the history and dashboard
// endpoints. Report storage and retrieval happen only here.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ats/lynchboard/internal/contracts"
)

// Repository handles report run persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new report repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Init creates the backing table when it does not exist yet. One run per
// calendar day; re-running a day overwrites that day's report.
func (r *Repository) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS report_runs (
			run_date       date PRIMARY KEY,
			generated_at   timestamptz NOT NULL,
			total_value    double precision NOT NULL,
			entries        jsonb NOT NULL,
			skipped        jsonb NOT NULL,
			summary_counts jsonb NOT NULL,
			created_at     timestamptz NOT NULL DEFAULT now()
		)
	`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create report_runs table: %w", err)
	}
	return nil
}

// Save stores one report run, replacing any earlier run for the same day.
func (r *Repository) Save(ctx context.Context, rep *contracts.PortfolioReport) error {
	entriesJSON, err := json.Marshal(rep.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	skippedJSON, err := json.Marshal(rep.Skipped)
	if err != nil {
		return fmt.Errorf("failed to marshal skipped list: %w", err)
	}
	countsJSON, err := json.Marshal(rep.SummaryCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal summary counts: %w", err)
	}

	query := `
		INSERT INTO report_runs (
			run_date, generated_at, total_value, entries, skipped, summary_counts
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_date) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			total_value = EXCLUDED.total_value,
			entries = EXCLUDED.entries,
			skipped = EXCLUDED.skipped,
			summary_counts = EXCLUDED.summary_counts
	`

	_, err = r.pool.Exec(ctx, query,
		rep.GeneratedAt.UTC().Truncate(24*time.Hour), rep.GeneratedAt,
		rep.TotalValue, entriesJSON, skippedJSON, countsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}
	return nil
}

// GetLatest returns the most recent run, or nil when none exist yet.
func (r *Repository) GetLatest(ctx context.Context) (*contracts.PortfolioReport, error) {
	query := `
		SELECT generated_at, total_value, entries, skipped, summary_counts
		FROM report_runs
		ORDER BY run_date DESC
		LIMIT 1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query))
}

// GetByDate returns the run for one calendar day, or nil when that day
// has no run.
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*contracts.PortfolioReport, error) {
	query := `
		SELECT generated_at, total_value, entries, skipped, summary_counts
		FROM report_runs
		WHERE run_date = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, date.UTC().Truncate(24*time.Hour)))
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	GeneratedAt   time.Time               `json:"generated_at"`
	TotalValue    float64                 `json:"total_value"`
	SummaryCounts map[contracts.State]int `json:"summary_counts"`
}

// GetHistory lists run summaries between two dates, newest first.
func (r *Repository) GetHistory(ctx context.Context, from, to time.Time) ([]RunSummary, error) {
	query := `
		SELECT generated_at, total_value, summary_counts
		FROM report_runs
		WHERE run_date BETWEEN $1 AND $2
		ORDER BY run_date DESC
	`

	rows, err := r.pool.Query(ctx, query,
		from.UTC().Truncate(24*time.Hour), to.UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var history []RunSummary
	for rows.Next() {
		var summary RunSummary
		var countsJSON []byte
		if err := rows.Scan(&summary.GeneratedAt, &summary.TotalValue, &countsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		if err := json.Unmarshal(countsJSON, &summary.SummaryCounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary counts: %w", err)
		}
		history = append(history, summary)
	}
	return history, rows.Err()
}

func (r *Repository) scanOne(row pgx.Row) (*contracts.PortfolioReport, error) {
	var rep contracts.PortfolioReport
	var entriesJSON, skippedJSON, countsJSON []byte

	err := row.Scan(&rep.GeneratedAt, &rep.TotalValue, &entriesJSON, &skippedJSON, &countsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report run: %w", err)
	}

	if err := json.Unmarshal(entriesJSON, &rep.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	if err := json.Unmarshal(skippedJSON, &rep.Skipped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skipped list: %w", err)
	}
	if err := json.Unmarshal(countsJSON, &rep.SummaryCounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary counts: %w", err)
	}
	return &rep, nil
}
