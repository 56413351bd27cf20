package engine

import (
	"sort"

	"github.com/ats/lynchboard/internal/contracts"
	"github.com/ats/lynchboard/pkg/logger"
)

// Aggregator runs the full evaluation pipeline over every holding and
// assembles the run's report. One bad row never fails the run: validation
// and invariant failures land in the report's skipped list.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// Aggregate normalizes, evaluates and reduces every raw signal, then
// shapes the report: display filtering, configured sort, summary counts.
// Summary counts always cover the full evaluated portfolio regardless of
// the small-position display filter.
func (a *Aggregator) Aggregate(raws []contracts.RawSignal, cfg Config) *contracts.PortfolioReport {
	evaluators := Evaluators()

	entries := make([]contracts.ReportEntry, 0, len(raws))
	skipped := make([]contracts.SkippedTicker, 0)
	counts := make(map[contracts.State]int)
	totalValue := 0.0

	for _, raw := range raws {
		sig, err := Normalize(raw)
		if err != nil {
			skipped = append(skipped, contracts.SkippedTicker{
				Ticker: raw.Ticker,
				Reason: err.Error(),
			})
			a.logger.WithFields(map[string]interface{}{
				"ticker": raw.Ticker,
				"error":  err.Error(),
			}).Warn("Signal rejected by normalizer")
			continue
		}

		verdicts := make([]contracts.PartialVerdict, 0, len(evaluators))
		for _, ev := range evaluators {
			verdicts = append(verdicts, ev.Evaluate(sig, cfg))
		}

		rec, err := Reduce(sig, verdicts)
		if err != nil {
			skipped = append(skipped, contracts.SkippedTicker{
				Ticker: sig.Ticker,
				Reason: err.Error(),
			})
			a.logger.WithFields(map[string]interface{}{
				"ticker": sig.Ticker,
				"error":  err.Error(),
			}).Error("Reducer rejected verdict set")
			continue
		}

		alertCount := 0
		for _, v := range verdicts {
			if v.Severity > contracts.SeverityInfo {
				alertCount++
			}
		}

		counts[rec.State]++
		totalValue += sig.MarketValue()

		entries = append(entries, contracts.ReportEntry{
			Signal:         sig,
			Recommendation: rec,
			GainPercent:    sig.GainPercent(),
			MarketValue:    sig.MarketValue(),
			AlertCount:     alertCount,
		})
	}

	// Display filter applies after counting so the digest's top-line
	// numbers are never silently incomplete
	if !cfg.ShowSmallPositions {
		visible := entries[:0]
		for _, e := range entries {
			if e.MarketValue >= cfg.SmallPositionFloor {
				visible = append(visible, e)
			}
		}
		entries = visible
	}

	sortEntries(entries, cfg.SortBy)

	evaluated := 0
	for _, n := range counts {
		evaluated += n
	}

	a.logger.WithFields(map[string]interface{}{
		"evaluated": evaluated,
		"displayed": len(entries),
		"skipped":   len(skipped),
		"counts":    counts,
	}).Info("Portfolio aggregation completed")

	return &contracts.PortfolioReport{
		GeneratedAt:   cfg.AsOf,
		Entries:       entries,
		Skipped:       skipped,
		SummaryCounts: counts,
		TotalValue:    totalValue,
	}
}

// sortEntries orders entries by the configured key with ticker ascending
// as the deterministic tie-break.
func sortEntries(entries []contracts.ReportEntry, key SortKey) {
	less := func(i, j int) bool {
		return entries[i].Signal.Ticker < entries[j].Signal.Ticker
	}

	switch key {
	case SortByWeight:
		less = func(i, j int) bool {
			if entries[i].Signal.PositionWeight != entries[j].Signal.PositionWeight {
				return entries[i].Signal.PositionWeight > entries[j].Signal.PositionWeight
			}
			return entries[i].Signal.Ticker < entries[j].Signal.Ticker
		}
	case SortByGainPercent:
		less = func(i, j int) bool {
			if entries[i].GainPercent != entries[j].GainPercent {
				return entries[i].GainPercent > entries[j].GainPercent
			}
			return entries[i].Signal.Ticker < entries[j].Signal.Ticker
		}
	case SortByAlerts:
		less = func(i, j int) bool {
			if entries[i].AlertCount != entries[j].AlertCount {
				return entries[i].AlertCount > entries[j].AlertCount
			}
			return entries[i].Signal.Ticker < entries[j].Signal.Ticker
		}
	}

	sort.SliceStable(entries, less)
}
