package contracts

import "time"

// ReportEntry pairs a ticker's signal with its recommendation. AlertCount
// is the number of non-info rationale findings, precomputed so renderers
// never re-derive it.
type ReportEntry struct {
	Signal         TickerSignal   `json:"signal"`
	Recommendation Recommendation `json:"recommendation"`
	GainPercent    float64        `json:"gain_percent"`
	MarketValue    float64        `json:"market_value"`
	AlertCount     int            `json:"alert_count"`
}

// SkippedTicker records a holding that could not be evaluated and why.
// Skipped tickers are reported, never silently dropped.
type SkippedTicker struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

// PortfolioReport is the full output of one analysis run. Owned by the run
// that produced it and immutable after construction.
type PortfolioReport struct {
	GeneratedAt   time.Time       `json:"generated_at"`
	Entries       []ReportEntry   `json:"entries"`
	Skipped       []SkippedTicker `json:"skipped,omitempty"`
	SummaryCounts map[State]int   `json:"summary_counts"`
	TotalValue    float64         `json:"total_value"`
}

// Count returns the number of evaluated entries. Summed from the
// summary counts, not Entries: the display filter may hide small
// positions from Entries, but every evaluated holding keeps a summary
// count.
func (r *PortfolioReport) Count() int {
	total := 0
	for _, n := range r.SummaryCounts {
		total += n
	}
	return total
}

// AlertTotal returns the number of non-info findings across all entries
func (r *PortfolioReport) AlertTotal() int {
	total := 0
	for _, e := range r.Entries {
		total += e.AlertCount
	}
	return total
}

// GetEntry finds an entry by ticker
func (r *PortfolioReport) GetEntry(ticker string) (*ReportEntry, bool) {
	for i := range r.Entries {
		if r.Entries[i].Signal.Ticker == ticker {
			return &r.Entries[i], true
		}
	}
	return nil, false
}
