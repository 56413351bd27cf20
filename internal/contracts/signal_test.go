package contracts

import (
	"testing"
	"time"
)

func TestTickerSignal_MarketValue(t *testing.T) {
	sig := &TickerSignal{
		Ticker:       "AAPL",
		Shares:       100,
		CostBasis:    150,
		CurrentPrice: 180,
	}

	if v := sig.MarketValue(); v != 18000 {
		t.Errorf("MarketValue() = %v, want 18000", v)
	}
}

func TestTickerSignal_GainPercent(t *testing.T) {
	tests := []struct {
		name string
		sig  TickerSignal
		want float64
	}{
		{
			name: "20 percent gain",
			sig:  TickerSignal{CostBasis: 100, CurrentPrice: 120},
			want: 20,
		},
		{
			name: "loss",
			sig:  TickerSignal{CostBasis: 100, CurrentPrice: 75},
			want: -25,
		},
		{
			name: "zero cost basis",
			sig:  TickerSignal{CostBasis: 0, CurrentPrice: 50},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sig.GainPercent(); got != tt.want {
				t.Errorf("GainPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortfolioReport_Counts(t *testing.T) {
	report := &PortfolioReport{
		GeneratedAt: time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC),
		Entries: []ReportEntry{
			{Signal: TickerSignal{Ticker: "AAPL"}, AlertCount: 2},
			{Signal: TickerSignal{Ticker: "MSFT"}, AlertCount: 0},
			{Signal: TickerSignal{Ticker: "NVDA"}, AlertCount: 1},
		},
		// One holding was hidden by the display filter: it has no entry
		// but still counts as evaluated.
		SummaryCounts: map[State]int{StateHold: 3, StateTrim: 1},
	}

	if report.Count() != 4 {
		t.Errorf("Count() = %d, want 4 (evaluated, not displayed)", report.Count())
	}
	if report.AlertTotal() != 3 {
		t.Errorf("AlertTotal() = %d, want 3", report.AlertTotal())
	}

	entry, ok := report.GetEntry("MSFT")
	if !ok {
		t.Fatal("expected to find entry for MSFT")
	}
	if entry.Signal.Ticker != "MSFT" {
		t.Errorf("got ticker %s, want MSFT", entry.Signal.Ticker)
	}

	if _, ok := report.GetEntry("TSLA"); ok {
		t.Error("expected not to find entry for TSLA")
	}
}

func TestSeverity_Ordering(t *testing.T) {
	if !(SeverityInfo < SeverityCaution && SeverityCaution < SeverityWarning && SeverityWarning < SeverityCritical) {
		t.Error("severity levels must be ordered info < caution < warning < critical")
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Ticker: "AAPL", Field: "shares", Reason: "must be positive"}
	want := "invalid signal for AAPL: shares must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
