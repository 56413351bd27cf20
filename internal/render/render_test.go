package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ats/lynchboard/internal/contracts"
)

func sampleReport() *contracts.PortfolioReport {
	return &contracts.PortfolioReport{
		GeneratedAt: time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC),
		Entries: []contracts.ReportEntry{
			{
				Signal: contracts.TickerSignal{
					Ticker:         "PLTR",
					CompanyName:    "Palantir Technologies",
					Shares:         1000,
					CostBasis:      10,
					CurrentPrice:   160.9,
					PositionWeight: 0.157,
				},
				Recommendation: contracts.Recommendation{
					State:     contracts.StateTrim,
					Rationale: []string{"heavy insider selling: $26.6M net sold", "up 1509% at 15.7% of portfolio: trim back to 8-10%"},
					TrimRange: &contracts.TrimRange{LowPct: 0.08, HighPct: 0.10},
				},
				GainPercent: 1509,
				MarketValue: 160900,
				AlertCount:  2,
			},
			{
				Signal: contracts.TickerSignal{
					Ticker:         "AAPL",
					Shares:         30,
					CostBasis:      150,
					CurrentPrice:   230,
					PositionWeight: 0.01,
				},
				Recommendation: contracts.Recommendation{
					State:     contracts.StateHold,
					Rationale: []string{"position size within limits"},
				},
				GainPercent: 53.3,
				MarketValue: 6900,
			},
		},
		Skipped: []contracts.SkippedTicker{
			{Ticker: "BAD", Reason: "invalid signal for BAD: shares must be positive"},
		},
		SummaryCounts: map[contracts.State]int{
			contracts.StateTrim: 1,
			contracts.StateHold: 1,
		},
		TotalValue: 167800,
	}
}

func TestDashboard(t *testing.T) {
	html, err := Dashboard(sampleReport())
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	for _, want := range []string{
		"PLTR",
		"Palantir Technologies",
		"$167,800",
		"TRIM",
		"heavy insider selling: $26.6M net sold",
		"state-trim",
		"BAD",
		"2026-08-28",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestDashboard_EscapesUntrustedText(t *testing.T) {
	report := sampleReport()
	report.Entries[0].Signal.CompanyName = `<script>alert("x")</script>`

	html, err := Dashboard(report)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Error("company name must be HTML-escaped")
	}
}

func TestDigestMarkdown(t *testing.T) {
	md := DigestMarkdown(sampleReport())

	for _, want := range []string{
		"# Daily Portfolio Digest for 2026-08-28",
		"## Action needed",
		"### PLTR: TRIM",
		"Trim back to 8-10% of the portfolio.",
		"| AAPL |",
		"## Skipped",
		"1 trim",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("digest missing %q", want)
		}
	}
}

func TestDigestMarkdown_NoActionSectionWhenClean(t *testing.T) {
	report := sampleReport()
	report.Entries = report.Entries[1:]
	report.Skipped = nil

	md := DigestMarkdown(report)
	if strings.Contains(md, "## Action needed") {
		t.Error("clean portfolio must not include an action section")
	}
	if strings.Contains(md, "## Skipped") {
		t.Error("no skipped section without skipped tickers")
	}
}

func TestDigestHTML(t *testing.T) {
	html, err := DigestHTML(sampleReport())
	if err != nil {
		t.Fatalf("DigestHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1>") || !strings.Contains(html, "<table>") {
		t.Error("digest HTML should contain a heading and the positions table")
	}
	if !strings.Contains(html, "PLTR") {
		t.Error("digest HTML missing ticker")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1000, "$1,000"},
		{167800, "$167,800"},
		{1234567, "$1,234,567"},
		{-4500, "$-4,500"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
