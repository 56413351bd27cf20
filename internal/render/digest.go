package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ats/lynchboard/internal/contracts"
)

var digestMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// DigestMarkdown writes the email digest as markdown: the summary line,
// then one section per actionable holding (trim and sell first), then a
// compact table of everything else.
func DigestMarkdown(report *contracts.PortfolioReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Portfolio Digest for %s\n\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Total value %s across %d positions. %d buy, %d hold, %d trim, %d sell, %d alerts.\n\n",
		formatMoney(report.TotalValue), report.Count(),
		report.SummaryCounts[contracts.StateBuy],
		report.SummaryCounts[contracts.StateHold],
		report.SummaryCounts[contracts.StateTrim],
		report.SummaryCounts[contracts.StateSell],
		report.AlertTotal())

	actionable := false
	for _, e := range report.Entries {
		if e.Recommendation.State != contracts.StateTrim && e.Recommendation.State != contracts.StateSell {
			continue
		}
		if !actionable {
			b.WriteString("## Action needed\n\n")
			actionable = true
		}
		fmt.Fprintf(&b, "### %s: %s\n\n", e.Signal.Ticker, e.Recommendation.State)
		if r := e.Recommendation.TrimRange; r != nil {
			fmt.Fprintf(&b, "Trim back to %.0f-%.0f%% of the portfolio.\n\n", r.LowPct*100, r.HighPct*100)
		}
		for _, line := range e.Recommendation.Rationale {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	b.WriteString("## All positions\n\n")
	b.WriteString("| Ticker | Value | Weight | Gain | Call | Alerts |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, e := range report.Entries {
		fmt.Fprintf(&b, "| %s | %s | %.1f%% | %.1f%% | %s | %d |\n",
			e.Signal.Ticker, formatMoney(e.MarketValue),
			e.Signal.PositionWeight*100, e.GainPercent,
			e.Recommendation.State, e.AlertCount)
	}

	if len(report.Skipped) > 0 {
		b.WriteString("\n## Skipped\n\n")
		for _, s := range report.Skipped {
			fmt.Fprintf(&b, "- %s: %s\n", s.Ticker, s.Reason)
		}
	}

	return b.String()
}

// DigestHTML converts the markdown digest into the HTML body the mailer
// sends.
func DigestHTML(report *contracts.PortfolioReport) (string, error) {
	var buf bytes.Buffer
	if err := digestMarkdown.Convert([]byte(DigestMarkdown(report)), &buf); err != nil {
		return "", fmt.Errorf("failed to convert digest markdown: %w", err)
	}
	return buf.String(), nil
}
