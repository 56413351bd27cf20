// Package render turns a finished report into its delivery formats: the
// HTML dashboard and the email digest. Renderers read the report, they
// never recompute recommendations or counts.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/ats/lynchboard/internal/contracts"
)

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"usd":       formatMoney,
	"pct":       formatPercent,
	"stateCl":   stateClass,
	"mulWeight": func(v float64) float64 { return v * 100 },
}).Parse(dashboardHTML))

type dashboardData struct {
	Report     *contracts.PortfolioReport
	Generated  string
	BuyCount   int
	HoldCount  int
	TrimCount  int
	SellCount  int
	AlertTotal int
}

// Dashboard renders the full HTML dashboard for a report.
func Dashboard(report *contracts.PortfolioReport) (string, error) {
	data := dashboardData{
		Report:     report,
		Generated:  report.GeneratedAt.Format("2006-01-02 15:04 MST"),
		BuyCount:   report.SummaryCounts[contracts.StateBuy],
		HoldCount:  report.SummaryCounts[contracts.StateHold],
		TrimCount:  report.SummaryCounts[contracts.StateTrim],
		SellCount:  report.SummaryCounts[contracts.StateSell],
		AlertTotal: report.AlertTotal(),
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.String(), nil
}

func formatMoney(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	// Insert thousands separators
	n := len(s)
	start := 0
	if strings.HasPrefix(s, "-") {
		start = 1
	}
	var b strings.Builder
	b.WriteString(s[:start])
	for i := start; i < n; i++ {
		if i > start && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(s[i])
	}
	return "$" + b.String()
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func stateClass(s contracts.State) string {
	return "state-" + strings.ToLower(string(s))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Portfolio Analysis Dashboard</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 20px; background-color: #f8f9fa; color: #212529; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px; margin-bottom: 20px; }
.summary { display: flex; gap: 16px; margin-bottom: 20px; flex-wrap: wrap; }
.card { background: white; border-radius: 8px; padding: 16px 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.card h3 { margin: 0 0 8px; font-size: 13px; text-transform: uppercase; color: #6c757d; }
.card .value { font-size: 24px; font-weight: 600; }
table { width: 100%; border-collapse: collapse; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
th, td { padding: 12px 16px; text-align: left; border-bottom: 1px solid #e9ecef; vertical-align: top; }
th { background: #f1f3f5; font-size: 13px; text-transform: uppercase; color: #495057; }
.state-buy { color: #198754; font-weight: 700; }
.state-hold { color: #6c757d; font-weight: 700; }
.state-trim { color: #fd7e14; font-weight: 700; }
.state-sell { color: #dc3545; font-weight: 700; }
.rationale { margin: 0; padding-left: 18px; font-size: 13px; color: #495057; }
.skipped { margin-top: 20px; background: #fff3cd; border-radius: 8px; padding: 16px; }
.skipped h3 { margin-top: 0; }
.negative { color: #dc3545; }
</style>
</head>
<body>
<div class="header">
<h1>Portfolio Analysis Dashboard</h1>
<p>Generated: {{.Generated}}</p>
</div>

<div class="summary">
<div class="card"><h3>Total Value</h3><div class="value">{{usd .Report.TotalValue}}</div></div>
<div class="card"><h3>Buy</h3><div class="value state-buy">{{.BuyCount}}</div></div>
<div class="card"><h3>Hold</h3><div class="value state-hold">{{.HoldCount}}</div></div>
<div class="card"><h3>Trim</h3><div class="value state-trim">{{.TrimCount}}</div></div>
<div class="card"><h3>Sell</h3><div class="value state-sell">{{.SellCount}}</div></div>
<div class="card"><h3>Alerts</h3><div class="value">{{.AlertTotal}}</div></div>
</div>

<table>
<thead>
<tr><th>Ticker</th><th>Price</th><th>Value</th><th>Weight</th><th>Gain</th><th>Alerts</th><th>Call</th><th>Rationale</th></tr>
</thead>
<tbody>
{{range .Report.Entries}}
<tr>
<td><strong>{{.Signal.Ticker}}</strong>{{if .Signal.CompanyName}}<br><small>{{.Signal.CompanyName}}</small>{{end}}</td>
<td>{{usd .Signal.CurrentPrice}}</td>
<td>{{usd .MarketValue}}</td>
<td>{{pct (mulWeight .Signal.PositionWeight)}}</td>
<td{{if lt .GainPercent 0.0}} class="negative"{{end}}>{{pct .GainPercent}}</td>
<td>{{.AlertCount}}</td>
<td class="{{stateCl .Recommendation.State}}">{{.Recommendation.State}}{{with .Recommendation.TrimRange}}<br><small>trim to {{pct (mulWeight .LowPct)}}&ndash;{{pct (mulWeight .HighPct)}}</small>{{end}}</td>
<td><ul class="rationale">{{range .Recommendation.Rationale}}<li>{{.}}</li>{{end}}</ul></td>
</tr>
{{end}}
</tbody>
</table>

{{if .Report.Skipped}}
<div class="skipped">
<h3>Skipped</h3>
<ul>
{{range .Report.Skipped}}<li><strong>{{.Ticker}}</strong>: {{.Reason}}</li>{{end}}
</ul>
</div>
{{end}}
</body>
</html>
`
