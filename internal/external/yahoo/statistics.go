package yahoo

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ats/lynchboard/internal/contracts"
)

// Key-statistics row labels. Yahoo renders these as two-cell table rows,
// label then value.
const (
	labelPEG           = "PEG Ratio (5 yr expected)"
	labelRevenueGrowth = "Quarterly Revenue Growth (yoy)"
)

// parseKeyStatistics extracts fundamentals from the key-statistics HTML.
// Labels that are absent or render as "N/A" produce unknown metrics.
// Debt growth is not published on this page at all; the research
// collaborator fills it in when it can.
func parseKeyStatistics(html string) contracts.Fundamentals {
	fundamentals := contracts.Fundamentals{
		PEGRatio:         contracts.Unknown(),
		RevenueGrowthYoY: contracts.Unknown(),
		DebtGrowthYoY:    contracts.Unknown(),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fundamentals
	}

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(cells.Length() - 1).Text())

		switch {
		case strings.HasPrefix(label, labelPEG):
			fundamentals.PEGRatio = parseRatio(value)
		case strings.HasPrefix(label, labelRevenueGrowth):
			fundamentals.RevenueGrowthYoY = parsePercent(value)
		}
	})

	return fundamentals
}

// parseRatio parses a plain decimal cell ("1.85") into a metric.
func parseRatio(s string) contracts.Metric {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" || s == "--" {
		return contracts.Unknown()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return contracts.Unknown()
	}
	return contracts.Known(v)
}

// parsePercent parses a percent cell ("25.30%") into a fractional metric
// (0.253).
func parsePercent(s string) contracts.Metric {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" || s == "--" {
		return contracts.Unknown()
	}
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return contracts.Unknown()
	}
	return contracts.Known(v / 100)
}
