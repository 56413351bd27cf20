package yahoo

import (
	"testing"

	"github.com/ats/lynchboard/internal/contracts"
)

func TestParseKeyStatistics(t *testing.T) {
	html := `
<html><body>
<table>
  <tr><td>Trailing P/E</td><td>32.10</td></tr>
  <tr><td>PEG Ratio (5 yr expected)</td><td>1.85</td></tr>
  <tr><td>Quarterly Revenue Growth (yoy)</td><td>25.30%</td></tr>
</table>
</body></html>`

	f := parseKeyStatistics(html)

	if v, ok := f.PEGRatio.Value(); !ok || v != 1.85 {
		t.Errorf("PEG = %v, %v, want 1.85, true", v, ok)
	}
	if v, ok := f.RevenueGrowthYoY.Value(); !ok || v < 0.2529 || v > 0.2531 {
		t.Errorf("revenue growth = %v, %v, want 0.253, true", v, ok)
	}
	if f.DebtGrowthYoY.IsKnown() {
		t.Error("debt growth is never scraped from this page")
	}
}

func TestParseKeyStatistics_MissingValuesStayUnknown(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "N/A cells",
			html: `<table>
  <tr><td>PEG Ratio (5 yr expected)</td><td>N/A</td></tr>
  <tr><td>Quarterly Revenue Growth (yoy)</td><td>N/A</td></tr>
</table>`,
		},
		{
			name: "labels absent",
			html: `<table><tr><td>Trailing P/E</td><td>32.10</td></tr></table>`,
		},
		{
			name: "empty document",
			html: "",
		},
		{
			name: "not HTML at all",
			html: "503 Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseKeyStatistics(tt.html)
			if f.PEGRatio.IsKnown() {
				t.Error("PEG should be unknown")
			}
			if f.RevenueGrowthYoY.IsKnown() {
				t.Error("revenue growth should be unknown")
			}
		})
	}
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in   string
		want contracts.Metric
	}{
		{"1.85", contracts.Known(1.85)},
		{" 0.92 ", contracts.Known(0.92)},
		{"1,234.5", contracts.Known(1234.5)},
		{"N/A", contracts.Unknown()},
		{"--", contracts.Unknown()},
		{"", contracts.Unknown()},
		{"abc", contracts.Unknown()},
	}

	for _, tt := range tests {
		got := parseRatio(tt.in)
		if got != tt.want {
			t.Errorf("parseRatio(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		unknown bool
	}{
		{"25.30%", 0.253, false},
		{"-4.10%", -0.041, false},
		{"0.00%", 0, false},
		{"N/A", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got := parsePercent(tt.in)
		v, ok := got.Value()
		if tt.unknown {
			if ok {
				t.Errorf("parsePercent(%q) = %v, want unknown", tt.in, v)
			}
			continue
		}
		if !ok {
			t.Errorf("parsePercent(%q) is unknown, want %v", tt.in, tt.want)
			continue
		}
		if diff := v - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("parsePercent(%q) = %v, want %v", tt.in, v, tt.want)
		}
	}
}
