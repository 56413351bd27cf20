package research

import (
	"testing"
)

func TestParseResearch(t *testing.T) {
	text := `{
  "upcoming_catalysts": [
    {"date": "2026-10-27", "event": "Q3 earnings", "confidence": 0.95},
    {"date": "2026-11-15", "event": "FDA decision on lead drug", "confidence": 0.6}
  ],
  "insider_net_usd": -26600000,
  "debt_growth_yoy": 0.08
}`

	r, err := parseResearch(text)
	if err != nil {
		t.Fatalf("parseResearch failed: %v", err)
	}

	if len(r.Catalysts) != 2 {
		t.Fatalf("catalysts = %d, want 2", len(r.Catalysts))
	}
	if r.Catalysts[0].Description != "Q3 earnings" {
		t.Errorf("catalyst[0] = %q", r.Catalysts[0].Description)
	}
	if r.Catalysts[1].Date.Format("2006-01-02") != "2026-11-15" {
		t.Errorf("catalyst[1] date = %s", r.Catalysts[1].Date)
	}
	if v, ok := r.InsiderNetUSD.Value(); !ok || v != -26_600_000 {
		t.Errorf("insider net = %v, %v", v, ok)
	}
	if v, ok := r.DebtGrowthYoY.Value(); !ok || v != 0.08 {
		t.Errorf("debt growth = %v, %v", v, ok)
	}
}

func TestParseResearch_MarkdownFences(t *testing.T) {
	text := "Here is the analysis:\n```json\n" +
		`{"upcoming_catalysts": [], "insider_net_usd": null, "debt_growth_yoy": null}` +
		"\n```\n"

	r, err := parseResearch(text)
	if err != nil {
		t.Fatalf("parseResearch failed: %v", err)
	}
	if len(r.Catalysts) != 0 {
		t.Errorf("catalysts = %d, want 0", len(r.Catalysts))
	}
	if r.InsiderNetUSD.IsKnown() {
		t.Error("null insider net must stay unknown")
	}
	if r.DebtGrowthYoY.IsKnown() {
		t.Error("null debt growth must stay unknown")
	}
}

func TestParseResearch_MissingFieldsStayUnknown(t *testing.T) {
	r, err := parseResearch(`{"upcoming_catalysts": []}`)
	if err != nil {
		t.Fatalf("parseResearch failed: %v", err)
	}
	if r.InsiderNetUSD.IsKnown() || r.DebtGrowthYoY.IsKnown() {
		t.Error("absent fields must stay unknown, never zero")
	}
}

func TestParseResearch_BadCatalystDateDropped(t *testing.T) {
	text := `{
  "upcoming_catalysts": [
    {"date": "next quarter", "event": "earnings", "confidence": 0.9},
    {"date": "2026-09-30", "event": "", "confidence": 0.9},
    {"date": "2026-09-30", "event": "contract decision", "confidence": 0.8}
  ],
  "insider_net_usd": null,
  "debt_growth_yoy": null
}`

	r, err := parseResearch(text)
	if err != nil {
		t.Fatalf("parseResearch failed: %v", err)
	}
	if len(r.Catalysts) != 1 {
		t.Fatalf("catalysts = %d, want 1 (unparseable entries dropped)", len(r.Catalysts))
	}
	if r.Catalysts[0].Description != "contract decision" {
		t.Errorf("surviving catalyst = %q", r.Catalysts[0].Description)
	}
}

func TestParseResearch_NoJSON(t *testing.T) {
	tests := []string{
		"",
		"I cannot help with that.",
		"}{",
	}
	for _, text := range tests {
		if _, err := parseResearch(text); err == nil {
			t.Errorf("parseResearch(%q) should fail", text)
		}
	}
}
