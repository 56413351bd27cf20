package research

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ats/lynchboard/internal/contracts"
)

// StockResearch is the model's answer for one holding.
type StockResearch struct {
	Catalysts     []contracts.Catalyst
	InsiderNetUSD contracts.Metric
	DebtGrowthYoY contracts.Metric
}

type researchPayload struct {
	UpcomingCatalysts []catalystPayload `json:"upcoming_catalysts"`
	InsiderNetUSD     contracts.Metric  `json:"insider_net_usd"`
	DebtGrowthYoY     contracts.Metric  `json:"debt_growth_yoy"`
}

type catalystPayload struct {
	Date       string  `json:"date"`
	Event      string  `json:"event"`
	Confidence float64 `json:"confidence"`
}

// parseResearch decodes the model's JSON answer. Models occasionally wrap
// JSON in markdown fences despite instructions, so the parser extracts
// the outermost object first. Catalysts with unparseable dates are
// dropped; a bad date on one event should not void the rest.
func parseResearch(text string) (*StockResearch, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var payload researchPayload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("invalid research JSON: %w", err)
	}

	result := &StockResearch{
		InsiderNetUSD: payload.InsiderNetUSD,
		DebtGrowthYoY: payload.DebtGrowthYoY,
	}

	for _, c := range payload.UpcomingCatalysts {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(c.Date))
		if err != nil {
			continue
		}
		desc := strings.TrimSpace(c.Event)
		if desc == "" {
			continue
		}
		result.Catalysts = append(result.Catalysts, contracts.Catalyst{
			Description: desc,
			Date:        date,
			Confidence:  c.Confidence,
		})
	}

	return result, nil
}
