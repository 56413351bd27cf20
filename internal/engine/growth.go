package engine

import (
	"fmt"

	"github.com/ats/lynchboard/internal/contracts"
)

// GrowthEvaluator compares debt growth against revenue growth. A company
// borrowing faster than it grows is a classic deteriorating-quality flag.
type GrowthEvaluator struct{}

func (GrowthEvaluator) Source() contracts.Source {
	return contracts.SourceGrowth
}

func (GrowthEvaluator) Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict {
	revenue, revKnown := sig.Fundamentals.RevenueGrowthYoY.Value()
	debt, debtKnown := sig.Fundamentals.DebtGrowthYoY.Value()

	if !revKnown || !debtKnown {
		return contracts.PartialVerdict{
			Source:    contracts.SourceGrowth,
			Severity:  contracts.SeverityInfo,
			Rationale: "insufficient data to compare debt and revenue trends",
			Action:    contracts.ActionNone,
		}
	}

	// Growth rates are fractions; the margin is in percentage points
	excessPP := (debt - revenue) * 100
	if excessPP > cfg.DebtGrowthMarginPP {
		return contracts.PartialVerdict{
			Source:    contracts.SourceGrowth,
			Severity:  contracts.SeverityWarning,
			Rationale: fmt.Sprintf("debt growing %.0fpp faster than revenue (%.1f%% vs %.1f%%)", excessPP, debt*100, revenue*100),
			Action:    contracts.ActionReduceConviction,
		}
	}

	return contracts.PartialVerdict{
		Source:    contracts.SourceGrowth,
		Severity:  contracts.SeverityInfo,
		Rationale: fmt.Sprintf("debt growth in line with revenue growth (%.1f%% vs %.1f%%)", debt*100, revenue*100),
		Action:    contracts.ActionNone,
	}
}
