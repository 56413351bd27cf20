package engine

import (
	"fmt"

	"github.com/ats/lynchboard/internal/contracts"
)

// ValuationEvaluator checks the PEG ratio against growth-adjusted fair
// value bands.
type ValuationEvaluator struct{}

func (ValuationEvaluator) Source() contracts.Source {
	return contracts.SourceValuation
}

func (ValuationEvaluator) Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict {
	peg, known := sig.Fundamentals.PEGRatio.Value()
	if !known {
		// Missing valuation data never blocks the other evaluators
		return contracts.PartialVerdict{
			Source:    contracts.SourceValuation,
			Severity:  contracts.SeverityInfo,
			Rationale: "PEG ratio unavailable, valuation not assessed",
			Action:    contracts.ActionNone,
		}
	}

	if peg > cfg.PEGOvervalued {
		return contracts.PartialVerdict{
			Source:    contracts.SourceValuation,
			Severity:  contracts.SeverityWarning,
			Rationale: fmt.Sprintf("PEG %.2f: trading above growth-adjusted fair value", peg),
			Action:    contracts.ActionReduceConviction,
		}
	}

	if peg < cfg.PEGUndervalued {
		if growth, ok := sig.Fundamentals.RevenueGrowthYoY.Value(); ok && growth > 0 {
			return contracts.PartialVerdict{
				Source:    contracts.SourceValuation,
				Severity:  contracts.SeverityInfo,
				Rationale: fmt.Sprintf("PEG %.2f with %.1f%% revenue growth: undervalued relative to growth", peg, growth*100),
				Action:    contracts.ActionNone,
				Bullish:   true,
			}
		}
	}

	return contracts.PartialVerdict{
		Source:    contracts.SourceValuation,
		Severity:  contracts.SeverityInfo,
		Rationale: fmt.Sprintf("PEG %.2f within fair value range", peg),
		Action:    contracts.ActionNone,
	}
}
