package engine

import (
	"fmt"

	"github.com/ats/lynchboard/internal/contracts"
)

// SizingEvaluator flags positions that have grown into an outsized share
// of the portfolio. A big winner with a big weight gets a concrete trim
// band rather than a vague warning.
type SizingEvaluator struct{}

func (SizingEvaluator) Source() contracts.Source {
	return contracts.SourceSizing
}

func (SizingEvaluator) Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict {
	gain := sig.GainPercent()

	if gain > cfg.TrimTriggerGainPct && sig.PositionWeight > cfg.ConcentrationCeiling {
		return contracts.PartialVerdict{
			Source:   contracts.SourceSizing,
			Severity: contracts.SeverityWarning,
			Rationale: fmt.Sprintf("up %.0f%% at %.1f%% of portfolio: trim back to %.0f-%.0f%%",
				gain, sig.PositionWeight*100, cfg.TrimTargetLowPct*100, cfg.TrimTargetHighPct*100),
			Action: contracts.ActionTrim,
			TrimRange: &contracts.TrimRange{
				LowPct:  cfg.TrimTargetLowPct,
				HighPct: cfg.TrimTargetHighPct,
			},
		}
	}

	return contracts.PartialVerdict{
		Source:    contracts.SourceSizing,
		Severity:  contracts.SeverityInfo,
		Rationale: "position size within limits",
		Action:    contracts.ActionNone,
	}
}
