package engine

import (
	"fmt"

	"github.com/ats/lynchboard/internal/contracts"
)

// InsiderEvaluator checks net insider buying and selling over the trailing
// window. Unknown data stays neutral: it never escalates and never passes
// as a clean bill of health.
type InsiderEvaluator struct{}

func (InsiderEvaluator) Source() contracts.Source {
	return contracts.SourceInsider
}

func (InsiderEvaluator) Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict {
	net, known := sig.InsiderNet.Value()
	if !known {
		return contracts.PartialVerdict{
			Source:    contracts.SourceInsider,
			Severity:  contracts.SeverityInfo,
			Rationale: "insider activity unknown",
			Action:    contracts.ActionNone,
		}
	}

	if net < 0 && -net > cfg.InsiderSellThreshold {
		return contracts.PartialVerdict{
			Source:    contracts.SourceInsider,
			Severity:  contracts.SeverityCritical,
			Rationale: fmt.Sprintf("heavy insider selling: %s net sold", formatUSD(-net)),
			Action:    contracts.ActionReduceConviction,
		}
	}

	if net > 0 {
		return contracts.PartialVerdict{
			Source:    contracts.SourceInsider,
			Severity:  contracts.SeverityInfo,
			Rationale: fmt.Sprintf("net insider buying of %s, a confidence signal", formatUSD(net)),
			Action:    contracts.ActionNone,
		}
	}

	return contracts.PartialVerdict{
		Source:    contracts.SourceInsider,
		Severity:  contracts.SeverityInfo,
		Rationale: "no significant insider activity",
		Action:    contracts.ActionNone,
	}
}

// formatUSD renders a dollar amount compactly ($26.6M, $850K, $950)
func formatUSD(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
