package engine

import (
	"fmt"

	"github.com/ats/lynchboard/internal/contracts"
)

// CatalystEvaluator scans upcoming catalysts within the lookahead window.
// A large position with nothing on the calendar deserves a caution: the
// thesis should name the next event that moves the stock.
type CatalystEvaluator struct{}

func (CatalystEvaluator) Source() contracts.Source {
	return contracts.SourceCatalyst
}

func (CatalystEvaluator) Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict {
	horizon := cfg.AsOf.AddDate(0, 0, cfg.CatalystLookaheadDays)

	var nearest *contracts.Catalyst
	for i := range sig.Catalysts {
		c := &sig.Catalysts[i]
		if c.Confidence < cfg.CatalystMinConfidence {
			continue
		}
		if c.Date.Before(cfg.AsOf) || c.Date.After(horizon) {
			continue
		}
		if nearest == nil || closerCatalyst(c, nearest) {
			nearest = c
		}
	}

	if nearest != nil {
		days := int(nearest.Date.Sub(cfg.AsOf).Hours() / 24)
		return contracts.PartialVerdict{
			Source:    contracts.SourceCatalyst,
			Severity:  contracts.SeverityInfo,
			Rationale: fmt.Sprintf("next catalyst in %d days: %s (%s)", days, nearest.Description, nearest.Date.Format("2006-01-02")),
			Action:    contracts.ActionNone,
		}
	}

	if sig.PositionWeight > cfg.NeedsCatalystWeight {
		return contracts.PartialVerdict{
			Source:    contracts.SourceCatalyst,
			Severity:  contracts.SeverityCaution,
			Rationale: fmt.Sprintf("no near-term catalyst for a %.1f%% position", sig.PositionWeight*100),
			Action:    contracts.ActionNone,
		}
	}

	return contracts.PartialVerdict{
		Source:    contracts.SourceCatalyst,
		Severity:  contracts.SeverityInfo,
		Rationale: "no near-term catalysts",
		Action:    contracts.ActionNone,
	}
}

// closerCatalyst reports whether a should be preferred over b: earlier
// date first, then higher confidence, then lexically smaller description.
func closerCatalyst(a, b *contracts.Catalyst) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.Description < b.Description
}
