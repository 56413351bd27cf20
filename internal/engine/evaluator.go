package engine

import (
	"github.com/ats/lynchboard/internal/contracts"
)

// Evaluator is one independent rule check. Evaluators are pure: the same
// signal and config always produce the same verdict, and every evaluation
// emits exactly one verdict so a recommendation is always fully traceable.
type Evaluator interface {
	Source() contracts.Source
	Evaluate(sig contracts.TickerSignal, cfg Config) contracts.PartialVerdict
}

// Evaluators returns the full rule set in its fixed declaration order.
// The order is itself a contract: ties at equal severity in a
// recommendation's rationale resolve by this order, so reordering here
// changes which finding is listed first.
func Evaluators() []Evaluator {
	return []Evaluator{
		ValuationEvaluator{},
		InsiderEvaluator{},
		GrowthEvaluator{},
		CatalystEvaluator{},
		SizingEvaluator{},
	}
}

// sourceOrder mirrors the declaration order of Evaluators for rationale
// tie-breaking in the reducer.
var sourceOrder = map[contracts.Source]int{
	contracts.SourceValuation: 0,
	contracts.SourceInsider:   1,
	contracts.SourceGrowth:    2,
	contracts.SourceCatalyst:  3,
	contracts.SourceSizing:    4,
}
