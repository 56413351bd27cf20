package engine

import (
	"fmt"
	"sort"

	"github.com/ats/lynchboard/internal/contracts"
)

// Reduce combines the full set of partial verdicts for one ticker into a
// single recommendation. Precedence, first match wins:
//
//  1. Any trim verdict wins and supplies the trim range (the narrowest
//     range when several evaluators suggest one).
//  2. A critical finding alone is never an automatic sell: SELL requires
//     at least two independent evaluators reporting critical, or warning
//     with reduce_conviction. One critical finding maps to TRIM pending
//     review.
//  3. A warning maps to HOLD.
//  4. Otherwise BUY when a bullish growth or undervaluation finding is
//     present, HOLD when not.
func Reduce(sig contracts.TickerSignal, verdicts []contracts.PartialVerdict) (contracts.Recommendation, error) {
	if err := checkVerdictSet(sig.Ticker, verdicts); err != nil {
		return contracts.Recommendation{}, err
	}

	maxSeverity := contracts.SeverityInfo
	for _, v := range verdicts {
		if v.Severity > maxSeverity {
			maxSeverity = v.Severity
		}
	}

	state, trimRange := resolveState(verdicts, maxSeverity)

	return contracts.Recommendation{
		State:     state,
		Rationale: orderedRationale(verdicts),
		TrimRange: trimRange,
	}, nil
}

func resolveState(verdicts []contracts.PartialVerdict, maxSeverity contracts.Severity) (contracts.State, *contracts.TrimRange) {
	// 1. Explicit trim suggestion wins
	if r := narrowestTrimRange(verdicts); r != nil {
		return contracts.StateTrim, r
	}

	// 2. Critical findings: sell only on corroboration
	if maxSeverity == contracts.SeverityCritical {
		if countConvictionLoss(verdicts) >= 2 {
			return contracts.StateSell, nil
		}
		// A single data point never triggers full liquidation
		return contracts.StateTrim, nil
	}

	// 3. Warnings hold
	if maxSeverity == contracts.SeverityWarning {
		return contracts.StateHold, nil
	}

	// 4. Nothing wrong: buy needs a reason
	for _, v := range verdicts {
		if v.Bullish {
			return contracts.StateBuy, nil
		}
	}
	return contracts.StateHold, nil
}

// narrowestTrimRange returns the trim range with the highest low bound
// among trim verdicts, avoiding over-aggressive sizing when several
// evaluators suggest trimming. Nil when no evaluator suggested a trim.
func narrowestTrimRange(verdicts []contracts.PartialVerdict) *contracts.TrimRange {
	var best *contracts.TrimRange
	for _, v := range verdicts {
		if v.Action != contracts.ActionTrim || v.TrimRange == nil {
			continue
		}
		if best == nil || v.TrimRange.LowPct > best.LowPct {
			r := *v.TrimRange
			best = &r
		}
	}
	return best
}

// countConvictionLoss counts independent evaluators reporting critical, or
// warning with reduce_conviction.
func countConvictionLoss(verdicts []contracts.PartialVerdict) int {
	n := 0
	for _, v := range verdicts {
		switch {
		case v.Severity == contracts.SeverityCritical:
			n++
		case v.Severity == contracts.SeverityWarning && v.Action == contracts.ActionReduceConviction:
			n++
		}
	}
	return n
}

// orderedRationale lists every verdict's rationale, highest severity
// first, ties resolved by evaluator declaration order.
func orderedRationale(verdicts []contracts.PartialVerdict) []string {
	sorted := make([]contracts.PartialVerdict, len(verdicts))
	copy(sorted, verdicts)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity
		}
		return sourceOrder[sorted[i].Source] < sourceOrder[sorted[j].Source]
	})

	rationale := make([]string, len(sorted))
	for i, v := range sorted {
		rationale[i] = v.Rationale
	}
	return rationale
}

// checkVerdictSet enforces the exactly-one-verdict-per-evaluator contract.
// A violation is a programming defect in an evaluator, not bad input, so
// it fails fast instead of guessing.
func checkVerdictSet(ticker string, verdicts []contracts.PartialVerdict) error {
	want := len(Evaluators())
	if len(verdicts) != want {
		return &contracts.InvariantError{
			Ticker: ticker,
			Reason: fmt.Sprintf("expected %d partial verdicts, got %d", want, len(verdicts)),
		}
	}

	seen := make(map[contracts.Source]bool, want)
	for _, v := range verdicts {
		if _, ok := sourceOrder[v.Source]; !ok {
			return &contracts.InvariantError{
				Ticker: ticker,
				Reason: fmt.Sprintf("verdict from unknown source %q", v.Source),
			}
		}
		if seen[v.Source] {
			return &contracts.InvariantError{
				Ticker: ticker,
				Reason: fmt.Sprintf("duplicate verdict from source %q", v.Source),
			}
		}
		seen[v.Source] = true
	}
	return nil
}
