package contracts

import "fmt"

// ValidationError marks a malformed input signal. It is per-ticker: one
// holding failing validation never aborts the run for the others.
type ValidationError struct {
	Ticker string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("invalid signal: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid signal for %s: %s %s", e.Ticker, e.Field, e.Reason)
}

// InvariantError marks an engine-internal contract violation, such as an
// evaluator set producing the wrong number of verdicts. It indicates a
// programming defect rather than bad input, so it is fatal to that
// ticker's evaluation.
type InvariantError struct {
	Ticker string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine invariant violated for %s: %s", e.Ticker, e.Reason)
}
