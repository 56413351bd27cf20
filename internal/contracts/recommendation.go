package contracts

// State is the final recommendation for a holding
type State string

const (
	StateBuy  State = "BUY"
	StateHold State = "HOLD"
	StateTrim State = "TRIM"
	StateSell State = "SELL"
)

// Recommendation is the reduced result for one ticker. Constructed once per
// run by the reducer and never mutated downstream.
type Recommendation struct {
	State State `json:"state"`

	// Rationale lists every evaluator's reasoning, highest severity first
	Rationale []string `json:"rationale"`

	// TrimRange is present only when State is TRIM and a sizing verdict
	// supplied a target band
	TrimRange *TrimRange `json:"trim_range,omitempty"`
}
