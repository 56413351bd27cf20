package contracts

// Source identifies the rule evaluator that produced a verdict
type Source string

const (
	SourceValuation Source = "valuation"
	SourceInsider   Source = "insider"
	SourceGrowth    Source = "growth"
	SourceCatalyst  Source = "catalyst"
	SourceSizing    Source = "sizing"
)

// Severity orders how serious a finding is. Higher is worse.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityCaution
	SeverityWarning
	SeverityCritical
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityCaution:
		return "caution"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Action is the position-size action an evaluator suggests
type Action string

const (
	ActionNone             Action = "none"
	ActionTrim             Action = "trim"
	ActionReduceConviction Action = "reduce_conviction"
	ActionEscalate         Action = "escalate"
)

// PartialVerdict is the output of one evaluator for one ticker. Every
// evaluator emits exactly one verdict per ticker per run; the absence of a
// finding is still an info verdict with a neutral rationale, so every
// recommendation stays fully traceable.
type PartialVerdict struct {
	Source    Source   `json:"source"`
	Severity  Severity `json:"severity"`
	Rationale string   `json:"rationale"`
	Action    Action   `json:"action"`

	// Bullish marks a positive growth or undervaluation finding. Only
	// info-severity verdicts carry it; the reducer uses it to distinguish
	// buy from hold when nothing is wrong.
	Bullish bool `json:"bullish,omitempty"`

	// TrimRange is set only when Action is trim
	TrimRange *TrimRange `json:"trim_range,omitempty"`
}

// TrimRange is the target portfolio weight band to reduce a position to
type TrimRange struct {
	LowPct  float64 `json:"low_pct"`
	HighPct float64 `json:"high_pct"`
}
