package contracts

import "time"

// RawSignal is the unvalidated per-ticker input assembled by the collector
// from the portfolio file, the market-data collaborator and the research
// collaborator. It becomes a TickerSignal only after normalization.
type RawSignal struct {
	Ticker         string       `json:"ticker"`
	CompanyName    string       `json:"company_name,omitempty"`
	Shares         int64        `json:"shares"`
	CostBasis      float64      `json:"cost_basis"`
	CurrentPrice   float64      `json:"current_price"`
	Fundamentals   Fundamentals `json:"fundamentals"`
	InsiderNet     Metric       `json:"insider_net"`
	Catalysts      []Catalyst   `json:"catalysts"`
	PositionWeight float64      `json:"position_weight"`
}

// TickerSignal is the canonical, validated signal record for one ticker in
// one run. Immutable after normalization.
type TickerSignal struct {
	Ticker       string  `json:"ticker"`
	CompanyName  string  `json:"company_name,omitempty"`
	Shares       int64   `json:"shares"`
	CostBasis    float64 `json:"cost_basis"`
	CurrentPrice float64 `json:"current_price"`

	Fundamentals Fundamentals `json:"fundamentals"`

	// Net dollar value bought (positive) or sold (negative) by insiders
	// over the trailing window. Unknown when the collaborator had no data.
	InsiderNet Metric `json:"insider_net"`

	// Upcoming dated events, ordered as supplied
	Catalysts []Catalyst `json:"catalysts"`

	// This ticker's share of total portfolio value at current prices, 0..1
	PositionWeight float64 `json:"position_weight"`
}

// Fundamentals holds the valuation and trend metrics supplied by the
// market-data and research collaborators. Each field is independently
// optional.
type Fundamentals struct {
	RevenueGrowthYoY Metric `json:"revenue_growth_yoy"`
	DebtGrowthYoY    Metric `json:"debt_growth_yoy"`
	PEGRatio         Metric `json:"peg_ratio"`
}

// Catalyst is a dated, named event expected to move the stock
type Catalyst struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Confidence  float64   `json:"confidence"` // 0.0 ~ 1.0
}

// MarketValue returns the current value of the position
func (s *TickerSignal) MarketValue() float64 {
	return float64(s.Shares) * s.CurrentPrice
}

// GainPercent returns the unrealized gain as a percentage of cost.
// Returns 0 when the cost basis is zero (free shares, no meaningful gain).
func (s *TickerSignal) GainPercent() float64 {
	if s.CostBasis <= 0 {
		return 0
	}
	return (s.CurrentPrice - s.CostBasis) / s.CostBasis * 100
}
