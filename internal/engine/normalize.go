package engine

import (
	"strings"

	"github.com/ats/lynchboard/internal/contracts"
)

// Normalize converts a raw per-ticker input into a canonical TickerSignal.
// Unknown fundamentals and insider data pass through as explicit unknown
// markers; they are never coerced to zero.
func Normalize(raw contracts.RawSignal) (contracts.TickerSignal, error) {
	ticker := strings.ToUpper(strings.TrimSpace(raw.Ticker))
	if ticker == "" {
		return contracts.TickerSignal{}, &contracts.ValidationError{
			Field: "ticker", Reason: "must not be empty",
		}
	}
	if raw.Shares <= 0 {
		return contracts.TickerSignal{}, &contracts.ValidationError{
			Ticker: ticker, Field: "shares", Reason: "must be positive",
		}
	}
	if raw.CurrentPrice < 0 {
		return contracts.TickerSignal{}, &contracts.ValidationError{
			Ticker: ticker, Field: "current_price", Reason: "must not be negative",
		}
	}
	if raw.CostBasis < 0 {
		return contracts.TickerSignal{}, &contracts.ValidationError{
			Ticker: ticker, Field: "cost_basis", Reason: "must not be negative",
		}
	}
	if raw.PositionWeight < 0 || raw.PositionWeight > 1 {
		return contracts.TickerSignal{}, &contracts.ValidationError{
			Ticker: ticker, Field: "position_weight", Reason: "must be within [0,1]",
		}
	}

	catalysts := make([]contracts.Catalyst, len(raw.Catalysts))
	copy(catalysts, raw.Catalysts)

	return contracts.TickerSignal{
		Ticker:         ticker,
		CompanyName:    raw.CompanyName,
		Shares:         raw.Shares,
		CostBasis:      raw.CostBasis,
		CurrentPrice:   raw.CurrentPrice,
		Fundamentals:   raw.Fundamentals,
		InsiderNet:     raw.InsiderNet,
		Catalysts:      catalysts,
		PositionWeight: raw.PositionWeight,
	}, nil
}
