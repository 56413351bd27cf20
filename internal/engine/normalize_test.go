package engine

import (
	"errors"
	"testing"

	"github.com/ats/lynchboard/internal/contracts"
)

func TestNormalize_Canonicalizes(t *testing.T) {
	raw := contracts.RawSignal{
		Ticker:         "  aapl ",
		Shares:         100,
		CostBasis:      150,
		CurrentPrice:   180,
		PositionWeight: 0.12,
	}

	sig, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if sig.Ticker != "AAPL" {
		t.Errorf("ticker = %s, want AAPL", sig.Ticker)
	}
}

func TestNormalize_Rejections(t *testing.T) {
	valid := contracts.RawSignal{
		Ticker:         "NVDA",
		Shares:         10,
		CostBasis:      20,
		CurrentPrice:   400,
		PositionWeight: 0.1,
	}

	tests := []struct {
		name   string
		mutate func(*contracts.RawSignal)
		field  string
	}{
		{
			name:   "empty ticker",
			mutate: func(r *contracts.RawSignal) { r.Ticker = "  " },
			field:  "ticker",
		},
		{
			name:   "zero shares",
			mutate: func(r *contracts.RawSignal) { r.Shares = 0 },
			field:  "shares",
		},
		{
			name:   "negative shares",
			mutate: func(r *contracts.RawSignal) { r.Shares = -5 },
			field:  "shares",
		},
		{
			name:   "negative price",
			mutate: func(r *contracts.RawSignal) { r.CurrentPrice = -1 },
			field:  "current_price",
		},
		{
			name:   "negative cost basis",
			mutate: func(r *contracts.RawSignal) { r.CostBasis = -10 },
			field:  "cost_basis",
		},
		{
			name:   "weight above one",
			mutate: func(r *contracts.RawSignal) { r.PositionWeight = 1.2 },
			field:  "position_weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)

			_, err := Normalize(raw)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var vErr *contracts.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("field = %s, want %s", vErr.Field, tt.field)
			}
		})
	}
}

func TestNormalize_PreservesUnknown(t *testing.T) {
	raw := contracts.RawSignal{
		Ticker:         "PLTR",
		Shares:         50,
		CostBasis:      10,
		CurrentPrice:   25,
		PositionWeight: 0.05,
		InsiderNet:     contracts.Unknown(),
		Fundamentals: contracts.Fundamentals{
			PEGRatio:         contracts.Unknown(),
			RevenueGrowthYoY: contracts.Known(0.2),
			DebtGrowthYoY:    contracts.Unknown(),
		},
	}

	sig, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if sig.InsiderNet.IsKnown() {
		t.Error("unknown insider data must survive normalization as unknown")
	}
	if sig.Fundamentals.PEGRatio.IsKnown() {
		t.Error("unknown PEG must survive normalization as unknown")
	}
	if v, ok := sig.Fundamentals.RevenueGrowthYoY.Value(); !ok || v != 0.2 {
		t.Errorf("revenue growth = %v, %v, want 0.2, true", v, ok)
	}
}
