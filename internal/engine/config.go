package engine

import (
	"time"

	"github.com/ats/lynchboard/pkg/config"
)

// SortKey selects the report entry ordering
type SortKey string

const (
	SortByWeight      SortKey = "weight"
	SortByGainPercent SortKey = "gain_percent"
	SortByAlerts      SortKey = "alerts"
	SortByTicker      SortKey = "ticker"
)

// Config carries every threshold the rule evaluators consult plus the run's
// fixed reference time. It is threaded explicitly through every evaluator
// call, never read from ambient state, so tests can vary thresholds per
// case without interference.
type Config struct {
	// AsOf is the run's fixed reference timestamp. All date comparisons
	// (catalyst proximity) use it instead of a live clock read, keeping a
	// single run internally consistent.
	AsOf time.Time

	// Valuation
	PEGOvervalued  float64 // PEG above this is trading rich
	PEGUndervalued float64 // PEG below this with growth is cheap

	// Insider activity
	InsiderSellThreshold float64 // net USD sold over the trailing window

	// Growth quality: debt growth may exceed revenue growth by at most
	// this many percentage points
	DebtGrowthMarginPP float64

	// Catalyst proximity
	CatalystLookaheadDays int
	CatalystMinConfidence float64
	NeedsCatalystWeight   float64 // weight above which a catalyst is expected

	// Position sizing
	TrimTriggerGainPct   float64 // unrealized gain that triggers trim review
	ConcentrationCeiling float64 // position weight that triggers trim review
	TrimTargetLowPct     float64
	TrimTargetHighPct    float64

	// Report shaping
	SortBy             SortKey
	ShowSmallPositions bool
	SmallPositionFloor float64 // minimum market value (USD) to display
}

// DefaultConfig returns the stock thresholds
func DefaultConfig(asOf time.Time) Config {
	return Config{
		AsOf:                  asOf,
		PEGOvervalued:         2.0,
		PEGUndervalued:        1.0,
		InsiderSellThreshold:  10_000_000,
		DebtGrowthMarginPP:    10,
		CatalystLookaheadDays: 90,
		CatalystMinConfidence: 0.5,
		NeedsCatalystWeight:   0.05,
		TrimTriggerGainPct:    200,
		ConcentrationCeiling:  0.10,
		TrimTargetLowPct:      0.08,
		TrimTargetHighPct:     0.10,
		SortBy:                SortByWeight,
		ShowSmallPositions:    true,
		SmallPositionFloor:    1000,
	}
}

// ConfigFromAnalysis builds an engine config from the application's
// analysis settings, pinned to the given reference time.
func ConfigFromAnalysis(a config.AnalysisConfig, asOf time.Time) Config {
	return Config{
		AsOf:                  asOf,
		PEGOvervalued:         a.PEGOvervalued,
		PEGUndervalued:        a.PEGUndervalued,
		InsiderSellThreshold:  a.InsiderSellThreshold,
		DebtGrowthMarginPP:    a.DebtGrowthMarginPP,
		CatalystLookaheadDays: a.CatalystLookaheadDays,
		CatalystMinConfidence: a.CatalystMinConfidence,
		NeedsCatalystWeight:   a.NeedsCatalystWeight,
		TrimTriggerGainPct:    a.TrimTriggerGainPct,
		ConcentrationCeiling:  a.ConcentrationCeiling,
		TrimTargetLowPct:      a.TrimTargetLowPct,
		TrimTargetHighPct:     a.TrimTargetHighPct,
		SortBy:                SortKey(a.SortBy),
		ShowSmallPositions:    a.ShowSmallPositions,
		SmallPositionFloor:    a.SmallPositionFloor,
	}
}
