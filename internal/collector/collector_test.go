package collector

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ats/lynchboard/internal/contracts"
	"github.com/ats/lynchboard/internal/external/research"
	"github.com/ats/lynchboard/internal/external/yahoo"
	"github.com/ats/lynchboard/internal/portfolio"
	"github.com/ats/lynchboard/pkg/config"
	"github.com/ats/lynchboard/pkg/logger"
	"github.com/ats/lynchboard/pkg/redis"
)

type fakeMarket struct {
	quotes       map[string]float64
	fundamentals map[string]contracts.Fundamentals
}

func (f *fakeMarket) GetQuote(ctx context.Context, ticker string) (*yahoo.Quote, error) {
	price, ok := f.quotes[ticker]
	if !ok {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}
	return &yahoo.Quote{Ticker: ticker, CompanyName: ticker + " Inc", Price: price}, nil
}

func (f *fakeMarket) GetFundamentals(ctx context.Context, ticker string) (contracts.Fundamentals, error) {
	fund, ok := f.fundamentals[ticker]
	if !ok {
		return contracts.Fundamentals{}, fmt.Errorf("fundamentals fetch failed")
	}
	return fund, nil
}

type fakeResearcher struct {
	enabled bool
	results map[string]*research.StockResearch
}

func (f *fakeResearcher) Enabled() bool { return f.enabled }

func (f *fakeResearcher) Research(ctx context.Context, ticker, companyName string, asOf time.Time) (*research.StockResearch, error) {
	r, ok := f.results[ticker]
	if !ok {
		return nil, fmt.Errorf("research failed for %s", ticker)
	}
	return r, nil
}

func noopCache(t *testing.T) *redis.Cache {
	t.Helper()
	client, err := redis.New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	if err != nil {
		t.Fatal(err)
	}
	return redis.NewCache(client, "test")
}

var collectAsOf = time.Date(2026, 8, 28, 13, 0, 0, 0, time.UTC)

func TestCollect(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]float64{"AAPL": 200, "NVDA": 100},
		fundamentals: map[string]contracts.Fundamentals{
			"AAPL": {
				PEGRatio:         contracts.Known(1.9),
				RevenueGrowthYoY: contracts.Known(0.08),
				DebtGrowthYoY:    contracts.Unknown(),
			},
		},
	}
	researcher := &fakeResearcher{
		enabled: true,
		results: map[string]*research.StockResearch{
			"AAPL": {
				Catalysts: []contracts.Catalyst{
					{Description: "iPhone launch", Date: collectAsOf.AddDate(0, 0, 20), Confidence: 0.9},
				},
				InsiderNetUSD: contracts.Known(-2_000_000),
				DebtGrowthYoY: contracts.Known(0.05),
			},
		},
	}

	positions := []portfolio.Position{
		{Ticker: "AAPL", Shares: 10, CostBasis: 150}, // $2000 market value
		{Ticker: "NVDA", Shares: 20, CostBasis: 40},  // $2000 market value
	}

	c := New(market, researcher, noopCache(t), logger.Nop())
	signals, skipped := c.Collect(context.Background(), positions, collectAsOf)

	if len(skipped) != 0 {
		t.Fatalf("skipped = %+v, want none", skipped)
	}
	if len(signals) != 2 {
		t.Fatalf("signals = %d, want 2", len(signals))
	}

	aapl := signals[0]
	if aapl.Ticker != "AAPL" {
		t.Fatalf("signals[0] = %s", aapl.Ticker)
	}
	if aapl.CompanyName != "AAPL Inc" || aapl.CurrentPrice != 200 {
		t.Errorf("quote fields = %q %v", aapl.CompanyName, aapl.CurrentPrice)
	}
	if v, ok := aapl.Fundamentals.PEGRatio.Value(); !ok || v != 1.9 {
		t.Errorf("PEG = %v, %v", v, ok)
	}
	// Research fills what the scrape cannot
	if v, ok := aapl.Fundamentals.DebtGrowthYoY.Value(); !ok || v != 0.05 {
		t.Errorf("debt growth = %v, %v, want research value", v, ok)
	}
	if v, ok := aapl.InsiderNet.Value(); !ok || v != -2_000_000 {
		t.Errorf("insider net = %v, %v", v, ok)
	}
	if len(aapl.Catalysts) != 1 {
		t.Errorf("catalysts = %d, want 1", len(aapl.Catalysts))
	}

	// Equal market values split the weight evenly
	if aapl.PositionWeight != 0.5 || signals[1].PositionWeight != 0.5 {
		t.Errorf("weights = %v, %v, want 0.5 each", aapl.PositionWeight, signals[1].PositionWeight)
	}

	// NVDA had no fundamentals and no research: unknown, never zero
	nvda := signals[1]
	if nvda.Fundamentals.PEGRatio.IsKnown() || nvda.InsiderNet.IsKnown() {
		t.Error("failed lookups must degrade to unknown")
	}
}

func TestCollect_QuoteFailureSkipsOnlyThatTicker(t *testing.T) {
	market := &fakeMarket{quotes: map[string]float64{"GOOD": 50}}
	positions := []portfolio.Position{
		{Ticker: "GOOD", Shares: 10, CostBasis: 40},
		{Ticker: "DEAD", Shares: 10, CostBasis: 40},
	}

	c := New(market, &fakeResearcher{}, noopCache(t), logger.Nop())
	signals, skipped := c.Collect(context.Background(), positions, collectAsOf)

	if len(signals) != 1 || signals[0].Ticker != "GOOD" {
		t.Fatalf("signals = %+v", signals)
	}
	if len(skipped) != 1 || skipped[0].Ticker != "DEAD" {
		t.Fatalf("skipped = %+v", skipped)
	}
	// The survivor carries the full weight
	if signals[0].PositionWeight != 1.0 {
		t.Errorf("weight = %v, want 1.0", signals[0].PositionWeight)
	}
}

func TestCollect_ResearchDisabledLeavesUnknowns(t *testing.T) {
	market := &fakeMarket{quotes: map[string]float64{"AAPL": 200}}
	positions := []portfolio.Position{{Ticker: "AAPL", Shares: 10, CostBasis: 150}}

	c := New(market, &fakeResearcher{enabled: false}, noopCache(t), logger.Nop())
	signals, _ := c.Collect(context.Background(), positions, collectAsOf)

	if len(signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(signals))
	}
	if signals[0].InsiderNet.IsKnown() {
		t.Error("disabled research must leave insider data unknown")
	}
	if len(signals[0].Catalysts) != 0 {
		t.Error("disabled research must not invent catalysts")
	}
}

func TestWithFundamentalsTTL(t *testing.T) {
	market := &fakeMarket{}

	c := New(market, &fakeResearcher{}, noopCache(t), logger.Nop())
	if c.fundamentalsTTL != redis.TTLDaily {
		t.Errorf("default fundamentals TTL = %v, want %v", c.fundamentalsTTL, redis.TTLDaily)
	}

	c = c.WithFundamentalsTTL(6 * time.Hour)
	if c.fundamentalsTTL != 6*time.Hour {
		t.Errorf("fundamentals TTL = %v, want 6h", c.fundamentalsTTL)
	}

	// Zero keeps the current TTL rather than disabling the cache
	c = c.WithFundamentalsTTL(0)
	if c.fundamentalsTTL != 6*time.Hour {
		t.Errorf("fundamentals TTL after zero override = %v, want 6h", c.fundamentalsTTL)
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	market := &fakeMarket{quotes: map[string]float64{"AAPL": 200}}
	positions := []portfolio.Position{{Ticker: "AAPL", Shares: 10, CostBasis: 150}}

	c := New(market, &fakeResearcher{}, noopCache(t), logger.Nop())
	signals, skipped := c.Collect(ctx, positions, collectAsOf)

	if len(signals) != 0 {
		t.Errorf("signals = %d, want 0 after cancellation", len(signals))
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(skipped))
	}
}
