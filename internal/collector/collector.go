// Package collector joins the holdings file with market data and research
// into the raw signals the recommendation engine consumes. Collection is
// per-ticker fault isolated: a holding whose quote cannot be fetched is
// reported as skipped, and missing fundamentals or research degrade that
// one ticker to unknown metrics without touching the rest of the run.
package collector

import (
	"context"
	"time"

	"github.com/ats/lynchboard/internal/contracts"
	"github.com/ats/lynchboard/internal/external/research"
	"github.com/ats/lynchboard/internal/external/yahoo"
	"github.com/ats/lynchboard/internal/portfolio"
	"github.com/ats/lynchboard/pkg/logger"
	"github.com/ats/lynchboard/pkg/redis"
)

// MarketData supplies quotes and scraped fundamentals.
type MarketData interface {
	GetQuote(ctx context.Context, ticker string) (*yahoo.Quote, error)
	GetFundamentals(ctx context.Context, ticker string) (contracts.Fundamentals, error)
}

// Researcher supplies catalysts, insider activity and debt trend.
type Researcher interface {
	Enabled() bool
	Research(ctx context.Context, ticker, companyName string, asOf time.Time) (*research.StockResearch, error)
}

// Collector assembles raw signals for an analysis run.
type Collector struct {
	market          MarketData
	research        Researcher
	cache           *redis.Cache
	logger          *logger.Logger
	fundamentalsTTL time.Duration
}

// New creates a collector. Fundamentals are cached per ticker per day
// with a 24h TTL unless overridden.
func New(market MarketData, researcher Researcher, cache *redis.Cache, log *logger.Logger) *Collector {
	return &Collector{
		market:          market,
		research:        researcher,
		cache:           cache,
		logger:          log,
		fundamentalsTTL: redis.TTLDaily,
	}
}

// WithFundamentalsTTL overrides the fundamentals cache TTL.
func (c *Collector) WithFundamentalsTTL(ttl time.Duration) *Collector {
	if ttl > 0 {
		c.fundamentalsTTL = ttl
	}
	return c
}

// Collect builds one raw signal per position. Returns the signals plus
// the positions that could not be collected at all (no quote), which the
// caller folds into the report's skipped list.
func (c *Collector) Collect(ctx context.Context, positions []portfolio.Position, asOf time.Time) ([]contracts.RawSignal, []contracts.SkippedTicker) {
	signals := make([]contracts.RawSignal, 0, len(positions))
	skipped := make([]contracts.SkippedTicker, 0)

	for _, pos := range positions {
		select {
		case <-ctx.Done():
			for _, rest := range positions[len(signals)+len(skipped):] {
				skipped = append(skipped, contracts.SkippedTicker{
					Ticker: rest.Ticker,
					Reason: "collection cancelled",
				})
			}
			return signals, skipped
		default:
		}

		quote, err := c.fetchQuote(ctx, pos.Ticker)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"ticker": pos.Ticker,
				"error":  err.Error(),
			}).Warn("Quote unavailable, skipping ticker")
			skipped = append(skipped, contracts.SkippedTicker{
				Ticker: pos.Ticker,
				Reason: "quote unavailable: " + err.Error(),
			})
			continue
		}

		raw := contracts.RawSignal{
			Ticker:       pos.Ticker,
			CompanyName:  quote.CompanyName,
			Shares:       pos.Shares,
			CostBasis:    pos.CostBasis,
			CurrentPrice: quote.Price,
			InsiderNet:   contracts.Unknown(),
			Fundamentals: contracts.Fundamentals{
				PEGRatio:         contracts.Unknown(),
				RevenueGrowthYoY: contracts.Unknown(),
				DebtGrowthYoY:    contracts.Unknown(),
			},
		}

		if fundamentals, err := c.fetchFundamentals(ctx, pos.Ticker, asOf); err != nil {
			c.logger.WithFields(map[string]interface{}{
				"ticker": pos.Ticker,
				"error":  err.Error(),
			}).Warn("Fundamentals unavailable, continuing with unknowns")
		} else {
			raw.Fundamentals = fundamentals
		}

		c.applyResearch(ctx, &raw, asOf)

		signals = append(signals, raw)
	}

	applyWeights(signals)

	c.logger.WithFields(map[string]interface{}{
		"collected": len(signals),
		"skipped":   len(skipped),
	}).Info("Signal collection completed")

	return signals, skipped
}

func (c *Collector) fetchQuote(ctx context.Context, ticker string) (*yahoo.Quote, error) {
	var quote yahoo.Quote
	err := c.cache.GetOrSet(ctx, redis.QuoteKey(ticker), &quote, redis.TTLQuote, func() (interface{}, error) {
		return c.market.GetQuote(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Collector) fetchFundamentals(ctx context.Context, ticker string, asOf time.Time) (contracts.Fundamentals, error) {
	day := asOf.Format("2006-01-02")
	var fundamentals contracts.Fundamentals
	err := c.cache.GetOrSet(ctx, redis.FundamentalsKey(ticker, day), &fundamentals, c.fundamentalsTTL, func() (interface{}, error) {
		return c.market.GetFundamentals(ctx, ticker)
	})
	return fundamentals, err
}

// applyResearch fills the signal fields only research can supply. Research
// being down or disabled leaves the unknowns in place.
func (c *Collector) applyResearch(ctx context.Context, raw *contracts.RawSignal, asOf time.Time) {
	if c.research == nil || !c.research.Enabled() {
		return
	}

	day := asOf.Format("2006-01-02")
	var result research.StockResearch
	err := c.cache.GetOrSet(ctx, redis.ResearchKey(raw.Ticker, day), &result, redis.TTLDaily, func() (interface{}, error) {
		return c.research.Research(ctx, raw.Ticker, raw.CompanyName, asOf)
	})
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"ticker": raw.Ticker,
			"error":  err.Error(),
		}).Warn("Research unavailable, continuing with unknowns")
		return
	}

	raw.InsiderNet = result.InsiderNetUSD
	raw.Catalysts = result.Catalysts
	if !raw.Fundamentals.DebtGrowthYoY.IsKnown() {
		raw.Fundamentals.DebtGrowthYoY = result.DebtGrowthYoY
	}
}

// applyWeights computes each position's share of the collected portfolio
// by market value.
func applyWeights(signals []contracts.RawSignal) {
	total := 0.0
	for _, s := range signals {
		total += float64(s.Shares) * s.CurrentPrice
	}
	if total <= 0 {
		return
	}
	for i := range signals {
		signals[i].PositionWeight = float64(signals[i].Shares) * signals[i].CurrentPrice / total
	}
}
