// Package yahoo fetches quotes and fundamentals from Yahoo Finance.
// Quotes come from the public quote API; fundamentals that the quote
// API does not expose (PEG, growth rates) are scraped from the
// key-statistics page. Anything Yahoo does not report comes back as an
// explicit unknown metric, never a zero.
package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/piquette/finance-go/quote"

	"github.com/ats/lynchboard/internal/contracts"
	"github.com/ats/lynchboard/pkg/httputil"
	"github.com/ats/lynchboard/pkg/logger"
)

// Client handles communication with Yahoo Finance.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client. The http client's rate
// limit paces the scraping endpoints; the quote API goes through the
// finance-go transport.
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    "https://finance.yahoo.com",
	}
}

// WithBaseURL overrides the scraping base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// Quote is the subset of quote data an analysis run needs.
type Quote struct {
	Ticker      string
	CompanyName string
	Price       float64
}

// GetQuote fetches the current market quote for a ticker.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*Quote, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", ticker, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	name := q.ShortName
	if name == "" {
		name = ticker
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"price":  q.RegularMarketPrice,
	}).Debug("Fetched quote")

	return &Quote{
		Ticker:      ticker,
		CompanyName: name,
		Price:       q.RegularMarketPrice,
	}, nil
}

// GetFundamentals scrapes the key-statistics page for the valuation and
// growth figures the quote API does not carry. Fields missing from the
// page come back unknown.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (contracts.Fundamentals, error) {
	url := fmt.Sprintf("%s/quote/%s/key-statistics", c.baseURL, ticker)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return contracts.Fundamentals{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return contracts.Fundamentals{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contracts.Fundamentals{}, fmt.Errorf("failed to read response body: %w", err)
	}

	fundamentals := parseKeyStatistics(string(body))

	c.logger.WithFields(map[string]interface{}{
		"ticker":        ticker,
		"peg_known":     fundamentals.PEGRatio.IsKnown(),
		"revenue_known": fundamentals.RevenueGrowthYoY.IsKnown(),
	}).Debug("Fetched fundamentals")

	return fundamentals, nil
}
