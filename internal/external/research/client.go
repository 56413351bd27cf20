// Package research asks Gemini for the signals no market data API sells
// cheaply: upcoming catalysts, trailing insider activity and debt trend.
// Responses are requested as strict JSON. When the model or the network
// fails, every field degrades to an explicit unknown rather than a
// fabricated number.
package research

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/ats/lynchboard/pkg/logger"
)

const defaultModel = "gemini-2.0-flash"

// Client wraps the Gemini API for per-ticker research.
type Client struct {
	genai  *genai.Client
	logger *logger.Logger
	model  string
}

// NewClient creates a research client. An empty API key yields a disabled
// client: Research returns an error and the collector falls back to
// unknown metrics, so a missing key degrades the run instead of failing it.
func NewClient(ctx context.Context, apiKey, model string, log *logger.Logger) (*Client, error) {
	c := &Client{logger: log, model: model}
	if c.model == "" {
		c.model = defaultModel
	}
	if apiKey == "" {
		log.Warn("Gemini API key not set, research disabled")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.genai = gc
	return c, nil
}

// Enabled reports whether the client can reach the model.
func (c *Client) Enabled() bool {
	return c.genai != nil
}

// Research asks the model about one holding.
func (c *Client) Research(ctx context.Context, ticker, companyName string, asOf time.Time) (*StockResearch, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("research client disabled: no API key")
	}

	prompt := buildPrompt(ticker, companyName, asOf)

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("research request for %s failed: %w", ticker, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty research response for %s", ticker)
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	result, err := parseResearch(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse research for %s: %w", ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":    ticker,
		"catalysts": len(result.Catalysts),
	}).Debug("Fetched research")

	return result, nil
}

// buildPrompt writes the research question. Real catalysts only: product
// launches, contracts, regulatory decisions, not just the earnings date.
func buildPrompt(ticker, companyName string, asOf time.Time) string {
	return fmt.Sprintf(`You are a portfolio research assistant. Today is %s.
Research the stock %s (%s) and answer with ONLY a JSON object in this exact shape:

{
  "upcoming_catalysts": [
    {"date": "YYYY-MM-DD", "event": "short description", "confidence": 0.0}
  ],
  "insider_net_usd": 0.0,
  "debt_growth_yoy": 0.0
}

Rules:
- upcoming_catalysts: concrete dated events after %s (product launches,
  contract awards, regulatory decisions, earnings dates). confidence is
  your 0..1 certainty the event happens on that date.
- insider_net_usd: net insider buying (positive) or selling (negative)
  in USD over the last 90 days. Use null if you do not know.
- debt_growth_yoy: total debt growth year over year as a fraction
  (0.25 means 25%% growth). Use null if you do not know.
- Never guess a number. Unknown is null.`,
		asOf.Format("2006-01-02"), ticker, companyName, asOf.Format("2006-01-02"))
}
