// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/finsightlabs/finsight/internal/common"
	"github.com/finsightlabs/finsight/internal/interfaces"
	"github.com/finsightlabs/finsight/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 5 * time.Second
	DefaultRateLimit = 10 // requests per second

	// The chart endpoint rejects requests without a browser-like
	// user-agent header.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// cryptoSymbols is the fixed allow-list of tickers quoted against USD.
// Crypto symbols are queried with a "-USD" suffix; everything else is
// queried as-is.
var cryptoSymbols = map[string]bool{
	"BTC": true, "ETH": true, "BNB": true, "XRP": true, "ADA": true,
	"SOL": true, "DOGE": true, "DOT": true, "MATIC": true, "AVAX": true,
	"TRX": true, "LTC": true, "SHIB": true, "UNI": true, "ATOM": true,
	"XLM": true, "ETC": true, "FIL": true, "ICP": true, "NEAR": true,
}

// Client implements the MarketClient interface against the Yahoo Finance
// v8 chart endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an upstream API error
type APIError struct {
	StatusCode int
	Symbol     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo chart API error for %s (status: %d)", e.Symbol, e.StatusCode)
}

// chartResponse mirrors the slice of the v8 chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// QuerySymbol normalizes a symbol to its chart-endpoint query form:
// uppercased, with a -USD suffix for known crypto tickers.
func QuerySymbol(symbol string) string {
	ticker := strings.ToUpper(strings.TrimSpace(symbol))
	if cryptoSymbols[ticker] {
		return ticker + "-USD"
	}
	return ticker
}

// GetPrice retrieves the current price and previous close for a symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (*models.PriceQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	ticker := QuerySymbol(symbol)
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	c.logger.Debug().Str("symbol", symbol).Str("ticker", ticker).Msg("Yahoo chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Symbol: ticker}
	}

	var data chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}

	if len(data.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s: %w", ticker, models.ErrNotFound)
	}

	meta := data.Chart.Result[0].Meta
	if meta.RegularMarketPrice == nil || meta.ChartPreviousClose == nil {
		return nil, fmt.Errorf("price data not found for %s: %w", ticker, models.ErrNotFound)
	}

	return &models.PriceQuote{
		Symbol:        ticker,
		CurrentPrice:  *meta.RegularMarketPrice,
		PreviousClose: *meta.ChartPreviousClose,
	}, nil
}

// Ensure Client implements MarketClient
var _ interfaces.MarketClient = (*Client)(nil)
