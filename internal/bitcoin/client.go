// Package bitcoin fetches current Bitcoin market data from Mempool.space,
// enriched with the 24h price change from CoinGecko. Results are cached
// process-wide so the upstream APIs are queried at most once per minute.
package bitcoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jpillora/backoff"
)

const (
	defaultMempoolURL   = "https://mempool.space"
	defaultCoinGeckoURL = "https://api.coingecko.com"

	requestTimeout = 10 * time.Second
	cacheTTL       = 60 * time.Second
)

var (
	// ErrStaleQuote indicates the upstream refresh failed and the returned
	// quote is the last cached one.
	ErrStaleQuote = errors.New("serving cached bitcoin quote")

	// ErrUnavailable indicates no quote could be produced at all.
	ErrUnavailable = errors.New("bitcoin data unavailable")
)

// Quote is a point-in-time view of the Bitcoin market.
type Quote struct {
	PriceEUR   float64
	PriceUSD   float64
	Change24h  *float64 // nil when CoinGecko could not be reached
	FastestFee int      // sat/vB
	FetchedAt  time.Time
}

// Client provides rate-limited access to Bitcoin market data.
type Client interface {
	// Quote returns the current market quote. Calls within the cache window
	// return the cached quote without an upstream request. When a refresh
	// fails, the cached quote is served with ErrStaleQuote; without a cache
	// the call fails with ErrUnavailable.
	Quote(ctx context.Context) (*Quote, error)
}

type httpClient struct {
	http         *http.Client
	logger       *slog.Logger
	apiKey       string
	mempoolURL   string
	coingeckoURL string

	mu        sync.Mutex
	cached    *Quote
	fetchedAt time.Time
}

// New creates a Client using the public Mempool.space and CoinGecko APIs.
// The CoinGecko API key may be empty; the 24h change then degrades more often.
func New(apiKey string, logger *slog.Logger) Client {
	return newClient(apiKey, defaultMempoolURL, defaultCoinGeckoURL, logger)
}

func newClient(apiKey, mempoolURL, coingeckoURL string, logger *slog.Logger) *httpClient {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &httpClient{
		http:         &http.Client{Timeout: requestTimeout},
		logger:       logger.With("component", "bitcoin_client"),
		apiKey:       apiKey,
		mempoolURL:   mempoolURL,
		coingeckoURL: coingeckoURL,
	}
}

func (c *httpClient) Quote(ctx context.Context) (*Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < cacheTTL {
		c.logger.Debug("Using cached bitcoin quote", "age", time.Since(c.fetchedAt))
		q := *c.cached
		return &q, nil
	}

	quote, err := c.fetch(ctx)
	if err != nil {
		if c.cached != nil {
			c.logger.Warn("Bitcoin refresh failed, serving stale quote", "error", err)
			q := *c.cached
			return &q, fmt.Errorf("%w: %v", ErrStaleQuote, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.cached = quote
	c.fetchedAt = time.Now()
	c.logger.Info("Fetched bitcoin quote",
		"price_eur", quote.PriceEUR, "price_usd", quote.PriceUSD, "fastest_fee", quote.FastestFee)
	q := *quote
	return &q, nil
}

func (c *httpClient) fetch(ctx context.Context) (*Quote, error) {
	var prices struct {
		EUR float64 `json:"EUR"`
		USD float64 `json:"USD"`
	}
	if err := c.getJSON(ctx, c.mempoolURL+"/api/v1/prices", nil, &prices); err != nil {
		return nil, fmt.Errorf("mempool prices: %w", err)
	}

	var fees struct {
		FastestFee int `json:"fastestFee"`
	}
	if err := c.getJSON(ctx, c.mempoolURL+"/api/v1/fees/recommended", nil, &fees); err != nil {
		return nil, fmt.Errorf("mempool fees: %w", err)
	}

	quote := &Quote{
		PriceEUR:   prices.EUR,
		PriceUSD:   prices.USD,
		FastestFee: fees.FastestFee,
		FetchedAt:  time.Now(),
	}

	// The 24h change is decoration; a CoinGecko outage must not take the
	// whole quote down with it.
	change, err := c.fetchChange(ctx)
	if err != nil {
		c.logger.Warn("Failed to fetch 24h change from CoinGecko", "error", err)
	} else {
		quote.Change24h = &change
	}

	return quote, nil
}

func (c *httpClient) fetchChange(ctx context.Context) (float64, error) {
	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{"x-cg-demo-api-key": c.apiKey}
	}

	var resp struct {
		Bitcoin struct {
			Change *float64 `json:"eur_24h_change"`
		} `json:"bitcoin"`
	}
	url := c.coingeckoURL + "/api/v3/simple/price?ids=bitcoin&vs_currencies=eur&include_24hr_change=true"
	if err := c.getJSON(ctx, url, headers, &resp); err != nil {
		return 0, err
	}
	if resp.Bitcoin.Change == nil {
		return 0, errors.New("unexpected response shape from CoinGecko")
	}
	return *resp.Bitcoin.Change, nil
}

// getJSON performs a GET with at most one fast retry.
func (c *httpClient) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	b := &backoff.Backoff{Min: 100 * time.Millisecond, Max: time.Second}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(b.Duration()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if lastErr = c.getJSONOnce(ctx, url, headers, out); lastErr == nil {
			return nil
		}
		c.logger.Debug("Request failed", "url", url, "attempt", attempt+1, "error", lastErr)
	}
	return lastErr
}

func (c *httpClient) getJSONOnce(ctx context.Context, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
