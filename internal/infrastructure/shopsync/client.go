package shopsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Saarathi-n/eshopzz/internal/domain"
	"golang.org/x/time/rate"
)

// searchEnvelope is the JSON envelope returned by the aggregation API for
// both the live and the mock data paths.
type searchEnvelope struct {
	Success    bool          `json:"success"`
	Products   []wireProduct `json:"products"`
	IsFallback bool          `json:"is_fallback"`
	Error      string        `json:"error"`
}

// Client handles communication with the ShopSync aggregation API. It
// implements the two-tier retrieval protocol: one live attempt, then one
// attempt against the mock/demo dataset before giving up.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new aggregation API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	// The aggregator drives headless browsers upstream, so keep call volume
	// modest: 1 request/sec sustained with a small burst.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose payload logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Search retrieves aggregated listings for the query. A failed primary
// attempt (transport error, non-200 status, bad payload, or success=false)
// triggers exactly one fallback attempt with mock=true; the primary error
// is suppressed once the fallback succeeds. Search fails only when both
// attempts fail, returning ErrSearchFailed with both causes attached.
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	result, primaryErr := c.attempt(ctx, query, false)
	if primaryErr == nil {
		log.Printf("[SHOPSYNC] Live search %q returned %d products (fallback=%v)",
			query, len(result.Products), result.IsFallback)
		return result, nil
	}

	log.Printf("[SHOPSYNC] Primary attempt failed for %q: %v - trying fallback data", query, primaryErr)

	result, fallbackErr := c.attempt(ctx, query, true)
	if fallbackErr != nil {
		log.Printf("[SHOPSYNC] Fallback attempt failed for %q: %v", query, fallbackErr)
		return nil, fmt.Errorf("%w: primary: %v; fallback: %v", domain.ErrSearchFailed, primaryErr, fallbackErr)
	}

	// Data came from the demo dataset regardless of what the payload says.
	result.IsFallback = true
	log.Printf("[SHOPSYNC] Fallback search %q returned %d products", query, len(result.Products))
	return result, nil
}

// attempt issues a single GET /search request and decodes the envelope.
// mock selects the demo dataset on the fallback tier.
func (c *Client) attempt(ctx context.Context, query string, mock bool) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Add("q", query)
	if mock {
		params.Add("mock", "true")
	}
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	// Wait for rate limiter
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, err)
	}

	if c.debug {
		log.Printf("[SHOPSYNC] GET %s -> %d (%d bytes)", reqURL, resp.StatusCode, len(body))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamFailure, err)
	}

	if !envelope.Success {
		reason := envelope.Error
		if reason == "" {
			reason = "upstream reported failure"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, reason)
	}

	return &domain.SearchResult{
		Products:   mapProducts(envelope.Products),
		IsFallback: envelope.IsFallback,
	}, nil
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "eshopzz/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	return resp, nil
}
