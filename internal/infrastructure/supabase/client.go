package supabase

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

	"github.com/hvutuan2514/SkincareApp/internal/domain"
	"golang.org/x/time/rate"
)

// Client queries a Supabase PostgREST endpoint for the skincare taxonomy
// and product catalog tables. It implements domain.TaxonomyStore.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Supabase REST client.
func NewClient(baseURL, apiKey string) *Client {
	// PostgREST handles bursts fine; keep a mild steady rate so one
	// recommendation's fan-out doesn't trip the project limits.
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// get executes a PostgREST table query and decodes the JSON array response
// into out. Transient failures (transport errors, 5xx) are retried up to 3
// times with linear backoff.
func (c *Client) get(ctx context.Context, table string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[SUPABASE] %s request error (attempt %d): %v", table, attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[SUPABASE] %s error (attempt %d) - Status: %d, Body: %s", table, attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: %s status %d", domain.ErrStoreUnavailable, table, resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError {
				time.Sleep(time.Duration(attempt*500) * time.Millisecond)
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", table, err)
		}
		return nil
	}

	return lastErr
}
