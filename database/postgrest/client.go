// File: database/postgrest/client.go
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config configures a Client. APIKey is sent on every request; AccessToken,
// when set, replaces it as the bearer credential.
type Config struct {
	BaseURL           string
	APIKey            string
	AccessToken       string
	Timeout           time.Duration
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client talks to a PostgREST endpoint (tables under /rest/v1, functions under /rest/v1/rpc).
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		token:   cfg.AccessToken,
	}
}

// SetAccessToken swaps the bearer credential used by later requests. An empty
// token falls back to the API key.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" {
		return c.token
	}
	return c.apiKey
}

// Select reads rows of table into out (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table, columns string, filters Filters, out any) error {
	if columns == "" {
		columns = "*"
	}
	query := "select=" + encodeValue(columns)
	if q := filters.Encode(); q != "" {
		query += "&" + q
	}
	return c.do(ctx, http.MethodGet, "/rest/v1/"+table+"?"+query, nil, out)
}

// Insert writes row (a struct or slice) and decodes the stored representation into out.
func (c *Client) Insert(ctx context.Context, table string, row any, out any) error {
	return c.do(ctx, http.MethodPost, "/rest/v1/"+table, row, out)
}

// RPC calls a database function with named params.
func (c *Client) RPC(ctx context.Context, fn string, params any, out any) error {
	if params == nil {
		params = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, "/rest/v1/rpc/"+fn, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
