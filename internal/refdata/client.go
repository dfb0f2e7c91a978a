// Package refdata looks up the remittal result definitions published by the
// reference-data service.
package refdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

const remittalPath = "/result-definitions/remittal"

type Config struct {
	URL              string
	Timeout          time.Duration
	CacheTTL         time.Duration
	FallbackRemitIDs []string
}

type remittalResponse struct {
	ResultIDs []string `json:"resultIds"`
}

// Client fetches and caches remittal result ids, falling back to the
// configured list when the service is unavailable.
type Client struct {
	baseURL  string
	ttl      time.Duration
	timeout  time.Duration
	fallback []string
	http     *http.Client
	logger   *slog.Logger
	now      func() time.Time

	refresh singleflight.Group

	mu        sync.Mutex
	cached    []string
	fetchedAt time.Time
}

func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		ttl:      cfg.CacheTTL,
		timeout:  cfg.Timeout,
		fallback: append([]string(nil), cfg.FallbackRemitIDs...),
		logger:   logger.With("component", "refdata"),
		now:      time.Now,
	}
	if c.baseURL != "" {
		c.http = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return c
}

// RemitResultIDs returns the remittal result-type ids. Without a service URL
// the configured list is authoritative. ok is false only when a configured
// service could not be reached and nothing was cached yet.
//
// Concurrent callers share one refresh. The refresh is bounded by the client
// timeout rather than ctx, so a caller giving up does not fail it for others.
func (c *Client) RemitResultIDs(ctx context.Context) (ids []string, ok bool) {
	if c.baseURL == "" {
		return c.fallback, true
	}
	if ids, fresh := c.cachedIDs(); fresh {
		return ids, true
	}

	select {
	case res := <-c.refresh.DoChan(remittalPath, c.refreshCache):
		if res.Err != nil {
			return c.degraded()
		}
		return res.Val.([]string), true
	case <-ctx.Done():
		c.logger.Debug("caller gave up waiting for reference data", "error", ctx.Err())
		return c.degraded()
	}
}

func (c *Client) cachedIDs() (ids []string, fresh bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached, c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl
}

// degraded serves the stale cache when there is one, otherwise the fallback.
func (c *Client) degraded() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil {
		return c.cached, true
	}
	return c.fallback, false
}

func (c *Client) refreshCache() (any, error) {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		if stale, _ := c.cachedIDs(); stale != nil {
			c.logger.Warn("reference data refresh failed, serving stale remittal ids", "error", err)
		} else {
			c.logger.Warn("reference data unavailable, using fallback remittal ids", "error", err)
		}
		return nil, err
	}

	c.mu.Lock()
	c.cached, c.fetchedAt = fetched, c.now()
	c.mu.Unlock()
	c.logger.Debug("remittal ids refreshed", "count", len(fetched))
	return fetched, nil
}

func (c *Client) fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+remittalPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get remittal definitions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("get remittal definitions: unexpected status %d", resp.StatusCode)
	}

	var rr remittalResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("decode remittal definitions: %w", err)
	}
	if rr.ResultIDs == nil {
		rr.ResultIDs = []string{}
	}
	return rr.ResultIDs, nil
}
