package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Engine selects which public search backend to query.
type Engine string

// Supported search backends.
const (
	EngineBing   Engine = "bing"
	EngineGoogle Engine = "google"
)

// Browser-like user agent; the search engines block obvious bot agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const maxResponseBytes = 2 << 20

// Client issues text-search queries against a public search engine and
// returns the raw result HTML. It has no semantic understanding of the
// response; callers pattern-match it. Identical queries are served from an
// in-process TTL cache to limit exposure to engine rate limiting.
type Client struct {
	httpClient *http.Client
	engine     Engine
	cache      *gocache.Cache
}

// New builds a search client. A zero cacheTTL disables caching.
func New(httpClient *http.Client, engine Engine, cacheTTL time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	var cache *gocache.Cache
	if cacheTTL > 0 {
		cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return &Client{httpClient: httpClient, engine: engine, cache: cache}
}

// Search fetches the result page for the query. Failures are returned as-is;
// there is no retry, a failed search degrades to an unresolved field upstream.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	endpoint := c.queryURL(query)

	if c.cache != nil {
		if cached, found := c.cache.Get(endpoint); found {
			return cached.(string), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read search response: %w", err)
	}

	doc := string(body)
	if c.cache != nil {
		c.cache.SetDefault(endpoint, doc)
	}
	return doc, nil
}

func (c *Client) queryURL(query string) string {
	base := "https://www.bing.com/search?q="
	if c.engine == EngineGoogle {
		base = "https://www.google.com/search?q="
	}
	return base + url.QueryEscape(query)
}
