package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"signalist/pkg/cache"
)

// ProviderError reports a non-2xx response from the upstream provider.
// The status and body are kept for diagnosis; callers decide whether
// the failure degrades or escalates.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Body)
}

// Options controls a single fetch. A zero CacheFor bypasses the cache
// entirely; a positive window allows serving a previously stored
// response for that long, keyed by URL.
type Options struct {
	CacheFor time.Duration
}

type Client struct {
	httpClient *http.Client
	cache      cache.Cache
}

func NewClient(responseCache cache.Cache) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      responseCache,
	}
}

// GetJSON performs a single GET and returns the raw JSON body. No
// retries are attempted here.
func (c *Client) GetJSON(ctx context.Context, url string, opts Options) (json.RawMessage, error) {
	key := cacheKey(url)

	if opts.CacheFor > 0 && c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			return json.RawMessage(cached), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if readErr != nil {
		return nil, fmt.Errorf("fetch read: %w", readErr)
	}

	if opts.CacheFor > 0 && c.cache != nil {
		c.cache.Set(ctx, key, body, opts.CacheFor)
	}

	return json.RawMessage(body), nil
}

// cacheKey hashes the URL so credentials embedded in query strings
// never appear as cache keys.
func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "fetch:" + fmt.Sprintf("%x", sum)[:16]
}
