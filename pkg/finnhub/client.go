package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"signalist/pkg/fetch"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

var ErrAPIKeyMissing = errors.New("finnhub api key is not configured")

// Getter performs a single JSON GET, optionally served from cache for
// the window given in the options.
type Getter interface {
	GetJSON(ctx context.Context, url string, opts fetch.Options) (json.RawMessage, error)
}

type Client struct {
	baseURL string
	token   string
	fetcher Getter
}

func NewClient(token string, fetcher Getter) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		fetcher: fetcher,
	}
}

func (c *Client) HasAPIKey() bool {
	return c.token != ""
}

// CompanyNews returns news for one symbol within the given date range.
// The cache window is the caller's policy, passed through per call.
func (c *Client) CompanyNews(ctx context.Context, symbol string, from, to time.Time, cacheFor time.Duration) ([]RawArticle, error) {
	if c.token == "" {
		return nil, ErrAPIKeyMissing
	}

	u := fmt.Sprintf("%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		c.baseURL, url.QueryEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"), c.token)

	raw, err := c.fetcher.GetJSON(ctx, u, fetch.Options{CacheFor: cacheFor})
	if err != nil {
		return nil, fmt.Errorf("company news %s: %w", symbol, err)
	}

	var articles []RawArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("company news decode: %w", err)
	}

	return articles, nil
}

// MarketNews returns the provider's general news feed. It always hits
// the provider directly, with no cache window.
func (c *Client) MarketNews(ctx context.Context) ([]RawArticle, error) {
	if c.token == "" {
		return nil, ErrAPIKeyMissing
	}

	u := fmt.Sprintf("%s/news?category=general&token=%s", c.baseURL, c.token)

	raw, err := c.fetcher.GetJSON(ctx, u, fetch.Options{})
	if err != nil {
		return nil, fmt.Errorf("market news: %w", err)
	}

	var articles []RawArticle
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("market news decode: %w", err)
	}

	return articles, nil
}

func (c *Client) Profile(ctx context.Context, symbol string, cacheFor time.Duration) (*CompanyProfile, error) {
	if c.token == "" {
		return nil, ErrAPIKeyMissing
	}

	u := fmt.Sprintf("%s/stock/profile2?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), c.token)

	raw, err := c.fetcher.GetJSON(ctx, u, fetch.Options{CacheFor: cacheFor})
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}

	var profile CompanyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("profile decode: %w", err)
	}

	return &profile, nil
}

func (c *Client) Search(ctx context.Context, query string, cacheFor time.Duration) ([]SearchResult, error) {
	if c.token == "" {
		return nil, ErrAPIKeyMissing
	}

	u := fmt.Sprintf("%s/search?q=%s&token=%s", c.baseURL, url.QueryEscape(query), c.token)

	raw, err := c.fetcher.GetJSON(ctx, u, fetch.Options{CacheFor: cacheFor})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var res searchResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}

	return res.Result, nil
}
