package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signalist/pkg/fetch"

	"github.com/go-playground/assert/v2"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := NewClient("test-token", fetch.NewClient(nil))
	client.baseURL = srv.URL
	return client, srv
}

func TestCompanyNews(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"symbol": r.URL.Query().Get("symbol"),
			"from":   r.URL.Query().Get("from"),
			"to":     r.URL.Query().Get("to"),
			"token":  r.URL.Query().Get("token"),
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"id":       int64(101),
				"headline": "Acme beats estimates",
				"summary":  "Strong quarter for Acme.",
				"source":   "Reuters",
				"url":      "https://example.com/acme",
				"datetime": int64(1756000000),
				"related":  "ACME",
			},
		})
	})
	defer srv.Close()

	from := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	articles, err := client.CompanyNews(context.Background(), "ACME", from, to, 5*time.Minute)
	assert.Equal(t, nil, err)

	assert.Equal(t, "/company-news", gotPath)
	assert.Equal(t, "ACME", gotQuery["symbol"])
	assert.Equal(t, "2026-08-27", gotQuery["from"])
	assert.Equal(t, "2026-09-01", gotQuery["to"])
	assert.Equal(t, "test-token", gotQuery["token"])

	assert.Equal(t, 1, len(articles))
	assert.Equal(t, int64(101), articles[0].ID)
	assert.Equal(t, "Acme beats estimates", articles[0].Headline)
	assert.Equal(t, int64(1756000000), articles[0].Datetime)
}

func TestMarketNews(t *testing.T) {
	var gotPath, gotCategory string

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCategory = r.URL.Query().Get("category")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": int64(7), "headline": "Markets open higher"},
		})
	})
	defer srv.Close()

	articles, err := client.MarketNews(context.Background())
	assert.Equal(t, nil, err)
	assert.Equal(t, "/news", gotPath)
	assert.Equal(t, "general", gotCategory)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Markets open higher", articles[0].Headline)
}

func TestProfile(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"name":     "Apple Inc",
			"ticker":   "AAPL",
			"exchange": "NASDAQ NMS - GLOBAL MARKET",
		})
	})
	defer srv.Close()

	profile, err := client.Profile(context.Background(), "AAPL", time.Hour)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple Inc", profile.Name)
	assert.Equal(t, "AAPL", profile.Ticker)
	assert.Equal(t, "NASDAQ NMS - GLOBAL MARKET", profile.Exchange)
}

func TestSearch(t *testing.T) {
	var gotQ string

	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 1,
			"result": []map[string]string{
				{
					"symbol":        "TSLA",
					"description":   "Tesla Inc",
					"displaySymbol": "TSLA",
					"type":          "Common Stock",
				},
			},
		})
	})
	defer srv.Close()

	results, err := client.Search(context.Background(), "tesla", 30*time.Minute)
	assert.Equal(t, nil, err)
	assert.Equal(t, "tesla", gotQ)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, "TSLA", results[0].Symbol)
	assert.Equal(t, "Tesla Inc", results[0].Description)
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", fetch.NewClient(nil))

	_, err := client.MarketNews(context.Background())
	assert.Equal(t, true, errors.Is(err, ErrAPIKeyMissing))

	_, err = client.CompanyNews(context.Background(), "AAPL", time.Now(), time.Now(), 0)
	assert.Equal(t, true, errors.Is(err, ErrAPIKeyMissing))

	_, err = client.Profile(context.Background(), "AAPL", 0)
	assert.Equal(t, true, errors.Is(err, ErrAPIKeyMissing))

	_, err = client.Search(context.Background(), "apple", 0)
	assert.Equal(t, true, errors.Is(err, ErrAPIKeyMissing))
}

func TestProviderErrorPassesThrough(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid API key"))
	})
	defer srv.Close()

	_, err := client.MarketNews(context.Background())
	assert.NotEqual(t, nil, err)

	var providerErr *fetch.ProviderError
	assert.Equal(t, true, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
}
