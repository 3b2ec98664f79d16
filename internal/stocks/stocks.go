package stocks

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"signalist/internal/model"
	"signalist/pkg/cache"
	"signalist/pkg/finnhub"
)

const (
	maxResults      = 15
	popularCount    = 10
	profileTTL      = time.Hour
	searchTTL       = 30 * time.Minute
	defaultMemoTTL  = 5 * time.Minute
	defaultExchange = "US"
	defaultType     = "Stock"
	commonStockType = "Common Stock"
)

type Provider interface {
	HasAPIKey() bool
	Profile(ctx context.Context, symbol string, cacheFor time.Duration) (*finnhub.CompanyProfile, error)
	Search(ctx context.Context, query string, cacheFor time.Duration) ([]finnhub.SearchResult, error)
}

// Resolver turns a free-text query into tradable instruments. The
// whole result of a resolution is memoized per normalized query, not
// just the underlying fetches.
type Resolver struct {
	provider Provider
	memo     cache.Cache
	memoTTL  time.Duration
}

func NewResolver(provider Provider, memo cache.Cache, memoTTL time.Duration) *Resolver {
	if memoTTL <= 0 {
		memoTTL = defaultMemoTTL
	}
	return &Resolver{provider: provider, memo: memo, memoTTL: memoTTL}
}

// Search never fails: configuration and provider errors are logged and
// degrade to an empty result so search UIs stay non-blocking.
func (r *Resolver) Search(ctx context.Context, query string) []model.Instrument {
	if !r.provider.HasAPIKey() {
		slog.Error("error in stock search", "error", finnhub.ErrAPIKeyMissing)
		return []model.Instrument{}
	}

	trimmed := strings.TrimSpace(query)
	key := memoKey(trimmed)

	if r.memo != nil {
		if cached, ok := r.memo.Get(ctx, key); ok {
			var instruments []model.Instrument
			if err := json.Unmarshal(cached, &instruments); err == nil {
				return instruments
			}
		}
	}

	var candidates []searchCandidate
	if trimmed == "" {
		candidates = r.popularProfiles(ctx)
	} else {
		found, err := r.provider.Search(ctx, trimmed, searchTTL)
		if err != nil {
			slog.Error("error in stock search", "query", trimmed, "error", err)
			return []model.Instrument{}
		}
		for _, res := range found {
			candidates = append(candidates, searchCandidate{result: res})
		}
	}

	instruments := make([]model.Instrument, 0, maxResults)
	for _, c := range candidates {
		if len(instruments) >= maxResults {
			break
		}
		instruments = append(instruments, c.instrument())
	}

	if r.memo != nil {
		if encoded, err := json.Marshal(instruments); err == nil {
			r.memo.Set(ctx, key, encoded, r.memoTTL)
		}
	}

	return instruments
}

// popularProfiles fans out one profile fetch per popular symbol and
// waits for all of them. A failed fetch skips that symbol only; a
// profile with no usable name is dropped.
func (r *Resolver) popularProfiles(ctx context.Context) []searchCandidate {
	top := PopularStockSymbols
	if len(top) > popularCount {
		top = top[:popularCount]
	}

	profiles := make([]*finnhub.CompanyProfile, len(top))

	var wg sync.WaitGroup
	for i, sym := range top {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()

			profile, err := r.provider.Profile(ctx, sym, profileTTL)
			if err != nil {
				slog.Error("error fetching company profile", "symbol", sym, "error", err)
				return
			}
			profiles[i] = profile
		}(i, sym)
	}
	wg.Wait()

	var candidates []searchCandidate
	for i, sym := range top {
		profile := profiles[i]
		if profile == nil {
			continue
		}

		name := profile.Name
		if name == "" {
			name = profile.Ticker
		}
		if name == "" {
			continue
		}

		symbol := strings.ToUpper(sym)
		candidates = append(candidates, searchCandidate{
			result: finnhub.SearchResult{
				Symbol:        symbol,
				Description:   name,
				DisplaySymbol: symbol,
				Type:          commonStockType,
			},
			exchange: profile.Exchange,
		})
	}
	return candidates
}

// searchCandidate pairs a provider search result with the exchange
// carried from a company profile on the popular-symbol path. The
// search result wire shape has no exchange field of its own.
type searchCandidate struct {
	result   finnhub.SearchResult
	exchange string
}

// instrument normalizes a candidate: uppercase symbol, name falling
// back to the symbol, exchange precedence displaySymbol then carried
// profile exchange then "US", type defaulting to "Stock". Watchlist
// membership is owned by the API layer and always starts false.
func (c searchCandidate) instrument() model.Instrument {
	symbol := strings.ToUpper(c.result.Symbol)

	name := c.result.Description
	if name == "" {
		name = symbol
	}

	exchange := c.result.DisplaySymbol
	if exchange == "" {
		exchange = c.exchange
	}
	if exchange == "" {
		exchange = defaultExchange
	}

	instrumentType := c.result.Type
	if instrumentType == "" {
		instrumentType = defaultType
	}

	return model.Instrument{
		Symbol:        symbol,
		Name:          name,
		Exchange:      exchange,
		Type:          instrumentType,
		IsInWatchlist: false,
	}
}

func memoKey(trimmed string) string {
	return "stocks:search:" + strings.ToLower(trimmed)
}
