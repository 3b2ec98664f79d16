package news

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"signalist/internal/model"
	"signalist/pkg/finnhub"
)

const (
	maxArticles     = 6
	newsWindowDays  = 5
	companyNewsTTL  = 300 * time.Second
	fallbackPoolCap = 20
)

// ErrFetchFailed is the aggregator's only externally visible failure.
// Callers should treat it as "no news available right now".
var ErrFetchFailed = errors.New("failed to fetch news")

type Provider interface {
	HasAPIKey() bool
	CompanyNews(ctx context.Context, symbol string, from, to time.Time, cacheFor time.Duration) ([]finnhub.RawArticle, error)
	MarketNews(ctx context.Context) ([]finnhub.RawArticle, error)
}

type Aggregator struct {
	provider Provider
	now      func() time.Time
}

func NewAggregator(provider Provider) *Aggregator {
	return &Aggregator{provider: provider, now: time.Now}
}

// GetNews returns at most six articles for the given symbols, newest
// first. With no symbols, or when no symbol yields a valid article, it
// falls back to the provider's general feed in provider order.
func (a *Aggregator) GetNews(ctx context.Context, symbols []string) ([]model.Article, error) {
	if !a.provider.HasAPIKey() {
		slog.Error("error fetching news", "error", finnhub.ErrAPIKeyMissing)
		return nil, ErrFetchFailed
	}

	clean := normalizeSymbols(symbols)

	if len(clean) > 0 {
		from, to := a.dateRange(newsWindowDays)
		slots := a.fetchCompanyNews(ctx, clean, from, to)

		collected := roundRobinMerge(clean, slots, maxArticles)
		if len(collected) > 0 {
			sort.SliceStable(collected, func(i, j int) bool {
				return collected[i].Datetime > collected[j].Datetime
			})
			if len(collected) > maxArticles {
				collected = collected[:maxArticles]
			}
			return collected, nil
		}
	}

	general, err := a.provider.MarketNews(ctx)
	if err != nil {
		slog.Error("error fetching general news", "error", err)
		return nil, ErrFetchFailed
	}

	return formatGeneral(general, maxArticles), nil
}

// normalizeSymbols trims, uppercases and drops empty entries.
// Duplicates are kept: each occurrence is its own fetch slot.
func normalizeSymbols(symbols []string) []string {
	clean := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		clean = append(clean, s)
	}
	return clean
}

// dateRange is the trailing window shared by every company-news query
// in one aggregation: days back from now through today, inclusive.
func (a *Aggregator) dateRange(days int) (time.Time, time.Time) {
	to := a.now()
	return to.AddDate(0, 0, -days), to
}

// fetchCompanyNews fans out one fetch per symbol slot and waits for all
// of them. A failed slot degrades to an empty list and never aborts the
// batch; each slot's list is validated before the merge sees it.
func (a *Aggregator) fetchCompanyNews(ctx context.Context, symbols []string, from, to time.Time) [][]finnhub.RawArticle {
	slots := make([][]finnhub.RawArticle, len(symbols))

	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()

			articles, err := a.provider.CompanyNews(ctx, sym, from, to, companyNewsTTL)
			if err != nil {
				slog.Error("error fetching company news", "symbol", sym, "error", err)
				return
			}

			var valid []finnhub.RawArticle
			for _, art := range articles {
				if validateArticle(art) {
					valid = append(valid, art)
				}
			}
			slots[i] = valid
		}(i, sym)
	}
	wg.Wait()

	return slots
}

// roundRobinMerge takes one article per slot per round, in input order,
// until the cap is reached or every slot is drained. A duplicated
// symbol keeps its own slot; an article whose key was already consumed
// by a sibling slot is discarded without counting toward the cap.
func roundRobinMerge(symbols []string, slots [][]finnhub.RawArticle, max int) []model.Article {
	collected := make([]model.Article, 0, max)
	seen := make(map[string]bool)

	for round := 0; ; round++ {
		progress := false
		for i, sym := range symbols {
			if len(slots[i]) == 0 {
				continue
			}

			art := slots[i][0]
			slots[i] = slots[i][1:]
			progress = true

			key := dedupKey(art)
			if seen[key] {
				continue
			}
			seen[key] = true

			collected = append(collected, formatArticle(art, true, sym, round))
			if len(collected) >= max {
				return collected
			}
		}
		if !progress {
			return collected
		}
	}
}

// formatGeneral deduplicates the general feed on (id, url, headline),
// first occurrence wins, caps the candidate pool at twenty, then
// formats the leading max articles in provider order.
func formatGeneral(articles []finnhub.RawArticle, max int) []model.Article {
	seen := make(map[string]bool)
	var unique []finnhub.RawArticle
	for _, art := range articles {
		if !validateArticle(art) {
			continue
		}
		key := dedupKey(art)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, art)
		if len(unique) >= fallbackPoolCap {
			break
		}
	}

	formatted := make([]model.Article, 0, max)
	for i, art := range unique {
		if i >= max {
			break
		}
		formatted = append(formatted, formatArticle(art, false, "", i))
	}
	return formatted
}
