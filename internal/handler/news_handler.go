package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"signalist/internal/model"

	"github.com/gin-gonic/gin"
)

type NewsSource interface {
	GetNews(ctx context.Context, symbols []string) ([]model.Article, error)
}

type WatchlistStore interface {
	GetSymbols(userID string) ([]string, error)
	Add(userID, symbol, company string) (bool, error)
	Remove(userID, symbol string) (bool, error)
}

type NewsHandler struct {
	aggregator NewsSource
	watchlist  WatchlistStore
}

func NewNewsHandler(aggregator NewsSource, watchlist WatchlistStore) *NewsHandler {
	return &NewsHandler{aggregator: aggregator, watchlist: watchlist}
}

// GetNews serves up to six articles. With no symbols parameter, an
// authenticated caller gets news for their saved watchlist; everyone
// else gets the general feed.
func (h *NewsHandler) GetNews(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))

	if len(symbols) == 0 {
		if userID := userID(c); userID != "" && h.watchlist != nil {
			saved, err := h.watchlist.GetSymbols(userID)
			if err != nil {
				slog.Error("error loading watchlist symbols", "user_id", userID, "error", err)
			} else {
				symbols = saved
			}
		}
	}

	articles, err := h.aggregator.GetNews(c.Request.Context(), symbols)
	if err != nil {
		slog.Error("error fetching news", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No news available right now"})
		return
	}

	c.JSON(http.StatusOK, NewsResponse{Articles: articles, Count: len(articles)})
}

func splitSymbols(raw string) []string {
	if raw == "" {
		return nil
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		symbols = append(symbols, s)
	}
	return symbols
}

func userID(c *gin.Context) string {
	return c.GetHeader("X-User-ID")
}
