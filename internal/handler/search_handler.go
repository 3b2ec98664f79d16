package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"signalist/internal/model"

	"github.com/gin-gonic/gin"
)

type StockSearcher interface {
	Search(ctx context.Context, query string) []model.Instrument
}

type SearchHandler struct {
	resolver  StockSearcher
	watchlist WatchlistStore
}

func NewSearchHandler(resolver StockSearcher, watchlist WatchlistStore) *SearchHandler {
	return &SearchHandler{resolver: resolver, watchlist: watchlist}
}

// SearchStocks resolves the q parameter into instruments. Resolution
// itself never fails; for authenticated callers the watchlist
// membership flag is overlaid here, on top of the resolver's output.
func (h *SearchHandler) SearchStocks(c *gin.Context) {
	instruments := h.resolver.Search(c.Request.Context(), c.Query("q"))

	if userID := userID(c); userID != "" && h.watchlist != nil {
		saved, err := h.watchlist.GetSymbols(userID)
		if err != nil {
			slog.Error("error loading watchlist symbols", "user_id", userID, "error", err)
		} else {
			watched := make(map[string]bool, len(saved))
			for _, s := range saved {
				watched[strings.ToUpper(s)] = true
			}
			for i := range instruments {
				instruments[i].IsInWatchlist = watched[instruments[i].Symbol]
			}
		}
	}

	c.JSON(http.StatusOK, SearchResponse{Results: instruments, Count: len(instruments)})
}
