package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type EventDispatcher interface {
	Dispatch(ctx context.Context, eventType string, data map[string]any)
}

type WatchlistHandler struct {
	watchlist  WatchlistStore
	dispatcher EventDispatcher
}

func NewWatchlistHandler(watchlist WatchlistStore, dispatcher EventDispatcher) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlist, dispatcher: dispatcher}
}

func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	userID := userID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user"})
		return
	}

	symbols, err := h.watchlist.GetSymbols(userID)
	if err != nil {
		slog.Error("error fetching watchlist", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, WatchlistResponse{Symbols: symbols, Count: len(symbols)})
}

func (h *WatchlistHandler) AddSymbol(c *gin.Context) {
	userID := userID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user"})
		return
	}

	var req AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	added, err := h.watchlist.Add(userID, symbol, req.Company)
	if err != nil {
		slog.Error("error adding watchlist symbol", "user_id", userID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if added && h.dispatcher != nil {
		h.dispatcher.Dispatch(c.Request.Context(), "watchlist.added", map[string]any{
			"user_id": userID,
			"symbol":  symbol,
		})
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "added": added})
}

func (h *WatchlistHandler) RemoveSymbol(c *gin.Context) {
	userID := userID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing user"})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	removed, err := h.watchlist.Remove(userID, symbol)
	if err != nil {
		slog.Error("error removing watchlist symbol", "user_id", userID, "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Symbol not on watchlist"})
		return
	}

	if h.dispatcher != nil {
		h.dispatcher.Dispatch(c.Request.Context(), "watchlist.removed", map[string]any{
			"user_id": userID,
			"symbol":  symbol,
		})
	}

	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "removed": true})
}
