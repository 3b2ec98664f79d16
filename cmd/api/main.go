package main

import (
	"log"
	"log/slog"
	"os"

	"signalist/db"
	"signalist/internal/event"
	"signalist/internal/handler"
	"signalist/internal/news"
	"signalist/internal/repository"
	"signalist/internal/stocks"
	"signalist/pkg/cache"
	"signalist/pkg/fetch"
	"signalist/pkg/finnhub"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("error ensuring schema: %v", err)
	}

	var responseCache cache.Cache = cache.NewMemory()
	var dispatcher *event.Dispatcher
	if err := db.ConnectRedis(); err != nil {
		slog.Warn("redis unavailable, falling back to in-memory cache", "error", err)
	} else {
		defer db.CloseRedis()
		responseCache = cache.NewRedis(db.Redis)
		dispatcher = event.NewDispatcher(db.Redis)
	}

	fetcher := fetch.NewClient(responseCache)
	provider := finnhub.NewClient(os.Getenv("FINNHUB_API_KEY"), fetcher)

	aggregator := news.NewAggregator(provider)
	resolver := stocks.NewResolver(provider, responseCache, 0)

	watchlistRepo := repository.NewWatchlistRepository(db.DB)

	newsHandler := handler.NewNewsHandler(aggregator, watchlistRepo)
	searchHandler := handler.NewSearchHandler(resolver, watchlistRepo)
	watchlistHandler := handler.NewWatchlistHandler(watchlistRepo, dispatcher)
	healthHandler := handler.NewHealthHandler(db.DB)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "X-User-ID"},
	}))

	r.GET("/news", newsHandler.GetNews)
	r.GET("/search", searchHandler.SearchStocks)
	r.GET("/watchlist", watchlistHandler.GetWatchlist)
	r.POST("/watchlist", watchlistHandler.AddSymbol)
	r.DELETE("/watchlist/:symbol", watchlistHandler.RemoveSymbol)
	r.GET("/health", healthHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
