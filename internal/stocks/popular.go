package stocks

// PopularStockSymbols is the pre-ranked list backing empty search
// queries. Order matters: the resolver takes the first ten.
var PopularStockSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"TSLA", "META", "NFLX", "AMD", "INTC",
	"CRM", "ORCL", "ADBE", "UBER", "SHOP",
	"SPOT", "PYPL", "SQ", "COIN", "PLTR",
}
