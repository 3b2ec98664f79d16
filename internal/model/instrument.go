package model

// Instrument is a tradable instrument as returned by stock search.
// IsInWatchlist is always false at resolution time; the API layer
// overlays per-user membership on top.
type Instrument struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Type          string `json:"type"`
	IsInWatchlist bool   `json:"isInWatchlist"`
}
