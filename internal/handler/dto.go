package handler

import "signalist/internal/model"

type NewsResponse struct {
	Articles []model.Article `json:"articles"`
	Count    int             `json:"count"`
}

type SearchResponse struct {
	Results []model.Instrument `json:"results"`
	Count   int                `json:"count"`
}

type WatchlistResponse struct {
	Symbols []string `json:"symbols"`
	Count   int      `json:"count"`
}

type AddWatchlistRequest struct {
	Symbol  string `json:"symbol"`
	Company string `json:"company"`
}
