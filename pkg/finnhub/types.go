package finnhub

// RawArticle is a provider-shaped news record. Required fields may be
// absent in the wire payload; validation happens downstream, never by
// defaulting here.
type RawArticle struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Related  string `json:"related"`
}

type CompanyProfile struct {
	Name     string `json:"name"`
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
	Industry string `json:"finnhubIndustry"`
	WebURL   string `json:"weburl"`
	Logo     string `json:"logo"`
}

type SearchResult struct {
	Symbol        string `json:"symbol"`
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Type          string `json:"type"`
}

type searchResponse struct {
	Count  int            `json:"count"`
	Result []SearchResult `json:"result"`
}
