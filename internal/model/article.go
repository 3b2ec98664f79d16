package model

// Article is the output shape served to callers. It is only ever
// produced from a validated provider record: headline, summary, url
// and source are non-empty and datetime is a positive epoch second.
type Article struct {
	ID       int64  `json:"id"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
	Category string `json:"category"`
	Related  string `json:"related"`
	Image    string `json:"image,omitempty"`
}
