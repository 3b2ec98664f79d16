package news

import (
	"fmt"

	"signalist/internal/model"
	"signalist/pkg/finnhub"
)

func validateArticle(a finnhub.RawArticle) bool {
	return a.Headline != "" &&
		a.Summary != "" &&
		a.URL != "" &&
		a.Source != "" &&
		a.Datetime > 0
}

// formatArticle shapes a validated provider record for output. Company
// scoped queries are symbol-authoritative, so the related field is
// stamped with the queried symbol instead of the provider's value.
// index is a tie-breaking hint for constrained orderings; the final
// sort is stable, so it is accepted but not consulted.
func formatArticle(a finnhub.RawArticle, companyScoped bool, symbol string, index int) model.Article {
	related := a.Related
	if companyScoped {
		related = symbol
	}

	return model.Article{
		ID:       a.ID,
		Headline: a.Headline,
		Summary:  a.Summary,
		Source:   a.Source,
		URL:      a.URL,
		Datetime: a.Datetime,
		Category: a.Category,
		Related:  related,
		Image:    a.Image,
	}
}

func dedupKey(a finnhub.RawArticle) string {
	return fmt.Sprintf("%d-%s-%s", a.ID, a.URL, a.Headline)
}
