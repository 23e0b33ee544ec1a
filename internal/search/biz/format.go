package biz

import (
	"net/url"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/enhance"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// FormatResults projects raw results into the type-specific display
// shape. Image results lacking an image URL are excluded from the image
// projection (they still appear in the insights sequence).
func FormatResults(searchType types.SearchType, lang enhance.Language, results []*types.RawResult) []types.FormattedResult {
	formatted := make([]types.FormattedResult, 0, len(results))

	for _, r := range results {
		switch searchType {
		case types.SearchTypeNews:
			formatted = append(formatted, types.FormattedResult{
				Headline:      titleOrDefault(r.Title),
				NewsSource:    hostname(r.URL),
				PublishedDate: r.PublishedDate,
				URL:           r.URL,
			})
		case types.SearchTypeImage:
			if r.ImageURL == "" {
				continue
			}
			formatted = append(formatted, types.FormattedResult{
				Title:     titleOrDefault(r.Title),
				ImageURL:  r.ImageURL,
				SourceURL: r.URL,
			})
		default:
			formatted = append(formatted, types.FormattedResult{
				Title:   titleOrDefault(r.Title),
				URL:     r.URL,
				Content: enhance.Summarize(lang, enhance.Normalize(r.Content), enhance.MaxSummarySentences, enhance.SummaryCharsLight),
				Score:   r.Score,
			})
		}
	}

	return formatted
}

func titleOrDefault(title string) string {
	if title == "" {
		return "No title"
	}
	return title
}

func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Hostname()
}
