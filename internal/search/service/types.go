package service

import "github.com/akash-kant/searchsearviceusingtavily/internal/search/types"

// SearchRequest is the inbound HTTP request shape. Empty queries are
// passed through to the use case, which answers with an input-error
// response rather than an HTTP failure.
type SearchRequest struct {
	Query          string   `json:"query" form:"query"`
	CallerToken    string   `json:"caller_token" form:"caller_token"`
	SearchType     string   `json:"search_type" form:"search_type"`
	SearchDepth    string   `json:"search_depth" form:"search_depth"`
	MaxResults     int      `json:"max_results" form:"max_results"`
	IncludeDomains []string `json:"include_domains" form:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains" form:"exclude_domains"`
	TimeFrame      string   `json:"time_frame" form:"time_frame"`
	Language       string   `json:"language" form:"language"`
	IncludeImages  bool     `json:"include_images" form:"include_images"`
}

// Config converts the request into a search configuration, applying
// defaults and the provider result-count clamp.
func (r *SearchRequest) Config() *types.SearchConfig {
	cfg := &types.SearchConfig{
		Type:           types.SearchType(r.SearchType),
		Depth:          types.SearchDepth(r.SearchDepth),
		MaxResults:     r.MaxResults,
		IncludeDomains: r.IncludeDomains,
		ExcludeDomains: r.ExcludeDomains,
		TimeWindow:     types.TimeWindow(r.TimeFrame),
		Language:       r.Language,
		IncludeImages:  r.IncludeImages,
	}
	cfg.Normalize()
	return cfg
}

// CacheStatsResponse is the cache introspection payload
type CacheStatsResponse struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}
