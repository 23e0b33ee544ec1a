package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// TavilyProvider implements the Tavily search API
type TavilyProvider struct {
	*BaseProvider
}

// NewTavilyProvider creates a new Tavily provider
func NewTavilyProvider(config *types.ProviderConfig) (Provider, error) {
	base := NewBaseProvider(config)
	return &TavilyProvider{BaseProvider: base}, nil
}

// tavilyRequest represents a Tavily API request
type tavilyRequest struct {
	Query          string   `json:"query"`
	Topic          string   `json:"topic,omitempty"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
	TimeRange      string   `json:"time_range,omitempty"`
	Language       string   `json:"language,omitempty"`
	IncludeAnswer  bool     `json:"include_answer,omitempty"`
	IncludeImages  bool     `json:"include_images,omitempty"`
}

// tavilyResponse represents a Tavily API response
type tavilyResponse struct {
	Answer  string `json:"answer,omitempty"`
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		Score         float32 `json:"score"`
		PublishedDate string  `json:"published_date,omitempty"`
	} `json:"results"`
	Images []string `json:"images,omitempty"`
	Query  string   `json:"query"`
}

// buildRequest applies the type-specific parameter shaping: news forces
// advanced search depth, image forces image inclusion, and the query is
// bounded to the provider's payload limit.
func buildRequest(query string, cfg *types.SearchConfig) tavilyRequest {
	req := tavilyRequest{
		Query:          truncateQuery(query),
		SearchDepth:    string(cfg.Depth),
		MaxResults:     cfg.MaxResults,
		IncludeDomains: cfg.IncludeDomains,
		ExcludeDomains: cfg.ExcludeDomains,
		Language:       cfg.Language,
		IncludeAnswer:  true,
		IncludeImages:  cfg.IncludeImages,
	}

	if req.MaxResults == 0 {
		req.MaxResults = 5
	}
	if req.SearchDepth == "" {
		req.SearchDepth = string(types.SearchDepthBasic)
	}

	switch cfg.Type {
	case types.SearchTypeNews:
		req.SearchDepth = string(types.SearchDepthAdvanced)
		req.Topic = "news"
	case types.SearchTypeImage:
		req.IncludeImages = true
	}

	if cfg.TimeWindow != "" && cfg.TimeWindow != types.TimeWindowAuto {
		req.TimeRange = string(cfg.TimeWindow)
	}

	return req
}

// Search executes a search query using the Tavily API
func (p *TavilyProvider) Search(ctx context.Context, query string, cfg *types.SearchConfig) (*Response, error) {
	if !p.Available() {
		return nil, types.ErrProviderNotAvailable
	}

	tavilyReq := buildRequest(query, cfg)

	reqBody, err := json.Marshal(tavilyReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/search", p.config.APIHost)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey()))

	resp, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, &types.ProviderError{
			Provider: p.ID(),
			Code:     "REQUEST_FAILED",
			Message:  "Failed to execute request",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.ProviderError{
			Provider: p.ID(),
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  string(body),
		}
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(body, &tavilyResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]*types.RawResult, len(tavilyResp.Results))
	for i, r := range tavilyResp.Results {
		results[i] = &types.RawResult{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		}
		// Tavily returns page images as a parallel top-level array
		if i < len(tavilyResp.Images) {
			results[i].ImageURL = tavilyResp.Images[i]
		}
	}

	return &Response{
		Results: results,
		Answer:  tavilyResp.Answer,
		Raw:     json.RawMessage(body),
	}, nil
}
