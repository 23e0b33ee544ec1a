package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// maxRelatedTopics bounds how many related-topic snippets the fallback
// answer carries.
const maxRelatedTopics = 3

// DefaultAnswer is returned when the instant-answer API has no abstract
// text for the query.
const DefaultAnswer = "No direct answer."

// DuckDuckGoProvider queries the public DuckDuckGo Instant Answer API.
// It is the secondary tier: best-effort direct answer plus related
// topics, no result list and no enhancement.
type DuckDuckGoProvider struct {
	*BaseProvider
}

// NewDuckDuckGoProvider creates a new DuckDuckGo fallback provider
func NewDuckDuckGoProvider(config *types.ProviderConfig) (*DuckDuckGoProvider, error) {
	base := NewBaseProvider(config)
	return &DuckDuckGoProvider{BaseProvider: base}, nil
}

// Available always reports true: the instant-answer API is public and
// needs no credential.
func (p *DuckDuckGoProvider) Available() bool {
	return true
}

// Fallback executes an instant-answer lookup. The payload is loosely
// typed JSON, so it is picked apart with gjson instead of a struct.
func (p *DuckDuckGoProvider) Fallback(ctx context.Context, query string) (*types.FallbackResult, error) {
	params := url.Values{}
	params.Set("q", truncateQuery(query))
	params.Set("format", "json")

	apiURL := fmt.Sprintf("%s/?%s", p.config.APIHost, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", p.BuildDefaultHeaders()["User-Agent"])

	resp, err := p.httpClient.Do(httpReq)
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

	if !gjson.ValidBytes(body) {
		return nil, types.ErrInvalidResponse
	}

	answer := gjson.GetBytes(body, "AbstractText").String()
	if answer == "" {
		answer = DefaultAnswer
	}

	var related []string
	gjson.GetBytes(body, "RelatedTopics").ForEach(func(_, topic gjson.Result) bool {
		if text := topic.Get("Text").String(); text != "" {
			related = append(related, text)
		}
		return len(related) < maxRelatedTopics
	})

	return &types.FallbackResult{
		Answer:        answer,
		RelatedTopics: related,
	}, nil
}

// Search adapts the instant answer to the Provider interface so the
// fallback can also serve as a primary when nothing else is configured.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, _ *types.SearchConfig) (*Response, error) {
	result, err := p.Fallback(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Response{Answer: result.Answer}, nil
}
