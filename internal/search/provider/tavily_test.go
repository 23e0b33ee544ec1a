package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

func TestBuildRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cfg   *types.SearchConfig
		check func(t *testing.T, req tavilyRequest)
	}{
		{
			name:  "general defaults",
			query: "golang concurrency",
			cfg:   types.DefaultSearchConfig(),
			check: func(t *testing.T, req tavilyRequest) {
				assert.Equal(t, "golang concurrency", req.Query)
				assert.Equal(t, "basic", req.SearchDepth)
				assert.Equal(t, 5, req.MaxResults)
				assert.Empty(t, req.Topic)
				assert.Empty(t, req.TimeRange)
				assert.True(t, req.IncludeAnswer)
				assert.False(t, req.IncludeImages)
			},
		},
		{
			name:  "news forces advanced depth and topic",
			query: "election results",
			cfg: &types.SearchConfig{
				Type:       types.SearchTypeNews,
				Depth:      types.SearchDepthBasic,
				MaxResults: 5,
				TimeWindow: types.TimeWindowAuto,
			},
			check: func(t *testing.T, req tavilyRequest) {
				assert.Equal(t, "advanced", req.SearchDepth)
				assert.Equal(t, "news", req.Topic)
			},
		},
		{
			name:  "image forces image inclusion",
			query: "northern lights",
			cfg: &types.SearchConfig{
				Type:       types.SearchTypeImage,
				Depth:      types.SearchDepthBasic,
				MaxResults: 5,
				TimeWindow: types.TimeWindowAuto,
			},
			check: func(t *testing.T, req tavilyRequest) {
				assert.True(t, req.IncludeImages)
				assert.Empty(t, req.Topic)
			},
		},
		{
			name:  "explicit time window maps to time_range",
			query: "go release",
			cfg: &types.SearchConfig{
				Type:       types.SearchTypeGeneral,
				Depth:      types.SearchDepthBasic,
				MaxResults: 5,
				TimeWindow: types.TimeWindowWeek,
			},
			check: func(t *testing.T, req tavilyRequest) {
				assert.Equal(t, "week", req.TimeRange)
			},
		},
		{
			name:  "auto time window omitted",
			query: "go release",
			cfg:   types.DefaultSearchConfig(),
			check: func(t *testing.T, req tavilyRequest) {
				assert.Empty(t, req.TimeRange)
			},
		},
		{
			name:  "overlong query truncated",
			query: strings.Repeat("q", 1000),
			cfg:   types.DefaultSearchConfig(),
			check: func(t *testing.T, req tavilyRequest) {
				assert.Len(t, req.Query, maxQueryLen)
			},
		},
		{
			name:  "domain filters pass through",
			query: "golang",
			cfg: &types.SearchConfig{
				Type:           types.SearchTypeGeneral,
				Depth:          types.SearchDepthAdvanced,
				MaxResults:     10,
				IncludeDomains: []string{"go.dev"},
				ExcludeDomains: []string{"spam.example"},
				TimeWindow:     types.TimeWindowAuto,
			},
			check: func(t *testing.T, req tavilyRequest) {
				assert.Equal(t, "advanced", req.SearchDepth)
				assert.Equal(t, 10, req.MaxResults)
				assert.Equal(t, []string{"go.dev"}, req.IncludeDomains)
				assert.Equal(t, []string{"spam.example"}, req.ExcludeDomains)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, buildRequest(tt.query, tt.cfg))
		})
	}
}

func TestTavilyProvider_Search(t *testing.T) {
	var gotReq tavilyRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "Go is a programming language.",
			"query": "what is go",
			"results": [
				{"title": "Go", "url": "https://go.dev", "content": "The Go programming language.", "score": 0.98},
				{"title": "Go wiki", "url": "https://en.wikipedia.org/wiki/Go", "content": "Go article.", "score": 0.81, "published_date": "2026-01-02"}
			],
			"images": ["https://go.dev/gopher.png"]
		}`))
	}))
	defer srv.Close()

	p, err := NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		Name:    "Tavily",
		APIHost: srv.URL,
		APIKey:  "tvly-key",
	})
	require.NoError(t, err)

	resp, err := p.Search(context.Background(), "what is go", types.DefaultSearchConfig())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tvly-key", gotAuth)
	assert.Equal(t, "what is go", gotReq.Query)
	assert.True(t, gotReq.IncludeAnswer)

	assert.Equal(t, "Go is a programming language.", resp.Answer)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Go", resp.Results[0].Title)
	assert.Equal(t, "https://go.dev", resp.Results[0].URL)
	assert.InDelta(t, 0.98, resp.Results[0].Score, 0.001)
	assert.Equal(t, "https://go.dev/gopher.png", resp.Results[0].ImageURL,
		"top-level images pair with results by index")
	assert.Equal(t, "", resp.Results[1].ImageURL)
	assert.Equal(t, "2026-01-02", resp.Results[1].PublishedDate)
	assert.NotEmpty(t, resp.Raw)
}

func TestTavilyProvider_SearchRetriesWithBody(t *testing.T) {
	var (
		attempts  int
		retryBody tavilyRequest
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			// Drop the connection without a response to force a retry
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&retryBody))
		w.Write([]byte(`{"answer": "retried fine", "results": []}`))
	}))
	defer srv.Close()

	p, err := NewTavilyProvider(&types.ProviderConfig{
		ID:         types.ProviderTavily,
		Name:       "Tavily",
		APIHost:    srv.URL,
		APIKey:     "tvly-key",
		MaxRetries: 2,
	})
	require.NoError(t, err)

	resp, err := p.Search(context.Background(), "what is go", types.DefaultSearchConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, "retried fine", resp.Answer)
	assert.Equal(t, "what is go", retryBody.Query, "the retried attempt must resend the full payload")
}

func TestTavilyProvider_SearchUnavailable(t *testing.T) {
	p, err := NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		Name:    "Tavily",
		APIHost: "https://api.tavily.com",
	})
	require.NoError(t, err)

	assert.False(t, p.Available())

	_, err = p.Search(context.Background(), "anything", types.DefaultSearchConfig())
	assert.ErrorIs(t, err, types.ErrProviderNotAvailable)
}

func TestTavilyProvider_SearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	p, err := NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		Name:    "Tavily",
		APIHost: srv.URL,
		APIKey:  "bad-key",
	})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "anything", types.DefaultSearchConfig())
	require.Error(t, err)

	var provErr *types.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, types.ProviderTavily, provErr.Provider)
	assert.Equal(t, "HTTP_401", provErr.Code)
}

func TestTavilyProvider_SearchBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	p, err := NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		Name:    "Tavily",
		APIHost: srv.URL,
		APIKey:  "tvly-key",
	})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "anything", types.DefaultSearchConfig())
	assert.Error(t, err)
}
