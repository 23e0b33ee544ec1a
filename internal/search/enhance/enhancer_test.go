package enhance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// stubLanguage returns canned segmentation output.
type stubLanguage struct {
	sents   []string
	phrases []string
}

func (s stubLanguage) Sentences(string) []string { return s.sents }

func (s stubLanguage) NounPhrases(_ string, max int) []string {
	if len(s.phrases) > max {
		return s.phrases[:max]
	}
	return s.phrases
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name         string
		lang         Language
		text         string
		maxSentences int
		maxChars     int
		want         string
	}{
		{
			name:         "empty input",
			lang:         noLanguage{},
			text:         "",
			maxSentences: 2,
			maxChars:     500,
			want:         "",
		},
		{
			name:         "no segmentation keeps short text",
			lang:         noLanguage{},
			text:         "short text",
			maxSentences: 2,
			maxChars:     500,
			want:         "short text",
		},
		{
			name:         "no segmentation truncates long text",
			lang:         noLanguage{},
			text:         strings.Repeat("x", 600),
			maxSentences: 2,
			maxChars:     500,
			want:         strings.Repeat("x", 500),
		},
		{
			name:         "no segmentation truncates multibyte text by characters",
			lang:         noLanguage{},
			text:         strings.Repeat("語", 600),
			maxSentences: 2,
			maxChars:     500,
			want:         strings.Repeat("語", 500),
		},
		{
			name:         "keeps first two sentences",
			lang:         stubLanguage{sents: []string{"First.", "Second.", "Third."}},
			text:         "First. Second. Third.",
			maxSentences: 2,
			maxChars:     500,
			want:         "First. Second.",
		},
		{
			name:         "fewer sentences than bound",
			lang:         stubLanguage{sents: []string{"Only one."}},
			text:         "Only one.",
			maxSentences: 2,
			maxChars:     500,
			want:         "Only one.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.lang, tt.text, tt.maxSentences, tt.maxChars))
		})
	}
}

func TestKeywords(t *testing.T) {
	assert.Nil(t, Keywords(noLanguage{}, "some text here", MaxKeywords))
	assert.Nil(t, Keywords(stubLanguage{phrases: []string{"a"}}, "", MaxKeywords))

	lang := stubLanguage{phrases: []string{"one", "two", "three", "four", "five", "six"}}
	got := Keywords(lang, "text", MaxKeywords)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, got)
}

func TestEnhancer_PreservesOrder(t *testing.T) {
	// Earlier items sleep longer, so completion order inverts input order.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var idx int
		fmt.Sscanf(r.URL.Path, "/page/%d", &idx)
		time.Sleep(time.Duration(50-idx*10) * time.Millisecond)
		fmt.Fprintf(w, "<html><body>page body %d</body></html>", idx)
	}))
	defer srv.Close()

	results := make([]*types.RawResult, 5)
	for i := range results {
		results[i] = &types.RawResult{
			Title:   fmt.Sprintf("title %d", i),
			URL:     fmt.Sprintf("%s/page/%d", srv.URL, i),
			Content: fmt.Sprintf("snippet %d", i),
		}
	}

	enhancer, err := NewEnhancer(NewContentFetcher(time.Second, nil), noLanguage{}, 5, nil)
	require.NoError(t, err)
	defer enhancer.Release()

	insights := enhancer.Enhance(context.Background(), results)
	require.Len(t, insights, 5)

	for i, insight := range insights {
		assert.Equal(t, fmt.Sprintf("title %d", i), insight.Title)
		assert.Equal(t, fmt.Sprintf("snippet %d page body %d", i, i), insight.Summary)
	}
}

func TestEnhancer_FetchFailureKeepsSnippet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	enhancer, err := NewEnhancer(NewContentFetcher(time.Second, nil), noLanguage{}, 2, nil)
	require.NoError(t, err)
	defer enhancer.Release()

	insights := enhancer.Enhance(context.Background(), []*types.RawResult{
		{Title: "reachable title", Content: "the   snippet"},
		{Title: "unreachable title", URL: srv.URL, Content: "another snippet"},
	})

	require.Len(t, insights, 2)
	assert.Equal(t, "the snippet", insights[0].Summary)
	assert.Equal(t, "another snippet", insights[1].Summary)
}

func TestEnhancer_DefaultTitle(t *testing.T) {
	enhancer, err := NewEnhancer(NewContentFetcher(time.Second, nil), noLanguage{}, 1, nil)
	require.NoError(t, err)
	defer enhancer.Release()

	insights := enhancer.Enhance(context.Background(), []*types.RawResult{
		{Content: "untitled snippet"},
	})

	require.Len(t, insights, 1)
	assert.Equal(t, "No title", insights[0].Title)
}

func TestEnhancer_EmptyBatch(t *testing.T) {
	enhancer, err := NewEnhancer(NewContentFetcher(time.Second, nil), noLanguage{}, 1, nil)
	require.NoError(t, err)
	defer enhancer.Release()

	insights := enhancer.Enhance(context.Background(), nil)
	assert.Empty(t, insights)
}
