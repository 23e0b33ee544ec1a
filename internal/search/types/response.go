package types

import "encoding/json"

// Response status values
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFallback Status = "fallback"
	StatusError    Status = "error"
)

// Response source values
type Source string

const (
	SourceTavily     Source = "tavily"
	SourceDuckDuckGo Source = "duckduckgo"
	SourceCache      Source = "cache"
)

// Source maps a provider ID to its response source tag.
func (id ProviderID) Source() Source {
	return Source(id)
}

// RawResult is one item returned by a provider, decoded once at the
// provider boundary and passed through unchanged.
type RawResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	ImageURL      string  `json:"image_url,omitempty"`
	PublishedDate string  `json:"published_date,omitempty"`
	Score         float32 `json:"score,omitempty"`
}

// EnrichedInsight is the per-result enhancement output: normalized and
// summarized text plus a bounded keyword list. Immutable after creation.
type EnrichedInsight struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords,omitempty"`
}

// FormattedResult is a type-specific display projection of a RawResult.
// Each search type exposes a different field shape, so the fields are a
// union and serialization drops the empty ones.
type FormattedResult struct {
	// general
	Title   string  `json:"title,omitempty"`
	URL     string  `json:"url,omitempty"`
	Content string  `json:"content,omitempty"`
	Score   float32 `json:"score,omitempty"`

	// news
	Headline      string `json:"headline,omitempty"`
	NewsSource    string `json:"source,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`

	// image
	ImageURL  string `json:"image_url,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
}

// Metadata describes one enriched response
type Metadata struct {
	ResultCount int    `json:"result_count"`
	QueryTime   string `json:"query_time"`
	SearchType  string `json:"search_type"`
}

// EnrichedResponse is the orchestrator's output and the unit stored in
// the result cache.
type EnrichedResponse struct {
	Status           Status            `json:"status"`
	DirectAnswer     string            `json:"direct_answer,omitempty"`
	Metadata         Metadata          `json:"metadata"`
	Insights         []EnrichedInsight `json:"insights"`
	FormattedResults []FormattedResult `json:"formatted_results"`
	RelatedTopics    []string          `json:"related_topics,omitempty"`
	Message          string            `json:"message,omitempty"`
	Source           Source            `json:"source"`
	Raw              json.RawMessage   `json:"raw,omitempty"`
}

// Clone returns a shallow copy with independent slices, so a cached
// response can be re-tagged without mutating the stored value.
func (r *EnrichedResponse) Clone() *EnrichedResponse {
	out := *r
	if r.Insights != nil {
		out.Insights = append([]EnrichedInsight(nil), r.Insights...)
	}
	if r.FormattedResults != nil {
		out.FormattedResults = append([]FormattedResult(nil), r.FormattedResults...)
	}
	if r.RelatedTopics != nil {
		out.RelatedTopics = append([]string(nil), r.RelatedTopics...)
	}
	return &out
}

// FallbackResult is the secondary provider's best-effort answer
type FallbackResult struct {
	Answer        string   `json:"answer"`
	RelatedTopics []string `json:"related_topics,omitempty"`
}
