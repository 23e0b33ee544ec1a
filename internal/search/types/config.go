package types

// SearchType selects the provider dispatch behavior
type SearchType string

const (
	SearchTypeGeneral SearchType = "general"
	SearchTypeNews    SearchType = "news"
	SearchTypeImage   SearchType = "image"
)

// Valid reports whether the search type is one of the supported values
func (t SearchType) Valid() bool {
	switch t {
	case SearchTypeGeneral, SearchTypeNews, SearchTypeImage:
		return true
	}
	return false
}

// SearchDepth controls how thorough the provider search is
type SearchDepth string

const (
	SearchDepthBasic    SearchDepth = "basic"
	SearchDepthAdvanced SearchDepth = "advanced"
)

// Valid reports whether the search depth is one of the supported values
func (d SearchDepth) Valid() bool {
	return d == SearchDepthBasic || d == SearchDepthAdvanced
}

// TimeWindow restricts results to a recency window
type TimeWindow string

const (
	TimeWindowAuto  TimeWindow = "auto"
	TimeWindowDay   TimeWindow = "day"
	TimeWindowWeek  TimeWindow = "week"
	TimeWindowMonth TimeWindow = "month"
)

// Valid reports whether the time window is one of the supported values
func (w TimeWindow) Valid() bool {
	switch w {
	case TimeWindowAuto, TimeWindowDay, TimeWindowWeek, TimeWindowMonth:
		return true
	}
	return false
}

// MaxResultsLimit is the provider-defined upper bound on result count
const MaxResultsLimit = 20

// SearchConfig describes one search request's configuration.
// Only Type, Depth and TimeWindow participate in cache-key derivation.
type SearchConfig struct {
	Type           SearchType  `json:"search_type"`
	Depth          SearchDepth `json:"search_depth,omitempty"`
	MaxResults     int         `json:"max_results,omitempty"`
	IncludeDomains []string    `json:"include_domains,omitempty"`
	ExcludeDomains []string    `json:"exclude_domains,omitempty"`
	TimeWindow     TimeWindow  `json:"time_frame,omitempty"`
	Language       string      `json:"language,omitempty"`
	IncludeImages  bool        `json:"include_images,omitempty"`
}

// DefaultSearchConfig returns a config with the defaults the original service uses
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		Type:       SearchTypeGeneral,
		Depth:      SearchDepthBasic,
		MaxResults: 5,
		TimeWindow: TimeWindowAuto,
		Language:   "en",
	}
}

// Normalize fills in defaults and clamps the result count to the provider limit
func (c *SearchConfig) Normalize() {
	if !c.Type.Valid() {
		c.Type = SearchTypeGeneral
	}
	if !c.Depth.Valid() {
		c.Depth = SearchDepthBasic
	}
	if !c.TimeWindow.Valid() {
		c.TimeWindow = TimeWindowAuto
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 5
	}
	if c.MaxResults > MaxResultsLimit {
		c.MaxResults = MaxResultsLimit
	}
	if c.Language == "" {
		c.Language = "en"
	}
}

// ProviderID identifies a search backend
type ProviderID string

const (
	ProviderTavily     ProviderID = "tavily"
	ProviderDuckDuckGo ProviderID = "duckduckgo"
)

// ProviderConfig represents search provider configuration
type ProviderConfig struct {
	ID   ProviderID `json:"id" yaml:"id" mapstructure:"id"`
	Name string     `json:"name" yaml:"name" mapstructure:"name"`

	// API settings
	APIHost string `json:"api_host" yaml:"api_host" mapstructure:"api_host"`
	APIKey  string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Optional settings
	Timeout    int `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`             // seconds
	MaxRetries int `json:"max_retries,omitempty" yaml:"max_retries,omitempty" mapstructure:"max_retries"` // default: 3
}

// Validate validates the provider configuration
func (c *ProviderConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidProviderID
	}
	if c.Name == "" {
		return ErrInvalidProviderName
	}
	if c.APIHost == "" {
		return ErrInvalidAPIHost
	}

	// DuckDuckGo's instant-answer API is public; everything else needs a key
	if c.ID != ProviderDuckDuckGo && c.APIKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}
