package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// maxQueryLen is the provider payload-size contract: query text is
// truncated to this many characters before transmission.
const maxQueryLen = 400

// Provider defines the interface for search providers
type Provider interface {
	// Search executes a search query
	Search(ctx context.Context, query string, cfg *types.SearchConfig) (*Response, error)

	// ID returns the provider ID
	ID() types.ProviderID

	// Name returns the provider name
	Name() string

	// Available reports whether the provider has a usable backend
	// credential/client configured.
	Available() bool
}

// Response is a provider's decoded payload: raw results plus the
// optional top-level answer string.
type Response struct {
	Results []*types.RawResult
	Answer  string
	Raw     json.RawMessage
}

// BaseProvider provides common functionality for all providers
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client

	mu       sync.Mutex
	apiKeys  []string // Support multiple API keys for rotation
	keyIndex int      // Current key index, guarded by mu
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig) *BaseProvider {
	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	// Parse multiple API keys (comma-separated)
	var apiKeys []string
	if config.APIKey != "" {
		apiKeys = strings.Split(config.APIKey, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	return &BaseProvider{
		config:     config,
		httpClient: httpClient,
		apiKeys:    apiKeys,
		keyIndex:   0,
	}
}

// ID returns the provider ID
func (b *BaseProvider) ID() types.ProviderID {
	return b.config.ID
}

// Name returns the provider name
func (b *BaseProvider) Name() string {
	return b.config.Name
}

// Config returns the provider configuration
func (b *BaseProvider) Config() *types.ProviderConfig {
	return b.config
}

// Available reports whether an API key is configured
func (b *BaseProvider) Available() bool {
	return len(b.apiKeys) > 0
}

// APIKey returns the current API key (with rotation support).
// Safe for concurrent callers.
func (b *BaseProvider) APIKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.apiKeys) == 0 {
		return ""
	}

	key := b.apiKeys[b.keyIndex]
	b.keyIndex = (b.keyIndex + 1) % len(b.apiKeys)
	return key
}

// BuildDefaultHeaders builds default HTTP headers
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   "SearchService/1.0",
	}
}

// DoRequest executes an HTTP request with retry logic
func (b *BaseProvider) DoRequest(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := b.config.MaxRetries
	if maxRetries == 0 {
		maxRetries = 3
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		// A failed attempt consumes the body; rewind it before resending
		if i > 0 && req.Body != nil {
			if req.GetBody == nil {
				break
			}
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			req.Body = body
		}

		resp, err := b.httpClient.Do(req.WithContext(ctx))
		if err == nil {
			return resp, nil
		}

		lastErr = err

		// Exponential backoff
		if i < maxRetries-1 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// Validate validates the provider configuration
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}

// truncateQuery bounds query text to the provider payload limit. The
// limit counts characters, not bytes, so multibyte queries are never
// split mid-rune.
func truncateQuery(query string) string {
	return types.TruncateChars(query, maxQueryLen)
}
