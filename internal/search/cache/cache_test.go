package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

func testConfig(t types.SearchType) *types.SearchConfig {
	cfg := types.DefaultSearchConfig()
	cfg.Type = t
	return cfg
}

func testResponse(answer string) *types.EnrichedResponse {
	return &types.EnrichedResponse{
		Status:       types.StatusSuccess,
		DirectAnswer: answer,
		Source:       types.SourceTavily,
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	cfg := testConfig(types.SearchTypeGeneral)
	assert.Equal(t, Fingerprint("golang", cfg), Fingerprint("golang", cfg))
	assert.Len(t, Fingerprint("golang", cfg), 64)
}

func TestFingerprint_IgnoresNonKeyFields(t *testing.T) {
	a := testConfig(types.SearchTypeGeneral)
	b := testConfig(types.SearchTypeGeneral)
	b.MaxResults = 17
	b.IncludeDomains = []string{"example.com"}
	b.ExcludeDomains = []string{"spam.example"}
	b.Language = "de"
	b.IncludeImages = true

	assert.Equal(t, Fingerprint("golang", a), Fingerprint("golang", b),
		"result count, domain filters and language must not affect the key")
}

func TestFingerprint_KeyFields(t *testing.T) {
	base := testConfig(types.SearchTypeGeneral)

	news := testConfig(types.SearchTypeNews)
	assert.NotEqual(t, Fingerprint("golang", base), Fingerprint("golang", news))

	deep := testConfig(types.SearchTypeGeneral)
	deep.Depth = types.SearchDepthAdvanced
	assert.NotEqual(t, Fingerprint("golang", base), Fingerprint("golang", deep))

	windowed := testConfig(types.SearchTypeGeneral)
	windowed.TimeWindow = types.TimeWindowWeek
	assert.NotEqual(t, Fingerprint("golang", base), Fingerprint("golang", windowed))

	assert.NotEqual(t, Fingerprint("golang", base), Fingerprint("rust", base))
	assert.NotEqual(t, Fingerprint("golang", base), Fingerprint("Golang", base),
		"query text is case-sensitive")
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, NewsTTL, TTLFor(types.SearchTypeNews))
	assert.Equal(t, DefaultTTL, TTLFor(types.SearchTypeGeneral))
	assert.Equal(t, DefaultTTL, TTLFor(types.SearchTypeImage))
}

func TestResultCache_RoundTrip(t *testing.T) {
	c := New()
	cfg := testConfig(types.SearchTypeGeneral)

	_, ok := c.Lookup("golang", cfg)
	assert.False(t, ok)

	resp := testResponse("an answer")
	c.Store("golang", cfg, resp)

	got, ok := c.Lookup("golang", cfg)
	require.True(t, ok)
	assert.Equal(t, resp, got)
	assert.Equal(t, 1, c.Len())
}

func TestResultCache_Expiry(t *testing.T) {
	tests := []struct {
		name       string
		searchType types.SearchType
		age        time.Duration
		wantHit    bool
	}{
		{"general fresh", types.SearchTypeGeneral, 599 * time.Second, true},
		{"general exactly at ttl", types.SearchTypeGeneral, 600 * time.Second, false},
		{"general stale", types.SearchTypeGeneral, 601 * time.Second, false},
		{"news fresh", types.SearchTypeNews, 299 * time.Second, true},
		{"news stale", types.SearchTypeNews, 300 * time.Second, false},
		{"news within general ttl but past news ttl", types.SearchTypeNews, 450 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			cfg := testConfig(tt.searchType)

			base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
			now := base
			c.SetClock(func() time.Time { return now })

			c.Store("golang", cfg, testResponse("an answer"))

			now = base.Add(tt.age)
			_, ok := c.Lookup("golang", cfg)
			assert.Equal(t, tt.wantHit, ok)
		})
	}
}

func TestResultCache_LazyEviction(t *testing.T) {
	c := New()
	cfg := testConfig(types.SearchTypeGeneral)

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	now := base
	c.SetClock(func() time.Time { return now })

	c.Store("golang", cfg, testResponse("an answer"))

	// Time passes well beyond the TTL; nothing sweeps the entry.
	now = base.Add(2 * time.Hour)
	assert.Equal(t, 1, c.Len(), "stale entries stay until read")

	_, ok := c.Lookup("golang", cfg)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "the failed lookup evicts the stale entry")
}

func TestResultCache_StoreOverwrites(t *testing.T) {
	c := New()
	cfg := testConfig(types.SearchTypeGeneral)

	c.Store("golang", cfg, testResponse("first"))
	c.Store("golang", cfg, testResponse("second"))

	got, ok := c.Lookup("golang", cfg)
	require.True(t, ok)
	assert.Equal(t, "second", got.DirectAnswer)
	assert.Equal(t, 1, c.Len())
}

func TestResultCache_StoreRefreshesTimestamp(t *testing.T) {
	c := New()
	cfg := testConfig(types.SearchTypeGeneral)

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	now := base
	c.SetClock(func() time.Time { return now })

	c.Store("golang", cfg, testResponse("first"))

	// Overwrite shortly before expiry; the entry's clock restarts.
	now = base.Add(599 * time.Second)
	c.Store("golang", cfg, testResponse("second"))

	now = base.Add(599*time.Second + 599*time.Second)
	got, ok := c.Lookup("golang", cfg)
	require.True(t, ok)
	assert.Equal(t, "second", got.DirectAnswer)
}

func TestResultCache_KeysAndClear(t *testing.T) {
	c := New()
	general := testConfig(types.SearchTypeGeneral)
	news := testConfig(types.SearchTypeNews)

	c.Store("golang", general, testResponse("a"))
	c.Store("golang", news, testResponse("b"))

	keys := c.Keys()
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, Fingerprint("golang", general))
	assert.Contains(t, keys, Fingerprint("golang", news))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Keys())
}
