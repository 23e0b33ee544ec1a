package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090

log:
  level: debug
  format: console

search:
  tavily:
    api_key: tvly-test-key
    timeout: 10
  enhance:
    pool_size: 4
    enable_nlp: false
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)

	assert.Equal(t, "https://api.tavily.com", config.Search.Tavily.APIHost, "defaults fill unset fields")
	assert.Equal(t, "tvly-test-key", config.Search.Tavily.APIKey)
	assert.Equal(t, 10, config.Search.Tavily.Timeout)

	assert.Equal(t, "https://api.duckduckgo.com", config.Search.Fallback.APIHost)
	assert.Equal(t, 5, config.Search.Fallback.Timeout)

	assert.Equal(t, 4, config.Search.Enhance.PoolSize)
	assert.False(t, config.Search.Enhance.EnableNLP)
	assert.Equal(t, 5, config.Search.Enhance.FetchTimeout)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_APIKeyFromEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	t.Setenv("SEARCH_TAVILY_API_KEY", "tvly-env-key")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tvly-env-key", config.Search.Tavily.APIKey)
}
