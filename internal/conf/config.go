package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Log    LogConfig
	Search SearchConfig
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type SearchConfig struct {
	Tavily   TavilyConfig   `mapstructure:"tavily"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	Enhance  EnhanceConfig  `mapstructure:"enhance"`
}

type TavilyConfig struct {
	APIHost    string `mapstructure:"api_host"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"`     // seconds
	MaxRetries int    `mapstructure:"max_retries"` // default: 3
}

type FallbackConfig struct {
	APIHost string `mapstructure:"api_host"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type EnhanceConfig struct {
	FetchTimeout int  `mapstructure:"fetch_timeout"` // seconds, default 5
	PoolSize     int  `mapstructure:"pool_size"`     // enhancement workers
	EnableNLP    bool `mapstructure:"enable_nlp"`    // sentence/keyword extraction
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("SEARCH")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The API key usually arrives via environment rather than the file
	if config.Search.Tavily.APIKey == "" {
		config.Search.Tavily.APIKey = viper.GetString("tavily_api_key")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "console")
	viper.SetDefault("search.tavily.api_host", "https://api.tavily.com")
	viper.SetDefault("search.fallback.api_host", "https://api.duckduckgo.com")
	viper.SetDefault("search.fallback.timeout", 5)
	viper.SetDefault("search.enhance.fetch_timeout", 5)
	viper.SetDefault("search.enhance.pool_size", 10)
	viper.SetDefault("search.enhance.enable_nlp", true)
}
