package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akash-kant/searchsearviceusingtavily/internal/conf"
	"github.com/akash-kant/searchsearviceusingtavily/internal/pkg/logger"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/biz"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/cache"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/enhance"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/provider"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/service"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
	"github.com/akash-kant/searchsearviceusingtavily/internal/server"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger with config
	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize global logger
	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	// Initialize providers. The primary stays constructed even without a
	// credential; the orchestrator routes to the fallback in that case.
	primary, err := provider.NewTavilyProvider(&types.ProviderConfig{
		ID:         types.ProviderTavily,
		Name:       "Tavily",
		APIHost:    config.Search.Tavily.APIHost,
		APIKey:     config.Search.Tavily.APIKey,
		Timeout:    config.Search.Tavily.Timeout,
		MaxRetries: config.Search.Tavily.MaxRetries,
	})
	if err != nil {
		log.Fatal("failed to initialize primary provider", zap.Error(err))
	}
	if !primary.Available() {
		log.Warn("no Tavily API key configured, every request will use the fallback tier")
	}

	fallback, err := provider.NewDuckDuckGoProvider(&types.ProviderConfig{
		ID:      types.ProviderDuckDuckGo,
		Name:    "DuckDuckGo",
		APIHost: config.Search.Fallback.APIHost,
		Timeout: config.Search.Fallback.Timeout,
	})
	if err != nil {
		log.Fatal("failed to initialize fallback provider", zap.Error(err))
	}

	// Initialize enhancement pipeline
	lang := enhance.NewLanguage(config.Search.Enhance.EnableNLP)
	fetcher := enhance.NewContentFetcher(time.Duration(config.Search.Enhance.FetchTimeout)*time.Second, log.Logger)
	enhancer, err := enhance.NewEnhancer(fetcher, lang, config.Search.Enhance.PoolSize, log.Logger)
	if err != nil {
		log.Fatal("failed to initialize enhancer", zap.Error(err))
	}
	defer enhancer.Release()

	// Initialize use case and service
	resultCache := cache.New()
	searchUseCase := biz.NewSearchUseCase(primary, fallback, resultCache, enhancer, lang, log.Logger)
	searchService := service.NewSearchService(searchUseCase, log)

	// Initialize server
	httpServer := server.NewHTTPServer(config, log, searchService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
