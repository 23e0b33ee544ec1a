package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/cache"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/enhance"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/provider"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// queryLogPrefixLen bounds how much of the query is written to the log.
const queryLogPrefixLen = 50

// EmptyQueryMessage is the user-visible input-error message.
const EmptyQueryMessage = "Please provide a search query."

// NoAnswerMessage is used when neither the provider nor the insights
// yield a direct answer.
const NoAnswerMessage = "No good answer found."

// Fallback is the secondary search tier: queried only when the primary
// is unavailable or fails.
type Fallback interface {
	Fallback(ctx context.Context, query string) (*types.FallbackResult, error)
}

// SearchUseCase orchestrates the enrichment pipeline: cache lookup,
// provider dispatch, per-result enhancement, projection and cache store.
// Nothing propagates past Search as a failure; every path returns a
// valid response.
type SearchUseCase struct {
	primary  provider.Provider
	fallback Fallback
	cache    *cache.ResultCache
	enhancer *enhance.Enhancer
	lang     enhance.Language
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
	now      func() time.Time
}

// NewSearchUseCase wires the orchestrator. primary may be a provider
// whose Available() is false (no credential configured); every request
// then goes straight to the fallback tier.
func NewSearchUseCase(
	primary provider.Provider,
	fallback Fallback,
	resultCache *cache.ResultCache,
	enhancer *enhance.Enhancer,
	lang enhance.Language,
	logger *zap.Logger,
) *SearchUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "primary-search",
		Timeout: 45 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("search circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &SearchUseCase{
		primary:  primary,
		fallback: fallback,
		cache:    resultCache,
		enhancer: enhancer,
		lang:     lang,
		breaker:  breaker,
		logger:   logger,
		now:      time.Now,
	}
}

// Cache exposes the result cache for the administrative surface.
func (uc *SearchUseCase) Cache() *cache.ResultCache {
	return uc.cache
}

// Search runs one enrichment request. callerToken identifies the caller
// for logging only; it has no bearing on the result.
func (uc *SearchUseCase) Search(ctx context.Context, query, callerToken string, cfg *types.SearchConfig) *types.EnrichedResponse {
	if cfg == nil {
		cfg = types.DefaultSearchConfig()
	}
	cfg.Normalize()

	if strings.TrimSpace(query) == "" {
		return &types.EnrichedResponse{
			Status:           types.StatusError,
			Message:          EmptyQueryMessage,
			Metadata:         uc.metadata(cfg, 0),
			Insights:         []types.EnrichedInsight{},
			FormattedResults: []types.FormattedResult{},
		}
	}

	if callerToken == "" {
		callerToken = "anonymous"
	}
	uc.logger.Info("search request",
		zap.String("caller", callerToken),
		zap.String("query", types.TruncateChars(query, queryLogPrefixLen)),
		zap.String("search_type", string(cfg.Type)),
	)

	if cached, ok := uc.cache.Lookup(query, cfg); ok {
		out := cached.Clone()
		out.Source = types.SourceCache
		return out
	}

	resp, err := uc.searchAndEnhance(ctx, query, cfg)
	if err != nil {
		return uc.dispatchFallback(ctx, query, cfg, err)
	}

	uc.cache.Store(query, cfg, resp)
	return resp
}

// searchAndEnhance dispatches the primary provider and runs the
// enhancement pass. Panics anywhere inside are recovered and reported
// as errors so the caller can escalate to the fallback tier.
func (uc *SearchUseCase) searchAndEnhance(ctx context.Context, query string, cfg *types.SearchConfig) (resp *types.EnrichedResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("search pipeline panic: %v", r)
		}
	}()

	if uc.primary == nil || !uc.primary.Available() {
		return nil, types.ErrProviderNotAvailable
	}

	out, err := uc.breaker.Execute(func() (interface{}, error) {
		return uc.primary.Search(ctx, query, cfg)
	})
	if err != nil {
		return nil, err
	}
	provResp := out.(*provider.Response)

	insights := uc.enhancer.Enhance(ctx, provResp.Results)
	formatted := FormatResults(cfg.Type, uc.lang, provResp.Results)

	answer := provResp.Answer
	if answer == "" {
		if len(insights) > 0 && insights[0].Summary != "" {
			answer = insights[0].Summary
		} else {
			answer = NoAnswerMessage
		}
	}

	return &types.EnrichedResponse{
		Status:           types.StatusSuccess,
		DirectAnswer:     answer,
		Metadata:         uc.metadata(cfg, len(insights)),
		Insights:         insights,
		FormattedResults: formatted,
		Source:           uc.primary.ID().Source(),
		Raw:              provResp.Raw,
	}, nil
}

// dispatchFallback queries the secondary tier. Its own failure is
// terminal: the request resolves to an error-status response. Fallback
// results are never enhanced and never cached.
func (uc *SearchUseCase) dispatchFallback(ctx context.Context, query string, cfg *types.SearchConfig, cause error) *types.EnrichedResponse {
	uc.logger.Warn("primary search unavailable, dispatching fallback",
		zap.String("query", types.TruncateChars(query, queryLogPrefixLen)),
		zap.Error(cause),
	)

	fb, err := uc.fallback.Fallback(ctx, query)
	if err != nil {
		uc.logger.Error("fallback search failed", zap.Error(err))
		return &types.EnrichedResponse{
			Status:           types.StatusError,
			Message:          err.Error(),
			Metadata:         uc.metadata(cfg, 0),
			Insights:         []types.EnrichedInsight{},
			FormattedResults: []types.FormattedResult{},
			Source:           types.SourceDuckDuckGo,
		}
	}

	return &types.EnrichedResponse{
		Status:           types.StatusFallback,
		DirectAnswer:     fb.Answer,
		RelatedTopics:    fb.RelatedTopics,
		Metadata:         uc.metadata(cfg, 0),
		Insights:         []types.EnrichedInsight{},
		FormattedResults: []types.FormattedResult{},
		Source:           types.SourceDuckDuckGo,
	}
}

func (uc *SearchUseCase) metadata(cfg *types.SearchConfig, count int) types.Metadata {
	return types.Metadata{
		ResultCount: count,
		QueryTime:   uc.now().Format(time.RFC3339),
		SearchType:  string(cfg.Type),
	}
}

