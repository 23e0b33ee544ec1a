package enhance

import (
	"context"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

// Summary bounds. The enrichment path allows a longer truncation
// fallback than the lightweight path.
const (
	MaxSummarySentences = 2
	SummaryCharsFull    = 500
	SummaryCharsLight   = 250
)

// Summarize reduces text to at most maxSentences segmented sentences
// joined by single spaces. When segmentation is unavailable or yields
// nothing, it degrades to a maxChars-character prefix. Never fails;
// empty input yields empty output.
func Summarize(lang Language, text string, maxSentences, maxChars int) string {
	if text == "" {
		return ""
	}

	sents := lang.Sentences(text)
	if len(sents) == 0 {
		return types.TruncateChars(text, maxChars)
	}

	if len(sents) > maxSentences {
		sents = sents[:maxSentences]
	}
	return strings.Join(sents, " ")
}

// Keywords extracts up to max salient phrases from text, in document
// order. Empty when the NLP capability is unavailable. Never fails.
func Keywords(lang Language, text string, max int) []string {
	if text == "" {
		return nil
	}
	return lang.NounPhrases(text, max)
}

// MaxKeywords bounds the keyword list attached to each insight.
const MaxKeywords = 5

// Enhancer runs the per-result fetch+normalize+summarize+extract
// pipeline. Items within one batch run concurrently on a shared worker
// pool; the output sequence always preserves input order.
type Enhancer struct {
	fetcher *ContentFetcher
	lang    Language
	pool    *ants.Pool
	logger  *zap.Logger
}

// NewEnhancer creates an enhancer backed by a worker pool of the given
// size (minimum 1).
func NewEnhancer(fetcher *ContentFetcher, lang Language, poolSize int, logger *zap.Logger) (*Enhancer, error) {
	if poolSize <= 0 {
		poolSize = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Enhancer{
		fetcher: fetcher,
		lang:    lang,
		pool:    pool,
		logger:  logger,
	}, nil
}

// Release tears down the worker pool.
func (e *Enhancer) Release() {
	e.pool.Release()
}

// Enhance produces one EnrichedInsight per raw result, preserving input
// order regardless of per-item completion order.
func (e *Enhancer) Enhance(ctx context.Context, results []*types.RawResult) []types.EnrichedInsight {
	insights := make([]types.EnrichedInsight, len(results))

	var wg sync.WaitGroup
	for i, r := range results {
		i, r := i, r
		wg.Add(1)
		task := func() {
			defer wg.Done()
			insights[i] = e.enhanceOne(ctx, r)
		}
		if err := e.pool.Submit(task); err != nil {
			// Pool exhausted or released: run inline rather than drop the item
			e.logger.Warn("enhancement pool submit failed, running inline", zap.Error(err))
			task()
		}
	}
	wg.Wait()

	return insights
}

// enhanceOne concatenates the snippet with the fetched page text,
// normalizes, summarizes and extracts keywords for a single result.
func (e *Enhancer) enhanceOne(ctx context.Context, r *types.RawResult) types.EnrichedInsight {
	text := r.Content
	if r.URL != "" {
		if fetched := e.fetcher.Fetch(ctx, r.URL); fetched != "" {
			text += " " + fetched
		}
	}
	text = Normalize(text)

	title := r.Title
	if title == "" {
		title = "No title"
	}

	return types.EnrichedInsight{
		Title:    title,
		URL:      r.URL,
		Summary:  Summarize(e.lang, text, MaxSummarySentences, SummaryCharsFull),
		Keywords: Keywords(e.lang, text, MaxKeywords),
	}
}
