package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akash-kant/searchsearviceusingtavily/internal/pkg/logger"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/biz"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/cache"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/enhance"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/provider"
	"github.com/akash-kant/searchsearviceusingtavily/internal/search/types"
)

var (
	searchType  string
	searchDepth string
	maxResults  int
	timeFrame   string
	caller      string
	noNLP       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "searchcli <query>",
		Short: "Run an enriched web search from the terminal",
		Long: `searchcli dispatches a query to the configured search provider,
falls back to DuckDuckGo when the provider is unavailable, and prints
the enriched results: direct answer, per-result summaries and keywords.

The Tavily API key is read from the TAVILY_API_KEY environment variable.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(strings.Join(args, " "))
		},
	}

	rootCmd.Flags().StringVarP(&searchType, "type", "t", "general", "search type (general/news/image)")
	rootCmd.Flags().StringVarP(&searchDepth, "depth", "d", "basic", "search depth (basic/advanced)")
	rootCmd.Flags().IntVarP(&maxResults, "max-results", "n", 5, "result count bound (1-20)")
	rootCmd.Flags().StringVar(&timeFrame, "time-frame", "auto", "time window (auto/day/week/month)")
	rootCmd.Flags().StringVar(&caller, "caller", "cli", "caller token for logging")
	rootCmd.Flags().BoolVar(&noNLP, "no-nlp", false, "disable sentence segmentation and keyword extraction")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSearch(query string) error {
	log, err := logger.Development()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	primary, err := provider.NewTavilyProvider(&types.ProviderConfig{
		ID:      types.ProviderTavily,
		Name:    "Tavily",
		APIHost: "https://api.tavily.com",
		APIKey:  os.Getenv("TAVILY_API_KEY"),
	})
	if err != nil {
		return err
	}

	fallback, err := provider.NewDuckDuckGoProvider(&types.ProviderConfig{
		ID:      types.ProviderDuckDuckGo,
		Name:    "DuckDuckGo",
		APIHost: "https://api.duckduckgo.com",
		Timeout: 5,
	})
	if err != nil {
		return err
	}

	lang := enhance.NewLanguage(!noNLP)
	fetcher := enhance.NewContentFetcher(0, log.Logger)
	enhancer, err := enhance.NewEnhancer(fetcher, lang, 10, log.Logger)
	if err != nil {
		return err
	}
	defer enhancer.Release()

	uc := biz.NewSearchUseCase(primary, fallback, cache.New(), enhancer, lang, log.Logger)

	cfg := &types.SearchConfig{
		Type:       types.SearchType(searchType),
		Depth:      types.SearchDepth(searchDepth),
		MaxResults: maxResults,
		TimeWindow: types.TimeWindow(timeFrame),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := uc.Search(ctx, query, caller, cfg)
	printResult(result)
	return nil
}

func printResult(r *types.EnrichedResponse) {
	fmt.Printf("Source: %s (status: %s)\n", r.Source, r.Status)
	fmt.Printf("Results: %d  Query time: %s\n", r.Metadata.ResultCount, r.Metadata.QueryTime)

	if r.Status == types.StatusError {
		fmt.Printf("\nError: %s\n", r.Message)
		return
	}

	if r.DirectAnswer != "" {
		fmt.Printf("\nDirect answer:\n  %s\n", r.DirectAnswer)
	}

	for i, insight := range r.Insights {
		fmt.Printf("\n[%d] %s\n", i+1, insight.Title)
		if insight.Summary != "" {
			fmt.Printf("    %s\n", insight.Summary)
		}
		if len(insight.Keywords) > 0 {
			fmt.Printf("    Keywords: %s\n", strings.Join(insight.Keywords, ", "))
		}
		if insight.URL != "" {
			fmt.Printf("    %s\n", insight.URL)
		}
	}

	if len(r.RelatedTopics) > 0 {
		fmt.Println("\nRelated topics:")
		for _, topic := range r.RelatedTopics {
			fmt.Printf("  - %s\n", topic)
		}
	}
}
