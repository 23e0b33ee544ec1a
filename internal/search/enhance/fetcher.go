package enhance

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// defaultFetchTimeout bounds each page retrieval.
const defaultFetchTimeout = 5 * time.Second

// maxPageBytes caps how much of a page is read before parsing.
const maxPageBytes = 2 << 20 // 2MB

// ContentFetcher retrieves a page and extracts its human-readable text.
// Every failure path degrades to an empty string: enhancement must
// proceed even when a subset of URLs are unreachable.
type ContentFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewContentFetcher creates a fetcher with the given timeout; zero means
// the 5 second default.
func NewContentFetcher(timeout time.Duration, logger *zap.Logger) *ContentFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch retrieves url, strips script/style/header/footer/nav markup and
// returns the normalized page text. Returns "" on any network, timeout
// or parse failure.
func (f *ContentFetcher) Fetch(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "SearchService/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("page fetch failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Debug("page fetch non-200", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(http.MaxBytesReader(nil, resp.Body, maxPageBytes))
	if err != nil {
		f.logger.Debug("page parse failed", zap.String("url", url), zap.Error(err))
		return ""
	}

	doc.Find("script, style, header, footer, nav").Remove()

	return Normalize(doc.Text())
}
