package feed

import (
	"context"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/aersekk/News-bot/internal/logger"
	"github.com/aersekk/News-bot/internal/metrics"
)

// Article is the normalized shape of one feed entry. It lives for a single
// run; nothing here is persisted.
type Article struct {
	Title     string
	URL       string
	Summary   string
	Published string // raw source string, kept unparsed as a tie-break key
	Source    string
	Score     int
}

// Aggregator fetches and normalizes entries from a list of feed URLs.
type Aggregator struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewAggregator(timeout time.Duration) *Aggregator {
	return &Aggregator{
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

// FetchAll downloads and parses every feed, returning a flat article list.
// A source that fails to fetch or parse is logged and skipped; one broken
// feed never aborts the whole aggregation.
func (a *Aggregator) FetchAll(ctx context.Context, urls []string) []Article {
	var articles []Article
	successCount := 0

	for _, url := range urls {
		items, err := a.fetchOne(ctx, url)
		if err != nil {
			logger.Warn("failed to fetch feed", "feed", url, "error", err)
			metrics.Global.IncrementFeedFailures()
			continue
		}
		articles = append(articles, items...)
		successCount++
		logger.Debug("loaded feed", "feed", url, "items", len(items))
	}

	logger.Info("aggregated feeds", "ok", successCount, "total", len(urls), "articles", len(articles))
	return articles
}

func (a *Aggregator) fetchOne(ctx context.Context, url string) ([]Article, error) {
	fctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	f, err := a.parser.ParseURLWithContext(url, fctx)
	if err != nil {
		return nil, err
	}

	source := ""
	if f != nil {
		source = f.Title
	}

	articles := make([]Article, 0, len(f.Items))
	for _, it := range f.Items {
		articles = append(articles, normalize(it, source))
	}
	return articles, nil
}

// normalize maps a gofeed item onto an Article. Field preference mirrors
// what the feeds actually populate: Link over GUID for the URL, Published
// over Updated for the date string, Description as the summary fallback.
// Missing fields become empty strings so downstream code never checks nil.
func normalize(it *gofeed.Item, source string) Article {
	url := it.Link
	if url == "" {
		url = it.GUID
	}

	published := it.Published
	if published == "" {
		published = it.Updated
	}

	summary := it.Description
	if it.Content != "" && summary == "" {
		summary = it.Content
	}

	return Article{
		Title:     it.Title,
		URL:       url,
		Summary:   CleanSummary(summary),
		Published: published,
		Source:    source,
	}
}
