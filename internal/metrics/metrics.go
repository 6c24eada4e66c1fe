package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesSeen      int64
	ArticlesQualified int64
	DuplicatesSkipped int64
	FeedFailures      int64
	CacheFailures     int64
	PostsSent         int64
	PostFailures      int64
	RunsGated         int64 // runs that ended at the time gate

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesSeen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSeen += int64(n)
}

func (m *Metrics) AddArticlesQualified(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesQualified += int64(n)
}

func (m *Metrics) IncrementDuplicatesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped++
}

func (m *Metrics) IncrementFeedFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFailures++
}

func (m *Metrics) IncrementCacheFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheFailures++
}

func (m *Metrics) IncrementPostsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsSent++
}

func (m *Metrics) IncrementPostFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostFailures++
}

func (m *Metrics) IncrementRunsGated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsGated++
}

func (m *Metrics) SetLastRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = duration
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_seen":        m.ArticlesSeen,
		"articles_qualified":   m.ArticlesQualified,
		"duplicates_skipped":   m.DuplicatesSkipped,
		"feed_failures":        m.FeedFailures,
		"cache_failures":       m.CacheFailures,
		"posts_sent":           m.PostsSent,
		"post_failures":        m.PostFailures,
		"runs_gated":           m.RunsGated,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
