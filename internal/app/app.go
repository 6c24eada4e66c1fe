// Package app sequences one curation run: gate, fetch, score, rank,
// dedup, publish.
package app

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aersekk/News-bot/internal/config"
	"github.com/aersekk/News-bot/internal/dedupe"
	"github.com/aersekk/News-bot/internal/feed"
	"github.com/aersekk/News-bot/internal/logger"
	"github.com/aersekk/News-bot/internal/metrics"
	"github.com/aersekk/News-bot/internal/schedule"
	"github.com/aersekk/News-bot/internal/score"
	"github.com/aersekk/News-bot/internal/slack"
	"github.com/aersekk/News-bot/internal/upstash"
)

// Fetcher collects articles from feed sources.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []feed.Article
}

// Deduper consults and updates the published-article store.
type Deduper interface {
	Check(ctx context.Context, fingerprint string) dedupe.Result
	MarkPublished(ctx context.Context, fingerprint string)
}

// Publisher emits one formatted message to the chat channel.
type Publisher interface {
	PostMessage(ctx context.Context, msg slack.Message) error
}

// Result is the run outcome reported back to the scheduler: a short status
// line and an HTTP-style code, never internal error detail.
type Result struct {
	Status string
	Code   int
	Posted int
}

type App struct {
	cfg       *config.Config
	gate      *schedule.Gate
	fetcher   Fetcher
	dedup     Deduper
	publisher Publisher

	// Now is the clock used by the time gate. Tests pin it.
	Now func() time.Time
}

// New wires an App against the real collaborators from config.
func New(cfg *config.Config) (*App, error) {
	gate, err := schedule.NewGate(cfg.Timezone, cfg.TargetHours)
	if err != nil {
		return nil, err
	}

	store := upstash.NewClient(cfg.UpstashRedisREST, cfg.UpstashRedisToken, cfg.CacheTimeout)

	return &App{
		cfg:       cfg,
		gate:      gate,
		fetcher:   feed.NewAggregator(cfg.FeedTimeout),
		dedup:     dedupe.New(store, cfg.DedupTTL),
		publisher: slack.NewClient(cfg.SlackBotToken, cfg.SlackChannelID, cfg.SlackTimeout),
		Now:       time.Now,
	}, nil
}

// Run executes one pipeline pass. The gate check happens before any fetch,
// so an off-hours invocation makes zero network calls.
func (a *App) Run(ctx context.Context) Result {
	start := time.Now()

	now := a.Now()
	if !a.gate.Allows(now) {
		logger.Info("not a posting hour, skipping run",
			"local_time", a.gate.LocalTime(now).Format(time.RFC3339))
		metrics.Global.IncrementRunsGated()
		return Result{Status: "OK - not a posting hour", Code: http.StatusOK}
	}

	articles := a.fetcher.FetchAll(ctx, a.cfg.Feeds)
	metrics.Global.AddArticlesSeen(len(articles))

	candidates := a.selectCandidates(articles)
	metrics.Global.AddArticlesQualified(len(candidates))
	logger.Info("scored articles", "seen", len(articles), "qualified", len(candidates))

	posted := a.publishLoop(ctx, candidates)

	metrics.Global.SetLastRun(time.Since(start))
	return Result{
		Status: "OK - posted " + strconv.Itoa(posted),
		Code:   http.StatusOK,
		Posted: posted,
	}
}

// selectCandidates drops URL-less and below-threshold articles, then ranks
// the rest: score descending, ties broken by the raw published string
// ascending. The tie-break compares heterogeneous date strings
// lexicographically, which is not chronological order; the behavior is
// kept as-is and covered by tests.
func (a *App) selectCandidates(articles []feed.Article) []feed.Article {
	candidates := make([]feed.Article, 0, len(articles))
	for _, art := range articles {
		if art.URL == "" {
			continue
		}
		art.Score = score.Article(art)
		if art.Score >= a.cfg.MinScore {
			candidates = append(candidates, art)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return strings.Compare(candidates[i].Published, candidates[j].Published) < 0
	})
	return candidates
}

// publishLoop walks the ranked list, skipping duplicates and stopping at
// the per-run cap. Publish failures are isolated per item: the failure is
// logged and the loop moves on without consuming a slot.
func (a *App) publishLoop(ctx context.Context, candidates []feed.Article) int {
	posted := 0
	for _, art := range candidates {
		if posted >= a.cfg.PostMax {
			break
		}

		fp := dedupe.Fingerprint(art.URL)
		res := a.dedup.Check(ctx, fp)
		if res == dedupe.Duplicate {
			logger.Debug("skipping duplicate", "url", art.URL)
			metrics.Global.IncrementDuplicatesSkipped()
			continue
		}

		if err := a.publisher.PostMessage(ctx, slack.FormatArticle(art)); err != nil {
			logger.Error("failed to publish article", "url", art.URL, "error", err)
			metrics.Global.IncrementPostFailures()
			metrics.Global.SetError(err.Error())
			continue
		}

		a.dedup.MarkPublished(ctx, fp)
		metrics.Global.IncrementPostsSent()
		logger.Info("published article", "title", art.Title, "url", art.URL, "score", art.Score)
		posted++
	}
	return posted
}
