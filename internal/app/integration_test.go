package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aersekk/News-bot/internal/dedupe"
	"github.com/aersekk/News-bot/internal/feed"
	"github.com/aersekk/News-bot/internal/slack"
	"github.com/aersekk/News-bot/internal/upstash"
)

// Wires the real aggregator, dedup store client, and Slack client against
// local fakes: one feed source down, one healthy, an empty Upstash store,
// a Slack endpoint that accepts everything.
func TestRunSurvivesUnreachableFeedSource(t *testing.T) {
	goodFeed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Wire</title>
<item>
<title>Vendor announced funding</title>
<link>https://example.com/story</link>
<description>Round led by someone.</description>
</item>
</channel></rss>`)
	}))
	defer goodFeed.Close()

	store := map[string]string{}
	upstashSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		switch {
		case len(r.URL.Path) > 5 && r.URL.Path[:5] == "/get/":
			key = r.URL.Path[5:]
			if v, ok := store[key]; ok {
				fmt.Fprintf(w, `{"result":%q}`, v)
			} else {
				fmt.Fprint(w, `{"result":null}`)
			}
		case len(r.URL.Path) > 5 && r.URL.Path[:5] == "/set/":
			rest := r.URL.Path[5:]
			for i := 0; i < len(rest); i++ {
				if rest[i] == '/' {
					store[rest[:i]] = rest[i+1:]
					break
				}
			}
			fmt.Fprint(w, `{"result":"OK"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer upstashSrv.Close()

	var slackPosts int
	slackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slackPosts++
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer slackSrv.Close()

	cfg := testConfig()
	cfg.Feeds = []string{"http://127.0.0.1:1/feed", goodFeed.URL}

	storeClient := upstash.NewClient(upstashSrv.URL, "tok", time.Second)
	a := newTestApp(t, cfg,
		feed.NewAggregator(2*time.Second),
		dedupe.New(storeClient, time.Hour),
		slack.NewClientWithURL(slackSrv.URL, "tok", "C0", time.Second),
	)

	res := a.Run(context.Background())
	if res.Posted != 1 || slackPosts != 1 {
		t.Fatalf("source isolation broken: result=%+v slackPosts=%d", res, slackPosts)
	}
	fp := dedupe.Fingerprint("https://example.com/story")
	if store[fp] != "1" {
		t.Errorf("presence record not written for %s", fp)
	}

	// A second run inside the same hour finds the presence record and
	// posts nothing.
	res = a.Run(context.Background())
	if res.Posted != 0 || slackPosts != 1 {
		t.Fatalf("dedup across runs failed: result=%+v slackPosts=%d", res, slackPosts)
	}
}
