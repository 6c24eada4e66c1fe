// Package score assigns a flat keyword-relevance score to articles.
// Scoring is a pure function of the article text: no feed state, no
// external calls, same input always gives the same score.
package score

import (
	"strings"

	"github.com/aersekk/News-bot/internal/feed"
)

const (
	signalPoints = 3
	infraPoints  = 2
)

// Business-event terms. Each match is worth signalPoints.
var signalKeywords = []string{
	"funding", "raises", "acquisition", "acqui", "outage", "breach",
	"open source", "partnership", "launch", "announced", "milestone",
}

// Hardware and vendor terms. Each match is worth infraPoints.
var infraKeywords = []string{
	"h100", "h200", "mi300", "gpu", "accelerator", "nvidia", "amd", "intel",
}

// Article computes the relevance score for one article. Matching is
// case-insensitive substring search over title and summary together;
// every matched keyword counts, with no cap per category.
func Article(a feed.Article) int {
	return Text(a.Title + " " + a.Summary)
}

// Text scores raw text with the same rules as Article.
func Text(text string) int {
	text = strings.ToLower(text)

	s := 0
	for _, k := range signalKeywords {
		if strings.Contains(text, k) {
			s += signalPoints
		}
	}
	for _, k := range infraKeywords {
		if strings.Contains(text, k) {
			s += infraPoints
		}
	}
	return s
}
