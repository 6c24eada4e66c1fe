package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanSummary strips HTML markup from a feed summary and collapses
// whitespace. Feeds routinely ship full markup in description fields, and
// the chat channel expects plain text.
func CleanSummary(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}

	return strings.Join(strings.Fields(s), " ")
}
