package slack

import (
	"fmt"

	"github.com/aersekk/News-bot/internal/feed"
)

// Display limits. Slack rejects oversized block text, so title and summary
// are clipped before rendering.
const (
	maxTitleRunes   = 300
	maxSummaryRunes = 700
)

// Block is one Block Kit element. Section and context blocks are the only
// kinds this bot emits.
type Block struct {
	Type     string  `json:"type"`
	Text     *Text   `json:"text,omitempty"`
	Elements []*Text `json:"elements,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is an ordered block layout plus the plain-text fallback shown in
// notifications and by clients that cannot render blocks.
type Message struct {
	Blocks   []Block
	Fallback string
}

func mrkdwn(s string) *Text {
	return &Text{Type: "mrkdwn", Text: s}
}

// FormatArticle renders the three-part layout: headline, summary with a
// read link, and a source/score footer.
func FormatArticle(a feed.Article) Message {
	title := truncate(a.Title, maxTitleRunes)
	summary := truncate(a.Summary, maxSummaryRunes)

	blocks := []Block{
		{Type: "section", Text: mrkdwn("*" + title + "*")},
		{Type: "section", Text: mrkdwn(fmt.Sprintf("%s\n\n<%s|Read article>", summary, a.URL))},
		{Type: "context", Elements: []*Text{
			mrkdwn(fmt.Sprintf("Source: %s • Score: %d", a.Source, a.Score)),
		}},
	}

	return Message{
		Blocks:   blocks,
		Fallback: fmt.Sprintf("%s - %s", a.Title, a.URL),
	}
}

// truncate clips s to at most n runes. Byte slicing would split multibyte
// characters in feed titles.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
