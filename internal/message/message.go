// Package message assembles display-ready channel messages.
package message

import (
	"strings"
	"unicode/utf8"

	"github.com/lokkai/ground-news-discord-bot/internal/rss"
)

const (
	// Discord rejects messages longer than 2000 characters.
	maxMessageRunes = 2000

	maxSummaryRunes = 1500
)

// Format builds the channel message for one article: source banner, bold
// title, published date when known, summary, and the article link last so
// the platform renders its preview.
func Format(a rss.Article, summary []string) string {
	text := truncateRunes(strings.Join(summary, " "), maxSummaryRunes)

	msg := build(a, text)
	if utf8.RuneCountInString(msg) <= maxMessageRunes {
		return msg
	}

	// Over budget: shrink the summary to the room the fixed parts leave.
	// The fixed parts are measured with the summary removed, so the budget
	// stays below the cap however long the summary is.
	overhead := utf8.RuneCountInString(build(a, "")) + 2 // "\n\n" after the summary
	budget := maxMessageRunes - overhead
	if budget < 0 {
		budget = 0
	}
	return build(a, truncateRunes(text, budget))
}

// build assembles the message around the given summary text.
func build(a rss.Article, summaryText string) string {
	var b strings.Builder

	b.WriteString("**🚨 " + strings.ToUpper(a.Source) + " • BREAKING NEWS**\n")
	b.WriteString("**" + a.Title + "**\n\n")

	if !a.Published.IsZero() {
		b.WriteString("*Published: " + a.Published.Format("Mon, 02 Jan 2006 15:04 MST") + "*\n\n")
	}

	if summaryText != "" {
		b.WriteString(summaryText + "\n\n")
	}

	b.WriteString("Read more: " + a.Link)
	return b.String()
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return ""
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
