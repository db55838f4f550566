// Package rss loads the feed list and fetches candidate articles.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/lokkai/ground-news-discord-bot/internal/logger"
)

// Feed entries carry titles up to this many runes; anything longer is cut.
const maxTitleRunes = 250

// Article is one candidate item extracted from a feed. Immutable once
// fetched.
type Article struct {
	Title     string
	Link      string
	Source    string
	Body      string
	Published time.Time
}

// FeedSource identifies one RSS feed to poll.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FeedsConfig is the YAML feed list structure:
//
//	feeds:
//	  - name: Ground News
//	    url: https://...
type FeedsConfig struct {
	Feeds []FeedSource `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file.
func LoadFeeds(path string) ([]FeedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing feeds config: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no feeds", path)
	}
	return cfg.Feeds, nil
}

// Client fetches and parses the configured feeds.
type Client struct {
	parser  *gofeed.Parser
	sources []FeedSource
}

// NewClient creates a feed client with the given request timeout.
func NewClient(sources []FeedSource, timeout time.Duration) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	// Some feed hosts refuse non-browser agents.
	parser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	return &Client{parser: parser, sources: sources}
}

// FetchAll downloads every configured feed and returns the combined article
// list, oldest entries first so the newest article is posted last. A feed
// that fails to download or parse is logged and skipped; FetchAll errors
// only when every feed failed.
func (c *Client) FetchAll(ctx context.Context) ([]Article, error) {
	var all []Article
	okCount := 0

	for _, src := range c.sources {
		feed, err := c.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			logger.Warn("feed fetch failed", "source", src.Name, "url", src.URL, "error", err)
			continue
		}
		okCount++

		articles := extractArticles(feed, src.Name)
		logger.Info("feed fetched", "source", src.Name, "entries", len(feed.Items), "usable", len(articles))
		all = append(all, articles...)
	}

	if okCount == 0 && len(c.sources) > 0 {
		return nil, fmt.Errorf("all %d feeds failed", len(c.sources))
	}
	return all, nil
}

// extractArticles converts feed items to Articles in reverse feed order
// (feeds list newest first). Items without a link are skipped.
func extractArticles(feed *gofeed.Feed, source string) []Article {
	articles := make([]Article, 0, len(feed.Items))

	for i := len(feed.Items) - 1; i >= 0; i-- {
		item := feed.Items[i]
		if item == nil || strings.TrimSpace(item.Link) == "" {
			title := "(no title)"
			if item != nil && item.Title != "" {
				title = item.Title
			}
			logger.Warn("feed entry missing link, skipping", "source", source, "title", title)
			continue
		}

		articles = append(articles, Article{
			Title:     truncateRunes(strings.TrimSpace(item.Title), maxTitleRunes),
			Link:      strings.TrimSpace(item.Link),
			Source:    source,
			Body:      extractBody(item),
			Published: publishedAt(item),
		})
	}
	return articles
}

// extractBody picks the richest text the feed offers, HTML stripped.
// Preference order: description, then content.
func extractBody(item *gofeed.Item) string {
	body := item.Description
	if strings.TrimSpace(body) == "" {
		body = item.Content
	}
	return StripHTML(body)
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// StripHTML removes tags and collapses whitespace runs.
func StripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
