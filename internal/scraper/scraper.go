// Package scraper extracts article body text from news pages so the
// summarizer has real sentences to work with when the feed description is
// thin.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// Paragraphs shorter than this are navigation crumbs, bylines, etc.
	minParagraphLen = 20

	// Enough body text for a summary; stop collecting past this.
	maxBodyLen = 4000
)

// Selectors tried in order; the first one yielding at least three
// paragraphs wins.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".post-content p",
	".entry-content p",
	"main p",
	"#content p",
	"p",
}

// Scraper fetches article pages over HTTP.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a scraper with the given request timeout.
func New(timeout time.Duration) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	}
}

// FetchBody downloads the page at url and returns its extracted body text.
func (s *Scraper) FetchBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	body := ExtractBody(doc)
	if body == "" {
		return "", fmt.Errorf("no readable content at %s", url)
	}
	return body, nil
}

// ExtractBody pulls paragraph text out of a parsed document.
func ExtractBody(doc *goquery.Document) string {
	var paragraphs []string

	for _, selector := range contentSelectors {
		paragraphs = paragraphs[:0]
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) >= minParagraphLen {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}

	if len(paragraphs) == 0 {
		return ""
	}

	// Keep whole paragraphs up to the length cap.
	var b strings.Builder
	for _, p := range paragraphs {
		if b.Len() > 0 {
			if b.Len()+len(p) > maxBodyLen {
				break
			}
			b.WriteString("\n\n")
		}
		b.WriteString(p)
	}
	return b.String()
}
