// Package textutil normalizes titles and URLs for duplicate comparison and
// scores string similarity.
package textutil

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// Common words removed from titles before comparison. Keeping them inflates
// similarity between unrelated headlines ("the", "a", ...).
var titleStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "with": true, "and": true, "but": true, "or": true,
}

// Query parameters that vary between copies of the same link.
var trackingParams = map[string]bool{
	"source": true, "fbclid": true, "ref": true, "igshid": true,
}

// NormalizeTitle lower-cases the title, strips punctuation, collapses
// whitespace and drops stop words.
func NormalizeTitle(title string) string {
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, w := range words {
		if titleStopWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// NormalizeURL strips tracking query parameters, the fragment and any
// trailing slash so that republished copies of a link compare equal.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Not parseable; best effort on the raw string.
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		return strings.TrimRight(raw, "/")
	}

	q := u.Query()
	for key := range q {
		if trackingParams[key] || strings.HasPrefix(key, "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return strings.TrimRight(u.String(), "/")
}

// Similarity returns a sequence-matching ratio in [0,1] between two strings,
// computed per rune. 1.0 means identical.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	return difflib.NewMatcher(explode(a), explode(b)).Ratio()
}

func explode(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
