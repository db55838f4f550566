// Package dedup decides whether an incoming article repeats one already
// published inside the duplicate window.
package dedup

import (
	"time"

	"github.com/lokkai/ground-news-discord-bot/internal/storage"
	"github.com/lokkai/ground-news-discord-bot/internal/textutil"
)

const (
	// DefaultThreshold is the title similarity ratio at or above which two
	// articles count as the same story.
	DefaultThreshold = 0.85

	// Titles whose normalized lengths differ by more than this many bytes
	// are never the same story; skip the ratio computation.
	lengthGate = 15
)

// Result describes a duplicate check.
type Result struct {
	Duplicate  bool
	Reason     string // "url" or "title"
	MatchTitle string // retained title that matched, for title duplicates
	Score      float64
}

// Filter checks articles against the seen store. It is used by the single
// poller goroutine only.
type Filter struct {
	store     *storage.SeenStore
	threshold float64
}

// NewFilter creates a duplicate filter over the given store. A zero
// threshold selects DefaultThreshold.
func NewFilter(store *storage.SeenStore, threshold float64) *Filter {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Filter{store: store, threshold: threshold}
}

// Check reports whether the article duplicates a retained record, either by
// exact normalized URL or by title similarity at or above the threshold.
func (f *Filter) Check(title, link string) Result {
	normURL := textutil.NormalizeURL(link)
	if normURL != "" && f.store.ContainsURL(normURL) {
		return Result{Duplicate: true, Reason: "url", Score: 1.0}
	}

	normTitle := textutil.NormalizeTitle(title)
	if normTitle == "" {
		return Result{}
	}

	for _, retained := range f.store.Titles() {
		diff := len(normTitle) - len(retained)
		if diff > lengthGate || diff < -lengthGate {
			continue
		}
		if score := textutil.Similarity(normTitle, retained); score >= f.threshold {
			return Result{Duplicate: true, Reason: "title", MatchTitle: retained, Score: score}
		}
	}
	return Result{}
}

// Record remembers an accepted article so later copies are filtered.
func (f *Filter) Record(title, link string) {
	f.store.Add(textutil.NormalizeURL(link), textutil.NormalizeTitle(title), time.Now())
}
