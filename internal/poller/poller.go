// Package poller drives the fetch→filter→summarize→publish cycle on a
// fixed interval.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/lokkai/ground-news-discord-bot/internal/dedup"
	"github.com/lokkai/ground-news-discord-bot/internal/logger"
	"github.com/lokkai/ground-news-discord-bot/internal/message"
	"github.com/lokkai/ground-news-discord-bot/internal/metrics"
	"github.com/lokkai/ground-news-discord-bot/internal/ratelimit"
	"github.com/lokkai/ground-news-discord-bot/internal/rss"
	"github.com/lokkai/ground-news-discord-bot/internal/summarizer"
)

// State names the phase the poller is currently in.
type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StateFiltering   State = "filtering"
	StateSummarizing State = "summarizing"
	StatePublishing  State = "publishing"
)

// Fetcher pulls articles from every configured feed.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]rss.Article, error)
}

// DuplicateChecker decides whether an article was already posted.
type DuplicateChecker interface {
	Check(title, link string) dedup.Result
	Record(title, link string)
}

// Publisher delivers a formatted message to the channel.
type Publisher interface {
	Publish(ctx context.Context, content string) error
}

// BodyFetcher loads full article text for summarization. May be nil.
type BodyFetcher interface {
	FetchBody(ctx context.Context, url string) (string, error)
}

// Snapshotter persists the seen-article list.
type Snapshotter interface {
	Save() error
}

type Config struct {
	Interval         time.Duration
	SummarySentences int
}

type Poller struct {
	cfg      Config
	fetcher  Fetcher
	checker  DuplicateChecker
	pub      Publisher
	bodies   BodyFetcher
	snapshot Snapshotter
	limiter  *ratelimit.PostLimiter

	mu    sync.RWMutex
	state State
}

func New(cfg Config, fetcher Fetcher, checker DuplicateChecker, pub Publisher, bodies BodyFetcher, snapshot Snapshotter, limiter *ratelimit.PostLimiter) *Poller {
	return &Poller{
		cfg:      cfg,
		fetcher:  fetcher,
		checker:  checker,
		pub:      pub,
		bodies:   bodies,
		snapshot: snapshot,
		limiter:  limiter,
		state:    StateIdle,
	}
}

// State returns the poller's current phase.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Poller) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run executes one cycle immediately, then keeps polling on the configured
// interval until ctx is cancelled. The seen list is snapshotted once more
// on the way out.
func (p *Poller) Run(ctx context.Context) error {
	p.runCycle(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := p.snapshot.Save(); err != nil {
				logger.Error("saving seen list on shutdown", "error", err)
			}
			return ctx.Err()
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// RunCycle executes a single poll cycle. Exposed for one-shot invocations.
func (p *Poller) RunCycle(ctx context.Context) {
	p.runCycle(ctx)
}

func (p *Poller) runCycle(ctx context.Context) {
	start := time.Now()
	p.limiter.ResetCycle()

	p.setState(StateFetching)
	defer p.setState(StateIdle)

	articles, err := p.fetcher.FetchAll(ctx)
	if err != nil {
		logger.Error("fetch cycle failed", "error", err)
		metrics.Global.IncrementFetchFailures()
		metrics.Global.SetError(err.Error())
		return
	}
	metrics.Global.IncrementFeedFetches()
	logger.Info("fetched articles", "count", len(articles))

	published := 0
	for _, a := range articles {
		if ctx.Err() != nil {
			break
		}
		metrics.Global.IncrementArticlesSeen()

		p.setState(StateFiltering)
		res := p.checker.Check(a.Title, a.Link)
		if res.Duplicate {
			logger.Debug("duplicate filtered", "title", a.Title, "reason", res.Reason, "score", res.Score)
			metrics.Global.IncrementDuplicatesFiltered()
			continue
		}

		p.setState(StateSummarizing)
		summary := p.summarize(ctx, a)
		metrics.Global.IncrementSummariesBuilt()

		if !p.limiter.Allow() {
			// Budget gone; the rest stays unrecorded and is retried next cycle.
			break
		}
		if err := p.limiter.Wait(ctx); err != nil {
			break
		}

		p.setState(StatePublishing)
		msg := message.Format(a, summary)
		if err := p.pub.Publish(ctx, msg); err != nil {
			logger.Error("publish failed", "title", a.Title, "error", err)
			metrics.Global.IncrementPublishFailures()
			metrics.Global.SetError(err.Error())
			continue
		}

		// Record only after a successful post so failures retry next cycle.
		p.checker.Record(a.Title, a.Link)
		p.limiter.RecordPost()
		metrics.Global.IncrementMessagesPublished()
		logger.Info("published article", "title", a.Title, "source", a.Source)
		published++
	}

	if published > 0 {
		if err := p.snapshot.Save(); err != nil {
			logger.Error("saving seen list", "error", err)
		}
	}

	metrics.Global.RecordCycleTime(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("cycle complete", "published", published, "duration", time.Since(start), "limiter", p.limiter.GetStats())
}

// summarize picks the summary source: the scraped page body when it is
// richer than the feed description, otherwise the description itself.
func (p *Poller) summarize(ctx context.Context, a rss.Article) []string {
	text := a.Body
	if p.bodies != nil {
		if body, err := p.bodies.FetchBody(ctx, a.Link); err == nil && len(body) > len(text) {
			text = body
		} else if err != nil {
			logger.Debug("body scrape failed, using feed description", "link", a.Link, "error", err)
		}
	}
	return summarizer.Summarize(text, p.cfg.SummarySentences)
}
