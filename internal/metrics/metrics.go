package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedFetches        int64
	FetchFailures      int64
	ArticlesSeen       int64
	DuplicatesFiltered int64
	SummariesBuilt     int64
	MessagesPublished  int64
	PublishFailures    int64

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFetches++
}

func (m *Metrics) IncrementFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchFailures++
}

func (m *Metrics) IncrementArticlesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSeen++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementSummariesBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesBuilt++
}

func (m *Metrics) IncrementMessagesPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesPublished++
}

func (m *Metrics) IncrementPublishFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishFailures++
}

func (m *Metrics) RecordCycleTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++

	if m.CycleCount > 0 {
		m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feed_fetches":          m.FeedFetches,
		"fetch_failures":        m.FetchFailures,
		"articles_seen":         m.ArticlesSeen,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"summaries_built":       m.SummariesBuilt,
		"messages_published":    m.MessagesPublished,
		"publish_failures":      m.PublishFailures,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
