package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

// SeenRecord is one previously published article, kept for the duplicate
// window so the same story is not posted twice.
type SeenRecord struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	FirstSeen time.Time `json:"seen_at"`
}

// SeenStore holds the seen records in memory and persists them to a JSON
// snapshot file across restarts. Records older than the window are dropped
// lazily on every access; the record count is also hard-capped so a runaway
// feed cannot grow the snapshot without limit.
type SeenStore struct {
	filePath   string
	window     time.Duration
	maxRecords int

	mu      sync.RWMutex
	records []SeenRecord // ordered by FirstSeen ascending
	byURL   map[string]bool
}

// NewSeenStore creates a seen store backed by the given snapshot file.
func NewSeenStore(filePath string, window time.Duration, maxRecords int) *SeenStore {
	return &SeenStore{
		filePath:   filePath,
		window:     window,
		maxRecords: maxRecords,
		byURL:      make(map[string]bool),
	}
}

// Load reads the snapshot file, keeping only records still inside the
// window. A missing file is not an error.
func (s *SeenStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading seen snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var records []SeenRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("unmarshaling seen snapshot: %w", err)
	}

	cutoff := time.Now().Add(-s.window)
	s.records = s.records[:0]
	for _, r := range records {
		if r.FirstSeen.After(cutoff) {
			s.records = append(s.records, r)
		}
	}
	sort.Slice(s.records, func(i, j int) bool {
		return s.records[i].FirstSeen.Before(s.records[j].FirstSeen)
	})
	s.rebuildIndexLocked()
	return nil
}

// Save prunes expired records and writes the snapshot file.
func (s *SeenStore) Save() error {
	s.mu.Lock()
	s.pruneLocked(time.Now())
	records := make([]SeenRecord, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling seen snapshot: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing seen snapshot: %w", err)
	}
	return nil
}

// ContainsURL reports whether a record with this normalized URL is retained.
func (s *SeenStore) ContainsURL(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	return s.byURL[url]
}

// Titles returns the normalized titles of all retained records.
func (s *SeenStore) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	titles := make([]string, 0, len(s.records))
	for _, r := range s.records {
		titles = append(titles, r.Title)
	}
	return titles
}

// Add records a published article. Records are appended in seen order; when
// the cap is exceeded the oldest records are evicted first.
func (s *SeenStore) Add(url, title string, seenAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(seenAt)
	s.records = append(s.records, SeenRecord{URL: url, Title: title, FirstSeen: seenAt})
	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		s.records = s.records[len(s.records)-s.maxRecords:]
		s.rebuildIndexLocked()
		return
	}
	if url != "" {
		s.byURL[url] = true
	}
}

// Len returns the number of retained records.
func (s *SeenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(time.Now())
	return len(s.records)
}

// pruneLocked drops records older than the window. Records are ordered by
// FirstSeen, so expired ones sit at the front.
func (s *SeenStore) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.records) && !s.records[i].FirstSeen.After(cutoff) {
		i++
	}
	if i == 0 {
		return
	}
	s.records = s.records[i:]
	s.rebuildIndexLocked()
}

func (s *SeenStore) rebuildIndexLocked() {
	s.byURL = make(map[string]bool, len(s.records))
	for _, r := range s.records {
		if r.URL != "" {
			s.byURL[r.URL] = true
		}
	}
}
