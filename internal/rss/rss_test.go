package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <item>
      <title>Newest story</title>
      <link>https://example.com/newest</link>
      <description>&lt;p&gt;Newest   body&lt;/p&gt;</description>
      <pubDate>Tue, 02 Jan 2024 15:04:05 GMT</pubDate>
    </item>
    <item>
      <title>Entry without link</title>
      <description>Orphan body</description>
    </item>
    <item>
      <title>Oldest story</title>
      <link>https://example.com/oldest</link>
      <description>Oldest body</description>
      <pubDate>Mon, 01 Jan 2024 15:04:05 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient([]FeedSource{{Name: "Test Feed", URL: srv.URL}}, 5*time.Second)
	articles, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	// Link-less entry dropped, remaining two reversed to oldest-first.
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].Title != "Oldest story" || articles[1].Title != "Newest story" {
		t.Errorf("wrong order: %q, %q", articles[0].Title, articles[1].Title)
	}
	if articles[0].Source != "Test Feed" {
		t.Errorf("source = %q", articles[0].Source)
	}
	if articles[1].Body != "Newest body" {
		t.Errorf("body not HTML-stripped: %q", articles[1].Body)
	}
	if articles[0].Published.IsZero() {
		t.Error("published date not parsed")
	}
}

func TestFetchAllAllFeedsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient([]FeedSource{{Name: "Broken", URL: srv.URL}}, 5*time.Second)
	if _, err := c.FetchAll(context.Background()); err == nil {
		t.Error("expected error when every feed fails")
	}
}

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := "feeds:\n  - name: Ground News\n    url: https://example.com/feed.xml\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if len(feeds) != 1 || feeds[0].Name != "Ground News" {
		t.Errorf("feeds = %+v", feeds)
	}
}

func TestLoadFeedsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte("feeds: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFeeds(path); err == nil {
		t.Error("expected error for empty feed list")
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello <b>world</b></p>\n\n  extra")
	if got != "Hello world extra" {
		t.Errorf("StripHTML = %q", got)
	}
}

func TestTitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 400)
	feedXML := strings.Replace(sampleFeed, "Newest story", long, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	c := NewClient([]FeedSource{{Name: "Test", URL: srv.URL}}, 5*time.Second)
	articles, err := c.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	for _, a := range articles {
		if len([]rune(a.Title)) > 250 {
			t.Errorf("title not capped: %d runes", len([]rune(a.Title)))
		}
	}
}
