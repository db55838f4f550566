package textutil

import "testing"

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Senate Passes Bill", "senate passes bill"},
		{"Senate passes the Bill", "senate passes bill"},
		{"  Breaking:   News!!  ", "breaking news"},
		{"The A-Team, in action", "team action"},
		{"", ""},
	}

	for _, c := range cases {
		if got := NormalizeTitle(c.in); got != c.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeURLStripsTracking(t *testing.T) {
	got := NormalizeURL("https://example.com/story?utm_source=rss&utm_medium=feed&id=7#section")
	want := "https://example.com/story?id=7"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeURLTrailingSlashAndFragment(t *testing.T) {
	got := NormalizeURL("https://example.com/story/#comments")
	want := "https://example.com/story"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeURLSameStoryDifferentTracking(t *testing.T) {
	a := NormalizeURL("https://example.com/story?fbclid=abc123")
	b := NormalizeURL("https://example.com/story?utm_campaign=x&ref=home")
	if a != b {
		t.Errorf("normalized URLs differ: %q vs %q", a, b)
	}
}

func TestSimilarityIdentical(t *testing.T) {
	if got := Similarity("senate passes bill", "senate passes bill"); got != 1.0 {
		t.Errorf("identical strings: got %v, want 1.0", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "something"); got != 0.0 {
		t.Errorf("empty string: got %v, want 0.0", got)
	}
}

func TestSimilarityNearDuplicateHeadlines(t *testing.T) {
	a := NormalizeTitle("Senate Passes Bill")
	b := NormalizeTitle("Senate passes the Bill")
	if got := Similarity(a, b); got < 0.85 {
		t.Errorf("near-duplicate headlines scored %v, want >= 0.85", got)
	}
}

func TestSimilarityUnrelatedHeadlines(t *testing.T) {
	a := NormalizeTitle("Senate Passes Bill")
	b := NormalizeTitle("Storm Hits Northern Coast Overnight")
	if got := Similarity(a, b); got >= 0.85 {
		t.Errorf("unrelated headlines scored %v, want < 0.85", got)
	}
}
