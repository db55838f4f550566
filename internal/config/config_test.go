package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "123456")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FetchInterval != 300*time.Second {
		t.Errorf("FetchInterval = %v", cfg.FetchInterval)
	}
	if cfg.SimilarityThreshold != 0.85 {
		t.Errorf("SimilarityThreshold = %v", cfg.SimilarityThreshold)
	}
	if cfg.DuplicateWindow != 24*time.Hour {
		t.Errorf("DuplicateWindow = %v", cfg.DuplicateWindow)
	}
	if cfg.SummarySentences != 5 {
		t.Errorf("SummarySentences = %d", cfg.SummarySentences)
	}
	if cfg.PostDelay != 2*time.Second {
		t.Errorf("PostDelay = %v", cfg.PostDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FETCH_INTERVAL_SECONDS", "60")
	t.Setenv("SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("SCRAPE_BODIES", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FetchInterval != time.Minute {
		t.Errorf("FetchInterval = %v", cfg.FetchInterval)
	}
	if cfg.SimilarityThreshold != 0.9 {
		t.Errorf("SimilarityThreshold = %v", cfg.SimilarityThreshold)
	}
	if !cfg.ScrapeBodies {
		t.Error("SCRAPE_BODIES=true not applied")
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_CHANNEL_ID", "123456")

	if _, err := Load(); err == nil {
		t.Error("expected error without DISCORD_TOKEN")
	}
}

func TestValidateThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv("SIMILARITY_THRESHOLD", "1.5")

	if _, err := Load(); err == nil {
		t.Error("expected error for threshold > 1")
	}
}
