// Package config loads bot settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Discord settings
	DiscordToken     string
	DiscordChannelID string

	// RSS settings
	FeedsConfigPath string
	FetchInterval   time.Duration
	RequestTimeout  time.Duration

	// Duplicate filtering
	SimilarityThreshold float64
	DuplicateWindow     time.Duration
	SeenFilePath        string
	MaxSeenRecords      int

	// Summarization
	SummarySentences int
	ScrapeBodies     bool

	// Posting policy
	PostDelay        time.Duration
	MaxPostsPerCycle int // 0 = unlimited

	// App settings
	Debug                bool
	EnableHTTPMonitoring bool
	MonitoringPort       string
}

func Load() (*Config, error) {
	cfg := &Config{
		FeedsConfigPath:     getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		FetchInterval:       time.Duration(getEnvIntOrDefault("FETCH_INTERVAL_SECONDS", 300)) * time.Second,
		RequestTimeout:      time.Duration(getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
		SimilarityThreshold: getEnvFloatOrDefault("SIMILARITY_THRESHOLD", 0.85),
		DuplicateWindow:     time.Duration(getEnvIntOrDefault("DUPLICATE_WINDOW_HOURS", 24)) * time.Hour,
		SeenFilePath:        getEnvOrDefault("SEEN_FILE_PATH", "seen_articles.json"),
		MaxSeenRecords:      getEnvIntOrDefault("MAX_SEEN_RECORDS", 1000),
		SummarySentences:    getEnvIntOrDefault("SUMMARY_SENTENCES", 5),
		PostDelay:           time.Duration(getEnvIntOrDefault("POST_DELAY_SECONDS", 2)) * time.Second,
		MaxPostsPerCycle:    getEnvIntOrDefault("MAX_POSTS_PER_CYCLE", 0),
		MonitoringPort:      getEnvOrDefault("MONITORING_PORT", "8080"),
	}

	cfg.DiscordToken = os.Getenv("DISCORD_TOKEN")
	cfg.DiscordChannelID = os.Getenv("DISCORD_CHANNEL_ID")
	cfg.ScrapeBodies = getEnvBool("SCRAPE_BODIES")
	cfg.Debug = getEnvBool("DEBUG")
	cfg.EnableHTTPMonitoring = getEnvBool("ENABLE_HTTP_MONITORING")

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	return os.Getenv(key) == "true"
}

func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DiscordChannelID == "" {
		return fmt.Errorf("DISCORD_CHANNEL_ID is required")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.FetchInterval <= 0 {
		return fmt.Errorf("FETCH_INTERVAL_SECONDS must be positive")
	}
	if c.DuplicateWindow <= 0 {
		return fmt.Errorf("DUPLICATE_WINDOW_HOURS must be positive")
	}
	if c.SummarySentences <= 0 {
		return fmt.Errorf("SUMMARY_SENTENCES must be positive")
	}
	return nil
}
