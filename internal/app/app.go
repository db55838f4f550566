// Package app wires the bot together and owns its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lokkai/ground-news-discord-bot/internal/config"
	"github.com/lokkai/ground-news-discord-bot/internal/dedup"
	"github.com/lokkai/ground-news-discord-bot/internal/discord"
	"github.com/lokkai/ground-news-discord-bot/internal/logger"
	"github.com/lokkai/ground-news-discord-bot/internal/poller"
	"github.com/lokkai/ground-news-discord-bot/internal/ratelimit"
	"github.com/lokkai/ground-news-discord-bot/internal/rss"
	"github.com/lokkai/ground-news-discord-bot/internal/scraper"
	"github.com/lokkai/ground-news-discord-bot/internal/storage"
)

// Run builds every component from configuration and polls until SIGINT or
// SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Init()

	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return fmt.Errorf("loading feeds: %w", err)
	}
	fetcher := rss.NewClient(feeds, cfg.RequestTimeout)

	store := storage.NewSeenStore(cfg.SeenFilePath, cfg.DuplicateWindow, cfg.MaxSeenRecords)
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading seen list: %w", err)
	}
	logger.Info("seen list loaded", "records", store.Len())

	filter := dedup.NewFilter(store, cfg.SimilarityThreshold)

	pub, err := discord.NewPublisher(cfg.DiscordToken, cfg.DiscordChannelID)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	if err := pub.Open(); err != nil {
		return fmt.Errorf("connecting to Discord: %w", err)
	}
	defer pub.Close()

	var bodies poller.BodyFetcher
	if cfg.ScrapeBodies {
		bodies = scraper.New(cfg.RequestTimeout)
	}

	limiter := ratelimit.NewPostLimiter(cfg.PostDelay, cfg.MaxPostsPerCycle)

	p := poller.New(
		poller.Config{Interval: cfg.FetchInterval, SummarySentences: cfg.SummarySentences},
		fetcher, filter, pub, bodies, store, limiter,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pub.Announce(ctx); err != nil {
		logger.Warn("startup announcement failed", "error", err)
	}

	logger.Info("bot running", "interval", cfg.FetchInterval, "feeds", len(feeds))
	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("shutting down")
	return nil
}
