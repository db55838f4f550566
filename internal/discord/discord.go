// Package discord posts messages to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/lokkai/ground-news-discord-bot/internal/logger"
	"github.com/lokkai/ground-news-discord-bot/internal/retry"
)

// Discord rejects messages over 2000 characters.
const maxContentRunes = 2000

// Publisher owns the gateway session and the target channel.
type Publisher struct {
	session   *discordgo.Session
	channelID string
	retryCfg  retry.Config
}

func NewPublisher(token, channelID string) (*Publisher, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Publisher{
		session:   session,
		channelID: channelID,
		retryCfg:  retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
	}, nil
}

// Open connects to the Discord gateway.
func (p *Publisher) Open() error {
	if err := p.session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}
	logger.Info("connected to Discord", "channel_id", p.channelID)
	return nil
}

func (p *Publisher) Close() error {
	return p.session.Close()
}

// Publish sends content to the configured channel, retrying transient
// failures.
func (p *Publisher) Publish(ctx context.Context, content string) error {
	if utf8.RuneCountInString(content) > maxContentRunes {
		runes := []rune(content)
		content = string(runes[:maxContentRunes-1]) + "…"
	}

	return retry.Do(ctx, p.retryCfg, func() error {
		_, err := p.session.ChannelMessageSend(p.channelID, content)
		if err != nil {
			logger.Warn("message send failed", "error", err)
		}
		return err
	})
}

// Announce posts the startup banner so the channel knows polling resumed.
func (p *Publisher) Announce(ctx context.Context) error {
	return p.Publish(ctx, "📰 **Ground News Bot Activated!**\nMonitoring feeds for breaking news...")
}
