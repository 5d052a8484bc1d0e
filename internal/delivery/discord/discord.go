// Package discord implements the delivery Sender for Discord channels.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/rjcarver/manna/internal/delivery"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sender posts devotional messages to a Discord channel.
type Sender struct {
	sess session
}

// Opts holds parameters for creating a Discord Sender.
type Opts struct {
	BotToken string // Discord bot token
	// For testing: inject a mock session instead of the real Discord API.
	Session session
}

// New creates a Discord Sender.
func New(opts Opts) (*Sender, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	s := &Sender{sess: opts.Session}
	if s.sess == nil {
		sess, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("discord: create session: %w", err)
		}
		s.sess = sess
	}
	return s, nil
}

// Send posts body to the given channel. The receipt carries the Discord
// message ID.
func (s *Sender) Send(ctx context.Context, channelID, body string) (delivery.Receipt, error) {
	if channelID == "" {
		return delivery.Receipt{}, fmt.Errorf("discord: no channel specified")
	}

	msg, err := s.sess.ChannelMessageSend(channelID, body, discordgo.WithContext(ctx))
	if err != nil {
		return delivery.Receipt{}, fmt.Errorf("discord: send message: %w", err)
	}
	if msg == nil || msg.ID == "" {
		return delivery.Receipt{ProviderID: uuid.NewString()}, nil
	}
	return delivery.Receipt{ProviderID: msg.ID}, nil
}
