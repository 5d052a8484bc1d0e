// Package slack implements the delivery Sender for Slack channels.
package slack

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	slackapi "github.com/slack-go/slack"

	"github.com/rjcarver/manna/internal/delivery"
)

// maxRetries is the max number of retries for rate-limited API calls.
const maxRetries = 3

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Sender posts devotional messages to a Slack channel.
type Sender struct {
	client slackClient
}

// Opts holds parameters for creating a Slack Sender.
type Opts struct {
	BotToken string // xoxb-... Slack bot token
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Slack Sender.
func New(opts Opts) (*Sender, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	s := &Sender{client: opts.Client}
	if s.client == nil {
		s.client = slackapi.New(opts.BotToken)
	}
	return s, nil
}

// Send posts body to the given channel. The receipt carries the message
// timestamp Slack assigns, which uniquely identifies it within the channel.
func (s *Sender) Send(ctx context.Context, channelID, body string) (delivery.Receipt, error) {
	if channelID == "" {
		return delivery.Receipt{}, fmt.Errorf("slack: no channel specified")
	}

	var ts string
	err := retryOnRateLimit(ctx, func() error {
		var postErr error
		_, ts, postErr = s.client.PostMessage(channelID, slackapi.MsgOptionText(body, false))
		return postErr
	})
	if err != nil {
		return delivery.Receipt{}, fmt.Errorf("slack: post message: %w", err)
	}
	if ts == "" {
		ts = uuid.NewString()
	}
	return delivery.Receipt{ProviderID: ts}, nil
}

// retryOnRateLimit calls fn and retries with backoff on Slack rate limit errors.
// It respects context cancellation and the RetryAfter duration from Slack.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) {
			return err // not a rate limit error, don't retry
		}

		if attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil // unreachable
}
