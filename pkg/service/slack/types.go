package slack

import (
	"context"
	"time"

	"github.com/slack-go/slack"
)

// Service provides the interface to the Slack Web API used by the bot
type Service interface {
	// GetBotUserID returns the bot's own user ID (from auth.test).
	// The result is cached for the lifetime of the service instance.
	GetBotUserID(ctx context.Context) (string, error)

	// PostMessage posts a Block Kit message to a channel and returns the
	// message timestamp. The text parameter is the notification fallback.
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error)

	// PostTextMessage posts a plain text message and returns its timestamp
	PostTextMessage(ctx context.Context, channelID, text string) (string, error)

	// PostThreadReply posts a plain text reply into the thread anchored at
	// threadTS and returns its timestamp
	PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error)

	// UpdateMessage updates an existing Block Kit message identified by
	// channel and timestamp, returning the timestamp of the updated message
	UpdateMessage(ctx context.Context, channelID, timestamp string, blocks []slack.Block, text string) (string, error)

	// ScheduleMessage schedules a message for future delivery and returns
	// the scheduled message ID
	ScheduleMessage(ctx context.Context, channelID, text string, postAt time.Time) (string, error)

	// ListScheduledMessages returns the pending scheduled messages of a channel
	ListScheduledMessages(ctx context.Context, channelID string) ([]ScheduledMessage, error)

	// DeleteScheduledMessage removes a pending scheduled message
	DeleteScheduledMessage(ctx context.Context, channelID, scheduledMessageID string) error
}

// ScheduledMessage represents a pending scheduled message
type ScheduledMessage struct {
	ID        string
	ChannelID string
	Text      string
	PostAt    time.Time
}
