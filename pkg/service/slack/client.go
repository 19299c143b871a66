package slack

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// DefaultAPITimeout bounds every outbound Slack Web API call
const DefaultAPITimeout = 10 * time.Second

// client implements Service interface
type client struct {
	api        *slack.Client
	apiTimeout time.Duration

	mu        sync.Mutex
	botUserID string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPITimeout sets the per-call timeout for Slack Web API requests
func WithAPITimeout(timeout time.Duration) Option {
	return func(c *client) {
		c.apiTimeout = timeout
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{
		api:        slack.New(token),
		apiTimeout: DefaultAPITimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.apiTimeout)
}

// GetBotUserID returns the bot's own user ID, fetched once via auth.test
func (c *client) GetBotUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.botUserID != "" {
		return c.botUserID, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call auth.test")
	}

	c.botUserID = resp.UserID
	return c.botUserID, nil
}

// PostMessage posts a Block Kit message and returns its timestamp
func (c *client) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channelID", channelID))
	}
	return ts, nil
}

// PostTextMessage posts a plain text message and returns its timestamp
func (c *client) PostTextMessage(ctx context.Context, channelID, text string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post text message", goerr.V("channelID", channelID))
	}
	return ts, nil
}

// PostThreadReply posts a plain text reply into a thread
func (c *client) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post thread reply",
			goerr.V("channelID", channelID),
			goerr.V("threadTS", threadTS),
		)
	}
	return ts, nil
}

// UpdateMessage updates a posted Block Kit message in place
func (c *client) UpdateMessage(ctx context.Context, channelID, timestamp string, blocks []slack.Block, text string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, ts, _, err := c.api.UpdateMessageContext(ctx, channelID, timestamp,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to update message",
			goerr.V("channelID", channelID),
			goerr.V("timestamp", timestamp),
		)
	}
	return ts, nil
}

// ScheduleMessage schedules a message and returns the scheduled message ID
func (c *client) ScheduleMessage(ctx context.Context, channelID, text string, postAt time.Time) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, id, err := c.api.ScheduleMessageContext(ctx, channelID,
		strconv.FormatInt(postAt.Unix(), 10),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to schedule message",
			goerr.V("channelID", channelID),
			goerr.V("postAt", postAt),
		)
	}
	return id, nil
}

// ListScheduledMessages returns the pending scheduled messages of a channel
func (c *client) ListScheduledMessages(ctx context.Context, channelID string) ([]ScheduledMessage, error) {
	var result []ScheduledMessage
	var cursor string

	for {
		callCtx, cancel := c.withTimeout(ctx)
		msgs, nextCursor, err := c.api.GetScheduledMessagesContext(callCtx, &slack.GetScheduledMessagesParameters{
			Channel: channelID,
			Cursor:  cursor,
		})
		cancel()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list scheduled messages", goerr.V("channelID", channelID))
		}

		for _, msg := range msgs {
			result = append(result, ScheduledMessage{
				ID:        msg.ID,
				ChannelID: msg.Channel,
				Text:      msg.Text,
				PostAt:    time.Unix(int64(msg.PostAt), 0),
			})
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return result, nil
}

// DeleteScheduledMessage removes a pending scheduled message
func (c *client) DeleteScheduledMessage(ctx context.Context, channelID, scheduledMessageID string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	_, err := c.api.DeleteScheduledMessageContext(ctx, &slack.DeleteScheduledMessageParameters{
		Channel:            channelID,
		ScheduledMessageID: scheduledMessageID,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete scheduled message",
			goerr.V("channelID", channelID),
			goerr.V("scheduledMessageID", scheduledMessageID),
		)
	}
	return nil
}
