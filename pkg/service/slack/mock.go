package slack

import (
	"context"
	"time"

	"github.com/slack-go/slack"
)

// Mock is a test double for Service. Unset function fields return zero
// values, so tests only wire the calls they care about.
type Mock struct {
	GetBotUserIDFunc           func(ctx context.Context) (string, error)
	PostMessageFunc            func(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error)
	PostTextMessageFunc        func(ctx context.Context, channelID, text string) (string, error)
	PostThreadReplyFunc        func(ctx context.Context, channelID, threadTS, text string) (string, error)
	UpdateMessageFunc          func(ctx context.Context, channelID, timestamp string, blocks []slack.Block, text string) (string, error)
	ScheduleMessageFunc        func(ctx context.Context, channelID, text string, postAt time.Time) (string, error)
	ListScheduledMessagesFunc  func(ctx context.Context, channelID string) ([]ScheduledMessage, error)
	DeleteScheduledMessageFunc func(ctx context.Context, channelID, scheduledMessageID string) error
}

var _ Service = &Mock{}

func (m *Mock) GetBotUserID(ctx context.Context) (string, error) {
	if m.GetBotUserIDFunc != nil {
		return m.GetBotUserIDFunc(ctx)
	}
	return "", nil
}

func (m *Mock) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, channelID, blocks, text)
	}
	return "", nil
}

func (m *Mock) PostTextMessage(ctx context.Context, channelID, text string) (string, error) {
	if m.PostTextMessageFunc != nil {
		return m.PostTextMessageFunc(ctx, channelID, text)
	}
	return "", nil
}

func (m *Mock) PostThreadReply(ctx context.Context, channelID, threadTS, text string) (string, error) {
	if m.PostThreadReplyFunc != nil {
		return m.PostThreadReplyFunc(ctx, channelID, threadTS, text)
	}
	return "", nil
}

func (m *Mock) UpdateMessage(ctx context.Context, channelID, timestamp string, blocks []slack.Block, text string) (string, error) {
	if m.UpdateMessageFunc != nil {
		return m.UpdateMessageFunc(ctx, channelID, timestamp, blocks, text)
	}
	return "", nil
}

func (m *Mock) ScheduleMessage(ctx context.Context, channelID, text string, postAt time.Time) (string, error) {
	if m.ScheduleMessageFunc != nil {
		return m.ScheduleMessageFunc(ctx, channelID, text, postAt)
	}
	return "", nil
}

func (m *Mock) ListScheduledMessages(ctx context.Context, channelID string) ([]ScheduledMessage, error) {
	if m.ListScheduledMessagesFunc != nil {
		return m.ListScheduledMessagesFunc(ctx, channelID)
	}
	return nil, nil
}

func (m *Mock) DeleteScheduledMessage(ctx context.Context, channelID, scheduledMessageID string) error {
	if m.DeleteScheduledMessageFunc != nil {
		return m.DeleteScheduledMessageFunc(ctx, channelID, scheduledMessageID)
	}
	return nil
}
