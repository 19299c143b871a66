package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/secmon-lab/doorman/pkg/service/slack"
	"github.com/secmon-lab/doorman/pkg/utils/errutil"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// sweepConcurrency caps parallel channel sweeps at startup
const sweepConcurrency = 4

// ScheduleUseCase exposes scheduled-message operations on the Slack
// collaborator: schedule, list and delete are independent, plus the
// startup sweep that clears pending messages from configured channels.
type ScheduleUseCase struct {
	slackService slacksvc.Service
}

// NewScheduleUseCase creates a new ScheduleUseCase instance
func NewScheduleUseCase(slackService slacksvc.Service) *ScheduleUseCase {
	return &ScheduleUseCase{
		slackService: slackService,
	}
}

// Schedule submits a message for future delivery
func (uc *ScheduleUseCase) Schedule(ctx context.Context, channelID, text string, postAt time.Time) (string, error) {
	if text == "" {
		return "", goerr.New("scheduled message text is required")
	}
	if !postAt.After(time.Now()) {
		return "", goerr.New("post time must be in the future", goerr.V("postAt", postAt))
	}

	id, err := uc.slackService.ScheduleMessage(ctx, channelID, text, postAt)
	if err != nil {
		return "", goerr.Wrap(err, "failed to schedule message", goerr.V("channelID", channelID))
	}

	logging.From(ctx).Info("message scheduled",
		"channel_id", channelID,
		"scheduled_message_id", id,
		"post_at", postAt,
	)
	return id, nil
}

// List returns the pending scheduled messages of a channel
func (uc *ScheduleUseCase) List(ctx context.Context, channelID string) ([]slacksvc.ScheduledMessage, error) {
	msgs, err := uc.slackService.ListScheduledMessages(ctx, channelID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scheduled messages", goerr.V("channelID", channelID))
	}
	return msgs, nil
}

// Delete removes one pending scheduled message
func (uc *ScheduleUseCase) Delete(ctx context.Context, channelID, scheduledMessageID string) error {
	if err := uc.slackService.DeleteScheduledMessage(ctx, channelID, scheduledMessageID); err != nil {
		return goerr.Wrap(err, "failed to delete scheduled message",
			goerr.V("channelID", channelID),
			goerr.V("scheduledMessageID", scheduledMessageID),
		)
	}
	return nil
}

// CleanupChannel deletes every pending scheduled message of the channel.
// A per-item delivery failure is logged and the loop continues; the
// returned count covers successful deletions only.
func (uc *ScheduleUseCase) CleanupChannel(ctx context.Context, channelID string) (int, error) {
	msgs, err := uc.slackService.ListScheduledMessages(ctx, channelID)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list scheduled messages for sweep", goerr.V("channelID", channelID))
	}

	deleted := 0
	for _, msg := range msgs {
		if err := uc.slackService.DeleteScheduledMessage(ctx, channelID, msg.ID); err != nil {
			errutil.Handle(ctx, err, "failed to delete scheduled message, continuing sweep")
			continue
		}
		deleted++
	}

	logging.From(ctx).Info("scheduled message sweep finished",
		"channel_id", channelID,
		"pending", len(msgs),
		"deleted", deleted,
	)
	return deleted, nil
}

// Cleanup sweeps the given channels before the service starts accepting
// events. Sweep failures never abort startup.
func (uc *ScheduleUseCase) Cleanup(ctx context.Context, channelIDs []string) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(sweepConcurrency)

	for _, channelID := range channelIDs {
		eg.Go(func() error {
			if _, err := uc.CleanupChannel(ctx, channelID); err != nil {
				errutil.Handle(ctx, err, "scheduled message sweep failed for channel")
			}
			return nil
		})
	}

	return eg.Wait()
}
