package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/doorman/pkg/domain/interfaces"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	slacksvc "github.com/secmon-lab/doorman/pkg/service/slack"
	"github.com/secmon-lab/doorman/pkg/utils/errutil"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
)

// OnboardingUseCase owns the onboarding card lifecycle
type OnboardingUseCase struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
}

// NewOnboardingUseCase creates a new OnboardingUseCase instance
func NewOnboardingUseCase(repo interfaces.Repository, slackService slacksvc.Service) *OnboardingUseCase {
	return &OnboardingUseCase{
		repo:         repo,
		slackService: slackService,
	}
}

// StartOnboarding creates and posts an onboarding card for the pair.
// Creation is idempotent: when a card already exists, nothing happens.
func (uc *OnboardingUseCase) StartOnboarding(ctx context.Context, channelKey types.ChannelKey, userID types.UserID) error {
	logger := logging.From(ctx)

	card := model.NewOnboardingCard(channelKey, userID)
	created, err := uc.repo.Onboarding().PutIfAbsent(ctx, card)
	if err != nil {
		return goerr.Wrap(err, "failed to store onboarding card",
			goerr.V("channelKey", channelKey),
			goerr.V("userID", userID),
		)
	}
	if !created {
		logger.Debug("onboarding card already exists",
			"channel_key", channelKey,
			"user_id", userID,
		)
		return nil
	}

	ts, err := uc.slackService.PostMessage(ctx, card.DeliveryChannel, card.Blocks(), card.FallbackText())
	if err != nil {
		return goerr.Wrap(err, "failed to post onboarding card",
			goerr.V("channel", card.DeliveryChannel),
			goerr.V("userID", userID),
		)
	}

	card.RenderID = types.RenderID(ts)
	if err := uc.repo.Onboarding().Update(ctx, card); err != nil {
		return goerr.Wrap(err, "failed to store render ID",
			goerr.V("channelKey", channelKey),
			goerr.V("userID", userID),
		)
	}

	logger.Info("onboarding card posted",
		"channel_key", channelKey,
		"user_id", userID,
		"render_id", ts,
	)
	return nil
}

// MarkComplete moves the pair's card to the completed state and re-renders
// it in place. A missing pair is silently ignored: a user cannot complete a
// task they never started. newChannelID, when non-empty, replaces the
// card's delivery channel (a reaction may arrive from a different real
// channel than the one the registry is keyed by).
func (uc *OnboardingUseCase) MarkComplete(ctx context.Context, channelKey types.ChannelKey, userID types.UserID, newChannelID string) error {
	logger := logging.From(ctx)

	card, err := uc.repo.Onboarding().Get(ctx, channelKey, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to look up onboarding card",
			goerr.V("channelKey", channelKey),
			goerr.V("userID", userID),
		)
	}
	if card == nil {
		logger.Debug("no onboarding card for pair, ignoring",
			"channel_key", channelKey,
			"user_id", userID,
		)
		return nil
	}

	card.Complete()
	card.UpdateDeliveryChannel(newChannelID)

	ts, err := uc.slackService.UpdateMessage(ctx, card.DeliveryChannel, card.RenderID.String(), card.Blocks(), card.FallbackText())
	if err != nil {
		return goerr.Wrap(err, "failed to update onboarding card",
			goerr.V("channel", card.DeliveryChannel),
			goerr.V("renderID", card.RenderID),
		)
	}

	card.RenderID = types.RenderID(ts)
	if err := uc.repo.Onboarding().Update(ctx, card); err != nil {
		return goerr.Wrap(err, "failed to store completed card",
			goerr.V("channelKey", channelKey),
			goerr.V("userID", userID),
		)
	}

	logger.Info("onboarding task completed",
		"channel_key", channelKey,
		"user_id", userID,
	)
	return nil
}

// HandleCompleteTaskAction processes a click on the card's Complete Task
// button. The public acknowledgement is posted whether or not a card
// existed for the user.
func (uc *OnboardingUseCase) HandleCompleteTaskAction(ctx context.Context, userID types.UserID, channelID string) error {
	if err := uc.MarkComplete(ctx, types.MentionChannelKey(userID), userID, ""); err != nil {
		errutil.Handle(ctx, err, "failed to mark task complete from interaction")
	}

	text := userID.Mention() + " has completed the task!"
	if _, err := uc.slackService.PostTextMessage(ctx, channelID, text); err != nil {
		return goerr.Wrap(err, "failed to post completion acknowledgement",
			goerr.V("channelID", channelID),
			goerr.V("userID", userID),
		)
	}
	return nil
}
