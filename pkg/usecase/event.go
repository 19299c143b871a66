package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/doorman/pkg/domain/interfaces"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	slackmodel "github.com/secmon-lab/doorman/pkg/domain/model/slack"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/secmon-lab/doorman/pkg/service/llm"
	slacksvc "github.com/secmon-lab/doorman/pkg/service/slack"
	"github.com/secmon-lab/doorman/pkg/utils/errutil"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
)

const (
	// startCommand begins onboarding when a message equals it (case-insensitive, trimmed)
	startCommand = "start"

	blockedWordWarning = "THAT IS A BAD WORD!"
)

// EventUseCase routes inbound Slack events to the responder, the LLM
// collaborator and the onboarding tracker
type EventUseCase struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	llmService   llm.Service
	responder    *model.Responder
	onboarding   *OnboardingUseCase
}

// NewEventUseCase creates a new EventUseCase instance. llmService may be
// nil; unmatched messages then get no reply.
func NewEventUseCase(repo interfaces.Repository, slackService slacksvc.Service, llmService llm.Service, responder *model.Responder, onboarding *OnboardingUseCase) *EventUseCase {
	return &EventUseCase{
		repo:         repo,
		slackService: slackService,
		llmService:   llmService,
		responder:    responder,
		onboarding:   onboarding,
	}
}

// HandleSlackEvent classifies the event and dispatches it. The switch over
// the closed kind set is the single routing point.
func (uc *EventUseCase) HandleSlackEvent(ctx context.Context, event *slackmodel.Event) error {
	if event == nil {
		return nil
	}

	switch event.Kind() {
	case slackmodel.EventKindMessage:
		return uc.handleMessage(ctx, event)
	case slackmodel.EventKindReactionAdded:
		return uc.handleReactionAdded(ctx, event)
	default:
		logging.From(ctx).Warn("unsupported event kind", "kind", event.Kind())
		return nil
	}
}

func (uc *EventUseCase) handleMessage(ctx context.Context, event *slackmodel.Event) error {
	logger := logging.From(ctx)

	if event.UserID() == "" || event.ChannelID() == "" {
		logger.Debug("incomplete message event, skipping")
		return nil
	}
	if event.FromBot() {
		return nil
	}

	botUserID, err := uc.slackService.GetBotUserID(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve bot user ID")
	}
	if event.UserID().String() == botUserID {
		logger.Debug("skipping bot's own message", "user_id", event.UserID())
		return nil
	}

	isStart := strings.EqualFold(strings.TrimSpace(event.Text()), startCommand)
	if !isStart {
		uc.deliverReply(ctx, event)
	}

	if _, err := uc.repo.Counter().Increment(ctx, event.UserID()); err != nil {
		errutil.Handle(ctx, err, "failed to increment message counter")
	}

	if isStart {
		return uc.onboarding.StartOnboarding(ctx, types.MentionChannelKey(event.UserID()), event.UserID())
	}

	if uc.responder.HasBlockedWord(event.Text()) {
		if _, err := uc.slackService.PostThreadReply(ctx, event.ChannelID(), event.Timestamp(), blockedWordWarning); err != nil {
			errutil.Handle(ctx, err, "failed to post blocked word warning")
		}
	}

	return nil
}

// deliverReply produces a reply via the keyword responder or, when it
// yields nothing, the LLM collaborator. Delivery and completion failures
// are logged and dropped; the user sees silence.
func (uc *EventUseCase) deliverReply(ctx context.Context, event *slackmodel.Event) {
	if reply, ok := uc.responder.Respond(event.Text()); ok {
		if _, err := uc.slackService.PostTextMessage(ctx, event.ChannelID(), reply); err != nil {
			errutil.Handle(ctx, err, "failed to deliver canned reply")
		}
		return
	}

	if uc.llmService == nil {
		return
	}

	reply, err := uc.llmService.Complete(ctx, event.Text())
	if err != nil {
		errutil.Handle(ctx, err, "completion failed, dropping reply")
		return
	}
	if _, err := uc.slackService.PostTextMessage(ctx, event.ChannelID(), reply); err != nil {
		errutil.Handle(ctx, err, "failed to deliver completion reply")
	}
}

func (uc *EventUseCase) handleReactionAdded(ctx context.Context, event *slackmodel.Event) error {
	if event.UserID() == "" {
		logging.From(ctx).Debug("incomplete reaction event, skipping")
		return nil
	}

	// The registry is keyed by the reactor-derived synthetic key; the
	// reaction's real channel only updates the card's delivery channel.
	key := types.MentionChannelKey(event.UserID())
	return uc.onboarding.MarkComplete(ctx, key, event.UserID(), event.ChannelID())
}

// PostMessageCount looks up the user's message counter (default 0) and
// posts it to the requesting channel
func (uc *EventUseCase) PostMessageCount(ctx context.Context, userID types.UserID, channelID string) error {
	count, err := uc.repo.Counter().Get(ctx, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to read message counter", goerr.V("userID", userID))
	}

	text := fmt.Sprintf("Message: %d", count)
	if _, err := uc.slackService.PostTextMessage(ctx, channelID, text); err != nil {
		return goerr.Wrap(err, "failed to post message count",
			goerr.V("channelID", channelID),
			goerr.V("userID", userID),
		)
	}
	return nil
}
