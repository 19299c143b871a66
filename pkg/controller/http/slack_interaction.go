package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/secmon-lab/doorman/pkg/usecase"
	"github.com/secmon-lab/doorman/pkg/utils/async"
	"github.com/secmon-lab/doorman/pkg/utils/errutil"
	"github.com/secmon-lab/doorman/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// SlackInteractionHandler handles Slack interactive component payloads (button clicks)
type SlackInteractionHandler struct {
	onboardingUC *usecase.OnboardingUseCase
}

// NewSlackInteractionHandler creates a new Slack interaction handler
func NewSlackInteractionHandler(onboardingUC *usecase.OnboardingUseCase) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		onboardingUC: onboardingUC,
	}
}

// ServeHTTP handles Slack interaction webhook requests
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	// Only handle block_actions (button clicks)
	if callback.Type != slack.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	userID := types.UserID(callback.User.ID)
	channelID := callback.Channel.ID

	// Ack first; the platform expects a fast 200 regardless of outcome
	w.WriteHeader(http.StatusOK)

	for _, action := range callback.ActionCallback.BlockActions {
		switch action.ActionID {
		case model.ActionIDCompleteTask:
			if userID == "" || channelID == "" {
				logging.From(ctx).Warn("incomplete interaction payload, skipping",
					"user_id", userID,
					"channel_id", channelID,
				)
				continue
			}

			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := h.onboardingUC.HandleCompleteTaskAction(ctx, userID, channelID); err != nil {
					return goerr.Wrap(err, "failed to handle complete task action",
						goerr.V("userID", userID),
						goerr.V("channelID", channelID),
					)
				}
				return nil
			})

		default:
			// Unknown action ID, skip
			continue
		}
	}
}
