package http

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/secmon-lab/doorman/pkg/usecase"
	"github.com/secmon-lab/doorman/pkg/utils/async"
	"github.com/secmon-lab/doorman/pkg/utils/errutil"
)

// SlackCommandHandler handles the message-count query. Slack delivers
// slash commands form-encoded with user_id and channel_id fields.
type SlackCommandHandler struct {
	eventUC *usecase.EventUseCase
}

// NewSlackCommandHandler creates a new Slack command handler
func NewSlackCommandHandler(eventUC *usecase.EventUseCase) *SlackCommandHandler {
	return &SlackCommandHandler{
		eventUC: eventUC,
	}
}

// ServeHTTP handles message-count requests
func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := types.UserID(r.FormValue("user_id"))
	channelID := r.FormValue("channel_id")
	if userID == "" || channelID == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing user_id or channel_id in command request"), http.StatusBadRequest)
		return
	}

	// Ack first; the count is delivered as a regular channel message
	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := h.eventUC.PostMessageCount(ctx, userID, channelID); err != nil {
			return goerr.Wrap(err, "failed to post message count",
				goerr.V("userID", userID),
				goerr.V("channelID", channelID),
			)
		}
		return nil
	})
}
