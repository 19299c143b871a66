package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	slackmodel "github.com/secmon-lab/doorman/pkg/domain/model/slack"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/secmon-lab/doorman/pkg/repository/memory"
	"github.com/secmon-lab/doorman/pkg/service/llm"
	slacksvc "github.com/secmon-lab/doorman/pkg/service/slack"
	"github.com/secmon-lab/doorman/pkg/usecase"
	"github.com/slack-go/slack"
)

// recorder collects outbound Slack calls for assertions
type recorder struct {
	texts       []string
	threadTexts []string
	posted      int
}

func newRecordingMock(rec *recorder) *slacksvc.Mock {
	return &slacksvc.Mock{
		GetBotUserIDFunc: func(ctx context.Context) (string, error) {
			return "UBOT", nil
		},
		PostMessageFunc: func(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
			rec.posted++
			return "111.222", nil
		},
		PostTextMessageFunc: func(ctx context.Context, channelID, text string) (string, error) {
			rec.texts = append(rec.texts, text)
			return "1.2", nil
		},
		PostThreadReplyFunc: func(ctx context.Context, channelID, threadTS, text string) (string, error) {
			rec.threadTexts = append(rec.threadTexts, text)
			return "1.3", nil
		},
		UpdateMessageFunc: func(ctx context.Context, channelID, timestamp string, blocks []slack.Block, text string) (string, error) {
			return timestamp, nil
		},
	}
}

func TestHandleMessageGreeting(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	rec := &recorder{}
	uc := usecase.New(repo, newRecordingMock(rec))

	ev := slackmodel.NewMessageEvent("C123", "U123", "hello there", "1700000000.000100")
	gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))

	gt.Array(t, rec.texts).Length(1)
	gt.Value(t, rec.texts[0]).Equal("Hello! How can I help you today?")

	count, err := repo.Counter().Get(ctx, "U123")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(1)
}

func TestHandleMessageSkips(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		ev   *slackmodel.Event
	}{
		{
			name: "nil event",
			ev:   nil,
		},
		{
			name: "missing user",
			ev:   slackmodel.NewMessageEvent("C123", "", "hello", "1.0"),
		},
		{
			name: "missing channel",
			ev:   slackmodel.NewMessageEvent("", "U123", "hello", "1.0"),
		},
		{
			name: "bot's own message",
			ev:   slackmodel.NewMessageEvent("C123", "UBOT", "hello", "1.0"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := memory.New()
			rec := &recorder{}
			uc := usecase.New(repo, newRecordingMock(rec))

			gt.NoError(t, uc.Event.HandleSlackEvent(ctx, tc.ev))
			gt.Array(t, rec.texts).Length(0)

			if tc.ev != nil && tc.ev.UserID() != "" {
				count, err := repo.Counter().Get(ctx, tc.ev.UserID())
				gt.NoError(t, err)
				gt.Number(t, count).Equal(0)
			}
		})
	}
}

func TestHandleMessageCounter(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	rec := &recorder{}
	uc := usecase.New(repo, newRecordingMock(rec))

	for i := 0; i < 3; i++ {
		ev := slackmodel.NewMessageEvent("C123", "U123", "just chatting", "1.0")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))
	}

	count, err := repo.Counter().Get(ctx, "U123")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(3)
}

func TestHandleMessageBlockedWord(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	rec := &recorder{}
	uc := usecase.New(repo, newRecordingMock(rec))

	ev := slackmodel.NewMessageEvent("C123", "U123", "hmm, maybe", "1700000000.000100")
	gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))

	gt.Array(t, rec.threadTexts).Length(1)
	gt.Value(t, rec.threadTexts[0]).Equal("THAT IS A BAD WORD!")
}

func TestHandleMessageLLMFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("unmatched text goes to the model", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		llmMock := &llm.Mock{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				gt.Value(t, prompt).Equal("what is the capital of France?")
				return "Paris", nil
			},
		}
		uc := usecase.New(repo, newRecordingMock(rec), usecase.WithLLMService(llmMock))

		ev := slackmodel.NewMessageEvent("C123", "U123", "what is the capital of France?", "1.0")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))

		gt.Array(t, rec.texts).Length(1)
		gt.Value(t, rec.texts[0]).Equal("Paris")
	})

	t.Run("canned reply wins over the model", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		var llmCalls int
		llmMock := &llm.Mock{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				llmCalls++
				return "should not be used", nil
			},
		}
		uc := usecase.New(repo, newRecordingMock(rec), usecase.WithLLMService(llmMock))

		ev := slackmodel.NewMessageEvent("C123", "U123", "hello there", "1.0")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))

		gt.Number(t, llmCalls).Equal(0)
		gt.Array(t, rec.texts).Length(1)
		gt.Value(t, rec.texts[0]).Equal("Hello! How can I help you today?")
	})

	t.Run("model failure yields silence", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		llmMock := &llm.Mock{
			CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New("model unavailable")
			},
		}
		uc := usecase.New(repo, newRecordingMock(rec), usecase.WithLLMService(llmMock))

		ev := slackmodel.NewMessageEvent("C123", "U123", "tell me a story", "1.0")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))
		gt.Array(t, rec.texts).Length(0)

		// The message still counts
		count, err := repo.Counter().Get(ctx, "U123")
		gt.NoError(t, err)
		gt.Number(t, count).Equal(1)
	})
}

func TestHandleMessageStart(t *testing.T) {
	ctx := context.Background()

	for _, text := range []string{"start", " Start ", "START"} {
		t.Run(text, func(t *testing.T) {
			repo := memory.New()
			rec := &recorder{}
			llmMock := &llm.Mock{
				CompleteFunc: func(ctx context.Context, prompt string) (string, error) {
					return "should not be used", nil
				},
			}
			uc := usecase.New(repo, newRecordingMock(rec), usecase.WithLLMService(llmMock))

			ev := slackmodel.NewMessageEvent("C123", "U123", text, "1.0")
			gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))

			// The card post is the only delivery
			gt.Number(t, rec.posted).Equal(1)
			gt.Array(t, rec.texts).Length(0)

			card, err := repo.Onboarding().Get(ctx, types.MentionChannelKey("U123"), "U123")
			gt.NoError(t, err)
			gt.Value(t, card).NotNil().Required()
			gt.Bool(t, card.Completed).False()
		})
	}
}

func TestHandleReactionAdded(t *testing.T) {
	ctx := context.Background()

	t.Run("reaction completes the reactor's card", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		uc := usecase.New(repo, newRecordingMock(rec))

		start := slackmodel.NewMessageEvent("C123", "U123", "start", "1.0")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, start))

		reaction := slackmodel.NewReactionAddedEvent("C456", "U123", "thumbsup", "1.1")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, reaction))

		card, err := repo.Onboarding().Get(ctx, types.MentionChannelKey("U123"), "U123")
		gt.NoError(t, err)
		gt.Value(t, card).NotNil().Required()
		gt.Bool(t, card.Completed).True()
		gt.Value(t, card.DeliveryChannel).Equal("C456")
		gt.Value(t, card.RenderID).Equal(types.RenderID("111.222"))
	})

	t.Run("reaction without a card is a no-op", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		uc := usecase.New(repo, newRecordingMock(rec))

		reaction := slackmodel.NewReactionAddedEvent("C456", "U999", "thumbsup", "1.1")
		gt.NoError(t, uc.Event.HandleSlackEvent(ctx, reaction))
		gt.Array(t, rec.texts).Length(0)
	})
}

func TestPostMessageCount(t *testing.T) {
	ctx := context.Background()

	t.Run("unseen user reports zero", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		uc := usecase.New(repo, newRecordingMock(rec))

		gt.NoError(t, uc.Event.PostMessageCount(ctx, "U123", "C123"))
		gt.Array(t, rec.texts).Length(1)
		gt.Value(t, rec.texts[0]).Equal("Message: 0")
	})

	t.Run("count reflects handled messages", func(t *testing.T) {
		repo := memory.New()
		rec := &recorder{}
		uc := usecase.New(repo, newRecordingMock(rec))

		for i := 0; i < 2; i++ {
			ev := slackmodel.NewMessageEvent("C123", "U123", "just chatting", "1.0")
			gt.NoError(t, uc.Event.HandleSlackEvent(ctx, ev))
		}

		rec.texts = nil
		gt.NoError(t, uc.Event.PostMessageCount(ctx, "U123", "C123"))
		gt.Array(t, rec.texts).Length(1)
		gt.Value(t, rec.texts[0]).Equal("Message: 2")
	})
}
