package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/domain/types"
	"github.com/secmon-lab/doorman/pkg/repository/memory"
)

func TestOnboardingPutIfAbsent(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	card := model.NewOnboardingCard(types.MentionChannelKey("U123"), "U123")

	inserted, err := repo.Onboarding().PutIfAbsent(ctx, card)
	gt.NoError(t, err)
	gt.Bool(t, inserted).True()

	// A second insert for the same (channel, user) pair is rejected
	dup := model.NewOnboardingCard(types.MentionChannelKey("U123"), "U123")
	inserted, err = repo.Onboarding().PutIfAbsent(ctx, dup)
	gt.NoError(t, err)
	gt.Bool(t, inserted).False()

	// Same user under a different channel key is a distinct entry
	other := model.NewOnboardingCard("C999", "U123")
	inserted, err = repo.Onboarding().PutIfAbsent(ctx, other)
	gt.NoError(t, err)
	gt.Bool(t, inserted).True()
}

func TestOnboardingGet(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("absent entry returns nil without error", func(t *testing.T) {
		card, err := repo.Onboarding().Get(ctx, "C123", "U123")
		gt.NoError(t, err)
		gt.Value(t, card).Nil()
	})

	t.Run("stored entry round-trips", func(t *testing.T) {
		card := model.NewOnboardingCard(types.MentionChannelKey("U123"), "U123")
		card.RenderID = "111.222"
		_, err := repo.Onboarding().PutIfAbsent(ctx, card)
		gt.NoError(t, err)

		got, err := repo.Onboarding().Get(ctx, types.MentionChannelKey("U123"), "U123")
		gt.NoError(t, err)
		gt.Value(t, got).NotNil().Required()
		gt.Value(t, got.ChannelKey).Equal(types.ChannelKey("@U123"))
		gt.Value(t, got.RenderID).Equal(types.RenderID("111.222"))
	})

	t.Run("returned card is a copy", func(t *testing.T) {
		got, err := repo.Onboarding().Get(ctx, types.MentionChannelKey("U123"), "U123")
		gt.NoError(t, err)
		got.Complete()

		again, err := repo.Onboarding().Get(ctx, types.MentionChannelKey("U123"), "U123")
		gt.NoError(t, err)
		gt.Bool(t, again.Completed).False()
	})
}

func TestOnboardingUpdate(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("update of absent entry fails", func(t *testing.T) {
		card := model.NewOnboardingCard("C123", "U123")
		err := repo.Onboarding().Update(ctx, card)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound)).True()
	})

	t.Run("update replaces the stored entry", func(t *testing.T) {
		card := model.NewOnboardingCard("C123", "U123")
		_, err := repo.Onboarding().PutIfAbsent(ctx, card)
		gt.NoError(t, err)

		card.Complete()
		card.RenderID = "123.456"
		gt.NoError(t, repo.Onboarding().Update(ctx, card))

		got, err := repo.Onboarding().Get(ctx, "C123", "U123")
		gt.NoError(t, err)
		gt.Bool(t, got.Completed).True()
		gt.Value(t, got.RenderID).Equal(types.RenderID("123.456"))
	})
}

func TestOnboardingList(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	for _, userID := range []types.UserID{"U3", "U1", "U2"} {
		card := model.NewOnboardingCard(types.MentionChannelKey(userID), userID)
		_, err := repo.Onboarding().PutIfAbsent(ctx, card)
		gt.NoError(t, err)
	}

	cards, err := repo.Onboarding().List(ctx)
	gt.NoError(t, err)
	gt.Array(t, cards).Length(3)
	gt.Value(t, cards[0].UserID).Equal(types.UserID("U1"))
	gt.Value(t, cards[1].UserID).Equal(types.UserID("U2"))
	gt.Value(t, cards[2].UserID).Equal(types.UserID("U3"))
}

func TestOnboardingConcurrentPut(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	const workers = 16
	results := make([]bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			card := model.NewOnboardingCard(types.MentionChannelKey("U123"), "U123")
			inserted, err := repo.Onboarding().PutIfAbsent(ctx, card)
			gt.NoError(t, err)
			results[i] = inserted
		}(i)
	}
	wg.Wait()

	// Exactly one goroutine wins the insert
	var wins int
	for _, inserted := range results {
		if inserted {
			wins++
		}
	}
	gt.Number(t, wins).Equal(1)
}
