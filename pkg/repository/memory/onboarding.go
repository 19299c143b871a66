package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/domain/types"
)

type onboardingRepository struct {
	mu sync.RWMutex

	// channel key -> user ID -> card
	cards map[types.ChannelKey]map[types.UserID]*model.OnboardingCard
}

func newOnboardingRepository() *onboardingRepository {
	return &onboardingRepository{
		cards: make(map[types.ChannelKey]map[types.UserID]*model.OnboardingCard),
	}
}

func (r *onboardingRepository) PutIfAbsent(ctx context.Context, card *model.OnboardingCard) (bool, error) {
	if err := card.Validate(); err != nil {
		return false, goerr.Wrap(err, "invalid onboarding card")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.cards[card.ChannelKey]
	if !exists {
		bucket = make(map[types.UserID]*model.OnboardingCard)
		r.cards[card.ChannelKey] = bucket
	}

	if _, exists := bucket[card.UserID]; exists {
		return false, nil
	}

	bucket[card.UserID] = card.Clone()
	return true, nil
}

func (r *onboardingRepository) Get(ctx context.Context, channelKey types.ChannelKey, userID types.UserID) (*model.OnboardingCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.cards[channelKey]
	if !exists {
		return nil, nil
	}

	card, exists := bucket[userID]
	if !exists {
		return nil, nil
	}

	return card.Clone(), nil
}

func (r *onboardingRepository) Update(ctx context.Context, card *model.OnboardingCard) error {
	if err := card.Validate(); err != nil {
		return goerr.Wrap(err, "invalid onboarding card")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, exists := r.cards[card.ChannelKey]
	if !exists {
		return goerr.Wrap(ErrNotFound, "onboarding card not found",
			goerr.V("channelKey", card.ChannelKey),
			goerr.V("userID", card.UserID),
		)
	}
	if _, exists := bucket[card.UserID]; !exists {
		return goerr.Wrap(ErrNotFound, "onboarding card not found",
			goerr.V("channelKey", card.ChannelKey),
			goerr.V("userID", card.UserID),
		)
	}

	bucket[card.UserID] = card.Clone()
	return nil
}

func (r *onboardingRepository) List(ctx context.Context) ([]*model.OnboardingCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.OnboardingCard
	for _, bucket := range r.cards {
		for _, card := range bucket {
			result = append(result, card.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ChannelKey != result[j].ChannelKey {
			return result[i].ChannelKey < result[j].ChannelKey
		}
		return result[i].UserID < result[j].UserID
	})

	return result, nil
}
