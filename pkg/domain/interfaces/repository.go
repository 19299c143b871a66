package interfaces

import (
	"context"

	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/domain/types"
)

// Repository provides access to the process-owned registries
type Repository interface {
	Onboarding() OnboardingRepository
	Counter() CounterRepository
	Close() error
}

// OnboardingRepository owns the onboarding card registry, keyed by
// (channel key, user ID)
type OnboardingRepository interface {
	// PutIfAbsent stores the card unless one already exists for the pair.
	// Returns true when the card was stored.
	PutIfAbsent(ctx context.Context, card *model.OnboardingCard) (bool, error)

	// Get returns the card for the pair, or (nil, nil) when absent
	Get(ctx context.Context, channelKey types.ChannelKey, userID types.UserID) (*model.OnboardingCard, error)

	// Update overwrites an existing card. Fails when the pair is absent.
	Update(ctx context.Context, card *model.OnboardingCard) error

	// List returns all cards in the registry
	List(ctx context.Context) ([]*model.OnboardingCard, error)
}

// CounterRepository owns the per-user message counters
type CounterRepository interface {
	// Increment adds one to the user's counter and returns the new value.
	// The counter is created lazily on first increment.
	Increment(ctx context.Context, userID types.UserID) (int, error)

	// Get returns the user's counter, defaulting to 0 when absent
	Get(ctx context.Context, userID types.UserID) (int, error)
}
