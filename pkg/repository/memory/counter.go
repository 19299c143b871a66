package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/doorman/pkg/domain/types"
)

type counterRepository struct {
	mu     sync.RWMutex
	counts map[types.UserID]int
}

func newCounterRepository() *counterRepository {
	return &counterRepository{
		counts: make(map[types.UserID]int),
	}
}

func (r *counterRepository) Increment(ctx context.Context, userID types.UserID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[userID]++
	return r.counts[userID], nil
}

func (r *counterRepository) Get(ctx context.Context, userID types.UserID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.counts[userID], nil
}
