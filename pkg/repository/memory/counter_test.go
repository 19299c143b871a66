package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/doorman/pkg/repository/memory"
)

func TestCounterIncrement(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	// Unseen user starts at zero
	count, err := repo.Counter().Get(ctx, "U123")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(0)

	for i := 1; i <= 3; i++ {
		count, err = repo.Counter().Increment(ctx, "U123")
		gt.NoError(t, err)
		gt.Number(t, count).Equal(i)
	}

	// Counters are per-user
	count, err = repo.Counter().Get(ctx, "U999")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(0)

	count, err = repo.Counter().Get(ctx, "U123")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(3)
}

func TestCounterConcurrentIncrement(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Counter().Increment(ctx, "U123")
			gt.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.Counter().Get(ctx, "U123")
	gt.NoError(t, err)
	gt.Number(t, count).Equal(workers)
}
