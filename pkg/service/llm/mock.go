package llm

import "context"

// Mock is a test double for Service
type Mock struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

var _ Service = &Mock{}

func (m *Mock) Complete(ctx context.Context, prompt string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "", nil
}
