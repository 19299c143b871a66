package llm

import "context"

// Service is the language-model completion collaborator. Implementations
// may fail on network, auth or rate limits; callers log and drop.
type Service interface {
	// Complete generates a reply for the given prompt text
	Complete(ctx context.Context, prompt string) (string, error)
}
